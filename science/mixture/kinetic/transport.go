/*
Copyright © 2019 the kappasweep authors.
This file is part of kappasweep.

kappasweep is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

kappasweep is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with kappasweep.  If not, see <http://www.gnu.org/licenses/>.
*/

package kinetic

import (
	"fmt"
	"math"

	"github.com/spatialmodel/kappasweep"
	"gonum.org/v1/gonum/floats"
)

const (
	// defaultReferenceTemperature [K] is used for collision diameters
	// taken from particle descriptors.
	defaultReferenceTemperature = 273.

	// hardSphereOmega is the viscosity-temperature exponent of a
	// hard sphere.
	hardSphereOmega = 0.5
)

// species holds the per-species properties needed for transport
// calculations.
type species struct {
	name string
	x    float64 // mole fraction
	mass float64 // [kg]
	cInt float64 // internal heat capacity per particle [k]
	zRot float64 // rotational collision number
	eta  float64 // pure species viscosity [Pa s]
}

// ComputeTransportCoefficients computes the shear viscosity, thermal
// conductivity and bulk viscosity of the mixture.
//
// mode is the electron number density, which must be zero because
// electrons are not part of this model. relaxation, if positive,
// replaces the rotational collision numbers of the molecular species.
func (m *Mixture) ComputeTransportCoefficients(T float64, molecules [][]float64, atoms []float64,
	mode float64, model kappasweep.CollisionModel, relaxation float64) error {
	if mode != 0 {
		return fmt.Errorf("kinetic: electron number density must be 0, got %g", mode)
	}
	if relaxation < 0 || math.IsNaN(relaxation) {
		return fmt.Errorf("kinetic: invalid relaxation parameter %g", relaxation)
	}
	if err := m.checkState(T, molecules, atoms); err != nil {
		return err
	}
	n := totalDensity(molecules, atoms)
	if !(n > 0) {
		return fmt.Errorf("kinetic: total number density must be positive")
	}

	sp := make([]species, 0, len(molecules)+len(atoms))
	for i, mol := range m.molecules {
		z := mol.RotationalRelaxation
		if relaxation > 0 {
			z = relaxation
		}
		sp = append(sp, species{
			name: mol.Name(),
			x:    floats.Sum(molecules[i]) / n,
			mass: mol.Mass,
			cInt: mol.internalHeatCapacity(),
			zRot: z,
		})
	}
	for i, a := range m.atoms {
		sp = append(sp, species{
			name: a.Name(),
			x:    atoms[i] / n,
			mass: a.Mass,
		})
	}
	for i := range sp {
		d, err := m.collisionDiameter(sp[i].name, T, model)
		if err != nil {
			return err
		}
		sp[i].eta = hardSphereViscosity(sp[i].mass, d, T)
	}

	denom := wilkeDenominators(sp)
	var eta, lambda float64
	for i, s := range sp {
		if s.x == 0 {
			continue
		}
		eta += s.x * s.eta / denom[i]
		lambda += s.x * euckenConductivity(s) / denom[i]
	}

	var cInt, zx, xMol float64
	for _, s := range sp {
		cInt += s.x * s.cInt
		if s.cInt > 0 {
			zx += s.x * s.zRot
			xMol += s.x
		}
	}
	var zeta float64
	if cInt > 0 && xMol > 0 {
		p := n * kappasweep.KBoltzmann * T
		tau := zx / xMol * math.Pi * eta / (4 * p)
		cv := 1.5 + cInt
		zeta = p * tau * cInt / (cv * cv)
	}

	m.shearViscosity = eta
	m.thermalConductivity = lambda
	m.bulkViscosity = zeta
	return nil
}

// collisionDiameter returns the collision diameter [m] of a species with
// itself at temperature T.
func (m *Mixture) collisionDiameter(name string, T float64, model kappasweep.CollisionModel) (float64, error) {
	in, ok := m.interactions[PairKey(name, name)]
	if !ok {
		in = Interaction{
			Diameter:             m.particleDiameter(name),
			ReferenceTemperature: defaultReferenceTemperature,
			Omega:                hardSphereOmega,
		}
	}
	switch model {
	case kappasweep.RigidSphere:
		return in.Diameter, nil
	case kappasweep.VSS:
		if !(in.ReferenceTemperature > 0) {
			return 0, fmt.Errorf("kinetic: interaction '%s' needs a positive reference temperature for the VSS model",
				PairKey(name, name))
		}
		return in.Diameter * math.Pow(in.ReferenceTemperature/T, (in.Omega-0.5)/2), nil
	default:
		return 0, fmt.Errorf("kinetic: unsupported collision model %v", model)
	}
}

func (m *Mixture) particleDiameter(name string) float64 {
	for _, mol := range m.molecules {
		if mol.Name() == name {
			return mol.Diameter
		}
	}
	for _, a := range m.atoms {
		if a.Name() == name {
			return a.Diameter
		}
	}
	return 0
}

// hardSphereViscosity returns the first Chapman-Enskog approximation
// of the viscosity [Pa s] of a gas of spheres with mass [kg] and
// diameter [m] at temperature T [K].
func hardSphereViscosity(mass, diameter, T float64) float64 {
	return 5. / 16. * math.Sqrt(math.Pi*mass*kappasweep.KBoltzmann*T) / (math.Pi * diameter * diameter)
}

// euckenConductivity returns the thermal conductivity [W/m/K] of a
// pure species.
func euckenConductivity(s species) float64 {
	return s.eta / s.mass * kappasweep.KBoltzmann * (15./4. + s.cInt)
}

// wilkeDenominators returns Σ_j x_j·φ_ij for each species i, where φ is
// the Wilke mixing rule weight.
func wilkeDenominators(sp []species) []float64 {
	x := make([]float64, len(sp))
	for i, s := range sp {
		x[i] = s.x
	}
	o := make([]float64, len(sp))
	phi := make([]float64, len(sp))
	for i, si := range sp {
		for j, sj := range sp {
			a := 1 + math.Sqrt(si.eta/sj.eta)*math.Pow(sj.mass/si.mass, 0.25)
			phi[j] = a * a / math.Sqrt(8*(1+si.mass/sj.mass))
		}
		o[i] = floats.Dot(x, phi)
	}
	return o
}
