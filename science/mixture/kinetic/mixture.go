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

// Package kinetic contains a kinetic theory model of a mixture of
// diatomic molecules with vibrational levels and atoms.
package kinetic

import (
	"fmt"
	"math"

	"github.com/golang/groupcache/lru"
	"github.com/spatialmodel/kappasweep"
	"gonum.org/v1/gonum/floats"
)

// distributionCacheSize is the number of (molecule, temperature)
// level distributions kept in memory.
const distributionCacheSize = 4096

// Mixture fulfils the github.com/spatialmodel/kappasweep.Mixture
// interface. It is not safe for concurrent use.
type Mixture struct {
	molecules    []*Molecule
	atoms        []*Atom
	interactions map[string]Interaction

	// distributions caches the fractions of molecules in each
	// vibrational level, keyed by levelKey.
	distributions *lru.Cache

	thermalConductivity, shearViscosity, bulkViscosity float64
}

type levelKey struct {
	molecule string
	t        float64
}

// NewMixture returns a mixture of the given species. Collision parameters
// for each species are taken from interactions, falling back to the
// particle diameter for species with no self-interaction entry.
func NewMixture(molecules []*Molecule, atoms []*Atom, interactions map[string]Interaction) (*Mixture, error) {
	if len(molecules)+len(atoms) == 0 {
		return nil, fmt.Errorf("kinetic: mixture has no species")
	}
	names := make(map[string]bool)
	for _, s := range molecules {
		if names[s.Name()] {
			return nil, fmt.Errorf("kinetic: species '%s' is in the mixture more than once", s.Name())
		}
		names[s.Name()] = true
	}
	for _, s := range atoms {
		if names[s.Name()] {
			return nil, fmt.Errorf("kinetic: species '%s' is in the mixture more than once", s.Name())
		}
		names[s.Name()] = true
	}
	return &Mixture{
		molecules:     molecules,
		atoms:         atoms,
		interactions:  interactions,
		distributions: lru.New(distributionCacheSize),
	}, nil
}

func (m *Mixture) molecule(name string) (*Molecule, error) {
	for _, mol := range m.molecules {
		if mol.Name() == name {
			return mol, nil
		}
	}
	return nil, fmt.Errorf("kinetic: molecule '%s' is not in the mixture", name)
}

// EquilibriumDistribution returns the Boltzmann distribution of n [1/m³]
// molecules of species mol over its vibrational levels at temperature T [K].
func (m *Mixture) EquilibriumDistribution(T, n float64, mol kappasweep.Molecule) ([]float64, error) {
	if !(T > 0) {
		return nil, fmt.Errorf("kinetic: temperature must be positive, got %g", T)
	}
	if n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("kinetic: invalid number density %g", n)
	}
	mm, err := m.molecule(mol.Name())
	if err != nil {
		return nil, err
	}
	key := levelKey{molecule: mm.Name(), t: T}
	var frac []float64
	if v, ok := m.distributions.Get(key); ok {
		frac = v.([]float64)
	} else {
		frac = make([]float64, mm.Levels())
		kT := kappasweep.KBoltzmann * T
		for i := range frac {
			frac[i] = math.Exp(-mm.Energy(i) / kT)
		}
		floats.Scale(1/floats.Sum(frac), frac)
		m.distributions.Add(key, frac)
	}
	o := make([]float64, len(frac))
	copy(o, frac)
	floats.Scale(n, o)
	return o, nil
}

// checkState returns an error if the given densities don't match the
// species in the mixture or are not valid.
func (m *Mixture) checkState(T float64, molecules [][]float64, atoms []float64) error {
	if !(T > 0) {
		return fmt.Errorf("kinetic: temperature must be positive, got %g", T)
	}
	if len(molecules) != len(m.molecules) {
		return fmt.Errorf("kinetic: have densities for %d molecular species but the mixture has %d",
			len(molecules), len(m.molecules))
	}
	if len(atoms) != len(m.atoms) {
		return fmt.Errorf("kinetic: have densities for %d atomic species but the mixture has %d",
			len(atoms), len(m.atoms))
	}
	for i, levels := range molecules {
		if len(levels) != m.molecules[i].Levels() {
			return fmt.Errorf("kinetic: have %d level densities for %s, which has %d levels",
				len(levels), m.molecules[i].Name(), m.molecules[i].Levels())
		}
		if err := checkDensities(levels); err != nil {
			return fmt.Errorf("kinetic: %s: %v", m.molecules[i].Name(), err)
		}
	}
	if err := checkDensities(atoms); err != nil {
		return fmt.Errorf("kinetic: atoms: %v", err)
	}
	return nil
}

func checkDensities(n []float64) error {
	for _, v := range n {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("invalid number density %g", v)
		}
	}
	return nil
}

// ComputePressure returns the pressure [Pa] of an ideal gas with the
// given densities.
func (m *Mixture) ComputePressure(T float64, molecules [][]float64, atoms []float64) (float64, error) {
	if err := m.checkState(T, molecules, atoms); err != nil {
		return 0, err
	}
	return totalDensity(molecules, atoms) * kappasweep.KBoltzmann * T, nil
}

func totalDensity(molecules [][]float64, atoms []float64) float64 {
	n := floats.Sum(atoms)
	for _, levels := range molecules {
		n += floats.Sum(levels)
	}
	return n
}

// NormalizedMolecularDensity returns the vibrational level populations of
// all molecular species, in order, divided by the total molecular
// density. If there are no molecules the result is all zeros.
func (m *Mixture) NormalizedMolecularDensity(molecules [][]float64) ([]float64, error) {
	if len(molecules) != len(m.molecules) {
		return nil, fmt.Errorf("kinetic: have densities for %d molecular species but the mixture has %d",
			len(molecules), len(m.molecules))
	}
	var o []float64
	for i, levels := range molecules {
		if len(levels) != m.molecules[i].Levels() {
			return nil, fmt.Errorf("kinetic: have %d level densities for %s, which has %d levels",
				len(levels), m.molecules[i].Name(), m.molecules[i].Levels())
		}
		if err := checkDensities(levels); err != nil {
			return nil, fmt.Errorf("kinetic: %s: %v", m.molecules[i].Name(), err)
		}
		o = append(o, levels...)
	}
	if sum := floats.Sum(o); sum > 0 {
		floats.Scale(1/sum, o)
	}
	return o, nil
}

// ThermalConductivity returns the thermal conductivity [W/m/K] from the
// last call to ComputeTransportCoefficients.
func (m *Mixture) ThermalConductivity() float64 { return m.thermalConductivity }

// ShearViscosity returns the shear viscosity [Pa s] from the
// last call to ComputeTransportCoefficients.
func (m *Mixture) ShearViscosity() float64 { return m.shearViscosity }

// BulkViscosity returns the bulk viscosity [Pa s] from the
// last call to ComputeTransportCoefficients.
func (m *Mixture) BulkViscosity() float64 { return m.bulkViscosity }
