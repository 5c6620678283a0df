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

// Package kappasweep sweeps a grid of gas pressures, molecular mole fractions
// and temperatures through a mixture model and records the resulting
// vibrational level populations and transport coefficients in
// semicolon-delimited tables.
//
// The sweep is organized as three nested ranges. Results are written to a
// global table, to one table per pressure and to one table per
// (pressure, mole fraction) pair, so that a partially completed sweep
// leaves readable files behind.
package kappasweep

import (
	"fmt"
	"strings"
)

// Version gives the version number.
const Version = "1.0.0"

// KBoltzmann is the Boltzmann constant [J/K].
const KBoltzmann = 1.3806504e-23

// Molecule is a molecular species known to a Mixture.
type Molecule interface {
	// Name returns the name of the species, e.g. "N2".
	Name() string

	// Levels returns the number of vibrational levels of the species.
	Levels() int
}

// Mixture is an interface for models of an atom/molecule gas mixture
// that can compute equilibrium level populations, pressure and
// transport coefficients for a given thermodynamic state.
//
// Molecule densities are passed as one slice of vibrational level
// populations [1/m³] per molecular species in the mixture, and atom
// densities as one value [1/m³] per atomic species.
type Mixture interface {
	// EquilibriumDistribution returns the Boltzmann distribution of
	// nMolecule [1/m³] molecules of species m over its vibrational
	// levels at temperature T [K].
	EquilibriumDistribution(T, nMolecule float64, m Molecule) ([]float64, error)

	// ComputeTransportCoefficients computes the transport coefficients
	// of the mixture for the given state. mode is the electron number
	// density, model selects the collision model and relaxation is the
	// relaxation parameter. The results are retrieved with
	// ThermalConductivity, ShearViscosity and BulkViscosity.
	ComputeTransportCoefficients(T float64, molecules [][]float64, atoms []float64,
		mode float64, model CollisionModel, relaxation float64) error

	// ComputePressure returns the pressure [Pa] of the mixture state.
	ComputePressure(T float64, molecules [][]float64, atoms []float64) (float64, error)

	// ThermalConductivity returns the most recently computed thermal
	// conductivity [W/m/K].
	ThermalConductivity() float64

	// ShearViscosity returns the most recently computed shear viscosity [Pa s].
	ShearViscosity() float64

	// BulkViscosity returns the most recently computed bulk viscosity [Pa s].
	BulkViscosity() float64

	// NormalizedMolecularDensity returns the molecular level populations
	// as fractions of the total molecular number density.
	NormalizedMolecularDensity(molecules [][]float64) ([]float64, error)
}

// CollisionModel selects the model used for the collision integrals
// in transport coefficient calculations.
type CollisionModel int

const (
	// RigidSphere is the rigid (hard) sphere model with a constant
	// collision diameter.
	RigidSphere CollisionModel = iota

	// VSS is the variable soft sphere model, where the collision diameter
	// decreases with temperature.
	VSS
)

var collisionModelNames = map[CollisionModel]string{
	RigidSphere: "rs",
	VSS:         "vss",
}

func (c CollisionModel) String() string {
	if s, ok := collisionModelNames[c]; ok {
		return s
	}
	return fmt.Sprintf("CollisionModel(%d)", int(c))
}

// ParseCollisionModel returns the collision model with the given name.
// Valid names are "rs" and "vss".
func ParseCollisionModel(name string) (CollisionModel, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for c, s := range collisionModelNames {
		if s == n {
			return c, nil
		}
	}
	return 0, fmt.Errorf("kappasweep: invalid collision model '%s'; valid options are 'rs' and 'vss'", name)
}
