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

import "fmt"

// physical constants
const (
	planck = 6.62606896e-34 // [J s]
	light  = 299792458.     // speed of light [m/s]
)

// Atom is an atomic species.
type Atom struct {
	name string
	Particle
}

// NewAtom returns the atomic species with the given name.
func NewAtom(name string, particles map[string]Particle) (*Atom, error) {
	p, ok := particles[name]
	if !ok {
		return nil, fmt.Errorf("kinetic: no particle named '%s'", name)
	}
	if p.Kind != "atom" {
		return nil, fmt.Errorf("kinetic: particle '%s' is a %s, not an atom", name, p.Kind)
	}
	return &Atom{name: name, Particle: p}, nil
}

// Name returns the name of the species.
func (a *Atom) Name() string { return a.name }

// Molecule is a diatomic molecular species with anharmonic vibrational
// levels. It fulfils the github.com/spatialmodel/kappasweep.Molecule
// interface.
type Molecule struct {
	name string
	Particle

	// energies of the vibrational levels relative to the ground level [J].
	energies []float64
}

// NewMolecule returns the molecular species with the given name.
// Vibrational levels are those of an anharmonic oscillator,
//  e(i) = hc·[ωe·(i+½) − ωe·xe·(i+½)²] − e(0),
// up to but not including the first level at or above the dissociation
// energy.
func NewMolecule(name string, particles map[string]Particle) (*Molecule, error) {
	p, ok := particles[name]
	if !ok {
		return nil, fmt.Errorf("kinetic: no particle named '%s'", name)
	}
	if p.Kind != "molecule" {
		return nil, fmt.Errorf("kinetic: particle '%s' is a %s, not a molecule", name, p.Kind)
	}
	if !(p.Vibration.Frequency > 0) || p.Vibration.Anharmonicity < 0 {
		return nil, fmt.Errorf("kinetic: molecule '%s' has invalid vibrational constants", name)
	}
	if !(p.DissociationEnergy > 0) {
		return nil, fmt.Errorf("kinetic: molecule '%s' has invalid dissociation energy", name)
	}
	m := &Molecule{name: name, Particle: p}
	e0 := m.levelEnergy(0)
	for i := 0; ; i++ {
		e := m.levelEnergy(i) - e0
		if e >= p.DissociationEnergy || (i > 0 && e <= m.energies[i-1]) {
			break
		}
		m.energies = append(m.energies, e)
	}
	return m, nil
}

func (m *Molecule) levelEnergy(i int) float64 {
	x := float64(i) + 0.5
	return planck * light * (m.Vibration.Frequency*x - m.Vibration.Anharmonicity*x*x)
}

// Name returns the name of the species.
func (m *Molecule) Name() string { return m.name }

// Levels returns the number of vibrational levels.
func (m *Molecule) Levels() int { return len(m.energies) }

// Energy returns the energy of vibrational level i relative to the
// ground level [J].
func (m *Molecule) Energy(i int) float64 { return m.energies[i] }

// internalHeatCapacity returns the rotational heat capacity per
// particle in units of the Boltzmann constant.
func (m *Molecule) internalHeatCapacity() float64 {
	return float64(m.RotationalDegrees) / 2
}
