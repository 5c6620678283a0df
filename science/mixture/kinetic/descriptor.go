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
	"os"
	"sort"
	"strings"

	"github.com/spatialmodel/kappasweep"
	"gopkg.in/yaml.v3"
)

const (
	// ParticleFile is the conventional name of the particle descriptor file.
	ParticleFile = "particles.yaml"

	// InteractionFile is the conventional name of the interaction
	// descriptor file.
	InteractionFile = "interaction.yaml"
)

// Particle describes a single atomic or molecular species.
type Particle struct {
	// Kind is either "atom" or "molecule".
	Kind string `yaml:"type"`

	// Mass is the particle mass [kg].
	Mass float64 `yaml:"mass"`

	// Diameter is the collision diameter [m], used when no interaction
	// descriptor is given for a pair of species.
	Diameter float64 `yaml:"diameter"`

	// Vibration holds the spectroscopic constants of a molecule.
	Vibration struct {
		Frequency     float64 `yaml:"frequency"`     // ωe [1/m]
		Anharmonicity float64 `yaml:"anharmonicity"` // ωe·xe [1/m]
	} `yaml:"vibration"`

	// DissociationEnergy is the dissociation energy of a molecule [J].
	DissociationEnergy float64 `yaml:"dissociation_energy"`

	// RotationalDegrees is the number of rotational degrees of freedom.
	RotationalDegrees int `yaml:"rotational_degrees"`

	// RotationalRelaxation is the number of collisions needed to
	// equilibrate rotational energy.
	RotationalRelaxation float64 `yaml:"rotational_relaxation"`
}

// Interaction holds the collision parameters of a pair of species.
type Interaction struct {
	// Diameter is the collision diameter [m] at ReferenceTemperature.
	Diameter float64 `yaml:"diameter"`

	// ReferenceTemperature [K] for Diameter.
	ReferenceTemperature float64 `yaml:"reference_temperature"`

	// Omega is the exponent of the viscosity-temperature relation
	// of the variable soft sphere model.
	Omega float64 `yaml:"omega"`
}

// PairKey returns the key identifying the interaction between species
// a and b. The order of a and b does not matter.
func PairKey(a, b string) string {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if b < a {
		a, b = b, a
	}
	return a + " + " + b
}

// LoadParticles reads particle descriptors from the YAML file at path.
// The file maps species names to particles.
func LoadParticles(path string) (map[string]Particle, error) {
	o := make(map[string]Particle)
	if err := decodeFile(path, &o); err != nil {
		return nil, err
	}
	for name, p := range o {
		if err := p.check(name); err != nil {
			return nil, &kappasweep.ConfigurationError{Source: path, Err: err}
		}
	}
	return o, nil
}

func (p Particle) check(name string) error {
	switch p.Kind {
	case "atom", "molecule":
	default:
		return fmt.Errorf("particle %s: type must be 'atom' or 'molecule', got '%s'", name, p.Kind)
	}
	if !(p.Mass > 0) {
		return fmt.Errorf("particle %s: mass must be positive", name)
	}
	if !(p.Diameter > 0) {
		return fmt.Errorf("particle %s: diameter must be positive", name)
	}
	return nil
}

// LoadInteractions reads interaction descriptors from the YAML file at
// path. The file maps pairs written as "A + B" to interactions.
func LoadInteractions(path string) (map[string]Interaction, error) {
	raw := make(map[string]Interaction)
	if err := decodeFile(path, &raw); err != nil {
		return nil, err
	}
	o := make(map[string]Interaction, len(raw))
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts := strings.Split(k, "+")
		if len(parts) != 2 {
			return nil, &kappasweep.ConfigurationError{Source: path,
				Err: fmt.Errorf("interaction '%s' must be written as 'A + B'", k)}
		}
		in := raw[k]
		if !(in.Diameter > 0) {
			return nil, &kappasweep.ConfigurationError{Source: path,
				Err: fmt.Errorf("interaction '%s': diameter must be positive", k)}
		}
		key := PairKey(parts[0], parts[1])
		if _, ok := o[key]; ok {
			return nil, &kappasweep.ConfigurationError{Source: path,
				Err: fmt.Errorf("interaction '%s' is given more than once", key)}
		}
		o[key] = in
	}
	return o, nil
}

func decodeFile(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return &kappasweep.ConfigurationError{Source: path, Err: err}
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return &kappasweep.ConfigurationError{Source: path, Err: fmt.Errorf("kinetic: decoding: %w", err)}
	}
	return nil
}
