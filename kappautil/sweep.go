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

package kappautil

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/kappasweep"
)

// ManifestFile is the name of the file in the output directory that
// records how a sweep was configured.
const ManifestFile = "manifest.toml"

// Manifest records the configuration of a sweep.
type Manifest struct {
	Version        string
	StartedAt      time.Time
	DescriptorDir  string
	Molecule       string
	Atom           string
	CollisionModel string
	SpeciesSlots   int
	SinglePressure bool

	Pressure, Fraction, Temperature kappasweep.Range
}

// WriteManifest saves m to the ManifestFile in dir.
func WriteManifest(dir string, m *Manifest) error {
	f, err := os.Create(filepath.Join(dir, ManifestFile))
	if err != nil {
		return fmt.Errorf("kappautil: creating manifest: %v", err)
	}
	if err := toml.NewEncoder(f).Encode(m); err != nil {
		f.Close()
		return fmt.Errorf("kappautil: writing manifest: %v", err)
	}
	return f.Close()
}

// ReadManifest reads the ManifestFile in dir.
func ReadManifest(dir string) (*Manifest, error) {
	m := new(Manifest)
	if _, err := toml.DecodeFile(filepath.Join(dir, ManifestFile), m); err != nil {
		return nil, fmt.Errorf("kappautil: reading manifest: %v", err)
	}
	return m, nil
}

// Sweep runs the sweep described by cfg. Configuration problems are
// returned before any output is written. Otherwise the returned error is
// the error that aborted the sweep, if any.
func Sweep(cfg *viper.Viper, log *logrus.Logger) (kappasweep.Outcome, error) {
	grid, err := GridConfig(cfg)
	if err != nil {
		return kappasweep.Outcome{Err: err}, err
	}
	collision, err := kappasweep.ParseCollisionModel(cfg.GetString("CollisionModel"))
	if err != nil {
		err = &kappasweep.ConfigurationError{Source: "CollisionModel", Err: err}
		return kappasweep.Outcome{Err: err}, err
	}
	slots := cfg.GetInt("SpeciesSlots")
	if slots < 0 {
		err = &kappasweep.ConfigurationError{Source: "SpeciesSlots",
			Err: fmt.Errorf("must not be negative, got %d", slots)}
		return kappasweep.Outcome{Err: err}, err
	}
	mixture, molecule, err := MixtureConfig(cfg, log)
	if err != nil {
		return kappasweep.Outcome{Err: err}, err
	}
	if molecule.Levels() > slots {
		err = &kappasweep.ConfigurationError{Source: "SpeciesSlots",
			Err: fmt.Errorf("%s has %d levels, which don't fit in %d species slots",
				molecule.Name(), molecule.Levels(), slots)}
		return kappasweep.Outcome{Err: err}, err
	}
	if grid.Len() == 0 {
		log.Warn("the configured grid is empty; only table headers will be written")
	}

	out := kappasweep.NewOutputter(os.ExpandEnv(cfg.GetString("OutputDir")), slots)
	out.Log = log
	if err := out.EnsureDir(); err != nil {
		return kappasweep.Outcome{Err: err}, err
	}
	err = WriteManifest(out.Dir, &Manifest{
		Version:        kappasweep.Version,
		StartedAt:      time.Now().UTC(),
		DescriptorDir:  os.ExpandEnv(cfg.GetString("DescriptorDir")),
		Molecule:       molecule.Name(),
		Atom:           cfg.GetString("Atom"),
		CollisionModel: collision.String(),
		SpeciesSlots:   slots,
		SinglePressure: grid.SinglePressure,
		Pressure:       grid.Pressure,
		Fraction:       grid.Fraction,
		Temperature:    grid.Temperature,
	})
	if err != nil {
		return kappasweep.Outcome{Err: err}, err
	}

	d := &kappasweep.Driver{
		Mixture:   mixture,
		Molecule:  molecule,
		Output:    out,
		Grid:      grid,
		Collision: collision,
		Log:       log,
	}
	outcome := d.Run()
	return outcome, outcome.Err
}
