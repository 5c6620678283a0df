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
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/kappasweep"
	"github.com/spatialmodel/kappasweep/science/mixture/kinetic"
	"github.com/spf13/cast"
)

// Logger returns a logger configured according to the LogLevel option.
func Logger(cfg *viper.Viper) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.GetString("LogLevel"))
	if err != nil {
		return nil, &kappasweep.ConfigurationError{Source: "LogLevel", Err: err}
	}
	log := logrus.New()
	log.Level = level
	log.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
	}
	return log, nil
}

// getFloat returns the named option as a float64. Values set through
// environment variables or configuration files may be strings.
func getFloat(cfg *viper.Viper, name string) (float64, error) {
	v, err := cast.ToFloat64E(cfg.Get(name))
	if err != nil {
		return 0, &kappasweep.ConfigurationError{Source: name, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &kappasweep.ConfigurationError{Source: name, Err: fmt.Errorf("invalid value %g", v)}
	}
	return v, nil
}

// getRange returns the range configured under the given prefix, e.g.
// "Pressure" for Pressure.Start, Pressure.Step and Pressure.End.
func getRange(cfg *viper.Viper, prefix string) (kappasweep.Range, error) {
	var v [3]float64
	for i, suffix := range []string{"Start", "Step", "End"} {
		var err error
		if v[i], err = getFloat(cfg, prefix+"."+suffix); err != nil {
			return kappasweep.Range{}, err
		}
	}
	return kappasweep.NewRange(v[0], v[1], v[2]), nil
}

// GridConfig returns the sweep grid described by cfg.
func GridConfig(cfg *viper.Viper) (kappasweep.Grid, error) {
	var g kappasweep.Grid
	var err error
	if g.Pressure, err = getRange(cfg, "Pressure"); err != nil {
		return g, err
	}
	if g.Fraction, err = getRange(cfg, "Fraction"); err != nil {
		return g, err
	}
	if g.Temperature, err = getRange(cfg, "Temperature"); err != nil {
		return g, err
	}
	if g.SinglePressure, err = cast.ToBoolE(cfg.Get("SinglePressure")); err != nil {
		return g, &kappasweep.ConfigurationError{Source: "SinglePressure", Err: err}
	}
	return g, nil
}

// descriptorPaths returns the locations of the particle and interaction
// descriptor files.
func descriptorPaths(cfg *viper.Viper) (particles, interactions string) {
	dir := os.ExpandEnv(cfg.GetString("DescriptorDir"))
	return filepath.Join(dir, os.ExpandEnv(cfg.GetString("ParticleFile"))),
		filepath.Join(dir, os.ExpandEnv(cfg.GetString("InteractionFile")))
}

// MixtureConfig loads the mixture described by cfg and returns it along
// with its molecular species.
func MixtureConfig(cfg *viper.Viper, log logrus.FieldLogger) (*kinetic.Mixture, *kinetic.Molecule, error) {
	particleFile, interactionFile := descriptorPaths(cfg)
	log.WithFields(logrus.Fields{
		"particles":    particleFile,
		"interactions": interactionFile,
	}).Info("loading descriptors")

	particles, err := kinetic.LoadParticles(particleFile)
	if err != nil {
		return nil, nil, err
	}
	interactions, err := kinetic.LoadInteractions(interactionFile)
	if err != nil {
		return nil, nil, err
	}
	mol, err := kinetic.NewMolecule(cfg.GetString("Molecule"), particles)
	if err != nil {
		return nil, nil, &kappasweep.ConfigurationError{Source: "Molecule", Err: err}
	}
	atom, err := kinetic.NewAtom(cfg.GetString("Atom"), particles)
	if err != nil {
		return nil, nil, &kappasweep.ConfigurationError{Source: "Atom", Err: err}
	}
	log.WithFields(logrus.Fields{
		"molecule": mol.Name(),
		"levels":   mol.Levels(),
		"atom":     atom.Name(),
	}).Info("creating mixture")
	m, err := kinetic.NewMixture([]*kinetic.Molecule{mol}, []*kinetic.Atom{atom}, interactions)
	if err != nil {
		return nil, nil, &kappasweep.ConfigurationError{Source: interactionFile, Err: err}
	}
	return m, mol, nil
}

// datasetPath returns the result table to summarize or plot.
func datasetPath(cfg *viper.Viper) string {
	if p := cfg.GetString("Dataset"); p != "" {
		return os.ExpandEnv(p)
	}
	return filepath.Join(os.ExpandEnv(cfg.GetString("OutputDir")), kappasweep.GlobalFileName+".csv")
}
