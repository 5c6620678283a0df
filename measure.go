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

package kappasweep

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// MeasurementResult holds the results recorded for one grid point.
type MeasurementResult struct {
	Temperature float64 // [K]
	Pressure    float64 // pressure computed by the mixture model [Pa]

	// AtomDensity is the atomic mole fraction, 1 minus the molecular
	// mole fraction of the grid point.
	AtomDensity float64

	// MoleculeDensities are the normalized vibrational level populations.
	MoleculeDensities []float64

	ThermalConductivity float64 // [W/m/K]
	ShearViscosity      float64 // [Pa s]
	BulkViscosity       float64 // [Pa s]
}

// Outcome is the result of a sweep.
type Outcome struct {
	// Points is the number of grid points that were measured and written.
	Points int

	// Err is the error that aborted the sweep, if any.
	Err error
}

// Aborted returns whether the sweep ended early because of an error.
func (o Outcome) Aborted() bool { return o.Err != nil }

// Driver runs a sweep of a Mixture over a Grid.
type Driver struct {
	Mixture  Mixture
	Molecule Molecule
	Output   *Outputter
	Grid     Grid

	// Mode, Collision and Relaxation are passed through to
	// Mixture.ComputeTransportCoefficients.
	Mode       float64
	Collision  CollisionModel
	Relaxation float64

	Log logrus.FieldLogger
}

func (d *Driver) log() logrus.FieldLogger {
	if d.Log == nil {
		return logrus.StandardLogger()
	}
	return d.Log
}

// Measure evaluates the mixture at grid point p.
func (d *Driver) Measure(p GridPoint) (MeasurementResult, error) {
	r := MeasurementResult{Temperature: p.Temperature}
	if !(p.Temperature > 0) {
		return r, fmt.Errorf("kappasweep: temperature must be positive, got %g", p.Temperature)
	}
	nTotal := p.Pressure / (KBoltzmann * p.Temperature)

	mol, err := d.Mixture.EquilibriumDistribution(p.Temperature, p.Fraction*nTotal, d.Molecule)
	if err != nil {
		return r, err
	}
	molecules := [][]float64{mol}
	atoms := []float64{(1 - p.Fraction) * nTotal}

	if err = d.Mixture.ComputeTransportCoefficients(p.Temperature, molecules, atoms,
		d.Mode, d.Collision, d.Relaxation); err != nil {
		return r, err
	}
	r.ThermalConductivity = d.Mixture.ThermalConductivity()
	r.ShearViscosity = d.Mixture.ShearViscosity()
	r.BulkViscosity = d.Mixture.BulkViscosity()
	if r.Pressure, err = d.Mixture.ComputePressure(p.Temperature, molecules, atoms); err != nil {
		return r, err
	}

	if r.MoleculeDensities, err = d.Mixture.NormalizedMolecularDensity(molecules); err != nil {
		return r, err
	}
	r.AtomDensity = 1 - p.Fraction
	return r, nil
}

// Run sweeps the grid, writing every result to the global table,
// the table for its pressure and the table for its pressure and
// mole fraction. The first error aborts the sweep; tables that were
// already written are left in place.
func (d *Driver) Run() Outcome {
	start := time.Now()
	log := d.log()
	log.WithFields(logrus.Fields{
		"dir":      d.Output.Dir,
		"molecule": d.Molecule.Name(),
		"model":    d.Collision.String(),
	}).Info("starting measurements")

	s := &sweep{d: d, log: log}
	err := s.run()
	if err != nil {
		log.WithError(err).WithField("points", s.points).Error("measurements aborted")
		return Outcome{Points: s.points, Err: err}
	}
	log.WithFields(logrus.Fields{
		"points":   s.points,
		"duration": time.Since(start),
	}).Info("end of measurements")
	return Outcome{Points: s.points}
}

// sweep is the GridVisitor that writes measurement results to the
// tables of each scope.
type sweep struct {
	d   *Driver
	log logrus.FieldLogger

	global, pressure, fraction *OutputFile
	points                     int
}

func (s *sweep) run() (err error) {
	if s.global, err = s.d.Output.Open(GlobalFileName); err != nil {
		return err
	}
	defer closeFile(s.global, &err)
	return s.d.Grid.Walk(s)
}

func (s *sweep) VisitPressure(p float64, inner func() error) (err error) {
	s.log.WithField("pressure", p).Info("measuring pressure")
	if s.pressure, err = s.d.Output.Open(PressureFileName(p)); err != nil {
		return err
	}
	defer closeFile(s.pressure, &err)
	return inner()
}

func (s *sweep) VisitFraction(p, x float64, inner func() error) (err error) {
	s.log.WithFields(logrus.Fields{"pressure": p, "fraction": x}).Info("measuring fraction")
	if s.fraction, err = s.d.Output.Open(FractionFileName(p, x)); err != nil {
		return err
	}
	defer closeFile(s.fraction, &err)
	return inner()
}

func (s *sweep) VisitPoint(p GridPoint) error {
	r, err := s.d.Measure(p)
	if err != nil {
		return &ModelComputationError{Point: p, Err: err}
	}
	for _, f := range []*OutputFile{s.global, s.pressure, s.fraction} {
		if err := f.Write(r); err != nil {
			return &ModelComputationError{Point: p, Err: err}
		}
	}
	s.points++
	return nil
}

// closeFile closes f, storing the error from Close in err if err
// does not already hold one.
func closeFile(f *OutputFile, err *error) {
	if cerr := f.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}
