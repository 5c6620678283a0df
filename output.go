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
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
)

const (
	// GlobalFileName is the name of the table holding every row of a sweep.
	GlobalFileName = "all"

	// DefaultSpeciesSlots is the number of molecular density columns
	// reserved in each table.
	DefaultSpeciesSlots = 48

	// Delimiter separates the fields of a table row.
	Delimiter = ';'

	fileExt = ".csv"
)

// Header returns the column names of a table with the given number of
// molecular density slots.
func Header(slots int) []string {
	h := make([]string, 0, Columns(slots))
	h = append(h, "T", "pressure", "atom_n")
	for i := 0; i < slots; i++ {
		h = append(h, "n"+strconv.Itoa(i))
	}
	return append(h, "thermal_conductivity", "shear_viscosity", "bulk_viscosity")
}

// Columns returns the number of columns in a table with the given
// number of molecular density slots.
func Columns(slots int) int { return slots + 6 }

// PressureFileName returns the name of the table for a single pressure.
func PressureFileName(pressure float64) string {
	return "measure-" + nameValue(pressure)
}

// FractionFileName returns the name of the table for a single
// pressure and mole fraction.
func FractionFileName(pressure, fraction float64) string {
	return "measure-" + nameValue(pressure) + "-" + nameValue(fraction)
}

func nameValue(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

func formatValue(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// Outputter creates result tables in an output directory.
type Outputter struct {
	// Dir is the output directory. It is created if it doesn't exist.
	Dir string

	// Slots is the number of molecular density columns in each table.
	Slots int

	// Fatal is called when the output directory can't be created.
	// The default logs the error and exits the program.
	Fatal func(error)

	Log logrus.FieldLogger

	dirReady bool
}

// NewOutputter returns an Outputter writing tables with the given number
// of molecular density slots into dir.
func NewOutputter(dir string, slots int) *Outputter {
	return &Outputter{Dir: dir, Slots: slots, Log: logrus.StandardLogger()}
}

func (o *Outputter) fatal(err error) {
	if o.Fatal != nil {
		o.Fatal(err)
		return
	}
	log := o.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log.WithError(err).Fatal("output directory is unavailable; terminating")
}

// EnsureDir creates the output directory if it doesn't already exist.
// Only the first successful call has any effect. If the directory can't
// be created, Fatal is called with a *DirectoryError.
func (o *Outputter) EnsureDir() error {
	if o.dirReady {
		return nil
	}
	if err := os.MkdirAll(o.Dir, os.ModePerm); err != nil {
		derr := &DirectoryError{Dir: o.Dir, Err: err}
		o.fatal(derr)
		return derr
	}
	o.dirReady = true
	return nil
}

// Open creates the table with the given name in the output directory and
// writes its header. An existing table with the same name is truncated.
func (o *Outputter) Open(name string) (*OutputFile, error) {
	if err := o.EnsureDir(); err != nil {
		return nil, err
	}
	if o.Slots < 0 {
		return nil, fmt.Errorf("kappasweep: invalid number of species slots %d", o.Slots)
	}
	path := filepath.Join(o.Dir, name+fileExt)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("kappasweep: creating output file: %v", err)
	}
	w := csv.NewWriter(f)
	w.Comma = Delimiter
	of := &OutputFile{
		path:   path,
		slots:  o.Slots,
		f:      f,
		w:      w,
		record: make([]string, 0, Columns(o.Slots)),
	}
	if err := of.writeRecord(Header(o.Slots)); err != nil {
		f.Close()
		return nil, err
	}
	return of, nil
}

// OutputFile is an open result table.
type OutputFile struct {
	path   string
	slots  int
	f      *os.File
	w      *csv.Writer
	rows   int
	record []string
}

// Path returns the location of the table.
func (f *OutputFile) Path() string { return f.path }

// Rows returns the number of rows written after the header.
func (f *OutputFile) Rows() int { return f.rows }

// Write appends r to the table and flushes it to the file.
// Molecular density slots that r doesn't populate are written as zero.
func (f *OutputFile) Write(r MeasurementResult) error {
	if f.f == nil {
		return fmt.Errorf("kappasweep: writing to closed file %s", f.path)
	}
	if len(r.MoleculeDensities) > f.slots {
		return fmt.Errorf("kappasweep: %d molecular densities don't fit in %d species slots of %s",
			len(r.MoleculeDensities), f.slots, f.path)
	}
	rec := f.record[:0]
	rec = append(rec, formatValue(r.Temperature), formatValue(r.Pressure), formatValue(r.AtomDensity))
	for i := 0; i < f.slots; i++ {
		var n float64
		if i < len(r.MoleculeDensities) {
			n = r.MoleculeDensities[i]
		}
		rec = append(rec, formatValue(n))
	}
	rec = append(rec, formatValue(r.ThermalConductivity), formatValue(r.ShearViscosity),
		formatValue(r.BulkViscosity))
	f.record = rec
	if err := f.writeRecord(rec); err != nil {
		return err
	}
	f.rows++
	return nil
}

func (f *OutputFile) writeRecord(rec []string) error {
	if err := f.w.Write(rec); err != nil {
		return fmt.Errorf("kappasweep: writing %s: %v", f.path, err)
	}
	f.w.Flush()
	if err := f.w.Error(); err != nil {
		return fmt.Errorf("kappasweep: writing %s: %v", f.path, err)
	}
	return nil
}

// Close closes the table. Calling Close more than once has no effect.
func (f *OutputFile) Close() error {
	if f == nil || f.f == nil {
		return nil
	}
	f.w.Flush()
	werr := f.w.Error()
	cerr := f.f.Close()
	f.f = nil
	if werr != nil {
		return fmt.Errorf("kappasweep: closing %s: %v", f.path, werr)
	}
	if cerr != nil {
		return fmt.Errorf("kappasweep: closing %s: %v", f.path, cerr)
	}
	return nil
}
