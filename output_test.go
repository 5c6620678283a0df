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
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "kappasweep")
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func readLines(t *testing.T, path string) []string {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	s := strings.TrimSuffix(string(b), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestHeader(t *testing.T) {
	h := Header(DefaultSpeciesSlots)
	if len(h) != 54 || Columns(DefaultSpeciesSlots) != 54 {
		t.Fatalf("have %d columns, want 54", len(h))
	}
	if h[0] != "T" || h[1] != "pressure" || h[2] != "atom_n" || h[3] != "n0" || h[50] != "n47" {
		t.Errorf("unexpected leading columns: %v", h[:4])
	}
	if h[51] != "thermal_conductivity" || h[52] != "shear_viscosity" || h[53] != "bulk_viscosity" {
		t.Errorf("unexpected trailing columns: %v", h[51:])
	}

	want := []string{"T", "pressure", "atom_n", "n0", "n1",
		"thermal_conductivity", "shear_viscosity", "bulk_viscosity"}
	if diff := pretty.Diff(Header(2), want); len(diff) != 0 {
		t.Errorf("header differs: %v", diff)
	}
}

func TestFileNames(t *testing.T) {
	tests := []struct{ have, want string }{
		{PressureFileName(25331.25), "measure-25331.250000"},
		{PressureFileName(101325), "measure-101325.000000"},
		{FractionFileName(25331.25, 0.1), "measure-25331.250000-0.100000"},
		{FractionFileName(25331.25, 0.5000000000000001), "measure-25331.250000-0.500000"},
	}
	for _, test := range tests {
		if test.have != test.want {
			t.Errorf("have %s, want %s", test.have, test.want)
		}
	}
}

func TestOutputFile(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	o := NewOutputter(filepath.Join(dir, "out"), 3)
	f, err := o.Open("test")
	if err != nil {
		t.Fatal(err)
	}
	if f.Path() != filepath.Join(dir, "out", "test.csv") {
		t.Errorf("unexpected path %s", f.Path())
	}

	// The header is on disk before any rows are written.
	lines := readLines(t, f.Path())
	if len(lines) != 1 || lines[0] != "T;pressure;atom_n;n0;n1;n2;thermal_conductivity;shear_viscosity;bulk_viscosity" {
		t.Fatalf("unexpected header: %q", lines)
	}

	r := MeasurementResult{
		Temperature:         5,
		Pressure:            25331.25,
		AtomDensity:         0.9,
		MoleculeDensities:   []float64{0.75, 0.25},
		ThermalConductivity: 1.5e-3,
		ShearViscosity:      2e-5,
		BulkViscosity:       0,
	}
	if err := f.Write(r); err != nil {
		t.Fatal(err)
	}

	// Rows are flushed as they are written.
	lines = readLines(t, f.Path())
	want := "5;25331.25;0.9;0.75;0.25;0;0.0015;2e-05;0"
	if len(lines) != 2 || lines[1] != want {
		t.Errorf("have rows %q, want %q", lines[1:], want)
	}
	if f.Rows() != 1 {
		t.Errorf("have %d rows, want 1", f.Rows())
	}

	r.MoleculeDensities = []float64{1, 2, 3, 4}
	if err := f.Write(r); err == nil {
		t.Error("expected an error for too many species")
	}
	if f.Rows() != 1 {
		t.Errorf("rejected row was counted")
	}

	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
	if err := f.Write(r); err == nil {
		t.Error("expected an error writing to a closed file")
	}
}

func TestOutputterExistingDir(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	for i := 0; i < 2; i++ {
		o := NewOutputter(dir, DefaultSpeciesSlots)
		o.Fatal = func(err error) { t.Fatalf("unexpected fatal error: %v", err) }
		f, err := o.Open("a")
		if err != nil {
			t.Fatal(err)
		}
		if err := f.Close(); err != nil {
			t.Fatal(err)
		}
	}
	// A reopened table is truncated to its header.
	if lines := readLines(t, filepath.Join(dir, "a.csv")); len(lines) != 1 {
		t.Errorf("have %d lines, want 1", len(lines))
	}
}

func TestOutputterDirectoryFatal(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	blocker := filepath.Join(dir, "file")
	if err := ioutil.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	o := NewOutputter(filepath.Join(blocker, "out"), DefaultSpeciesSlots)
	var fatal error
	o.Fatal = func(err error) { fatal = err }
	_, err := o.Open(GlobalFileName)
	if err == nil {
		t.Fatal("expected an error")
	}
	var derr *DirectoryError
	if !errors.As(fatal, &derr) {
		t.Fatalf("fatal hook received %v, want a *DirectoryError", fatal)
	}
	if derr.Dir != o.Dir {
		t.Errorf("have dir %s, want %s", derr.Dir, o.Dir)
	}
}
