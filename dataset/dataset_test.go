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

package dataset

import (
	"bytes"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/tealeg/xlsx"
)

const testTable = `T;pressure;atom_n;n0;n1;thermal_conductivity;shear_viscosity;bulk_viscosity
5;25331.25;0.9;1;0;0.001;2e-05;0
10;25331.25;0.9;0.75;0.25;0.002;3e-05;0
15;25331.25;0.9;0.5;0.5;0.003;4e-05;0
`

func testDataset(t *testing.T) *Dataset {
	d, err := Read(strings.NewReader(testTable))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestRead(t *testing.T) {
	d := testDataset(t)
	if d.Len() != 3 {
		t.Fatalf("have %d rows, want 3", d.Len())
	}
	want := Item{
		T:                   10,
		Pressure:            25331.25,
		AtomN:               0.9,
		N:                   []float64{0.75, 0.25},
		ThermalConductivity: 0.002,
		ShearViscosity:      3e-05,
		BulkViscosity:       0,
	}
	if diff := pretty.Diff(d.Items[1], want); len(diff) != 0 {
		t.Errorf("item differs: %v", diff)
	}
	if diff := pretty.Diff(d.Items[1].Input(), []float64{10, 0.9, 25331.25, 0.75, 0.25}); len(diff) != 0 {
		t.Errorf("input differs: %v", diff)
	}
	if diff := pretty.Diff(d.Items[1].Target(), []float64{0.002, 3e-05, 0}); len(diff) != 0 {
		t.Errorf("target differs: %v", diff)
	}
}

func TestReadErrors(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"short header": "T;pressure\n",
		"ragged":       "T;pressure;atom_n;a;b;c\n1;2;3;4;5\n",
		"not a number": "T;pressure;atom_n;a;b;c\n1;2;3;4;5;x\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(in)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "dataset")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "all.csv")
	if err := ioutil.WriteFile(path, []byte(testTable), 0644); err != nil {
		t.Fatal(err)
	}
	d, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(*d, *testDataset(t)); len(diff) != 0 {
		t.Errorf("loaded dataset differs: %v", diff)
	}
	if _, err := Load(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestStats(t *testing.T) {
	d := testDataset(t)
	s, err := d.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if s.Mean[0] != 10 || s.Std[0] != 5 {
		t.Errorf("T: have mean %g and std %g, want 10 and 5", s.Mean[0], s.Std[0])
	}
	if s.Std[1] != 0 {
		t.Errorf("pressure: have std %g, want 0", s.Std[1])
	}
	if s.Min[3] != 0.5 || s.Max[3] != 1 {
		t.Errorf("n0: have range [%g, %g], want [0.5, 1]", s.Min[3], s.Max[3])
	}

	one := &Dataset{Header: d.Header, Items: d.Items[:1]}
	if _, err := one.Stats(); err == nil {
		t.Error("expected an error for a single row")
	}
}

func TestNormalize(t *testing.T) {
	d := testDataset(t)
	s, err := d.Stats()
	if err != nil {
		t.Fatal(err)
	}
	n, err := d.Normalize(s)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{-1, 0, 1}
	for i, it := range n.Items {
		if math.Abs(it.T-want[i]) > 1e-12 {
			t.Errorf("row %d: have normalized T %g, want %g", i, it.T, want[i])
		}
		if it.Pressure != 0 || it.BulkViscosity != 0 {
			t.Errorf("row %d: constant columns should normalize to 0, have %g and %g",
				i, it.Pressure, it.BulkViscosity)
		}
	}
	if d.Items[0].T != 5 {
		t.Error("Normalize modified the original dataset")
	}

	if _, err := d.Normalize(&Stats{Mean: []float64{1}}); err == nil {
		t.Error("expected an error for mismatched statistics")
	}
}

func TestShuffle(t *testing.T) {
	a, b := testDataset(t), testDataset(t)
	a.Shuffle(1)
	b.Shuffle(1)
	if diff := pretty.Diff(a.Items, b.Items); len(diff) != 0 {
		t.Errorf("shuffles with the same seed differ: %v", diff)
	}
	var sum float64
	for _, it := range a.Items {
		sum += it.T
	}
	if sum != 30 {
		t.Errorf("shuffle lost rows: temperatures sum to %g", sum)
	}
}

func TestSplitFraction(t *testing.T) {
	d := testDataset(t)
	tests := []struct {
		p    float64
		a, b int
	}{
		{p: 0, a: 0, b: 3},
		{p: 0.5, a: 1, b: 2},
		{p: 0.7, a: 2, b: 1},
		{p: 1, a: 3, b: 0},
	}
	for _, test := range tests {
		a, b, err := d.SplitFraction(test.p)
		if err != nil {
			t.Fatal(err)
		}
		if a.Len() != test.a || b.Len() != test.b {
			t.Errorf("p=%g: have %d and %d rows, want %d and %d", test.p, a.Len(), b.Len(), test.a, test.b)
		}
	}
	for _, p := range []float64{-0.1, 1.1, math.NaN()} {
		if _, _, err := d.SplitFraction(p); err == nil {
			t.Errorf("p=%g: expected an error", p)
		}
	}
}

func TestColumn(t *testing.T) {
	d := testDataset(t)
	c, err := d.Column("thermal_conductivity")
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Diff(c, []float64{0.001, 0.002, 0.003}); len(diff) != 0 {
		t.Errorf("column differs: %v", diff)
	}
	if _, err := d.Column("density"); err == nil {
		t.Error("expected an error for a missing column")
	}
}

func TestSummaryTable(t *testing.T) {
	d := testDataset(t)
	s, err := d.Stats()
	if err != nil {
		t.Fatal(err)
	}
	tab := d.SummaryTable(s)
	if len(tab) != 9 {
		t.Fatalf("have %d rows, want 9", len(tab))
	}
	if tab[1][0] != "T (K)" || tab[1][1] != "10" || tab[1][2] != "5" {
		t.Errorf("unexpected T row %v", tab[1])
	}
	if tab[3][0] != "atom_n" {
		t.Errorf("dimensionless column should have no unit: %s", tab[3][0])
	}
	if !strings.HasPrefix(tab[2][0], "pressure (") {
		t.Errorf("pressure column should have a unit: %s", tab[2][0])
	}

	var buf bytes.Buffer
	if _, err := tab.Tabbed(&buf); err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimSpace(buf.String()), "\n"); len(lines) != 9 {
		t.Errorf("have %d tabbed lines, want 9", len(lines))
	}

	dir, err := ioutil.TempDir("", "dataset")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "summary.xlsx")
	if err := tab.WriteXLSX(path, "all"); err != nil {
		t.Fatal(err)
	}
	f, err := xlsx.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	sheet, ok := f.Sheet["all"]
	if !ok {
		t.Fatal("missing sheet")
	}
	if v := sheet.Cell(1, 0).Value; v != "T (K)" {
		t.Errorf("have cell value %q, want %q", v, "T (K)")
	}
}
