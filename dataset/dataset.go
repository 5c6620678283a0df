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

// Package dataset reads sweep result tables back and prepares them for
// fitting surrogate models: it computes column statistics, normalizes,
// shuffles and splits the rows.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strconv"

	"github.com/spatialmodel/kappasweep"
	"gonum.org/v1/gonum/stat"
)

// leading and trailing are the numbers of columns before and after
// the molecular density columns.
const (
	leading  = 3
	trailing = 3
)

// Item is one row of a result table.
type Item struct {
	T        float64 // [K]
	Pressure float64 // [Pa]
	AtomN    float64

	// N holds the molecular density columns.
	N []float64

	ThermalConductivity float64 // [W/m/K]
	ShearViscosity      float64 // [Pa s]
	BulkViscosity       float64 // [Pa s]
}

// Values returns the fields of the item in table column order.
func (it Item) Values() []float64 {
	o := make([]float64, 0, len(it.N)+leading+trailing)
	o = append(o, it.T, it.Pressure, it.AtomN)
	o = append(o, it.N...)
	return append(o, it.ThermalConductivity, it.ShearViscosity, it.BulkViscosity)
}

// Input returns the model input variables of the item: temperature,
// atomic fraction, pressure and the molecular densities.
func (it Item) Input() []float64 {
	o := make([]float64, 0, len(it.N)+3)
	o = append(o, it.T, it.AtomN, it.Pressure)
	return append(o, it.N...)
}

// Target returns the transport coefficients of the item.
func (it Item) Target() []float64 {
	return []float64{it.ThermalConductivity, it.ShearViscosity, it.BulkViscosity}
}

func itemFromValues(v []float64) Item {
	n := len(v)
	it := Item{
		T:                   v[0],
		Pressure:            v[1],
		AtomN:               v[2],
		ThermalConductivity: v[n-3],
		ShearViscosity:      v[n-2],
		BulkViscosity:       v[n-1],
	}
	it.N = append([]float64(nil), v[leading:n-trailing]...)
	return it
}

// Dataset holds the rows of a result table.
type Dataset struct {
	// Header holds the column names.
	Header []string

	Items []Item
}

// Load reads the result table at path.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %v", err)
	}
	defer f.Close()
	d, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("dataset: reading %s: %v", path, err)
	}
	return d, nil
}

// Read reads a semicolon-delimited result table from r. The first line
// must be the header.
func Read(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = kappasweep.Delimiter
	cr.ReuseRecord = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("dataset: missing header")
	} else if err != nil {
		return nil, fmt.Errorf("dataset: %v", err)
	}
	if len(header) < leading+trailing {
		return nil, fmt.Errorf("dataset: header has %d columns; need at least %d", len(header), leading+trailing)
	}
	d := &Dataset{Header: append([]string(nil), header...)}
	v := make([]float64, len(header))
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("dataset: %v", err)
		}
		for i, s := range rec {
			if v[i], err = strconv.ParseFloat(s, 64); err != nil {
				return nil, fmt.Errorf("dataset: line %d, column %s: %v", line, d.Header[i], err)
			}
		}
		d.Items = append(d.Items, itemFromValues(v))
	}
	return d, nil
}

// Len returns the number of rows in the dataset.
func (d *Dataset) Len() int { return len(d.Items) }

// Column returns the values of the column with the given name.
func (d *Dataset) Column(name string) ([]float64, error) {
	for i, h := range d.Header {
		if h == name {
			return d.column(i), nil
		}
	}
	return nil, fmt.Errorf("dataset: no column named '%s'", name)
}

func (d *Dataset) column(i int) []float64 {
	o := make([]float64, len(d.Items))
	for j, it := range d.Items {
		o[j] = it.Values()[i]
	}
	return o
}

// Stats holds per-column statistics of a dataset, in column order.
type Stats struct {
	Mean, Std, Min, Max []float64
}

// Stats calculates the mean, the sample standard deviation and the range
// of every column. At least two rows are required.
func (d *Dataset) Stats() (*Stats, error) {
	if d.Len() < 2 {
		return nil, fmt.Errorf("dataset: need at least 2 rows to calculate statistics, have %d", d.Len())
	}
	s := new(Stats)
	for i := range d.Header {
		c := d.column(i)
		mean, std := stat.MeanStdDev(c, nil)
		s.Mean = append(s.Mean, mean)
		s.Std = append(s.Std, std)
		min, max := math.Inf(1), math.Inf(-1)
		for _, v := range c {
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
		s.Min = append(s.Min, min)
		s.Max = append(s.Max, max)
	}
	return s, nil
}

// Normalize returns a copy of d where every value v has been replaced by
// (v - mean) / std. Columns with zero standard deviation are only
// centered.
func (d *Dataset) Normalize(s *Stats) (*Dataset, error) {
	if len(s.Mean) != len(d.Header) || len(s.Std) != len(d.Header) {
		return nil, fmt.Errorf("dataset: statistics have %d columns but the dataset has %d",
			len(s.Mean), len(d.Header))
	}
	o := &Dataset{Header: d.Header, Items: make([]Item, len(d.Items))}
	for j, it := range d.Items {
		v := it.Values()
		for i := range v {
			v[i] -= s.Mean[i]
			if s.Std[i] != 0 {
				v[i] /= s.Std[i]
			}
		}
		o.Items[j] = itemFromValues(v)
	}
	return o, nil
}

// Shuffle randomly reorders the rows of d using the given random seed.
func (d *Dataset) Shuffle(seed int64) {
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(d.Items), func(i, j int) {
		d.Items[i], d.Items[j] = d.Items[j], d.Items[i]
	})
}

// SplitIndex splits d into the rows before index i and the rows
// from i on.
func (d *Dataset) SplitIndex(i int) (*Dataset, *Dataset, error) {
	if i < 0 || i > d.Len() {
		return nil, nil, fmt.Errorf("dataset: split index %d out of range [0, %d]", i, d.Len())
	}
	a := &Dataset{Header: d.Header, Items: append([]Item(nil), d.Items[:i]...)}
	b := &Dataset{Header: d.Header, Items: append([]Item(nil), d.Items[i:]...)}
	return a, b, nil
}

// SplitFraction splits d so that the first returned dataset holds
// the fraction p of the rows, rounded down.
func (d *Dataset) SplitFraction(p float64) (*Dataset, *Dataset, error) {
	if !(p >= 0 && p <= 1) {
		return nil, nil, fmt.Errorf("dataset: split fraction must be in [0, 1], got %g", p)
	}
	return d.SplitIndex(int(float64(d.Len()) * p))
}
