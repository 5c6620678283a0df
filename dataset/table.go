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
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ctessum/unit"
	"github.com/tealeg/xlsx"
)

// columnDims gives the dimensions of the named columns. Columns that
// aren't listed are dimensionless.
var columnDims = map[string]unit.Dimensions{
	"T":        unit.Kelvin,
	"pressure": unit.Pascal,
	"thermal_conductivity": {
		unit.MassDim:        1,
		unit.LengthDim:      1,
		unit.TimeDim:        -3,
		unit.TemperatureDim: -1,
	},
	"shear_viscosity": {unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -1},
	"bulk_viscosity":  {unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -1},
}

// A Table holds a text representation of dataset statistics.
type Table [][]string

// SummaryTable returns a table with one row per column of d, giving
// the column name and dimensions and the statistics in s.
func (d *Dataset) SummaryTable(s *Stats) Table {
	t := make(Table, len(d.Header)+1)
	t[0] = []string{"Column", "Mean", "Std", "Min", "Max"}
	for i, name := range d.Header {
		if dims, ok := columnDims[name]; ok {
			name += fmt.Sprintf(" (%s)", dims.String())
		}
		t[i+1] = []string{
			name,
			fmt.Sprintf("%g", s.Mean[i]),
			fmt.Sprintf("%g", s.Std[i]),
			fmt.Sprintf("%g", s.Min[i]),
			fmt.Sprintf("%g", s.Max[i]),
		}
	}
	return t
}

// Tabbed creates a tab-separated table.
func (t Table) Tabbed(w io.Writer) (n int, err error) {
	ww := new(tabwriter.Writer)
	ww.Init(w, 0, 2, 0, '\t', 0)
	var nn int
	for _, l := range t {
		for _, r := range l {
			nn, err = fmt.Fprint(ww, r+"\t")
			if err != nil {
				return
			}
			n += nn
		}
		nn, err = fmt.Fprint(ww, "\n")
		if err != nil {
			return
		}
		n += nn
	}
	err = ww.Flush()
	return
}

// WriteXLSX saves the table to a Microsoft Excel file at path, in a
// sheet with the given name.
func (t Table) WriteXLSX(path, sheet string) error {
	f := xlsx.NewFile()
	s, err := f.AddSheet(sheet)
	if err != nil {
		return fmt.Errorf("dataset: creating xlsx sheet: %v", err)
	}
	for _, l := range t {
		row := s.AddRow()
		for _, v := range l {
			row.AddCell().Value = v
		}
	}
	if err := f.Save(path); err != nil {
		return fmt.Errorf("dataset: saving xlsx file: %v", err)
	}
	return nil
}
