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
	"math"
	"testing"
)

const p1 = 101325.

func referenceGrid() Grid {
	return Grid{
		Pressure:       NewRange(0.25*p1, 0.75*p1, 1.75*p1),
		Fraction:       NewRange(0.10, 0.40, 0.90),
		Temperature:    NewRange(5, 5, 10000),
		SinglePressure: true,
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		want []float64
	}{
		{name: "fraction", r: NewRange(0.1, 0.4, 0.9), want: []float64{0.1, 0.5, 0.9}},
		{name: "pressure", r: NewRange(0.25*p1, 0.75*p1, 1.75*p1), want: []float64{25331.25, 101325, 177318.75}},
		{name: "single", r: NewRange(3, 1, 3), want: []float64{3}},
		{name: "zero step", r: Range{Start: 0, Step: 0, End: 1}},
		{name: "negative step", r: Range{Start: 0, Step: -1, End: 1}},
		{name: "start at end", r: Range{Start: 1, Step: 1, End: 1}},
		{name: "start past end", r: Range{Start: 2, Step: 1, End: 1}},
		{name: "NaN step", r: Range{Start: 0, Step: math.NaN(), End: 1}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := test.r.Values()
			if len(got) != len(test.want) {
				t.Fatalf("have %v, want %v", got, test.want)
			}
			for i, v := range got {
				if math.Abs(v-test.want[i]) > 1e-9*math.Max(1, math.Abs(test.want[i])) {
					t.Errorf("value %d: have %g, want %g", i, v, test.want[i])
				}
			}
			if test.r.Empty() != (len(test.want) == 0) {
				t.Errorf("Empty() = %v for %v", test.r.Empty(), test.r)
			}
		})
	}
}

func TestRangeTemperatureLen(t *testing.T) {
	r := NewRange(5, 5, 10000)
	if n := r.Len(); n != 2000 {
		t.Errorf("have %d temperatures, want 2000", n)
	}
	v := r.Values()
	if v[0] != 5 || v[len(v)-1] != 10000 {
		t.Errorf("temperature range is [%g, %g], want [5, 10000]", v[0], v[len(v)-1])
	}
}

func TestRangeRestartable(t *testing.T) {
	r := NewRange(0.1, 0.4, 0.9)
	a, b := r.Values(), r.Values()
	if len(a) != len(b) {
		t.Fatalf("walks differ: %v, %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("walks differ at %d: %g != %g", i, a[i], b[i])
		}
	}
}

func TestRangeWalkError(t *testing.T) {
	stop := errors.New("stop")
	var n int
	err := NewRange(1, 1, 10).Walk(func(v float64) error {
		n++
		if v == 3 {
			return stop
		}
		return nil
	})
	if err != stop {
		t.Errorf("have error %v, want %v", err, stop)
	}
	if n != 3 {
		t.Errorf("fn called %d times, want 3", n)
	}
}

func TestRangeStepTooSmall(t *testing.T) {
	r := Range{Start: 1e20, Step: 1, End: 2e20}
	var n int
	err := r.Walk(func(float64) error {
		n++
		return nil
	})
	if err == nil {
		t.Error("expected an error for a step that doesn't advance")
	}
	if n != 1 {
		t.Errorf("fn called %d times, want 1", n)
	}
}

func TestGridOrder(t *testing.T) {
	g := Grid{
		Pressure:    NewRange(1, 1, 2),
		Fraction:    NewRange(0.25, 0.5, 0.75),
		Temperature: NewRange(10, 10, 30),
	}
	var got []GridPoint
	if err := g.Each(func(p GridPoint) error {
		got = append(got, p)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2*2*3 {
		t.Fatalf("have %d points, want 12", len(got))
	}
	want := GridPoint{Pressure: 1, Fraction: 0.25, Temperature: 10}
	if got[0] != want {
		t.Errorf("first point: have %+v, want %+v", got[0], want)
	}
	want = GridPoint{Pressure: 1, Fraction: 0.25, Temperature: 20}
	if got[1] != want {
		t.Errorf("temperature should vary fastest: have %+v, want %+v", got[1], want)
	}
	want = GridPoint{Pressure: 1, Fraction: 0.75, Temperature: 10}
	if got[3] != want {
		t.Errorf("fraction should vary next: have %+v, want %+v", got[3], want)
	}
	want = GridPoint{Pressure: 2, Fraction: 0.75, Temperature: 30}
	if got[11] != want {
		t.Errorf("last point: have %+v, want %+v", got[11], want)
	}
}

func TestGridSinglePressure(t *testing.T) {
	g := referenceGrid()
	pressures := make(map[float64]int)
	if err := g.Each(func(p GridPoint) error {
		pressures[p.Pressure]++
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if len(pressures) != 1 {
		t.Errorf("have %d pressures, want 1", len(pressures))
	}
	if n := pressures[25331.25]; n != 3*2000 {
		t.Errorf("have %d points at the first pressure, want 6000", n)
	}

	g.SinglePressure = false
	g.Temperature = NewRange(5, 5, 10)
	if n := g.Len(); n != 3*3*2 {
		t.Errorf("full grid: have %d points, want 18", n)
	}
}

func TestGridEmptyFraction(t *testing.T) {
	g := referenceGrid()
	g.Fraction = Range{Start: 1, Step: 1, End: 0}
	var scopes int
	err := g.Walk(visitorFuncs{
		pressure: func(_ float64, inner func() error) error {
			scopes++
			return inner()
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if scopes != 1 {
		t.Errorf("have %d pressure scopes, want 1", scopes)
	}
	if n := g.Len(); n != 0 {
		t.Errorf("have %d points, want 0", n)
	}
}

type visitorFuncs struct {
	pressure func(float64, func() error) error
}

func (v visitorFuncs) VisitPressure(p float64, inner func() error) error {
	return v.pressure(p, inner)
}
func (v visitorFuncs) VisitFraction(_, _ float64, inner func() error) error { return inner() }
func (v visitorFuncs) VisitPoint(GridPoint) error                          { return nil }
