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
	"fmt"
)

// Range is a sequence of values Start, Start+Step, Start+2·Step, ...
// that continues while the value is strictly less than End.
// Values are accumulated by repeated addition of Step.
type Range struct {
	Start, Step, End float64
}

// NewRange returns a range from start to nominalEnd. End is set half a
// step above nominalEnd so that nominalEnd itself is included despite
// floating-point drift in the accumulated values.
func NewRange(start, step, nominalEnd float64) Range {
	return Range{Start: start, Step: step, End: nominalEnd + step/2}
}

// Empty returns whether the range contains no values, which is the case
// when Step is not positive or Start is not less than End.
func (r Range) Empty() bool {
	return !(r.Step > 0) || !(r.Start < r.End)
}

// Walk calls fn for every value in the range in increasing order.
// It stops and returns the first error returned by fn.
func (r Range) Walk(fn func(v float64) error) error {
	if r.Empty() {
		return nil
	}
	for v := r.Start; v < r.End; {
		if err := fn(v); err != nil {
			return err
		}
		next := v + r.Step
		if next == v {
			return fmt.Errorf("kappasweep: range step %g is too small to advance from %g", r.Step, v)
		}
		v = next
	}
	return nil
}

// Values returns all of the values in the range.
func (r Range) Values() []float64 {
	var o []float64
	r.Walk(func(v float64) error {
		o = append(o, v)
		return nil
	})
	return o
}

// Len returns the number of values in the range.
func (r Range) Len() int {
	var n int
	r.Walk(func(float64) error {
		n++
		return nil
	})
	return n
}

func (r Range) String() string {
	return fmt.Sprintf("[%g:%g:%g)", r.Start, r.Step, r.End)
}

// GridPoint is a single combination of operating conditions.
type GridPoint struct {
	Pressure    float64 // [Pa]
	Fraction    float64 // molecular mole fraction [-]
	Temperature float64 // [K]
}

// GridVisitor receives the scopes and points of a Grid walk.
// VisitPressure and VisitFraction must call inner exactly once to
// descend into the scope, and return its error.
type GridVisitor interface {
	VisitPressure(pressure float64, inner func() error) error
	VisitFraction(pressure, fraction float64, inner func() error) error
	VisitPoint(p GridPoint) error
}

// Grid is the three-dimensional set of operating conditions in a sweep.
// Points are visited pressure-major, then by mole fraction, with
// temperature varying fastest.
type Grid struct {
	Pressure, Fraction, Temperature Range

	// SinglePressure stops the walk after the first pressure value,
	// regardless of the extent of the Pressure range.
	SinglePressure bool
}

var errPressureDone = errors.New("kappasweep: pressure walk done")

// Walk walks the grid, calling v for every scope and point.
// It stops and returns the first error returned by v.
func (g Grid) Walk(v GridVisitor) error {
	err := g.Pressure.Walk(func(p float64) error {
		err := v.VisitPressure(p, func() error {
			return g.Fraction.Walk(func(x float64) error {
				return v.VisitFraction(p, x, func() error {
					return g.Temperature.Walk(func(t float64) error {
						return v.VisitPoint(GridPoint{Pressure: p, Fraction: x, Temperature: t})
					})
				})
			})
		})
		if err != nil {
			return err
		}
		if g.SinglePressure {
			return errPressureDone
		}
		return nil
	})
	if err == errPressureDone {
		return nil
	}
	return err
}

// Each calls fn for every point in the grid.
func (g Grid) Each(fn func(p GridPoint) error) error {
	return g.Walk(pointFunc(fn))
}

// Len returns the number of points in the grid.
func (g Grid) Len() int {
	var n int
	g.Each(func(GridPoint) error {
		n++
		return nil
	})
	return n
}

// pointFunc is a GridVisitor that only handles points.
type pointFunc func(p GridPoint) error

func (f pointFunc) VisitPressure(_ float64, inner func() error) error    { return inner() }
func (f pointFunc) VisitFraction(_, _ float64, inner func() error) error { return inner() }
func (f pointFunc) VisitPoint(p GridPoint) error                        { return f(p) }
