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

import "fmt"

// ConfigurationError reports a missing or malformed configuration or
// particle/interaction descriptor source.
type ConfigurationError struct {
	Source string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("kappasweep: configuration %s: %v", e.Source, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ModelComputationError reports a failure of the mixture model while
// evaluating a grid point.
type ModelComputationError struct {
	Point GridPoint
	Err   error
}

func (e *ModelComputationError) Error() string {
	return fmt.Sprintf("kappasweep: model computation failed at pressure=%g Pa, fraction=%g, T=%g K: %v",
		e.Point.Pressure, e.Point.Fraction, e.Point.Temperature, e.Err)
}

func (e *ModelComputationError) Unwrap() error { return e.Err }

// DirectoryError reports that the output directory could not be created.
// There is nowhere to put results when this happens, so it is fatal.
type DirectoryError struct {
	Dir string
	Err error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("kappasweep: creating output directory %s: %v", e.Dir, e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }
