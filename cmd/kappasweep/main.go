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

// Command kappasweep is a command-line interface for sweeping gas mixture
// transport coefficients over a grid of operating conditions.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/kappasweep/kappautil"
)

func main() {
	if err := kappautil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
