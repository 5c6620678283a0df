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

package kappautil

import (
	"fmt"
	"math"
	"os"

	"github.com/Knetic/govaluate"
	"github.com/lnashier/viper"
	"github.com/spatialmodel/kappasweep/dataset"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// plotFuncs are the functions available in plot expressions.
var plotFuncs = map[string]govaluate.ExpressionFunction{
	"exp": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("kappautil: got %d arguments for function 'exp', but needs 1", len(arg))
		}
		return math.Exp(arg[0].(float64)), nil
	},
	"log": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("kappautil: got %d arguments for function 'log', but needs 1", len(arg))
		}
		return math.Log(arg[0].(float64)), nil
	},
	"sqrt": func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("kappautil: got %d arguments for function 'sqrt', but needs 1", len(arg))
		}
		return math.Sqrt(arg[0].(float64)), nil
	},
}

// EvaluateColumns evaluates expression for every row of d. Variables in
// the expression refer to columns of d.
func EvaluateColumns(d *dataset.Dataset, expression string) ([]float64, error) {
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(expression, plotFuncs)
	if err != nil {
		return nil, fmt.Errorf("kappautil: parsing expression '%s': %v", expression, err)
	}
	cols := make(map[string][]float64)
	for _, v := range expr.Vars() {
		if _, ok := cols[v]; ok {
			continue
		}
		c, err := d.Column(v)
		if err != nil {
			return nil, fmt.Errorf("kappautil: expression '%s': %v", expression, err)
		}
		cols[v] = c
	}
	o := make([]float64, d.Len())
	params := make(map[string]interface{}, len(cols))
	for i := range o {
		for name, c := range cols {
			params[name] = c[i]
		}
		r, err := expr.Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("kappautil: evaluating '%s' in row %d: %v", expression, i, err)
		}
		v, ok := r.(float64)
		if !ok {
			return nil, fmt.Errorf("kappautil: expression '%s' evaluates to %T, not a number", expression, r)
		}
		o[i] = v
	}
	return o, nil
}

// Plot creates a scatter plot of the Plot.Y expression against the Plot.X
// column of the configured result table and saves it to Plot.Output.
func Plot(cfg *viper.Viper) error {
	d, err := dataset.Load(datasetPath(cfg))
	if err != nil {
		return err
	}
	xName, yExpr := cfg.GetString("Plot.X"), cfg.GetString("Plot.Y")
	x, err := d.Column(xName)
	if err != nil {
		return err
	}
	y, err := EvaluateColumns(d, yExpr)
	if err != nil {
		return err
	}
	xy := make(plotter.XYs, 0, len(x))
	for i := range x {
		if math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			continue
		}
		xy = append(xy, struct{ X, Y float64 }{X: x[i], Y: y[i]})
	}

	p, err := plot.New()
	if err != nil {
		return err
	}
	p.X.Label.Text = xName
	p.Y.Label.Text = yExpr
	s, err := plotter.NewScatter(xy)
	if err != nil {
		return err
	}
	s.Radius = 0.75
	s.Shape = draw.CircleGlyph{}
	p.Add(s)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, os.ExpandEnv(cfg.GetString("Plot.Output"))); err != nil {
		return fmt.Errorf("kappautil: saving plot: %v", err)
	}
	return nil
}
