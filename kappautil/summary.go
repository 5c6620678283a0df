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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/kappasweep/dataset"
)

// Summary writes a table of column statistics of the configured result
// table to w, and to XLSXFile if it is set.
func Summary(cfg *viper.Viper, w io.Writer) error {
	path := datasetPath(cfg)
	d, err := dataset.Load(path)
	if err != nil {
		return err
	}
	s, err := d.Stats()
	if err != nil {
		return err
	}
	t := d.SummaryTable(s)
	if _, err := t.Tabbed(w); err != nil {
		return err
	}
	if xf := os.ExpandEnv(cfg.GetString("XLSXFile")); xf != "" {
		sheet := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return t.WriteXLSX(xf, sheet)
	}
	return nil
}
