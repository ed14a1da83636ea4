/*
 * mdplot.go, part of gomd
 *
 * Copyright 2025 Raul Mera <rmeraa{at}academicosDOTutaDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*
Package mdplot parses the comma-separated output of the state data
reporter and turns it into time-series plots. It only handles data
written by this library (or anything with the same quoted-header CSV
shape), not arbitrary CSV.
*/
package mdplot

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//StateData holds the parsed output of a state data reporter: the
//column names, unquoted, and one row of values per report.
type StateData struct {
	Columns []string
	rows    [][]float64
}

//Len returns the number of data rows.
func (D *StateData) Len() int { return len(D.rows) }

//Column returns the values of the first column whose name contains
//name, so "Potential" finds "Potential Energy (kJ/mole)".
func (D *StateData) Column(name string) ([]float64, error) {
	for j, c := range D.Columns {
		if !strings.Contains(c, name) {
			continue
		}
		vals := make([]float64, len(D.rows))
		for i, row := range D.rows {
			vals[i] = row[j]
		}
		return vals, nil
	}
	return nil, fmt.Errorf("goMD/mdplot: no column matching %q (have %v)", name, D.Columns)
}

//ParseStateData reads reporter output: a header line starting with
//'#' carrying quoted, comma-separated column names, then one line of
//comma-separated numbers per report.
func ParseStateData(r io.Reader) (*StateData, error) {
	D := new(StateData)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if D.Columns != nil {
				continue //only the first header counts
			}
			for _, c := range strings.Split(strings.TrimPrefix(line, "#"), ",") {
				D.Columns = append(D.Columns, strings.Trim(strings.TrimSpace(c), `"`))
			}
			continue
		}
		fields := strings.Split(line, ",")
		if D.Columns == nil {
			return nil, fmt.Errorf("goMD/mdplot: data before the header line")
		}
		if len(fields) != len(D.Columns) {
			return nil, fmt.Errorf("goMD/mdplot: row with %d fields, want %d: %q", len(fields), len(D.Columns), line)
		}
		row := make([]float64, len(fields))
		for j, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("goMD/mdplot: bad number %q in row %d", f, len(D.rows)+1)
			}
			row[j] = v
		}
		D.rows = append(D.rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if D.Columns == nil {
		return nil, fmt.Errorf("goMD/mdplot: no header found")
	}
	return D, nil
}

//ParseStateDataFile is ParseStateData on a file.
func ParseStateDataFile(name string) (*StateData, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseStateData(f)
}

//TimeSeries plots the column matching ycol against the one matching
//xcol and saves it as a PNG named plotname (the extension is added).
func TimeSeries(D *StateData, xcol, ycol, title, plotname string) error {
	xs, err := D.Column(xcol)
	if err != nil {
		return err
	}
	ys, err := D.Column(ycol)
	if err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = fullName(D, xcol)
	p.Y.Label.Text = fullName(D, ycol)
	p.Add(plotter.NewGrid())
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)
	return p.Save(14*vg.Centimeter, 10*vg.Centimeter, fmt.Sprintf("%s.png", plotname))
}

func fullName(D *StateData, name string) string {
	for _, c := range D.Columns {
		if strings.Contains(c, name) {
			return c
		}
	}
	return name
}

//EnergyAndTemperature makes the two usual diagnostic plots from a
//state data file: potential energy and temperature against the step.
func EnergyAndTemperature(dataname, prefix string) error {
	D, err := ParseStateDataFile(dataname)
	if err != nil {
		return err
	}
	if err := TimeSeries(D, "Step", "Potential", "Potential energy", prefix+"_energy"); err != nil {
		return err
	}
	return TimeSeries(D, "Step", "Temperature", "Temperature", prefix+"_temperature")
}
