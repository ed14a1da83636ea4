/*
 * reporters.go, part of gomd
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

package simulate

import (
	"fmt"
	"io"
	"os"
	"strings"

	md "github.com/rmera/gomd"
	v3 "github.com/rmera/gomd/v3"
)

//State is a snapshot of the simulation handed to reporters.
type State struct {
	Step            int
	Time            float64 //ps
	PotentialEnergy float64 //kJ/mol
	KineticEnergy   float64 //kJ/mol
	Temperature     float64 //K
	Positions       *v3.Matrix
	Box             [3]float64 //nm, all zero if non-periodic
}

//Reporter receives simulation snapshots every Interval steps.
type Reporter interface {
	Interval() int
	Report(*State) error
	Close() error
}

//PDBReporter appends a MODEL to a PDB file at each report.
type PDBReporter struct {
	mol      *md.Molecule
	out      io.WriteCloser
	interval int
	models   int
}

//NewPDBReporter returns a PDBReporter writing to the file name given,
//every interval steps. mol provides the atom records.
func NewPDBReporter(name string, interval int, mol *md.Molecule) (*PDBReporter, error) {
	out, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	return &PDBReporter{mol: mol, out: out, interval: interval}, nil
}

func (P *PDBReporter) Interval() int { return P.interval }

func (P *PDBReporter) Report(st *State) error {
	P.models++
	return md.PDBModelWrite(P.out, P.models, st.Positions, P.mol, nil)
}

//Close terminates the file with an END record and closes it.
func (P *PDBReporter) Close() error {
	if P.out == nil {
		return nil
	}
	_, err := fmt.Fprint(P.out, "END\n")
	if err2 := P.out.Close(); err == nil {
		err = err2
	}
	P.out = nil
	return err
}

//StateDataReporter writes a comma-separated line of simulation data
//at each report, with a quoted header line first. The fields written
//are controlled by the exported booleans; the zero value plus
//NewStateDataReporter gives step, potential energy and temperature.
type StateDataReporter struct {
	Step            bool
	Time            bool
	PotentialEnergy bool
	KineticEnergy   bool
	TotalEnergy     bool
	Temperature     bool

	out      io.Writer
	interval int
	wrote    bool
}

//NewStateDataReporter returns a StateDataReporter writing to out
//every interval steps, reporting step, potential energy and
//temperature.
func NewStateDataReporter(out io.Writer, interval int) *StateDataReporter {
	return &StateDataReporter{
		Step:            true,
		PotentialEnergy: true,
		Temperature:     true,
		out:             out,
		interval:        interval,
	}
}

func (R *StateDataReporter) Interval() int { return R.interval }

func (R *StateDataReporter) fields(st *State) ([]string, []string) {
	var hd, vals []string
	if R.Step {
		hd = append(hd, `"Step"`)
		vals = append(vals, fmt.Sprintf("%d", st.Step))
	}
	if R.Time {
		hd = append(hd, `"Time (ps)"`)
		vals = append(vals, fmt.Sprintf("%.4f", st.Time))
	}
	if R.PotentialEnergy {
		hd = append(hd, `"Potential Energy (kJ/mole)"`)
		vals = append(vals, fmt.Sprintf("%.6f", st.PotentialEnergy))
	}
	if R.KineticEnergy {
		hd = append(hd, `"Kinetic Energy (kJ/mole)"`)
		vals = append(vals, fmt.Sprintf("%.6f", st.KineticEnergy))
	}
	if R.TotalEnergy {
		hd = append(hd, `"Total Energy (kJ/mole)"`)
		vals = append(vals, fmt.Sprintf("%.6f", st.PotentialEnergy+st.KineticEnergy))
	}
	if R.Temperature {
		hd = append(hd, `"Temperature (K)"`)
		vals = append(vals, fmt.Sprintf("%.6f", st.Temperature))
	}
	return hd, vals
}

func (R *StateDataReporter) Report(st *State) error {
	hd, vals := R.fields(st)
	if !R.wrote {
		if _, err := fmt.Fprintf(R.out, "#%s\n", strings.Join(hd, ",")); err != nil {
			return err
		}
		R.wrote = true
	}
	_, err := fmt.Fprintf(R.out, "%s\n", strings.Join(vals, ","))
	return err
}

//Close is a no-op: the writer is owned by the caller.
func (R *StateDataReporter) Close() error { return nil }
