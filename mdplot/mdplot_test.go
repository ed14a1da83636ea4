/*
 * mdplot_test.go, part of gomd
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

package mdplot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `#"Step","Potential Energy (kJ/mole)","Temperature (K)"
1000,-310.613013,188.142797
2000,-295.132914,251.870726
3000,-290.011451,279.402817
`

func TestParseStateData(t *testing.T) {
	D, err := ParseStateData(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	if len(D.Columns) != 3 {
		t.Fatalf("parsed %d columns, want 3: %v", len(D.Columns), D.Columns)
	}
	if D.Columns[1] != "Potential Energy (kJ/mole)" {
		t.Errorf("column 1 is %q", D.Columns[1])
	}
	if D.Len() != 3 {
		t.Fatalf("parsed %d rows, want 3", D.Len())
	}
	pe, err := D.Column("Potential")
	if err != nil {
		t.Fatal(err)
	}
	if pe[0] != -310.613013 || pe[2] != -290.011451 {
		t.Errorf("Potential column: %v", pe)
	}
	steps, err := D.Column("Step")
	if err != nil {
		t.Fatal(err)
	}
	if steps[1] != 2000 {
		t.Errorf("Step column: %v", steps)
	}
	if _, err := D.Column("Pressure"); err == nil {
		t.Error("Column found a column that is not there")
	}
}

func TestParseStateDataErrors(t *testing.T) {
	if _, err := ParseStateData(strings.NewReader("1,2,3\n")); err == nil {
		t.Error("accepted data with no header")
	}
	if _, err := ParseStateData(strings.NewReader("#\"A\",\"B\"\n1,2,3\n")); err == nil {
		t.Error("accepted a row with the wrong field count")
	}
	if _, err := ParseStateData(strings.NewReader("#\"A\"\nnope\n")); err == nil {
		t.Error("accepted a non-numeric field")
	}
	if _, err := ParseStateData(strings.NewReader("")); err == nil {
		t.Error("accepted empty input")
	}
}

func TestTimeSeries(t *testing.T) {
	D, err := ParseStateData(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	name := filepath.Join(t.TempDir(), "test_energy")
	if err := TimeSeries(D, "Step", "Potential", "Potential energy", name); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(name + ".png")
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() == 0 {
		t.Error("wrote an empty PNG")
	}
}
