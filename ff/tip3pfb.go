/*
 * tip3pfb.go, part of gomd
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

package ff

//The "amber14/tip3pfb" parameter set: the ForceBalance reparametrized
//TIP3P water. Water is normally simulated rigid (see the FlexibleWater
//option of CreateSystem); the bond and angle constants below only
//matter when that is turned on, and the equilibrium values are what
//the constraints reproduce.

//TIP3P-FB geometry and charges.
const (
	tip3pfbROH   = 0.101181082494 //nm
	tip3pfbTheta = 108.14844252   //degrees
	tip3pfbQO    = -0.848448690103
	tip3pfbQH    = 0.424224345052
)

func init() {
	Register(&ParamSet{
		Name: "amber14/tip3pfb",
		LJTypes: map[string]LJ{
			"OW": {0.317796456355, 0.652143528104},
			"HW": {0.0, 0.0},
		},
		BondTypes: map[string]BondParam{
			BondKey("OW", "HW"): {R0: tip3pfbROH, K: 462750.4},
		},
		AngleTypes: map[string]AngleParam{
			AngleKey("HW", "OW", "HW"): {Theta0: tip3pfbTheta, K: 460.24},
		},
		Residues: map[string]*Template{
			"HOH": {Name: "HOH",
				Atoms: []TemplateAtom{
					{"O", "OW", tip3pfbQO},
					{"H1", "HW", tip3pfbQH},
					{"H2", "HW", tip3pfbQH},
				},
				Bonds: [][2]string{{"O", "H1"}, {"O", "H2"}},
			},
		},
		Aliases: map[string]string{
			"WAT": "HOH", "TIP3": "HOH", "TIP": "HOH", "SOL": "HOH", "H2O": "HOH",
		},
	})
}
