/*
 * amber14.go, part of gomd
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

import (
	"fmt"
	"math"
)

//The "amber14-all" parameter set: the 20 standard amino acids plus
//the disulfide cysteine variant and monovalent ions. Everything is in
//goMD units: nm, kJ/mol, degrees in the tables. The Amber convention
//E=K(r-r0)^2 is folded into our E=0.5k(r-r0)^2 one, so the force
//constants below are 2x the published kcal values, converted.

//charges of the standard backbone, by protonation state of the
//residue.
const (
	bbN, bbH, bbC, bbO     = -0.4157, 0.2719, 0.5973, -0.5679 //neutral residues
	bbNm, bbHm, bbCm, bbOm = -0.5163, 0.2936, 0.5366, -0.5819 //anionic (ASP, GLU)
	bbNp, bbHp, bbCp, bbOp = -0.3479, 0.2747, 0.7341, -0.5894 //cationic (LYS, ARG)
)

//res builds a residue template and checks that its charges add up to
//the formal charge. The data below is hand-transcribed, so the check
//panics on a mismatch: a template that does not sum to an integer
//breaks the Ewald net-charge correction in subtle ways.
func res(name string, formal float64, atoms []TemplateAtom, bonds [][2]string) *Template {
	t := &Template{Name: name, Atoms: atoms, Bonds: bonds}
	if q := t.NetCharge(); math.Abs(q-formal) > 1e-4 {
		panic(fmt.Sprintf("ff: template %s sums to %.4f, want %.0f", name, q, formal))
	}
	return t
}

//bb returns the six backbone atoms shared by all non-proline
//residues.
func bb(nq, hq, caq, haq, cq, oq float64) []TemplateAtom {
	return []TemplateAtom{
		{"N", "N", nq}, {"H", "H", hq},
		{"CA", "CT", caq}, {"HA", "H1", haq},
		{"C", "C", cq}, {"O", "O", oq},
	}
}

var bbBonds = [][2]string{{"N", "H"}, {"N", "CA"}, {"CA", "HA"}, {"CA", "C"}, {"C", "O"}}

func sideBonds(pairs ...[2]string) [][2]string {
	b := make([][2]string, 0, len(bbBonds)+1+len(pairs))
	b = append(b, bbBonds...)
	b = append(b, [2]string{"CA", "CB"})
	b = append(b, pairs...)
	return b
}

func amber14Residues() map[string]*Template {
	r := map[string]*Template{}
	add := func(t *Template) { r[t.Name] = t }

	add(res("ALA", 0, append(bb(bbN, bbH, 0.0337, 0.0823, bbC, bbO),
		TemplateAtom{"CB", "CT", -0.1825},
		TemplateAtom{"HB1", "HC", 0.0603}, TemplateAtom{"HB2", "HC", 0.0603}, TemplateAtom{"HB3", "HC", 0.0603}),
		sideBonds([2]string{"CB", "HB1"}, [2]string{"CB", "HB2"}, [2]string{"CB", "HB3"})))

	add(res("GLY", 0, []TemplateAtom{
		{"N", "N", bbN}, {"H", "H", bbH},
		{"CA", "CT", -0.0252}, {"HA2", "H1", 0.0698}, {"HA3", "H1", 0.0698},
		{"C", "C", bbC}, {"O", "O", bbO}},
		[][2]string{{"N", "H"}, {"N", "CA"}, {"CA", "HA2"}, {"CA", "HA3"}, {"CA", "C"}, {"C", "O"}}))

	add(res("VAL", 0, append(bb(bbN, bbH, -0.0875, 0.0969, bbC, bbO),
		TemplateAtom{"CB", "CT", 0.2985}, TemplateAtom{"HB", "HC", -0.0297},
		TemplateAtom{"CG1", "CT", -0.3192},
		TemplateAtom{"HG11", "HC", 0.0791}, TemplateAtom{"HG12", "HC", 0.0791}, TemplateAtom{"HG13", "HC", 0.0791},
		TemplateAtom{"CG2", "CT", -0.3192},
		TemplateAtom{"HG21", "HC", 0.0791}, TemplateAtom{"HG22", "HC", 0.0791}, TemplateAtom{"HG23", "HC", 0.0791}),
		sideBonds([2]string{"CB", "HB"}, [2]string{"CB", "CG1"}, [2]string{"CB", "CG2"},
			[2]string{"CG1", "HG11"}, [2]string{"CG1", "HG12"}, [2]string{"CG1", "HG13"},
			[2]string{"CG2", "HG21"}, [2]string{"CG2", "HG22"}, [2]string{"CG2", "HG23"})))

	add(res("LEU", 0, append(bb(bbN, bbH, -0.0518, 0.0922, bbC, bbO),
		TemplateAtom{"CB", "CT", -0.1102}, TemplateAtom{"HB2", "HC", 0.0457}, TemplateAtom{"HB3", "HC", 0.0457},
		TemplateAtom{"CG", "CT", 0.3531}, TemplateAtom{"HG", "HC", -0.0361},
		TemplateAtom{"CD1", "CT", -0.4121},
		TemplateAtom{"HD11", "HC", 0.1000}, TemplateAtom{"HD12", "HC", 0.1000}, TemplateAtom{"HD13", "HC", 0.1000},
		TemplateAtom{"CD2", "CT", -0.4121},
		TemplateAtom{"HD21", "HC", 0.1000}, TemplateAtom{"HD22", "HC", 0.1000}, TemplateAtom{"HD23", "HC", 0.1000}),
		sideBonds([2]string{"CB", "HB2"}, [2]string{"CB", "HB3"}, [2]string{"CB", "CG"},
			[2]string{"CG", "HG"}, [2]string{"CG", "CD1"}, [2]string{"CG", "CD2"},
			[2]string{"CD1", "HD11"}, [2]string{"CD1", "HD12"}, [2]string{"CD1", "HD13"},
			[2]string{"CD2", "HD21"}, [2]string{"CD2", "HD22"}, [2]string{"CD2", "HD23"})))

	add(res("ILE", 0, append(bb(bbN, bbH, -0.0597, 0.0869, bbC, bbO),
		TemplateAtom{"CB", "CT", 0.1303}, TemplateAtom{"HB", "HC", 0.0187},
		TemplateAtom{"CG2", "CT", -0.3204},
		TemplateAtom{"HG21", "HC", 0.0882}, TemplateAtom{"HG22", "HC", 0.0882}, TemplateAtom{"HG23", "HC", 0.0882},
		TemplateAtom{"CG1", "CT", -0.0430},
		TemplateAtom{"HG12", "HC", 0.0236}, TemplateAtom{"HG13", "HC", 0.0236},
		TemplateAtom{"CD1", "CT", -0.0660},
		TemplateAtom{"HD11", "HC", 0.0186}, TemplateAtom{"HD12", "HC", 0.0186}, TemplateAtom{"HD13", "HC", 0.0186}),
		sideBonds([2]string{"CB", "HB"}, [2]string{"CB", "CG1"}, [2]string{"CB", "CG2"},
			[2]string{"CG2", "HG21"}, [2]string{"CG2", "HG22"}, [2]string{"CG2", "HG23"},
			[2]string{"CG1", "HG12"}, [2]string{"CG1", "HG13"}, [2]string{"CG1", "CD1"},
			[2]string{"CD1", "HD11"}, [2]string{"CD1", "HD12"}, [2]string{"CD1", "HD13"})))

	add(res("SER", 0, append(bb(bbN, bbH, -0.0249, 0.0843, bbC, bbO),
		TemplateAtom{"CB", "CT", 0.2117}, TemplateAtom{"HB2", "H1", 0.0352}, TemplateAtom{"HB3", "H1", 0.0352},
		TemplateAtom{"OG", "OH", -0.6546}, TemplateAtom{"HG", "HO", 0.4275}),
		sideBonds([2]string{"CB", "HB2"}, [2]string{"CB", "HB3"}, [2]string{"CB", "OG"}, [2]string{"OG", "HG"})))

	add(res("THR", 0, append(bb(bbN, bbH, -0.0389, 0.1007, bbC, bbO),
		TemplateAtom{"CB", "CT", 0.3654}, TemplateAtom{"HB", "H1", 0.0043},
		TemplateAtom{"CG2", "CT", -0.2438},
		TemplateAtom{"HG21", "HC", 0.0642}, TemplateAtom{"HG22", "HC", 0.0642}, TemplateAtom{"HG23", "HC", 0.0642},
		TemplateAtom{"OG1", "OH", -0.6761}, TemplateAtom{"HG1", "HO", 0.4102}),
		sideBonds([2]string{"CB", "HB"}, [2]string{"CB", "OG1"}, [2]string{"CB", "CG2"},
			[2]string{"OG1", "HG1"},
			[2]string{"CG2", "HG21"}, [2]string{"CG2", "HG22"}, [2]string{"CG2", "HG23"})))

	add(res("CYS", 0, append(bb(bbN, bbH, 0.0213, 0.1124, bbC, bbO),
		TemplateAtom{"CB", "CT", -0.1231}, TemplateAtom{"HB2", "H1", 0.1112}, TemplateAtom{"HB3", "H1", 0.1112},
		TemplateAtom{"SG", "SH", -0.3119}, TemplateAtom{"HG", "HS", 0.1933}),
		sideBonds([2]string{"CB", "HB2"}, [2]string{"CB", "HB3"}, [2]string{"CB", "SG"}, [2]string{"SG", "HG"})))

	//disulfide-bridged cysteine. The SG-SG bond itself is added when
	//the system is built, from the geometry.
	add(res("CYX", 0, append(bb(bbN, bbH, 0.0429, 0.0766, bbC, bbO),
		TemplateAtom{"CB", "CT", -0.0790}, TemplateAtom{"HB2", "H1", 0.0910}, TemplateAtom{"HB3", "H1", 0.0910},
		TemplateAtom{"SG", "S", -0.1081}),
		sideBonds([2]string{"CB", "HB2"}, [2]string{"CB", "HB3"}, [2]string{"CB", "SG"})))

	add(res("MET", 0, append(bb(bbN, bbH, -0.0237, 0.0880, bbC, bbO),
		TemplateAtom{"CB", "CT", 0.0342}, TemplateAtom{"HB2", "HC", 0.0241}, TemplateAtom{"HB3", "HC", 0.0241},
		TemplateAtom{"CG", "CT", 0.0018}, TemplateAtom{"HG2", "H1", 0.0440}, TemplateAtom{"HG3", "H1", 0.0440},
		TemplateAtom{"SD", "S", -0.2737},
		TemplateAtom{"CE", "CT", -0.0536},
		TemplateAtom{"HE1", "H1", 0.0684}, TemplateAtom{"HE2", "H1", 0.0684}, TemplateAtom{"HE3", "H1", 0.0684}),
		sideBonds([2]string{"CB", "HB2"}, [2]string{"CB", "HB3"}, [2]string{"CB", "CG"},
			[2]string{"CG", "HG2"}, [2]string{"CG", "HG3"}, [2]string{"CG", "SD"},
			[2]string{"SD", "CE"},
			[2]string{"CE", "HE1"}, [2]string{"CE", "HE2"}, [2]string{"CE", "HE3"})))

	add(res("PHE", 0, append(bb(bbN, bbH, -0.0024, 0.0978, bbC, bbO),
		TemplateAtom{"CB", "CT", -0.0343}, TemplateAtom{"HB2", "HC", 0.0295}, TemplateAtom{"HB3", "HC", 0.0295},
		TemplateAtom{"CG", "CA", 0.0118},
		TemplateAtom{"CD1", "CA", -0.1256}, TemplateAtom{"HD1", "HA", 0.1330},
		TemplateAtom{"CE1", "CA", -0.1704}, TemplateAtom{"HE1", "HA", 0.1430},
		TemplateAtom{"CZ", "CA", -0.1072}, TemplateAtom{"HZ", "HA", 0.1297},
		TemplateAtom{"CE2", "CA", -0.1704}, TemplateAtom{"HE2", "HA", 0.1430},
		TemplateAtom{"CD2", "CA", -0.1256}, TemplateAtom{"HD2", "HA", 0.1330}),
		sideBonds([2]string{"CB", "HB2"}, [2]string{"CB", "HB3"}, [2]string{"CB", "CG"},
			[2]string{"CG", "CD1"}, [2]string{"CD1", "HD1"}, [2]string{"CD1", "CE1"},
			[2]string{"CE1", "HE1"}, [2]string{"CE1", "CZ"}, [2]string{"CZ", "HZ"},
			[2]string{"CZ", "CE2"}, [2]string{"CE2", "HE2"}, [2]string{"CE2", "CD2"},
			[2]string{"CD2", "HD2"}, [2]string{"CD2", "CG"})))

	add(res("TYR", 0, append(bb(bbN, bbH, -0.0014, 0.0876, bbC, bbO),
		TemplateAtom{"CB", "CT", -0.0152}, TemplateAtom{"HB2", "HC", 0.0295}, TemplateAtom{"HB3", "HC", 0.0295},
		TemplateAtom{"CG", "CA", -0.0011},
		TemplateAtom{"CD1", "CA", -0.1906}, TemplateAtom{"HD1", "HA", 0.1699},
		TemplateAtom{"CE1", "CA", -0.2341}, TemplateAtom{"HE1", "HA", 0.1656},
		TemplateAtom{"CZ", "CA", 0.3226},
		TemplateAtom{"OH", "OH", -0.5579}, TemplateAtom{"HH", "HO", 0.3992},
		TemplateAtom{"CE2", "CA", -0.2341}, TemplateAtom{"HE2", "HA", 0.1656},
		TemplateAtom{"CD2", "CA", -0.1906}, TemplateAtom{"HD2", "HA", 0.1699}),
		sideBonds([2]string{"CB", "HB2"}, [2]string{"CB", "HB3"}, [2]string{"CB", "CG"},
			[2]string{"CG", "CD1"}, [2]string{"CD1", "HD1"}, [2]string{"CD1", "CE1"},
			[2]string{"CE1", "HE1"}, [2]string{"CE1", "CZ"}, [2]string{"CZ", "OH"},
			[2]string{"OH", "HH"}, [2]string{"CZ", "CE2"}, [2]string{"CE2", "HE2"},
			[2]string{"CE2", "CD2"}, [2]string{"CD2", "HD2"}, [2]string{"CD2", "CG"})))

	add(res("TRP", 0, append(bb(bbN, bbH, -0.0275, 0.1123, bbC, bbO),
		TemplateAtom{"CB", "CT", -0.0050}, TemplateAtom{"HB2", "HC", 0.0339}, TemplateAtom{"HB3", "HC", 0.0339},
		TemplateAtom{"CG", "CS", -0.1415},
		TemplateAtom{"CD1", "CW", -0.1638}, TemplateAtom{"HD1", "H4", 0.2062},
		TemplateAtom{"NE1", "NA", -0.3418}, TemplateAtom{"HE1", "H", 0.3412},
		TemplateAtom{"CE2", "CN", 0.1380},
		TemplateAtom{"CZ2", "CA", -0.2601}, TemplateAtom{"HZ2", "HA", 0.1572},
		TemplateAtom{"CH2", "CA", -0.1134}, TemplateAtom{"HH2", "HA", 0.1417},
		TemplateAtom{"CZ3", "CA", -0.1972}, TemplateAtom{"HZ3", "HA", 0.1447},
		TemplateAtom{"CE3", "CA", -0.2387}, TemplateAtom{"HE3", "HA", 0.1700},
		TemplateAtom{"CD2", "CB", 0.1243}),
		sideBonds([2]string{"CB", "HB2"}, [2]string{"CB", "HB3"}, [2]string{"CB", "CG"},
			[2]string{"CG", "CD1"}, [2]string{"CD1", "HD1"}, [2]string{"CD1", "NE1"},
			[2]string{"NE1", "HE1"}, [2]string{"NE1", "CE2"}, [2]string{"CE2", "CZ2"},
			[2]string{"CZ2", "HZ2"}, [2]string{"CZ2", "CH2"}, [2]string{"CH2", "HH2"},
			[2]string{"CH2", "CZ3"}, [2]string{"CZ3", "HZ3"}, [2]string{"CZ3", "CE3"},
			[2]string{"CE3", "HE3"}, [2]string{"CE3", "CD2"}, [2]string{"CD2", "CE2"},
			[2]string{"CD2", "CG"})))

	add(res("ASP", -1, append(bb(bbNm, bbHm, 0.0381, 0.0880, bbCm, bbOm),
		TemplateAtom{"CB", "CT", -0.0303}, TemplateAtom{"HB2", "HC", -0.0122}, TemplateAtom{"HB3", "HC", -0.0122},
		TemplateAtom{"CG", "C", 0.7994},
		TemplateAtom{"OD1", "O2", -0.8014}, TemplateAtom{"OD2", "O2", -0.8014}),
		sideBonds([2]string{"CB", "HB2"}, [2]string{"CB", "HB3"}, [2]string{"CB", "CG"},
			[2]string{"CG", "OD1"}, [2]string{"CG", "OD2"})))

	add(res("GLU", -1, append(bb(bbNm, bbHm, 0.0145, 0.0779, bbCm, bbOm),
		TemplateAtom{"CB", "CT", 0.0071}, TemplateAtom{"HB2", "HC", -0.0078}, TemplateAtom{"HB3", "HC", -0.0078},
		TemplateAtom{"CG", "CT", 0.1013}, TemplateAtom{"HG2", "HC", -0.0425}, TemplateAtom{"HG3", "HC", -0.0425},
		TemplateAtom{"CD", "C", 0.8054},
		TemplateAtom{"OE1", "O2", -0.8188}, TemplateAtom{"OE2", "O2", -0.8188}),
		sideBonds([2]string{"CB", "HB2"}, [2]string{"CB", "HB3"}, [2]string{"CB", "CG"},
			[2]string{"CG", "HG2"}, [2]string{"CG", "HG3"}, [2]string{"CG", "CD"},
			[2]string{"CD", "OE1"}, [2]string{"CD", "OE2"})))

	add(res("ASN", 0, append(bb(bbN, bbH, 0.0143, 0.1048, bbC, bbO),
		TemplateAtom{"CB", "CT", -0.2041}, TemplateAtom{"HB2", "HC", 0.0797}, TemplateAtom{"HB3", "HC", 0.0797},
		TemplateAtom{"CG", "C", 0.7130},
		TemplateAtom{"OD1", "O", -0.5931},
		TemplateAtom{"ND2", "N", -0.9191},
		TemplateAtom{"HD21", "H", 0.4196}, TemplateAtom{"HD22", "H", 0.4196}),
		sideBonds([2]string{"CB", "HB2"}, [2]string{"CB", "HB3"}, [2]string{"CB", "CG"},
			[2]string{"CG", "OD1"}, [2]string{"CG", "ND2"},
			[2]string{"ND2", "HD21"}, [2]string{"ND2", "HD22"})))

	add(res("GLN", 0, append(bb(bbN, bbH, -0.0031, 0.0850, bbC, bbO),
		TemplateAtom{"CB", "CT", -0.0036}, TemplateAtom{"HB2", "HC", 0.0171}, TemplateAtom{"HB3", "HC", 0.0171},
		TemplateAtom{"CG", "CT", -0.0645}, TemplateAtom{"HG2", "HC", 0.0352}, TemplateAtom{"HG3", "HC", 0.0352},
		TemplateAtom{"CD", "C", 0.6951},
		TemplateAtom{"OE1", "O", -0.6086},
		TemplateAtom{"NE2", "N", -0.9407},
		TemplateAtom{"HE21", "H", 0.4251}, TemplateAtom{"HE22", "H", 0.4251}),
		sideBonds([2]string{"CB", "HB2"}, [2]string{"CB", "HB3"}, [2]string{"CB", "CG"},
			[2]string{"CG", "HG2"}, [2]string{"CG", "HG3"}, [2]string{"CG", "CD"},
			[2]string{"CD", "OE1"}, [2]string{"CD", "NE2"},
			[2]string{"NE2", "HE21"}, [2]string{"NE2", "HE22"})))

	add(res("LYS", 1, append(bb(bbNp, bbHp, -0.2400, 0.1426, bbCp, bbOp),
		TemplateAtom{"CB", "CT", -0.0094}, TemplateAtom{"HB2", "HC", 0.0362}, TemplateAtom{"HB3", "HC", 0.0362},
		TemplateAtom{"CG", "CT", 0.0187}, TemplateAtom{"HG2", "HC", 0.0103}, TemplateAtom{"HG3", "HC", 0.0103},
		TemplateAtom{"CD", "CT", -0.0479}, TemplateAtom{"HD2", "HC", 0.0621}, TemplateAtom{"HD3", "HC", 0.0621},
		TemplateAtom{"CE", "CT", -0.0143}, TemplateAtom{"HE2", "HP", 0.1135}, TemplateAtom{"HE3", "HP", 0.1135},
		TemplateAtom{"NZ", "N3", -0.3854},
		TemplateAtom{"HZ1", "H", 0.3400}, TemplateAtom{"HZ2", "H", 0.3400}, TemplateAtom{"HZ3", "H", 0.3400}),
		sideBonds([2]string{"CB", "HB2"}, [2]string{"CB", "HB3"}, [2]string{"CB", "CG"},
			[2]string{"CG", "HG2"}, [2]string{"CG", "HG3"}, [2]string{"CG", "CD"},
			[2]string{"CD", "HD2"}, [2]string{"CD", "HD3"}, [2]string{"CD", "CE"},
			[2]string{"CE", "HE2"}, [2]string{"CE", "HE3"}, [2]string{"CE", "NZ"},
			[2]string{"NZ", "HZ1"}, [2]string{"NZ", "HZ2"}, [2]string{"NZ", "HZ3"})))

	add(res("ARG", 1, append(bb(bbNp, bbHp, -0.2637, 0.1560, bbCp, bbOp),
		TemplateAtom{"CB", "CT", -0.0007}, TemplateAtom{"HB2", "HC", 0.0327}, TemplateAtom{"HB3", "HC", 0.0327},
		TemplateAtom{"CG", "CT", 0.0390}, TemplateAtom{"HG2", "HC", 0.0285}, TemplateAtom{"HG3", "HC", 0.0285},
		TemplateAtom{"CD", "CT", 0.0486}, TemplateAtom{"HD2", "H1", 0.0687}, TemplateAtom{"HD3", "H1", 0.0687},
		TemplateAtom{"NE", "N2", -0.5295}, TemplateAtom{"HE", "H", 0.3456},
		TemplateAtom{"CZ", "CA", 0.8076},
		TemplateAtom{"NH1", "N2", -0.8627},
		TemplateAtom{"HH11", "H", 0.4478}, TemplateAtom{"HH12", "H", 0.4478},
		TemplateAtom{"NH2", "N2", -0.8627},
		TemplateAtom{"HH21", "H", 0.4478}, TemplateAtom{"HH22", "H", 0.4478}),
		sideBonds([2]string{"CB", "HB2"}, [2]string{"CB", "HB3"}, [2]string{"CB", "CG"},
			[2]string{"CG", "HG2"}, [2]string{"CG", "HG3"}, [2]string{"CG", "CD"},
			[2]string{"CD", "HD2"}, [2]string{"CD", "HD3"}, [2]string{"CD", "NE"},
			[2]string{"NE", "HE"}, [2]string{"NE", "CZ"},
			[2]string{"CZ", "NH1"}, [2]string{"NH1", "HH11"}, [2]string{"NH1", "HH12"},
			[2]string{"CZ", "NH2"}, [2]string{"NH2", "HH21"}, [2]string{"NH2", "HH22"})))

	//epsilon-protonated histidine, the default tautomer for plain
	//"HIS" in the input.
	add(res("HIE", 0, append(bb(bbN, bbH, -0.0581, 0.1360, bbC, bbO),
		TemplateAtom{"CB", "CT", -0.0074}, TemplateAtom{"HB2", "HC", 0.0367}, TemplateAtom{"HB3", "HC", 0.0367},
		TemplateAtom{"CG", "CC", 0.1868},
		TemplateAtom{"ND1", "NB", -0.5432},
		TemplateAtom{"CE1", "CR", 0.1635}, TemplateAtom{"HE1", "H5", 0.1435},
		TemplateAtom{"NE2", "NA", -0.2795}, TemplateAtom{"HE2", "H", 0.3339},
		TemplateAtom{"CD2", "CW", -0.2207}, TemplateAtom{"HD2", "H4", 0.1862}),
		sideBonds([2]string{"CB", "HB2"}, [2]string{"CB", "HB3"}, [2]string{"CB", "CG"},
			[2]string{"CG", "ND1"}, [2]string{"ND1", "CE1"}, [2]string{"CE1", "HE1"},
			[2]string{"CE1", "NE2"}, [2]string{"NE2", "HE2"}, [2]string{"NE2", "CD2"},
			[2]string{"CD2", "HD2"}, [2]string{"CD2", "CG"})))

	add(res("PRO", 0, []TemplateAtom{
		{"N", "N", -0.2548},
		{"CD", "CT", 0.0192}, {"HD2", "H1", 0.0391}, {"HD3", "H1", 0.0391},
		{"CG", "CT", 0.0189}, {"HG2", "HC", 0.0213}, {"HG3", "HC", 0.0213},
		{"CB", "CT", -0.0070}, {"HB2", "HC", 0.0253}, {"HB3", "HC", 0.0253},
		{"CA", "CT", -0.0266}, {"HA", "H1", 0.0641},
		{"C", "C", 0.5896}, {"O", "O", -0.5748}},
		[][2]string{{"N", "CD"}, {"CD", "HD2"}, {"CD", "HD3"}, {"CD", "CG"},
			{"CG", "HG2"}, {"CG", "HG3"}, {"CG", "CB"},
			{"CB", "HB2"}, {"CB", "HB3"}, {"CB", "CA"},
			{"CA", "HA"}, {"CA", "C"}, {"C", "O"}, {"N", "CA"}}))

	//monatomic ions, Joung-Cheatham parameters for TIP3P-class water
	r["NA"] = &Template{Name: "NA", Atoms: []TemplateAtom{{"NA", "Na+", 1.0}}}
	r["CL"] = &Template{Name: "CL", Atoms: []TemplateAtom{{"CL", "Cl-", -1.0}}}
	return r
}

//Lennard-Jones parameters by atom class, sigma in nm, epsilon in
//kJ/mol.
func amber14LJ() map[string]LJ {
	sp2 := LJ{0.339967, 0.359824}
	return map[string]LJ{
		"CT": {0.339967, 0.457730},
		"C":  sp2, "CA": sp2, "CC": sp2, "CR": sp2, "CW": sp2,
		"CS": sp2, "CB": sp2, "CN": sp2,
		"N": {0.325000, 0.711280}, "NA": {0.325000, 0.711280},
		"NB": {0.325000, 0.711280}, "N2": {0.325000, 0.711280},
		"N3": {0.325000, 0.711280},
		"O":  {0.295992, 0.878640}, "O2": {0.295992, 0.878640},
		"OH": {0.306647, 0.880314},
		"S":  {0.356359, 1.046000}, "SH": {0.356359, 1.046000},
		"H":  {0.106908, 0.065689},
		"HC": {0.264953, 0.065689},
		"H1": {0.247135, 0.065689},
		"HP": {0.195998, 0.065689},
		"HA": {0.259964, 0.062760},
		"H4": {0.251055, 0.062760},
		"H5": {0.242146, 0.062760},
		"HO": {0.0, 0.0},
		"HS": {0.106908, 0.065689},
		//Joung-Cheatham monovalent ions
		"Na+": {0.243928, 0.365846},
		"Cl-": {0.447766, 0.148913},
	}
}

//Bond parameters: r0 in nm, k in kJ/(mol nm^2) with E=0.5k(r-r0)^2.
func amber14Bonds() map[string]BondParam {
	raw := []struct {
		a, b string
		k    float64 //kcal/(mol A^2) in the E=K(r-r0)^2 convention
		r0   float64 //Angstrom
	}{
		{"CT", "CT", 310, 1.526},
		{"CT", "HC", 340, 1.090},
		{"CT", "H1", 340, 1.090},
		{"CT", "HP", 340, 1.090},
		{"CT", "N", 337, 1.449},
		{"CT", "N2", 337, 1.463},
		{"CT", "N3", 367, 1.471},
		{"CT", "C", 317, 1.522},
		{"C", "N", 490, 1.335},
		{"C", "O", 570, 1.229},
		{"C", "O2", 656, 1.250},
		{"N", "H", 434, 1.010},
		{"N2", "H", 434, 1.010},
		{"N3", "H", 434, 1.010},
		{"NA", "H", 434, 1.010},
		{"CT", "OH", 320, 1.410},
		{"OH", "HO", 553, 0.960},
		{"CT", "S", 227, 1.810},
		{"CT", "SH", 237, 1.810},
		{"SH", "HS", 274, 1.336},
		{"S", "S", 166, 2.038},
		{"CA", "CA", 469, 1.400},
		{"CA", "CT", 317, 1.510},
		{"CA", "HA", 367, 1.080},
		{"CA", "OH", 450, 1.364},
		{"CA", "N2", 481, 1.340},
		{"CC", "CT", 317, 1.504},
		{"CC", "NB", 410, 1.391},
		{"CC", "CW", 518, 1.371},
		{"CR", "NB", 488, 1.335},
		{"CR", "NA", 477, 1.343},
		{"CW", "NA", 427, 1.381},
		{"CR", "H5", 367, 1.080},
		{"CW", "H4", 367, 1.080},
		{"CS", "CT", 317, 1.495},
		{"CS", "CW", 546, 1.352},
		{"CS", "CB", 388, 1.459},
		{"CB", "CN", 447, 1.419},
		{"CB", "CA", 469, 1.404},
		{"CN", "CA", 469, 1.400},
		{"CN", "NA", 428, 1.380},
	}
	m := make(map[string]BondParam, len(raw))
	for _, e := range raw {
		//2x for the harmonic convention, 4.184x100 for units
		m[BondKey(e.a, e.b)] = BondParam{R0: e.r0 / 10, K: e.k * 836.8}
	}
	return m
}

//Angle parameters: theta0 in degrees, k in kJ/(mol rad^2) with
//E=0.5k(theta-theta0)^2. Triples not listed fall back to a default by
//central class.
func amber14Angles() (map[string]AngleParam, map[string]AngleParam) {
	raw := []struct {
		a, b, c string
		k       float64 //kcal/(mol rad^2), E=K(t-t0)^2 convention
		t0      float64 //degrees
	}{
		{"CT", "CT", "CT", 40, 109.5},
		{"CT", "CT", "HC", 50, 109.5},
		{"CT", "CT", "H1", 50, 109.5},
		{"HC", "CT", "HC", 35, 109.5},
		{"H1", "CT", "H1", 35, 109.5},
		{"HP", "CT", "HP", 35, 109.5},
		{"CT", "C", "O", 80, 120.4},
		{"CT", "C", "N", 70, 116.6},
		{"O", "C", "N", 80, 122.9},
		{"O2", "C", "O2", 80, 126.0},
		{"CT", "C", "O2", 70, 117.0},
		{"C", "N", "CT", 50, 121.9},
		{"C", "N", "H", 50, 118.0},
		{"CT", "N", "H", 38, 118.4},
		{"C", "CT", "N", 63, 110.1},
		{"N", "CT", "CT", 80, 109.7},
		{"CT", "CT", "N", 80, 109.7},
		{"H", "N", "H", 35, 120.0},
		{"H", "N3", "H", 35, 109.5},
		{"CT", "N3", "H", 50, 109.5},
		{"CT", "OH", "HO", 55, 108.5},
		{"CT", "CT", "OH", 50, 109.5},
		{"H1", "CT", "OH", 50, 109.5},
		{"CT", "SH", "HS", 43, 96.0},
		{"CT", "S", "S", 68, 103.7},
		{"CT", "S", "CT", 62, 98.9},
		{"CT", "CT", "S", 50, 114.7},
		{"CT", "CT", "SH", 50, 108.6},
		{"CA", "CA", "CA", 63, 120.0},
		{"CA", "CA", "HA", 50, 120.0},
		{"CA", "CA", "CT", 70, 120.0},
	}
	m := make(map[string]AngleParam, len(raw))
	for _, e := range raw {
		m[AngleKey(e.a, e.b, e.c)] = AngleParam{Theta0: e.t0, K: e.k * 8.368}
	}
	defaults := map[string]AngleParam{
		"CT": {109.5, 40 * 8.368},
		"C":  {120.0, 70 * 8.368},
		"CA": {120.0, 63 * 8.368}, "CC": {120.0, 63 * 8.368},
		"CR": {120.0, 63 * 8.368}, "CW": {120.0, 63 * 8.368},
		"CS": {120.0, 63 * 8.368}, "CB": {120.0, 63 * 8.368},
		"CN": {120.0, 63 * 8.368},
		"N":  {120.0, 50 * 8.368}, "NA": {120.0, 50 * 8.368},
		"NB": {120.0, 50 * 8.368}, "N2": {120.0, 50 * 8.368},
		"N3": {109.5, 50 * 8.368},
		"OH": {108.5, 55 * 8.368},
		"S":  {98.9, 62 * 8.368}, "SH": {96.0, 43 * 8.368},
	}
	return m, defaults
}

//Torsion terms: barriers in kJ/mol per path (the Amber path divisor
//is already folded in), phases in degrees.
func amber14Torsions() map[string][]TorsionParam {
	kc := 4.184
	m := map[string][]TorsionParam{
		TorsionKey("X", "CT", "CT", "X"): {{3, 0, 1.40 / 9 * kc}},
		TorsionKey("X", "C", "N", "X"):   {{2, 180, 10.0 / 4 * kc}},
		TorsionKey("X", "CT", "N3", "X"): {{3, 0, 1.40 / 9 * kc}},
		TorsionKey("X", "CT", "OH", "X"): {{3, 0, 0.50 / 3 * kc}},
		TorsionKey("X", "CT", "S", "X"):  {{3, 0, 3.50 / 3 * kc}},
		TorsionKey("X", "CT", "SH", "X"): {{3, 0, 1.50 / 3 * kc}},
		TorsionKey("X", "CA", "CA", "X"): {{2, 180, 14.50 / 4 * kc}},
		TorsionKey("X", "CA", "N2", "X"): {{2, 180, 9.60 / 4 * kc}},
		TorsionKey("X", "CC", "NB", "X"): {{2, 180, 4.80 / 2 * kc}},
		TorsionKey("X", "CR", "NB", "X"): {{2, 180, 10.0 / 2 * kc}},
		TorsionKey("X", "CR", "NA", "X"): {{2, 180, 9.30 / 2 * kc}},
		TorsionKey("X", "CW", "NA", "X"): {{2, 180, 6.00 / 2 * kc}},
		TorsionKey("X", "CC", "CW", "X"): {{2, 180, 21.50 / 4 * kc}},
		TorsionKey("X", "CS", "CW", "X"): {{2, 180, 26.10 / 4 * kc}},
		TorsionKey("X", "CS", "CB", "X"): {{2, 180, 6.70 / 4 * kc}},
		TorsionKey("X", "CB", "CN", "X"): {{2, 180, 12.00 / 4 * kc}},
		TorsionKey("X", "CA", "CB", "X"): {{2, 180, 14.00 / 4 * kc}},
		TorsionKey("X", "CA", "CN", "X"): {{2, 180, 14.50 / 4 * kc}},
		TorsionKey("X", "CN", "NA", "X"): {{2, 180, 6.10 / 4 * kc}},
		//backbone phi/psi
		TorsionKey("C", "N", "CT", "C"): {{2, 180, 1.88}, {1, 0, 0.75}},
		TorsionKey("N", "CT", "C", "N"): {{2, 180, 2.50}, {1, 180, 1.80}},
	}
	return m
}

func init() {
	angles, angleDefaults := amber14Angles()
	Register(&ParamSet{
		Name:          "amber14-all",
		LJTypes:       amber14LJ(),
		BondTypes:     amber14Bonds(),
		AngleTypes:    angles,
		AngleDefaults: angleDefaults,
		TorsionTypes:  amber14Torsions(),
		Residues:      amber14Residues(),
		Aliases: map[string]string{
			"HIS": "HIE", "HID": "HIE", "HIP": "HIE",
			"NA+": "NA", "SOD": "NA", "CL-": "CL", "CLA": "CL",
		},
	})
}
