/*
 * params.go, part of gomd
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
Package ff holds force-field parameter sets and builds mm.System
objects from structures. The parameters live in named, registered sets
("amber14-all" for proteins, "amber14/tip3pfb" for water); a ForceField
is a merged view over one or more of them, and its CreateSystem method
does the template matching, bonded-term enumeration, exclusion
bookkeeping and constraint setup.

Bond lengths are in nm, force constants in kJ/mol (per nm^2 or rad^2),
angles and phases in degrees in the data tables, converted to radians
when the terms are built.
*/
package ff

import (
	"fmt"
	"strings"
)

//LJ holds Lennard-Jones parameters for an atom class.
type LJ struct {
	Sigma float64 //nm
	Eps   float64 //kJ/mol
}

//BondParam is a harmonic bond parameter: E = 0.5*K*(r-R0)^2.
type BondParam struct {
	R0 float64 //nm
	K  float64 //kJ/(mol nm^2)
}

//AngleParam is a harmonic angle parameter: E = 0.5*K*(theta-Theta0)^2.
//Theta0 is in degrees here, converted when terms are built.
type AngleParam struct {
	Theta0 float64 //degrees
	K      float64 //kJ/(mol rad^2)
}

//TorsionParam is one periodic term of a proper dihedral:
//E = Barrier*(1+cos(N*phi-Phase)). Phase is in degrees here.
type TorsionParam struct {
	N       int
	Phase   float64 //degrees
	Barrier float64 //kJ/mol
}

//TemplateAtom is one atom of a residue template.
type TemplateAtom struct {
	Name   string
	Class  string
	Charge float64 //e
}

//Template describes a residue: its atoms with classes and charges,
//and its internal connectivity by atom name.
type Template struct {
	Name  string
	Atoms []TemplateAtom
	Bonds [][2]string
}

//Atom returns the template atom with the name given, or nil.
func (T *Template) Atom(name string) *TemplateAtom {
	for i := range T.Atoms {
		if T.Atoms[i].Name == name {
			return &T.Atoms[i]
		}
	}
	return nil
}

//NetCharge returns the sum of the partial charges of the template.
func (T *Template) NetCharge() float64 {
	q := 0.0
	for _, a := range T.Atoms {
		q += a.Charge
	}
	return q
}

//ParamSet is a named set of force-field parameters. Bond keys are
//"A:B" with A<=B; angle keys "A:B:C" with A<=C; torsion keys
//"A:B:C:D" in the canonical direction, with "X" as wildcard for the
//outer positions.
type ParamSet struct {
	Name          string
	LJTypes       map[string]LJ
	BondTypes     map[string]BondParam
	AngleTypes    map[string]AngleParam
	AngleDefaults map[string]AngleParam //by central class, used when no exact match exists
	TorsionTypes  map[string][]TorsionParam
	Residues      map[string]*Template
	Aliases       map[string]string //residue name aliases, e.g. HIS->HIE
}

//BondKey returns the canonical map key for a bond between classes
//a and b.
func BondKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

//AngleKey returns the canonical map key for an angle a-b-c.
func AngleKey(a, b, c string) string {
	if a > c {
		a, c = c, a
	}
	return a + ":" + b + ":" + c
}

//TorsionKey returns the canonical map key for a torsion a-b-c-d.
func TorsionKey(a, b, c, d string) string {
	fw := a + ":" + b + ":" + c + ":" + d
	rv := d + ":" + c + ":" + b + ":" + a
	if rv < fw {
		return rv
	}
	return fw
}

//The registry of parameter sets, filled by the init functions of the
//bundled data files. Register is exported so users can add their own.
var registry = map[string]*ParamSet{}

//Register adds the parameter set to the registry under its name.
//Registering a second set with the same name replaces the first.
func Register(ps *ParamSet) {
	registry[ps.Name] = ps
}

//Registered returns the names of all registered parameter sets.
func Registered() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	return names
}

//ForceField is a merged view over one or more parameter sets, looked
//up in the order given to New.
type ForceField struct {
	sets []*ParamSet
}

//New returns a ForceField over the named parameter sets. The ".xml"
//suffix used by other MD packages for the same parameter sets is
//accepted and ignored.
func New(names ...string) (*ForceField, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("goMD/ff: no parameter sets given")
	}
	F := new(ForceField)
	for _, n := range names {
		n = strings.TrimSuffix(n, ".xml")
		ps, ok := registry[n]
		if !ok {
			return nil, fmt.Errorf("goMD/ff: unknown parameter set %q (have %v)", n, Registered())
		}
		F.sets = append(F.sets, ps)
	}
	return F, nil
}

//Residue returns the template for the residue name given, following
//aliases, or nil if no set has it.
func (F *ForceField) Residue(name string) *Template {
	for _, ps := range F.sets {
		if ps.Aliases != nil {
			if a, ok := ps.Aliases[name]; ok {
				name = a
			}
		}
	}
	for _, ps := range F.sets {
		if t, ok := ps.Residues[name]; ok {
			return t
		}
	}
	return nil
}

//LJFor returns the Lennard-Jones parameters for the atom class given.
func (F *ForceField) LJFor(class string) (LJ, bool) {
	for _, ps := range F.sets {
		if lj, ok := ps.LJTypes[class]; ok {
			return lj, true
		}
	}
	return LJ{}, false
}

//Bond returns the bond parameters between the classes given.
func (F *ForceField) Bond(a, b string) (BondParam, bool) {
	key := BondKey(a, b)
	for _, ps := range F.sets {
		if p, ok := ps.BondTypes[key]; ok {
			return p, true
		}
	}
	return BondParam{}, false
}

//Angle returns the angle parameters for the class triple given. If no
//exact parameters exist, the per-central-class default is used.
func (F *ForceField) Angle(a, b, c string) (AngleParam, bool) {
	key := AngleKey(a, b, c)
	for _, ps := range F.sets {
		if p, ok := ps.AngleTypes[key]; ok {
			return p, true
		}
	}
	for _, ps := range F.sets {
		if ps.AngleDefaults != nil {
			if p, ok := ps.AngleDefaults[b]; ok {
				return p, true
			}
		}
	}
	return AngleParam{}, false
}

//Torsion returns the torsion terms for the class quadruple given,
//trying the exact key first and then the X:b:c:X wildcard. A nil
//return means the torsion has no terms, which is not an error.
func (F *ForceField) Torsion(a, b, c, d string) []TorsionParam {
	key := TorsionKey(a, b, c, d)
	for _, ps := range F.sets {
		if p, ok := ps.TorsionTypes[key]; ok {
			return p
		}
	}
	key = TorsionKey("X", b, c, "X")
	for _, ps := range F.sets {
		if p, ok := ps.TorsionTypes[key]; ok {
			return p
		}
	}
	return nil
}
