/*
 * assign.go, part of gomd
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
	"strings"

	md "github.com/rmera/gomd"
	"github.com/rmera/gomd/mm"
	v3 "github.com/rmera/gomd/v3"
)

//ConstraintPolicy selects which bonds are replaced by holonomic
//constraints when the system is built.
type ConstraintPolicy int

const (
	//NoConstraints keeps every bond as a harmonic term.
	NoConstraints ConstraintPolicy = iota
	//HBonds constrains every bond involving a hydrogen, which is what
	//allows 4 fs timesteps.
	HBonds
)

func (c ConstraintPolicy) String() string {
	if c == HBonds {
		return "HBonds"
	}
	return "None"
}

//Options controls how CreateSystem builds an mm.System.
type Options struct {
	Method         mm.NonbondedMethod
	Cutoff         float64 //nm
	Constraints    ConstraintPolicy
	FlexibleWater  bool    //keep water bonds/angles harmonic instead of rigid
	BoxPadding     float64 //nm, used only when a periodic method is asked for and the structure brings no box
	EwaldTolerance float64 //zero means the mm default
	Threads        int     //zero means GOMAXPROCS
}

//DefaultOptions returns the settings used by the gomd command: PME
//with a 1 nm cutoff, bonds to hydrogen constrained and rigid water.
func DefaultOptions() *Options {
	return &Options{
		Method:      mm.PME,
		Cutoff:      1.0,
		Constraints: HBonds,
		BoxPadding:  1.0,
	}
}

//residue is a consecutive run of atoms sharing chain, residue number
//and residue name.
type residue struct {
	name  string
	first int //global index of the first atom
	idx   []int
	tmpl  *Template //nil for unmatched (het) residues
	names []string  //template atom name matched by each atom, parallel to idx
	water bool
	nterm bool
	cterm bool
}

//CreateSystem builds an mm.System for the first frame of mol,
//matching each residue against the templates of the force field,
//bonding consecutive amino acids and disulfide bridges, and
//enumerating angles, torsions, exclusions and constraints from the
//resulting bond graph. The system is flagged for center of mass motion
//removal. The assigned partial charges are also written back into the
//atoms of mol.
func (F *ForceField) CreateSystem(mol *md.Molecule, opts *Options) (*mm.System, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := mol.Corrupted(); err != nil {
		return nil, err
	}
	coords := mol.Coords[0]
	n := mol.Len()
	residues := splitResidues(mol)
	for _, r := range residues {
		r.tmpl = F.Residue(r.name)
		r.water = r.tmpl != nil && r.tmpl.Name == "HOH"
	}
	classes := make([]string, n)
	charges := make([]float64, n)
	var bonds [][2]int
	for _, r := range residues {
		var err error
		if r.tmpl != nil {
			err = F.matchResidue(mol, r, classes, charges)
			if err == nil {
				bonds = append(bonds, templateBonds(r)...)
			}
		} else {
			bonds, err = F.assignUnknown(mol, coords, r, classes, charges, bonds)
		}
		if err != nil {
			return nil, err
		}
	}
	bonds = append(bonds, interResidueBonds(mol, coords, residues)...)

	sys := mm.NewSystem(n)
	sys.Method = opts.Method
	if opts.Cutoff > 0 {
		sys.Cutoff = opts.Cutoff
	}
	if opts.EwaldTolerance > 0 {
		sys.EwaldTolerance = opts.EwaldTolerance
	}
	sys.Threads = opts.Threads
	sys.RemoveCOM = true
	netq := 0.0
	for i := 0; i < n; i++ {
		at := mol.Atom(i)
		m := at.Mass
		if m == 0 {
			if sm, ok := md.SymbolMass(at.Symbol); ok {
				m = sm
			}
		}
		if m <= 0 {
			return nil, fmt.Errorf("goMD/ff: no mass for atom %d (%s %s%d)", i, at.Name, at.MolName, at.MolID)
		}
		sys.Masses[i] = m
		sys.Charges[i] = charges[i]
		at.Charge = charges[i]
		netq += charges[i]
		lj, ok := F.LJFor(classes[i])
		if !ok {
			return nil, fmt.Errorf("goMD/ff: no Lennard-Jones parameters for class %q (atom %s in %s%d)", classes[i], at.Name, at.MolName, at.MolID)
		}
		sys.Sigmas[i] = lj.Sigma
		sys.Epsilons[i] = lj.Eps
	}
	mol.SetCharge(int(math.Round(netq)))

	inRigidWater := make([]bool, n)
	if !opts.FlexibleWater {
		for _, r := range residues {
			if r.water {
				for _, i := range r.idx {
					inRigidWater[i] = true
				}
			}
		}
	}
	if err := F.bondedTerms(mol, sys, bonds, classes, inRigidWater, opts); err != nil {
		return nil, err
	}
	if err := F.rigidWaterConstraints(mol, sys, residues, classes, opts); err != nil {
		return nil, err
	}
	exclusions(sys, bonds)

	if opts.Method.Periodic() {
		if len(mol.Box) >= 3 && mol.Box[0] > 0 {
			sys.Box = [3]float64{mol.Box[0], mol.Box[1], mol.Box[2]}
		} else {
			sys.Box = paddedBox(coords, opts.BoxPadding, 2*sys.Cutoff)
		}
	}
	if err := sys.Prepare(); err != nil {
		return nil, err
	}
	return sys, nil
}

//splitResidues groups the atoms of mol into consecutive runs with the
//same chain, residue number and residue name.
func splitResidues(mol *md.Molecule) []*residue {
	var rs []*residue
	var cur *residue
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		if cur == nil || at.Chain != mol.Atom(cur.first).Chain ||
			at.MolID != mol.Atom(cur.first).MolID || at.MolName != mol.Atom(cur.first).MolName {
			cur = &residue{name: at.MolName, first: i}
			rs = append(rs, cur)
		}
		cur.idx = append(cur.idx, i)
	}
	return rs
}

//water/hydrogen name aliases seen in the wild, applied before
//template lookup.
var atomAliases = map[string]string{
	"OW": "O", "HW1": "H1", "HW2": "H2", "OH2": "O",
	"HN": "H", "1H": "H1", "2H": "H2", "3H": "H3",
}

//normName puts a structure atom name in template form: aliases, and
//the leading-digit PDB style ("1HB" for "HB1").
func normName(name string) string {
	if a, ok := atomAliases[name]; ok {
		return a
	}
	if len(name) > 1 && name[0] >= '0' && name[0] <= '9' {
		return name[1:] + name[:1]
	}
	return name
}

//matchResidue matches the atoms of r against its template, filling
//classes and charges, and marking terminal residues. The terminal
//adjustments keep the net charge integral: the three ammonium
//hydrogens share the template amide-H charge plus one, and the two
//carboxylate oxygens share the template carbonyl-O charge minus one.
func (F *ForceField) matchResidue(mol *md.Molecule, r *residue, classes []string, charges []float64) error {
	t := r.tmpl
	r.names = make([]string, len(r.idx))
	matched := map[string]int{} //template name -> global index
	var termH []int
	oxt := -1
	for k, i := range r.idx {
		at := mol.Atom(i)
		name := normName(at.Name)
		ta := t.Atom(name)
		if ta == nil && strings.HasSuffix(name, "1") {
			//HB1/HB2 numbering instead of HB2/HB3
			alt := name[:len(name)-1] + "3"
			if _, taken := matched[alt]; t.Atom(alt) != nil && !taken {
				ta = t.Atom(alt)
				name = alt
			}
		}
		if ta == nil {
			switch {
			case name == "H1" || name == "H2" || name == "H3":
				if t.Atom("N") != nil {
					r.nterm = true
					termH = append(termH, i)
					r.names[k] = name
					continue
				}
			case name == "OXT":
				r.cterm = true
				oxt = i
				r.names[k] = name
				continue
			}
			return fmt.Errorf("goMD/ff: residue %s%d has no template entry for atom %q", r.name, at.MolID, at.Name)
		}
		if _, dup := matched[name]; dup {
			return fmt.Errorf("goMD/ff: residue %s%d has atom %q twice", r.name, at.MolID, at.Name)
		}
		matched[name] = i
		r.names[k] = name
		classes[i] = ta.Class
		charges[i] = ta.Charge
	}
	for _, ta := range t.Atoms {
		if _, ok := matched[ta.Name]; ok {
			continue
		}
		if ta.Name == "H" && r.nterm {
			continue //replaced by the ammonium hydrogens
		}
		at := mol.Atom(r.first)
		return fmt.Errorf("goMD/ff: residue %s%d is missing atom %q; add hydrogens before simulating", r.name, at.MolID, ta.Name)
	}
	if r.nterm {
		ht := t.Atom("H")
		hq := 0.0
		if ht != nil {
			hq = ht.Charge
		}
		for _, i := range termH {
			classes[i] = "H"
			charges[i] = (1 + hq) / 3
		}
		if len(termH) != 3 {
			//a capped or partially protonated terminus would not sum
			//to an integer
			return fmt.Errorf("goMD/ff: N-terminal residue %s%d has %d ammonium hydrogens, want 3", r.name, mol.Atom(r.first).MolID, len(termH))
		}
	}
	if r.cterm {
		ot := t.Atom("O")
		io, okO := matched["O"]
		if ot == nil || !okO {
			return fmt.Errorf("goMD/ff: OXT in residue %s%d without a backbone O", r.name, mol.Atom(r.first).MolID)
		}
		oq := (ot.Charge - 1) / 2
		classes[io] = "O2"
		charges[io] = oq
		classes[oxt] = "O2"
		charges[oxt] = oq
	}
	return nil
}

//templateBonds turns the by-name connectivity of the matched template
//into global index pairs, adding the terminal N-H and C-OXT bonds.
func templateBonds(r *residue) [][2]int {
	byName := map[string]int{}
	for k, i := range r.idx {
		byName[r.names[k]] = i
	}
	var out [][2]int
	for _, b := range r.tmpl.Bonds {
		i, oki := byName[b[0]]
		j, okj := byName[b[1]]
		if b[0] == "H" && r.nterm {
			continue
		}
		if !oki || !okj {
			continue
		}
		out = append(out, [2]int{i, j})
	}
	if r.nterm {
		in := byName["N"]
		for _, h := range []string{"H1", "H2", "H3"} {
			if j, ok := byName[h]; ok {
				out = append(out, [2]int{in, j})
			}
		}
	}
	if r.cterm {
		out = append(out, [2]int{byName["C"], byName["OXT"]})
	}
	return out
}

//element to atom-class fallback for residues without a template.
var elementClasses = map[string]string{
	"C": "CT", "N": "N", "O": "OH", "S": "S", "P": "CT",
	"H": "HC", "NA": "Na+", "CL": "Cl-", "K": "Na+", "BR": "Cl-",
}

//assignUnknown handles residues with no template: classes from the
//element, charges from whatever the input brought (usually zero), and
//connectivity from the geometry.
func (F *ForceField) assignUnknown(mol *md.Molecule, coords *v3.Matrix, r *residue, classes []string, charges []float64, bonds [][2]int) ([][2]int, error) {
	copies := make([]*md.Atom, len(r.idx))
	for k, i := range r.idx {
		at := mol.Atom(i)
		sym := strings.ToUpper(at.Symbol)
		cl, ok := elementClasses[sym]
		if !ok {
			return nil, fmt.Errorf("goMD/ff: residue %s%d is not in the force field and element %q has no generic parameters", r.name, at.MolID, at.Symbol)
		}
		classes[i] = cl
		charges[i] = at.Charge
		c := at.Copy()
		c.Bonds = nil
		copies[k] = c
	}
	if len(r.idx) > 1 {
		sub, err := md.NewTopology(copies, 0, 1)
		if err != nil {
			return nil, err
		}
		subcoords, err := coords.SomeVecs(r.idx)
		if err != nil {
			return nil, err
		}
		if err := md.AssignBonds(subcoords, sub); err != nil {
			return nil, errDecorate(err, fmt.Sprintf("assignUnknown: residue %s%d", r.name, mol.Atom(r.first).MolID))
		}
		for _, at := range copies {
			for _, b := range at.Bonds {
				if b.At1.Index < b.At2.Index {
					bonds = append(bonds, [2]int{r.idx[b.At1.Index], r.idx[b.At2.Index]})
				}
			}
		}
	}
	return bonds, nil
}

//interResidueBonds adds the peptide C-N bonds between consecutive
//matched residues and the disulfide SG-SG bonds between CYX pairs.
//Both are subject to a distance check, so chain breaks and lone CYX
//residues do not get spurious bonds.
func interResidueBonds(mol *md.Molecule, coords *v3.Matrix, residues []*residue) [][2]int {
	const maxCN = 0.22  //nm
	const maxSS = 0.25  //nm
	find := func(r *residue, name string) int {
		for k, i := range r.idx {
			if r.names != nil && r.names[k] == name {
				return i
			}
		}
		return -1
	}
	var out [][2]int
	for k := 0; k+1 < len(residues); k++ {
		a, b := residues[k], residues[k+1]
		if a.tmpl == nil || b.tmpl == nil || a.water || b.water {
			continue
		}
		if mol.Atom(a.first).Chain != mol.Atom(b.first).Chain {
			continue
		}
		ic := find(a, "C")
		in := find(b, "N")
		if ic < 0 || in < 0 {
			continue
		}
		if v3.Dist(coords.VecView(ic), coords.VecView(in)) < maxCN {
			out = append(out, [2]int{ic, in})
		}
	}
	var cyx []int
	for _, r := range residues {
		if r.tmpl != nil && r.tmpl.Name == "CYX" {
			if i := find(r, "SG"); i >= 0 {
				cyx = append(cyx, i)
			}
		}
	}
	for a := 0; a < len(cyx); a++ {
		for b := a + 1; b < len(cyx); b++ {
			if v3.Dist(coords.VecView(cyx[a]), coords.VecView(cyx[b])) < maxSS {
				out = append(out, [2]int{cyx[a], cyx[b]})
			}
		}
	}
	return out
}

//sp2 centers that get a planarity improper when they have exactly
//three neighbors, with the improper barrier in kJ/mol.
var improperBarriers = map[string]float64{
	"C": 43.932, "N": 4.184, "NA": 4.184, "N2": 4.184,
	"CA": 4.602, "CC": 4.602, "CR": 4.602, "CW": 4.602,
	"CS": 4.602, "CB": 4.602, "CN": 4.602,
}

//bondedTerms emits the bond, angle, torsion and improper terms (or
//constraints, per the policy) for the bond list given.
func (F *ForceField) bondedTerms(mol *md.Molecule, sys *mm.System, bonds [][2]int, classes []string, inRigidWater []bool, opts *Options) error {
	deg2rad := math.Pi / 180
	isH := func(i int) bool { return strings.EqualFold(mol.Atom(i).Symbol, "H") }
	nb := make([][]int, sys.N())
	for _, b := range bonds {
		nb[b[0]] = append(nb[b[0]], b[1])
		nb[b[1]] = append(nb[b[1]], b[0])
	}
	for _, b := range bonds {
		i, j := b[0], b[1]
		if inRigidWater[i] {
			continue
		}
		p, ok := F.Bond(classes[i], classes[j])
		if !ok {
			return fmt.Errorf("goMD/ff: no bond parameters for %s-%s (atoms %s%d/%s, %s%d/%s)",
				classes[i], classes[j], mol.Atom(i).MolName, mol.Atom(i).MolID, mol.Atom(i).Name,
				mol.Atom(j).MolName, mol.Atom(j).MolID, mol.Atom(j).Name)
		}
		if opts.Constraints == HBonds && (isH(i) || isH(j)) {
			sys.Constraints = append(sys.Constraints, mm.Constraint{I: i, J: j, R: p.R0})
			continue
		}
		sys.Bonds = append(sys.Bonds, mm.BondTerm{I: i, J: j, R0: p.R0, K: p.K})
	}
	for j := range nb {
		if inRigidWater[j] {
			continue
		}
		for a := 0; a < len(nb[j]); a++ {
			for b := a + 1; b < len(nb[j]); b++ {
				i, k := nb[j][a], nb[j][b]
				p, ok := F.Angle(classes[i], classes[j], classes[k])
				if !ok {
					return fmt.Errorf("goMD/ff: no angle parameters for %s-%s-%s (central atom %s%d/%s)",
						classes[i], classes[j], classes[k], mol.Atom(j).MolName, mol.Atom(j).MolID, mol.Atom(j).Name)
				}
				sys.Angles = append(sys.Angles, mm.AngleTerm{I: i, J: j, K: k, Theta0: p.Theta0 * deg2rad, F: p.K})
			}
		}
	}
	for _, b := range bonds {
		j, k := b[0], b[1]
		if inRigidWater[j] {
			continue
		}
		for _, i := range nb[j] {
			if i == k {
				continue
			}
			for _, l := range nb[k] {
				if l == j || l == i {
					continue
				}
				for _, p := range F.Torsion(classes[i], classes[j], classes[k], classes[l]) {
					if p.Barrier == 0 {
						continue
					}
					sys.Torsions = append(sys.Torsions, mm.TorsionTerm{I: i, J: j, K: k, L: l,
						N: p.N, Phase: p.Phase * deg2rad, Barrier: p.Barrier})
				}
			}
		}
	}
	//planarity impropers on three-coordinated sp2 centers, Amber
	//ordering with the center third
	for c := range nb {
		barrier, sp2 := improperBarriers[classes[c]]
		if !sp2 || len(nb[c]) != 3 || inRigidWater[c] {
			continue
		}
		ns := []int{nb[c][0], nb[c][1], nb[c][2]}
		//put the double-bonded partner (O on carbonyls) last
		for k, i := range ns {
			if classes[i] == "O" || classes[i] == "O2" {
				ns[k], ns[2] = ns[2], ns[k]
				break
			}
		}
		sys.Torsions = append(sys.Torsions, mm.TorsionTerm{I: ns[0], J: ns[1], K: c, L: ns[2],
			N: 2, Phase: math.Pi, Barrier: barrier})
	}
	return nil
}

//rigidWaterConstraints replaces the internal degrees of freedom of
//each water with three distance constraints.
func (F *ForceField) rigidWaterConstraints(mol *md.Molecule, sys *mm.System, residues []*residue, classes []string, opts *Options) error {
	if opts.FlexibleWater {
		return nil
	}
	for _, r := range residues {
		if !r.water {
			continue
		}
		var io int = -1
		var ih []int
		for _, i := range r.idx {
			if strings.EqualFold(mol.Atom(i).Symbol, "O") {
				io = i
			} else {
				ih = append(ih, i)
			}
		}
		if io < 0 || len(ih) != 2 {
			return fmt.Errorf("goMD/ff: water %d does not look like H2O", mol.Atom(r.first).MolID)
		}
		bp, ok := F.Bond(classes[io], classes[ih[0]])
		if !ok {
			return fmt.Errorf("goMD/ff: no O-H bond parameters for water")
		}
		ap, ok := F.Angle(classes[ih[0]], classes[io], classes[ih[1]])
		if !ok {
			return fmt.Errorf("goMD/ff: no H-O-H angle parameters for water")
		}
		dHH := 2 * bp.R0 * math.Sin(ap.Theta0*math.Pi/360) //theta0/2, in radians
		sys.Constraints = append(sys.Constraints,
			mm.Constraint{I: io, J: ih[0], R: bp.R0},
			mm.Constraint{I: io, J: ih[1], R: bp.R0},
			mm.Constraint{I: ih[0], J: ih[1], R: dHH})
	}
	return nil
}

//exclusions marks 1-2 and 1-3 pairs as excluded and 1-4 pairs as
//excluded-but-scaled, walking the bond graph breadth-first from each
//atom. Ring pairs reachable in both three bonds and fewer keep the
//shorter path, so aromatic rings do not pick up spurious 1-4 terms.
func exclusions(sys *mm.System, bonds [][2]int) {
	n := sys.N()
	nb := make([][]int, n)
	for _, b := range bonds {
		nb[b[0]] = append(nb[b[0]], b[1])
		nb[b[1]] = append(nb[b[1]], b[0])
	}
	depth := make([]int, n)
	for i := range depth {
		depth[i] = -1
	}
	queue := make([]int, 0, 64)
	for i := 0; i < n; i++ {
		//BFS to depth 3
		queue = queue[:0]
		queue = append(queue, i)
		depth[i] = 0
		visited := []int{i}
		for qi := 0; qi < len(queue); qi++ {
			cur := queue[qi]
			if depth[cur] == 3 {
				continue
			}
			for _, nx := range nb[cur] {
				if depth[nx] >= 0 {
					continue
				}
				depth[nx] = depth[cur] + 1
				visited = append(visited, nx)
				queue = append(queue, nx)
			}
		}
		for _, j := range visited {
			if j > i {
				sys.AddExclusion(i, j)
				if depth[j] == 3 {
					sys.Pairs14 = append(sys.Pairs14, mm.Pair14{I: i, J: j})
				}
			}
		}
		for _, j := range visited {
			depth[j] = -1
		}
	}
}

//paddedBox returns a box that contains the coordinates with pad nm on
//every side, never smaller than min per side.
func paddedBox(coords *v3.Matrix, pad, min float64) [3]float64 {
	x := coords.Raw()
	lo := [3]float64{x[0], x[1], x[2]}
	hi := lo
	for i := 0; i < len(x); i += 3 {
		for d := 0; d < 3; d++ {
			if x[i+d] < lo[d] {
				lo[d] = x[i+d]
			}
			if x[i+d] > hi[d] {
				hi[d] = x[i+d]
			}
		}
	}
	var box [3]float64
	for d := 0; d < 3; d++ {
		box[d] = hi[d] - lo[d] + 2*pad
		if box[d] < min {
			box[d] = min
		}
	}
	return box
}

func errDecorate(err error, deco string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", deco, err)
}
