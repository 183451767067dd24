package gamba

import "math/bits"

// maxTruthTableVars bounds truth-table construction for bitwise
// resynthesis; the table has 2^n rows.
const maxTruthTableVars = 6

// implicant represents a conjunction of possibly negated variables as a
// vector with one entry per variable: 1 if the variable occurs positively,
// 0 if negated and -1 if it has no influence.
type implicant struct {
	vec      []int8
	minterms []uint64
	obsolete bool
}

// newImplicant returns the implicant of a single minterm: the conjunction
// equivalent to the variable evaluation encoded by value's bits.
func newImplicant(vnumber int, value uint64) *implicant {
	im := &implicant{
		vec:      make([]int8, vnumber),
		minterms: []uint64{value},
	}
	for i := 0; i < vnumber; i++ {
		im.vec[i] = int8((value >> uint(i)) & 1)
	}
	return im
}

func (im *implicant) clone() *implicant {
	cpy := &implicant{
		vec:      make([]int8, len(im.vec)),
		minterms: make([]uint64, len(im.minterms)),
	}
	copy(cpy.vec, im.vec)
	copy(cpy.minterms, im.minterms)
	return cpy
}

// countOnes returns the number of positive literals.
func (im *implicant) countOnes() int {
	n := 0
	for _, v := range im.vec {
		if v == 1 {
			n++
		}
	}
	return n
}

// tryMerge merges two implicants whose vectors differ in exactly one
// position, eliminating the variable that has no influence on the
// disjunction. Returns nil if the implicants differ elsewhere.
func (im *implicant) tryMerge(other *implicant) *implicant {
	assert(len(im.vec) == len(other.vec), "implicant size mismatch: %d != %d", len(im.vec), len(other.vec))

	diff := -1
	for i := range im.vec {
		if im.vec[i] == other.vec[i] {
			continue
		}
		if diff != -1 {
			return nil
		}
		diff = i
	}

	merged := im.clone()
	merged.minterms = append(merged.minterms, other.minterms...)
	if diff != -1 {
		merged.vec[diff] = -1
	}
	return merged
}

// expr builds the conjunction's expression tree. An implicant with no
// literals is the all-ones constant.
func (im *implicant) expr(vars []string, width uint) Expr {
	var conj Expr
	for i, v := range im.vec {
		if v == -1 {
			continue
		}

		var lit Expr = NewVarExpr(vars[i], width)
		if v == 0 {
			lit = NewUnaryExpr(NOT, lit)
		}

		if conj == nil {
			conj = lit
		} else {
			conj = NewBinaryExpr(AND, conj, lit)
		}
	}
	if conj == nil {
		return NewConstantExpr(bitmask(width), width)
	}
	return conj
}

// dnf represents a disjunctive normal form reduced to its required prime
// implicants via iterative merging (Quine-McCluskey).
type dnf struct {
	primes []*implicant
}

// newDNF builds the minimal DNF of the boolean function given as a truth
// value vector of length 2^vnumber.
func newDNF(vnumber int, vec []uint8) *dnf {
	assert(len(vec) == 1<<vnumber, "truth vector size mismatch: %d != %d", len(vec), 1<<vnumber)

	d := &dnf{}

	// Group the minterm implicants by their number of ones; only adjacent
	// groups can merge.
	groups := make([][]*implicant, vnumber+1)
	for i, bit := range vec {
		if bit == 0 {
			continue
		}
		assert(bit == 1, "truth vector entry out of range: %d", bit)
		ones := bits.OnesCount64(uint64(i))
		groups[ones] = append(groups[ones], newImplicant(vnumber, uint64(i)))
	}

	for d.mergeStep(&groups) {
	}
	d.dropUnrequired(vec)
	return d
}

// mergeStep merges implicants differing in one position and collects those
// that can no longer merge as primes. Returns true if anything merged.
func (d *dnf) mergeStep(groups *[][]*implicant) bool {
	changed := false
	next := make([][]*implicant, len(*groups))

	for ones, group := range *groups {
		if ones < len(*groups)-1 {
			for _, a := range group {
				for _, b := range (*groups)[ones+1] {
					merged := a.tryMerge(b)
					if merged == nil {
						continue
					}
					changed = true
					a.obsolete = true
					b.obsolete = true
					next[merged.countOnes()] = append(next[merged.countOnes()], merged)
				}
			}
		}
		for _, im := range group {
			if !im.obsolete {
				d.primes = append(d.primes, im)
			}
		}
	}

	*groups = next
	return changed
}

// dropUnrequired removes prime implicants whose minterms are entirely
// covered by implicants kept before them.
func (d *dnf) dropUnrequired(vec []uint8) {
	required := make(map[uint64]struct{})
	for i, bit := range vec {
		if bit == 1 {
			required[uint64(i)] = struct{}{}
		}
	}

	kept := d.primes[:0]
	for _, im := range d.primes {
		needed := false
		for _, mt := range im.minterms {
			if _, ok := required[mt]; ok {
				needed = true
				delete(required, mt)
			}
		}
		if needed {
			kept = append(kept, im)
		}
	}
	d.primes = kept
}

// expr builds the disjunction's expression tree. An empty DNF is the zero
// constant.
func (d *dnf) expr(vars []string, width uint) Expr {
	if len(d.primes) == 0 {
		return NewConstantExpr(0, width)
	}

	expr := d.primes[0].expr(vars, width)
	for _, im := range d.primes[1:] {
		expr = NewBinaryExpr(OR, expr, im.expr(vars, width))
	}
	return expr
}

// synthesizeBitwise attempts to re-express the whole expression as a
// minimal purely bitwise combination of its variables. The function's
// behavior on 0/1 inputs fixes a truth table whose minimal DNF is returned
// as a candidate; the caller must still verify it. Returns nil if the
// expression has no or too many variables, or visibly is not a bitwise
// function.
func synthesizeBitwise(expr Expr, width uint) (Expr, error) {
	vars := Vars(expr)
	if len(vars) == 0 || len(vars) > maxTruthTableVars {
		return nil, nil
	}

	s := newSampler(vars, width)
	vec := make([]uint8, 1<<len(vars))
	for i := range vec {
		a := s.assignAll(0)
		for j, name := range vars {
			a[name] = NewValue(uint64(i)>>uint(j)&1, width)
		}

		v, err := Evaluate(expr, a)
		if err != nil {
			return nil, err
		}
		vec[i] = uint8(v.V & 1)

		// For a bitwise function every bit position computes the same
		// boolean function; with 0/1 inputs all bits above the lowest see
		// all-zero inputs, so they must all equal the all-zero row's
		// output. Anything else cannot be bitwise, skip early.
		want := uint64(vec[i])
		if width > 1 && vec[0] == 1 {
			want |= bitmask(width) &^ 1
		}
		if v.V != want {
			return nil, nil
		}
	}

	return newDNF(len(vars), vec).expr(vars, width), nil
}
