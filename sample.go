package gamba

import "math/rand"

const (
	// exhaustiveBits bounds the size of the assignment space (in total
	// input bits) below which sampling enumerates every assignment and
	// equivalence checking is exact.
	exhaustiveBits = 12

	// cornerVarLimit bounds the hypercube-corner enumeration to keep the
	// battery polynomial in the variable count.
	cornerVarLimit = 10

	// randomSamples is the size of the pseudo-random battery.
	randomSamples = 32

	// randomSeed seeds the pseudo-random battery. Fixed so repeated runs
	// over the same input produce byte-identical results.
	randomSeed = 0x67616d6261
)

// sampler produces the deterministic battery of assignments shared by the
// linearity analyzer and the equivalence verifier.
type sampler struct {
	vars  []string
	width uint
}

func newSampler(vars []string, width uint) *sampler {
	return &sampler{vars: vars, width: width}
}

// Exhaustive returns true if the battery covers the entire assignment
// space, making sample-based equivalence checks exact.
func (s *sampler) Exhaustive() bool {
	return uint(len(s.vars))*s.width <= exhaustiveBits
}

// Assignments returns the battery. For small assignment spaces it is the
// full space; otherwise it is the corners of the 0/1 hypercube, pairwise
// one-one assignments, all-ones, every single-bit assignment per variable,
// and a fixed seeded pseudo-random set. The battery is deterministic for a
// given variable list and width.
func (s *sampler) Assignments() []Assignment {
	if s.Exhaustive() {
		return s.exhaustive()
	}

	var out []Assignment
	out = append(out, s.corners()...)
	out = append(out, s.pairs()...)
	out = append(out, s.assignAll(bitmask(s.width)))
	out = append(out, s.unitBits()...)
	out = append(out, s.random()...)
	return out
}

// exhaustive enumerates every assignment of the full space.
func (s *sampler) exhaustive() []Assignment {
	n := uint(len(s.vars))
	total := uint64(1) << (n * s.width)

	out := make([]Assignment, 0, total)
	for i := uint64(0); i < total; i++ {
		a := make(Assignment, n)
		for j, name := range s.vars {
			a[name] = NewValue(i>>(uint(j)*s.width), s.width)
		}
		out = append(out, a)
	}
	return out
}

// corners enumerates the 0/1 hypercube over the first cornerVarLimit
// variables. This includes the all-zero and unit-vector probes used for
// coefficient extraction, plus every simultaneous-ones combination needed
// to expose pairwise bitwise interactions.
func (s *sampler) corners() []Assignment {
	n := len(s.vars)
	if n > cornerVarLimit {
		n = cornerVarLimit
	}

	out := make([]Assignment, 0, 1<<n)
	for i := uint64(0); i < 1<<n; i++ {
		a := make(Assignment, len(s.vars))
		for j, name := range s.vars {
			if j < n {
				a[name] = NewValue((i>>uint(j))&1, s.width)
			} else {
				a[name] = NewValue(0, s.width)
			}
		}
		out = append(out, a)
	}
	return out
}

// pairs sets every pair of variables to one simultaneously. Redundant with
// corners for the leading variables but required beyond the corner limit,
// since an AND of two variables is invisible to single-unit probes.
func (s *sampler) pairs() []Assignment {
	var out []Assignment
	for i := range s.vars {
		for j := i + 1; j < len(s.vars); j++ {
			if i < cornerVarLimit && j < cornerVarLimit {
				continue // covered by corners
			}
			a := s.assignAll(0)
			a[s.vars[i]] = NewValue(1, s.width)
			a[s.vars[j]] = NewValue(1, s.width)
			out = append(out, a)
		}
	}
	return out
}

// unitBits sets a single bit of a single variable per assignment, for every
// bit position of the width.
func (s *sampler) unitBits() []Assignment {
	out := make([]Assignment, 0, uint(len(s.vars))*s.width)
	for i := range s.vars {
		for b := uint(0); b < s.width; b++ {
			a := s.assignAll(0)
			a[s.vars[i]] = NewValue(1<<b, s.width)
			out = append(out, a)
		}
	}
	return out
}

// random returns the fixed seeded pseudo-random battery.
func (s *sampler) random() []Assignment {
	rng := rand.New(rand.NewSource(randomSeed))

	out := make([]Assignment, 0, randomSamples)
	for i := 0; i < randomSamples; i++ {
		a := make(Assignment, len(s.vars))
		for _, name := range s.vars {
			a[name] = NewValue(rng.Uint64(), s.width)
		}
		out = append(out, a)
	}
	return out
}

// assignAll binds every variable to the same raw value.
func (s *sampler) assignAll(v uint64) Assignment {
	a := make(Assignment, len(s.vars))
	for _, name := range s.vars {
		a[name] = NewValue(v, s.width)
	}
	return a
}
