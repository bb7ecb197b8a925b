package similarity

import (
	"math"

	"github.com/google/uuid"
)

type Set map[uuid.UUID]struct{}

func NewSet(ids ...uuid.UUID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Contains(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Add(id uuid.UUID) {
	s[id] = struct{}{}
}

func intersectionSize(a, b Set) int {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	n := 0
	for id := range small {
		if large.Contains(id) {
			n++
		}
	}
	return n
}

func Jaccard(a, b Set) float64 {
	inter := intersectionSize(a, b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func Cosine(a, b, universe Set) float64 {
	var dot, na, nb int
	for id := range universe {
		inA := a.Contains(id)
		inB := b.Contains(id)
		if inA {
			na++
		}
		if inB {
			nb++
		}
		if inA && inB {
			dot++
		}
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float64(dot) / (math.Sqrt(float64(na)) * math.Sqrt(float64(nb)))
}

// LLR scores how surprising the overlap between a and b is relative to the
// base rate of each set within the universe. When universe is empty or nil it
// defaults to a ∪ b, collapsing the "neither has" cell to 0. The caller must
// ensure universe covers a ∪ b (see CoversSets).
func LLR(a, b, universe Set) float64 {
	k11 := intersectionSize(a, b)
	k12 := len(b) - k11
	k21 := len(a) - k11
	k22 := 0
	if len(universe) > 0 {
		k22 = len(universe) - (len(a) + len(b) - k11)
	}

	hk := entropy(k11, k12, k21, k22)
	hki := entropy(k11+k12, k21+k22)
	hkj := entropy(k11+k21, k12+k22)

	score := 2 * (hk - hki - hkj)
	if score < 0 {
		return 0
	}
	return score
}

func MatchPercent(a, target Set) float64 {
	if len(target) == 0 {
		return 0
	}
	return float64(intersectionSize(a, target)) / float64(len(target))
}

func CoversSets(universe Set, sets ...Set) bool {
	for _, s := range sets {
		for id := range s {
			if !universe.Contains(id) {
				return false
			}
		}
	}
	return true
}

func entropy(counts ...int) float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total <= 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		if c > 0 {
			sum += float64(c) * math.Log(float64(c)/float64(total))
		}
	}
	return sum
}
