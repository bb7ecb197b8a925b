package recommend

import (
	"sort"

	"skill-match/internal/domain/similarity"

	"github.com/google/uuid"
)

// MissingSkills returns the skills present in target but absent from the
// requester, ordered by descending frequency in corpus. Ties keep the first
// corpus appearance first; skills outside the corpus keep target order.
// Target carries the catalog scan order; duplicates in corpus raise frequency.
func MissingSkills(requester similarity.Set, target []uuid.UUID, corpus []uuid.UUID) []uuid.UUID {
	freq := make(map[uuid.UUID]int, len(corpus))
	firstSeen := make(map[uuid.UUID]int, len(corpus))
	for i, id := range corpus {
		freq[id]++
		if _, ok := firstSeen[id]; !ok {
			firstSeen[id] = i
		}
	}

	seen := make(map[uuid.UUID]struct{}, len(target))
	out := make([]uuid.UUID, 0, len(target))
	for _, id := range target {
		if requester.Contains(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	sort.SliceStable(out, func(i, j int) bool {
		fi, fj := freq[out[i]], freq[out[j]]
		if fi != fj {
			return fi > fj
		}
		si, okI := firstSeen[out[i]]
		sj, okJ := firstSeen[out[j]]
		if okI && okJ {
			return si < sj
		}
		return false
	})

	return out
}
