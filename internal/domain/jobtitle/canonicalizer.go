package jobtitle

import "strings"

type Category struct {
	Name       string
	Variations []string
}

type MatchMode int

const (
	MatchExact MatchMode = iota
	MatchContains
)

type Canonicalizer struct {
	table []Category
}

func NewCanonicalizer(table []Category) *Canonicalizer {
	out := make([]Category, 0, len(table))
	for _, c := range table {
		vars := make([]string, 0, len(c.Variations))
		vars = append(vars, c.Variations...)
		out = append(out, Category{Name: c.Name, Variations: vars})
	}
	return &Canonicalizer{table: out}
}

func Default() *Canonicalizer {
	return NewCanonicalizer(DefaultTable)
}

// Resolve walks categories in table order and variations in list order; the
// first variation that matches wins. Contains mode can false-positive on short
// tokens, so exact is the preferred mode for title lookup.
func (c *Canonicalizer) Resolve(title string, mode MatchMode) (Category, bool) {
	t := normalize(title)
	if t == "" {
		return Category{}, false
	}

	for _, cat := range c.table {
		for _, v := range cat.Variations {
			nv := normalize(v)
			if nv == "" {
				continue
			}
			if mode == MatchContains {
				if strings.Contains(t, nv) {
					return cat, true
				}
				continue
			}
			if t == nv {
				return cat, true
			}
		}
	}
	return Category{}, false
}

func (c *Canonicalizer) Variations(title string, mode MatchMode) []string {
	cat, ok := c.Resolve(title, mode)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(cat.Variations))
	out = append(out, cat.Variations...)
	return out
}

// TokenOverlap is the ratio of whitespace tokens in requester that also appear
// in other, case-insensitive, over the requester's token count.
func TokenOverlap(requester, other string) float64 {
	reqTokens := strings.Fields(strings.ToLower(requester))
	if len(reqTokens) == 0 {
		return 0
	}

	otherTokens := map[string]struct{}{}
	for _, tok := range strings.Fields(strings.ToLower(other)) {
		otherTokens[tok] = struct{}{}
	}

	shared := 0
	for _, tok := range reqTokens {
		if _, ok := otherTokens[tok]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(reqTokens))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
