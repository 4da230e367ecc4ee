// internal/resolver/resolver.go
package resolver

import (
	"review-analyzer/internal/textutil"
)

// Acceptance thresholds for fuzzy canonical resolution. If two canonical
// names are nearly equally close, the resolver declines rather than guess;
// only an exact alias hit can resolve an ambiguous query.
const (
	minRatio     = 0.90
	maxDistance  = 2
	ambiguityGap = 0.06
)

// Resolver maps a free-text shop query to a canonical shop name. Resolution
// is advisory: callers fall back to the raw query when it declines.
type Resolver struct {
	canonical []entry
	aliases   map[string]string
}

type entry struct {
	name       string
	normalized string
}

// New builds a resolver over a list of canonical shop names and an alias
// table mapping shorthand (e.g. "mcd") to a canonical name. Alias keys are
// matched after normalization.
func New(canonicalNames []string, aliases map[string]string) *Resolver {
	r := &Resolver{
		canonical: make([]entry, 0, len(canonicalNames)),
		aliases:   make(map[string]string, len(aliases)),
	}
	for _, name := range canonicalNames {
		r.canonical = append(r.canonical, entry{name: name, normalized: textutil.Normalize(name)})
	}
	for alias, name := range aliases {
		r.aliases[textutil.Normalize(alias)] = name
	}
	return r
}

// Resolve returns the canonical name for a query and whether resolution
// succeeded. Order: exact alias lookup, exact normalized equality, then the
// fuzzy classifier with ambiguity-gap rejection.
func (r *Resolver) Resolve(query string) (string, bool) {
	norm := textutil.Normalize(query)
	if norm == "" {
		return "", false
	}

	if name, ok := r.aliases[norm]; ok {
		return name, true
	}

	for _, e := range r.canonical {
		if e.normalized == norm {
			return e.name, true
		}
	}

	var (
		best       *entry
		bestRatio  float64
		bestDist   int
		secondBest float64
	)
	for i := range r.canonical {
		e := &r.canonical[i]
		ratio := textutil.Ratio(norm, e.normalized)
		if best == nil || ratio > bestRatio {
			if best != nil {
				secondBest = bestRatio
			}
			best = e
			bestRatio = ratio
			bestDist = textutil.EditDistance(norm, e.normalized)
		} else if ratio > secondBest {
			secondBest = ratio
		}
	}

	if best == nil {
		return "", false
	}
	if bestRatio < minRatio || bestDist > maxDistance {
		return "", false
	}
	if bestRatio-secondBest < ambiguityGap {
		return "", false
	}
	return best.name, true
}

// DefaultCanonicalNames seeds the resolver with the chains the review table
// is known to carry. Deployments override via configuration of the dataset,
// not code.
func DefaultCanonicalNames() []string {
	return []string{
		"McDonald's",
		"Burger King",
		"Starbucks",
		"Subway",
		"KFC",
		"Pizza Hut",
		"Domino's Pizza",
		"Dunkin' Donuts",
	}
}

// DefaultAliases maps common shorthand to canonical names.
func DefaultAliases() map[string]string {
	return map[string]string{
		"mcd":      "McDonald's",
		"mcds":     "McDonald's",
		"maccas":   "McDonald's",
		"bk":       "Burger King",
		"sbux":     "Starbucks",
		"dominos":  "Domino's Pizza",
		"dunkin":   "Dunkin' Donuts",
		"pizzahut": "Pizza Hut",
	}
}
