// internal/resolver/resolver_test.go
package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newDefault() *Resolver {
	return New(DefaultCanonicalNames(), DefaultAliases())
}

func TestResolver_AliasLookup(t *testing.T) {
	r := newDefault()

	tests := []struct {
		query    string
		expected string
	}{
		{"mcd", "McDonald's"},
		{"MCD", "McDonald's"},
		{" mcd ", "McDonald's"},
		{"bk", "Burger King"},
		{"sbux", "Starbucks"},
	}

	for _, tt := range tests {
		name, ok := r.Resolve(tt.query)
		assert.True(t, ok, "expected %q to resolve", tt.query)
		assert.Equal(t, tt.expected, name)
	}
}

func TestResolver_ExactNormalizedMatch(t *testing.T) {
	r := newDefault()

	name, ok := r.Resolve("McDonalds")
	assert.True(t, ok)
	assert.Equal(t, "McDonald's", name)

	name, ok = r.Resolve("pizza hut")
	assert.True(t, ok)
	assert.Equal(t, "Pizza Hut", name)
}

func TestResolver_FuzzyAccept(t *testing.T) {
	r := newDefault()

	// One edit on a ten-character name: ratio 0.9, distance 1, clear leader.
	name, ok := r.Resolve("burgerqing")
	assert.True(t, ok)
	assert.Equal(t, "Burger King", name)
}

func TestResolver_FuzzyRejectLowRatio(t *testing.T) {
	r := newDefault()

	// One edit on a nine-character name already falls under the 0.90 ratio
	// gate, so it must go through the alias table instead.
	_, ok := r.Resolve("starbuckz")
	assert.False(t, ok)

	_, ok = r.Resolve("xyz")
	assert.False(t, ok)
}

func TestResolver_AmbiguityGapRejection(t *testing.T) {
	r := New([]string{"Cafe Aroma", "Cafe Aromas"}, nil)

	// Both candidates sit at ratio 0.9; the resolver must decline rather
	// than pick one.
	_, ok := r.Resolve("cafearomaz")
	assert.False(t, ok)

	// An exact alias still resolves an otherwise ambiguous query.
	r = New([]string{"Cafe Aroma", "Cafe Aromas"}, map[string]string{"cafearomaz": "Cafe Aroma"})
	name, ok := r.Resolve("cafearomaz")
	assert.True(t, ok)
	assert.Equal(t, "Cafe Aroma", name)
}

func TestResolver_EmptyQuery(t *testing.T) {
	r := newDefault()

	_, ok := r.Resolve("")
	assert.False(t, ok)

	_, ok = r.Resolve("!!!")
	assert.False(t, ok)
}

func TestResolver_NoCandidates(t *testing.T) {
	r := New(nil, nil)
	_, ok := r.Resolve("anything")
	assert.False(t, ok)
}
