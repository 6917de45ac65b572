package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type record struct {
	ID   int
	Name string
}

func TestDeduplicateKeepsFirstOccurrence(t *testing.T) {
	items := []record{{1, "first"}, {2, "second"}, {1, "dup"}}

	got := Deduplicate(items, func(r record) int { return r.ID })

	assert.Equal(t, []record{{1, "first"}, {2, "second"}}, got)
}

func TestDeduplicateIdempotent(t *testing.T) {
	items := []record{{1, "a"}, {2, "b"}, {3, "c"}}

	once := Deduplicate(items, func(r record) int { return r.ID })
	twice := Deduplicate(once, func(r record) int { return r.ID })

	assert.Equal(t, once, twice)
}

func TestDeduplicateEmpty(t *testing.T) {
	got := Deduplicate(nil, func(r record) int { return r.ID })
	assert.Empty(t, got)
}

func TestDeduplicateStringKeys(t *testing.T) {
	items := []string{"7214", "7308", "7214", "N/A", "7308"}

	got := Deduplicate(items, func(s string) string { return s })

	assert.Equal(t, []string{"7214", "7308", "N/A"}, got)
}
