package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	req := require.New(t)
	c := newCatalog()

	req.NotZero(c.Len())

	categories := map[string]bool{"movie": true, "song": true, "book": true, "tv": true, "game": true}
	difficulties := map[string]bool{"easy": true, "medium": true, "hard": true}

	ids := make(map[string]bool)
	for _, p := range c.puzzles {
		req.NotEmpty(p.ID)
		req.False(ids[p.ID], "duplicate puzzle id %s", p.ID)
		ids[p.ID] = true
		req.True(categories[p.Category], "unknown category %q", p.Category)
		req.True(difficulties[p.Difficulty], "unknown difficulty %q", p.Difficulty)
		req.NotEmpty(p.Emojis)
		req.NotEmpty(p.Answer)
		req.NotEmpty(p.Hints)
	}
}

func TestCatalogRandom(t *testing.T) {
	req := require.New(t)
	c := newCatalog()

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		p := c.Random()
		req.NotNil(p)
		seen[p.ID] = true
	}

	// 500 uniform draws over 14 puzzles should touch most of the catalog.
	req.Greater(len(seen), c.Len()/2)
}
