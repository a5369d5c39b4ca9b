package catalog

import (
	"slices"
	"time"

	"github.com/jonathan/career-advisor/internal/types"
)

// Catalog is an immutable snapshot of careers. Snapshots are replaced wholesale by
// Store, never modified after publication.
type Catalog struct {
	Source   string
	Version  uint64
	LoadedAt time.Time
	Fallback bool

	careers []types.Career
	byID    map[string]int
}

// NewCatalog builds an unpublished snapshot. Later duplicates of an id are shadowed
// by the first occurrence in Get but still listed by Careers.
func NewCatalog(source string, careers []types.Career) *Catalog {
	c := &Catalog{
		Source:   source,
		LoadedAt: time.Now().UTC(),
		careers:  slices.Clone(careers),
		byID:     make(map[string]int, len(careers)),
	}
	for i, career := range c.careers {
		if _, ok := c.byID[career.ID]; !ok {
			c.byID[career.ID] = i
		}
	}
	return c
}

// Careers returns the careers in source order. The slice is a copy; the maps inside
// each Career are shared and must not be modified.
func (c *Catalog) Careers() []types.Career {
	return slices.Clone(c.careers)
}

// Len returns the number of careers.
func (c *Catalog) Len() int {
	return len(c.careers)
}

// Get looks a career up by id.
func (c *Catalog) Get(id string) (types.Career, bool) {
	i, ok := c.byID[id]
	if !ok {
		return types.Career{}, false
	}
	return c.careers[i], true
}

// Info is the snapshot metadata reported by the API and CLI.
type Info struct {
	Source   string    `json:"source"`
	Version  uint64    `json:"version"`
	LoadedAt time.Time `json:"loaded_at"`
	Fallback bool      `json:"fallback"`
	Careers  int       `json:"careers"`
}

// Info returns the snapshot metadata.
func (c *Catalog) Info() Info {
	return Info{
		Source:   c.Source,
		Version:  c.Version,
		LoadedAt: c.LoadedAt,
		Fallback: c.Fallback,
		Careers:  len(c.careers),
	}
}
