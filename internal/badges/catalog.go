package badges

import (
	"errors"
	"fmt"
	"sort"

	apperrors "github.com/pushp314/tradeacademy-backend/pkg/errors"
)

// Catalog is a validated, ordered set of badge definitions.
type Catalog struct {
	badges []Badge
	index  map[string]int
}

// NewCatalog validates every definition and orders them by DisplayOrder
// (ties keep input order). A single malformed entry fails the whole load;
// the returned error lists every problem found and matches
// apperrors.ErrConfiguration.
func NewCatalog(defs []Badge) (*Catalog, error) {
	var problems []error
	seen := make(map[string]struct{}, len(defs))

	for _, b := range defs {
		if err := b.validate(); err != nil {
			problems = append(problems, err)
			continue
		}
		if _, dup := seen[b.ID]; dup {
			problems = append(problems, fmt.Errorf("badge %s: duplicate id", b.ID))
			continue
		}
		seen[b.ID] = struct{}{}
	}
	if len(problems) > 0 {
		return nil, apperrors.Configuration("load badge catalog", errors.Join(problems...))
	}

	ordered := make([]Badge, len(defs))
	copy(ordered, defs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DisplayOrder < ordered[j].DisplayOrder
	})

	index := make(map[string]int, len(ordered))
	for i, b := range ordered {
		index[b.ID] = i
	}
	return &Catalog{badges: ordered, index: index}, nil
}

// All returns the badges in display order. The slice is a copy.
func (c *Catalog) All() []Badge {
	out := make([]Badge, len(c.badges))
	copy(out, c.badges)
	return out
}

func (c *Catalog) ByID(id string) (Badge, bool) {
	i, ok := c.index[id]
	if !ok {
		return Badge{}, false
	}
	return c.badges[i], true
}

func (c *Catalog) Len() int {
	return len(c.badges)
}

// Evaluate runs Evaluate over the catalog and resolves the ids to badges.
func (c *Catalog) Evaluate(s Snapshot, earned EarnedSet) []Badge {
	ids := Evaluate(s, earned, c.badges)
	out := make([]Badge, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.badges[c.index[id]])
	}
	return out
}
