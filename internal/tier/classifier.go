package tier

import (
	"math"
	"sort"
)

// Rank is a tier plus its division, e.g. "Gold II" or "Master".
type Rank struct {
	Tier        Tier     `json:"tier"`
	Division    Division `json:"division,omitempty"`
	DisplayText string   `json:"display_text"`
}

// Classifier maps percentiles onto a Table. It holds no mutable state and is
// safe for concurrent use.
type Classifier struct {
	table *Table
}

func NewClassifier(table *Table) *Classifier {
	return &Classifier{table: table}
}

func (c *Classifier) Table() *Table {
	return c.table
}

// Classify returns the greatest tier whose MinPercentile <= p. Out-of-range
// input is clamped to [0,100]; a percentile on a boundary belongs to the
// higher tier.
func (c *Classifier) Classify(p float64) Tier {
	return c.table.tiers[c.indexOf(p)]
}

// Division interpolates p across its tier's band: the top quarter is I, the
// bottom quarter IV. Quarter boundaries belong to the better division.
func (c *Classifier) Division(p float64) Division {
	p = clamp(p)
	i := c.indexOf(p)
	if i >= c.table.apex {
		return DivisionNone
	}
	return divisionAt(c.table, i, p)
}

func (c *Classifier) Rank(p float64) Rank {
	p = clamp(p)
	i := c.indexOf(p)
	t := c.table.tiers[i]
	if i >= c.table.apex {
		return Rank{Tier: t, DisplayText: t.DisplayName}
	}
	d := divisionAt(c.table, i, p)
	return Rank{Tier: t, Division: d, DisplayText: t.DisplayName + " " + string(d)}
}

func (c *Classifier) indexOf(p float64) int {
	p = clamp(p)
	tiers := c.table.tiers
	return sort.Search(len(tiers), func(i int) bool {
		return tiers[i].MinPercentile > p
	}) - 1
}

func divisionAt(t *Table, i int, p float64) Division {
	lo, hi := t.band(i)
	steps := int(math.Floor((p - lo) / (hi - lo) * divisionsPerTier))
	if steps >= divisionsPerTier {
		steps = divisionsPerTier - 1
	}
	if steps < 0 {
		steps = 0
	}
	return divisions[divisionsPerTier-1-steps]
}

func clamp(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
