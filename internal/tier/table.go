// Package tier maps performance percentiles onto the ranked ladder.
//
// Percentiles follow "top X%" semantics: higher is better, so IRON starts at 0
// and CHALLENGER covers the top band up to 100.
package tier

import (
	"fmt"
	"strings"
)

type Name string

const (
	Iron        Name = "IRON"
	Bronze      Name = "BRONZE"
	Silver      Name = "SILVER"
	Gold        Name = "GOLD"
	Platinum    Name = "PLATINUM"
	Emerald     Name = "EMERALD"
	Diamond     Name = "DIAMOND"
	Master      Name = "MASTER"
	Grandmaster Name = "GRANDMASTER"
	Challenger  Name = "CHALLENGER"
)

// Division is the sub-rank inside a tier. Apex tiers use DivisionNone.
type Division string

const (
	DivisionNone Division = ""
	DivisionI    Division = "I"
	DivisionII   Division = "II"
	DivisionIII  Division = "III"
	DivisionIV   Division = "IV"
)

// best first
var divisions = [...]Division{DivisionI, DivisionII, DivisionIII, DivisionIV}

const divisionsPerTier = 4

func ParseDivision(s string) (Division, bool) {
	switch d := Division(strings.ToUpper(strings.TrimSpace(s))); d {
	case DivisionNone, DivisionI, DivisionII, DivisionIII, DivisionIV:
		return d, true
	}
	return DivisionNone, false
}

// offset counts divisions from the bottom of a tier: IV=0 ... I=3.
func (d Division) offset() int {
	for i, div := range divisions {
		if div == d {
			return divisionsPerTier - 1 - i
		}
	}
	return 0
}

type Tier struct {
	Name            Name    `json:"name"`
	DisplayName     string  `json:"display_name"`
	MinPercentile   float64 `json:"min_percentile"`
	Color           string  `json:"color"`
	Gradient        string  `json:"gradient"`
	PointMultiplier float64 `json:"point_multiplier"`
}

// Table is an immutable, ascending sequence of tiers covering [0,100].
// Tiers at or above the apex index have no divisions.
type Table struct {
	tiers []Tier
	apex  int
}

var defaultTiers = []Tier{
	{Name: Iron, DisplayName: "Iron", MinPercentile: 0, Color: "#6B6B6B", Gradient: "from-gray-500 to-gray-600", PointMultiplier: 0.2},
	{Name: Bronze, DisplayName: "Bronze", MinPercentile: 5, Color: "#CD7F32", Gradient: "from-orange-700 to-orange-800", PointMultiplier: 0.4},
	{Name: Silver, DisplayName: "Silver", MinPercentile: 10, Color: "#C0C0C0", Gradient: "from-gray-300 to-gray-400", PointMultiplier: 0.6},
	{Name: Gold, DisplayName: "Gold", MinPercentile: 20, Color: "#FFD700", Gradient: "from-yellow-500 to-yellow-600", PointMultiplier: 0.8},
	{Name: Platinum, DisplayName: "Platinum", MinPercentile: 35, Color: "#4ECDC4", Gradient: "from-cyan-400 to-cyan-500", PointMultiplier: 1.0},
	{Name: Emerald, DisplayName: "Emerald", MinPercentile: 50, Color: "#00D97E", Gradient: "from-green-400 to-green-500", PointMultiplier: 1.2},
	{Name: Diamond, DisplayName: "Diamond", MinPercentile: 65, Color: "#57C4E8", Gradient: "from-blue-400 to-blue-500", PointMultiplier: 1.4},
	{Name: Master, DisplayName: "Master", MinPercentile: 80, Color: "#C27FFF", Gradient: "from-purple-400 to-purple-500", PointMultiplier: 1.6},
	{Name: Grandmaster, DisplayName: "Grandmaster", MinPercentile: 90, Color: "#FF4655", Gradient: "from-red-500 to-red-600", PointMultiplier: 1.8},
	{Name: Challenger, DisplayName: "Challenger", MinPercentile: 95, Color: "#F4E5C2", Gradient: "from-yellow-200 via-yellow-300 to-yellow-400", PointMultiplier: 2.0},
}

// NewTable validates and copies tiers. apex names the lowest tier without
// divisions; an empty apex means every tier has divisions.
func NewTable(tiers []Tier, apex Name) (*Table, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("tier table is empty")
	}
	if tiers[0].MinPercentile != 0 {
		return nil, fmt.Errorf("lowest tier %s must start at percentile 0, got %v", tiers[0].Name, tiers[0].MinPercentile)
	}

	seen := make(map[Name]struct{}, len(tiers))
	for i, t := range tiers {
		if t.Name == "" {
			return nil, fmt.Errorf("tier at index %d has no name", i)
		}
		if _, dup := seen[t.Name]; dup {
			return nil, fmt.Errorf("duplicate tier %s", t.Name)
		}
		seen[t.Name] = struct{}{}

		if t.MinPercentile < 0 || t.MinPercentile >= 100 {
			return nil, fmt.Errorf("tier %s min percentile %v outside [0,100)", t.Name, t.MinPercentile)
		}
		if i > 0 && t.MinPercentile <= tiers[i-1].MinPercentile {
			return nil, fmt.Errorf("tier %s min percentile %v not above %s (%v)", t.Name, t.MinPercentile, tiers[i-1].Name, tiers[i-1].MinPercentile)
		}
	}

	apexIdx := len(tiers)
	if apex != "" {
		apexIdx = -1
		for i, t := range tiers {
			if t.Name == apex {
				apexIdx = i
				break
			}
		}
		if apexIdx < 0 {
			return nil, fmt.Errorf("apex tier %s not in table", apex)
		}
	}

	return &Table{
		tiers: append([]Tier(nil), tiers...),
		apex:  apexIdx,
	}, nil
}

// DefaultTable is the product ladder with MASTER as the first apex tier.
func DefaultTable() *Table {
	t, err := NewTable(defaultTiers, Master)
	if err != nil {
		panic(err)
	}
	return t
}

// Tiers returns a copy of the table, lowest tier first.
func (t *Table) Tiers() []Tier {
	return append([]Tier(nil), t.tiers...)
}

// Lookup returns the display data for name.
func (t *Table) Lookup(name Name) (Tier, bool) {
	if i, ok := t.index(name); ok {
		return t.tiers[i], true
	}
	return Tier{}, false
}

// Parse resolves a case-insensitive tier name, e.g. "gold".
func (t *Table) Parse(s string) (Name, bool) {
	name := Name(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := t.index(name); !ok {
		return "", false
	}
	return name, true
}

func (t *Table) HasDivisions(name Name) bool {
	i, ok := t.index(name)
	return ok && i < t.apex
}

func (t *Table) index(name Name) (int, bool) {
	for i, tier := range t.tiers {
		if tier.Name == name {
			return i, true
		}
	}
	return -1, false
}

// band returns [lo, hi) for tier i; the top tier ends at 100 inclusive.
func (t *Table) band(i int) (lo, hi float64) {
	lo = t.tiers[i].MinPercentile
	hi = 100
	if i+1 < len(t.tiers) {
		hi = t.tiers[i+1].MinPercentile
	}
	return lo, hi
}
