package tier

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Target is a rank to climb to and the lowest percentile that reaches it.
type Target struct {
	Tier          Name     `json:"tier"`
	Division      Division `json:"division,omitempty"`
	DisplayText   string   `json:"display_text"`
	MinPercentile float64  `json:"min_percentile"`
}

// DivisionGap counts divisions between a player's current rank and the rank
// their performance percentile maps to. Positive means performing above the
// current rank. Apex tiers count as a single step of four divisions. Unknown
// tiers yield 0.
func (c *Classifier) DivisionGap(current Name, currentDiv Division, performance float64) int {
	ci, ok := c.table.index(current)
	if !ok {
		return 0
	}
	currentOrdinal := ci * divisionsPerTier
	if ci < c.table.apex {
		currentOrdinal += currentDiv.offset()
	}

	p := clamp(performance)
	pi := c.indexOf(p)
	performanceOrdinal := pi * divisionsPerTier
	if pi < c.table.apex {
		performanceOrdinal += divisionAt(c.table, pi, p).offset()
	}

	return performanceOrdinal - currentOrdinal
}

// NextDivision is one division up; from division I (or an apex tier) it is
// the next tier. ok is false at the top of the ladder.
func (t *Table) NextDivision(name Name, div Division) (Target, bool) {
	i, ok := t.index(name)
	if !ok {
		return Target{}, false
	}
	if i < t.apex && div != DivisionI && div != DivisionNone {
		next := divisions[divisionsPerTier-1-div.offset()-1]
		return t.target(i, next), true
	}
	return t.NextTier(name)
}

// NextTier is the entry rank of the tier above name.
func (t *Table) NextTier(name Name) (Target, bool) {
	i, ok := t.index(name)
	if !ok || i+1 >= len(t.tiers) {
		return Target{}, false
	}
	div := DivisionNone
	if i+1 < t.apex {
		div = DivisionIV
	}
	return t.target(i+1, div), true
}

func (t *Table) target(i int, div Division) Target {
	tier := t.tiers[i]
	lo, hi := t.band(i)
	floor := lo
	display := tier.DisplayName
	if div != DivisionNone {
		floor = lo + (hi-lo)*float64(div.offset())/divisionsPerTier
		display += " " + string(div)
	}
	return Target{
		Tier:          tier.Name,
		Division:      div,
		DisplayText:   display,
		MinPercentile: floor,
	}
}

// RankTarget describes a rank the player already holds. Apex tiers drop the
// division; a non-apex rank without one is treated as IV.
func (t *Table) RankTarget(name Name, div Division) (Target, bool) {
	i, ok := t.index(name)
	if !ok {
		return Target{}, false
	}
	switch {
	case i >= t.apex:
		div = DivisionNone
	case div == DivisionNone:
		div = DivisionIV
	}
	return t.target(i, div), true
}

// each percentile point of gap is worth roughly 1.5% of the raw stat
const improvementPerPercentile = 0.015

// Improvement is how far one metric has to move to reach a target percentile.
type Improvement struct {
	MetricID           string  `json:"metric_id"`
	MetricName         string  `json:"metric_name"`
	CurrentValue       float64 `json:"current_value"`
	TargetValue        float64 `json:"target_value"`
	ImprovementNeeded  float64 `json:"improvement_needed"`
	ImprovementPercent float64 `json:"improvement_percent"`
	Impact             float64 `json:"impact"`
	Text               string  `json:"text"`
}

// PlanImprovements estimates, per metric, the raw value that would put it at
// target. Metrics already at or above target need nothing and have no impact.
// The result is ordered by impact, highest first, ties by metric id.
func PlanImprovements(metrics []Metric, target float64) []Improvement {
	target = clamp(target)
	plan := make([]Improvement, 0, len(metrics))
	for _, m := range metrics {
		gap := max(target-clamp(m.Percentile), 0)
		percent := gap * improvementPerPercentile * 100
		targetValue := m.Value * (1 + gap*improvementPerPercentile)

		name := m.Name
		if name == "" {
			name = m.ID
		}
		imp := Improvement{
			MetricID:           m.ID,
			MetricName:         name,
			CurrentValue:       m.Value,
			TargetValue:        targetValue,
			ImprovementNeeded:  targetValue - m.Value,
			ImprovementPercent: percent,
			Impact:             gap * percent / 100,
		}
		imp.Text = imp.format()
		plan = append(plan, imp)
	}

	slices.SortStableFunc(plan, func(a, b Improvement) int {
		if c := cmp.Compare(b.Impact, a.Impact); c != 0 {
			return c
		}
		return strings.Compare(a.MetricID, b.MetricID)
	})
	return plan
}

// RecommendedFocus is the single metric worth working on, or nil when every
// metric already meets the target.
func RecommendedFocus(plan []Improvement) *Improvement {
	if len(plan) == 0 || plan[0].Impact <= 0 {
		return nil
	}
	focus := plan[0]
	return &focus
}

func (i Improvement) format() string {
	return fmt.Sprintf("Improve %s from %.1f to %.1f (+%.0f%%)",
		i.MetricName, i.CurrentValue, i.TargetValue, i.ImprovementPercent)
}
