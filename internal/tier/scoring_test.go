package tier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointContribution(t *testing.T) {
	c := NewClassifier(DefaultTable())

	assert.Equal(t, 20, c.PointContribution(1))
	assert.Equal(t, 100, c.PointContribution(40))
	assert.Equal(t, 200, c.PointContribution(99))
}

func TestXRayScoreAndBreakdown(t *testing.T) {
	c := NewClassifier(DefaultTable())
	metrics := []Metric{
		{ID: "cs_per_minute", Percentile: 97},     // 200
		{ID: "vision_score", Percentile: 55},      // 120
		{ID: "kda", Percentile: 25},               // 80
		{ID: "something_custom", Percentile: 7.5}, // 40, consistency
	}

	assert.Equal(t, 440, c.XRayScore(metrics))
	assert.Equal(t, map[Category]int{
		CategoryMechanical:  200,
		CategoryGameSense:   120,
		CategoryConsistency: 120,
	}, c.CategoryBreakdown(metrics))
}

func TestOverallPercentile(t *testing.T) {
	assert.Equal(t, 50.0, OverallPercentile(nil))
	assert.Equal(t, 34.0, OverallPercentile([]Metric{{Percentile: 33.4}, {Percentile: 34.4}}))
}

func TestDivisionGap(t *testing.T) {
	c := NewClassifier(DefaultTable())

	tests := []struct {
		name    string
		current Name
		div     Division
		p       float64
		want    int
	}{
		{"same rank", Gold, DivisionII, 28, 0},
		{"one division above", Gold, DivisionIII, 28, 1},
		{"one tier below", Platinum, DivisionII, 28, -4},
		{"apex current", Master, DivisionNone, 85, 0},
		{"apex performance", Diamond, DivisionI, 80, 1},
		{"unknown tier", Name("UNRANKED"), DivisionNone, 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.DivisionGap(tt.current, tt.div, tt.p))
		})
	}
}

func TestNextDivisionAndTier(t *testing.T) {
	table := DefaultTable()
	c := NewClassifier(table)

	next, ok := table.NextDivision(Gold, DivisionIV)
	require.True(t, ok)
	assert.Equal(t, Target{Tier: Gold, Division: DivisionIII, DisplayText: "Gold III", MinPercentile: 23.75}, next)
	assert.Equal(t, DivisionIII, c.Division(next.MinPercentile))

	next, ok = table.NextDivision(Gold, DivisionI)
	require.True(t, ok)
	assert.Equal(t, Target{Tier: Platinum, Division: DivisionIV, DisplayText: "Platinum IV", MinPercentile: 35}, next)

	next, ok = table.NextDivision(Diamond, DivisionI)
	require.True(t, ok)
	assert.Equal(t, Target{Tier: Master, DisplayText: "Master", MinPercentile: 80}, next)

	next, ok = table.NextTier(Master)
	require.True(t, ok)
	assert.Equal(t, Grandmaster, next.Tier)

	_, ok = table.NextDivision(Challenger, DivisionNone)
	assert.False(t, ok)
	_, ok = table.NextTier(Name("UNRANKED"))
	assert.False(t, ok)
}
