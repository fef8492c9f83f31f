package tier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankTarget(t *testing.T) {
	table := DefaultTable()

	current, ok := table.RankTarget(Gold, DivisionII)
	require.True(t, ok)
	assert.Equal(t, Target{Tier: Gold, Division: DivisionII, DisplayText: "Gold II", MinPercentile: 27.5}, current)

	current, ok = table.RankTarget(Gold, DivisionNone)
	require.True(t, ok)
	assert.Equal(t, "Gold IV", current.DisplayText)

	current, ok = table.RankTarget(Master, DivisionI)
	require.True(t, ok)
	assert.Equal(t, Target{Tier: Master, DisplayText: "Master", MinPercentile: 80}, current)

	_, ok = table.RankTarget(Name("UNRANKED"), DivisionI)
	assert.False(t, ok)
}

func TestPlanImprovements(t *testing.T) {
	metrics := []Metric{
		{ID: "kda", Value: 2, Percentile: 25},
		{ID: "cs_per_minute", Name: "CS per minute", Value: 4, Percentile: 15},
		{ID: "vision_score", Value: 30, Percentile: 40},
	}

	plan := PlanImprovements(metrics, 35)
	require.Len(t, plan, 3)

	cs := plan[0]
	assert.Equal(t, "cs_per_minute", cs.MetricID)
	assert.Equal(t, "CS per minute", cs.MetricName)
	assert.InDelta(t, 5.2, cs.TargetValue, 1e-9)
	assert.InDelta(t, 1.2, cs.ImprovementNeeded, 1e-9)
	assert.InDelta(t, 30, cs.ImprovementPercent, 1e-9)
	assert.InDelta(t, 6, cs.Impact, 1e-9)
	assert.Equal(t, "Improve CS per minute from 4.0 to 5.2 (+30%)", cs.Text)

	kda := plan[1]
	assert.Equal(t, "kda", kda.MetricName)
	assert.InDelta(t, 1.5, kda.Impact, 1e-9)
	assert.Equal(t, "Improve kda from 2.0 to 2.3 (+15%)", kda.Text)

	vision := plan[2]
	assert.Zero(t, vision.Impact)
	assert.Zero(t, vision.ImprovementNeeded)
	assert.Equal(t, 30.0, vision.TargetValue)
	assert.Equal(t, "Improve vision_score from 30.0 to 30.0 (+0%)", vision.Text)
}

func TestPlanImprovements_TiesOrderedByID(t *testing.T) {
	plan := PlanImprovements([]Metric{
		{ID: "b", Percentile: 10},
		{ID: "c", Percentile: 60},
		{ID: "a", Percentile: 10},
	}, 50)

	ids := make([]string, len(plan))
	for i, imp := range plan {
		ids[i] = imp.MetricID
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestPlanImprovements_Empty(t *testing.T) {
	assert.Empty(t, PlanImprovements(nil, 50))
}

func TestRecommendedFocus(t *testing.T) {
	plan := PlanImprovements([]Metric{
		{ID: "kda", Value: 2, Percentile: 30},
		{ID: "cs_per_minute", Value: 4, Percentile: 10},
	}, 35)

	focus := RecommendedFocus(plan)
	require.NotNil(t, focus)
	assert.Equal(t, "cs_per_minute", focus.MetricID)

	// mutating the focus must not touch the plan
	focus.Impact = 0
	assert.NotZero(t, plan[0].Impact)

	assert.Nil(t, RecommendedFocus(nil))
	assert.Nil(t, RecommendedFocus(PlanImprovements([]Metric{{ID: "kda", Percentile: 90}}, 35)))
}
