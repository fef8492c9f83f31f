package tier

import "math"

const basePoints = 100

type Category string

const (
	CategoryMechanical  Category = "MECHANICAL"
	CategoryGameSense   Category = "GAME_SENSE"
	CategoryConsistency Category = "CONSISTENCY"
)

var metricCategories = map[string]Category{
	"cs_per_minute":     CategoryMechanical,
	"damage_per_minute": CategoryMechanical,
	"solo_kills":        CategoryMechanical,
	"positioning_score": CategoryMechanical,

	"vision_score":            CategoryGameSense,
	"vision_score_per_minute": CategoryGameSense,
	"kill_participation":      CategoryGameSense,
	"objective_control":       CategoryGameSense,
	"roaming_impact":          CategoryGameSense,

	"kda":              CategoryConsistency,
	"gold_efficiency":  CategoryConsistency,
	"death_efficiency": CategoryConsistency,
	"damage_share":     CategoryConsistency,
}

// CategoryOf defaults unknown metrics to CONSISTENCY.
func CategoryOf(metricID string) Category {
	if c, ok := metricCategories[metricID]; ok {
		return c
	}
	return CategoryConsistency
}

// Metric is one measured stat. Name and Value are optional and only feed the
// improvement plan.
type Metric struct {
	ID         string  `json:"id" validate:"required,max=64"`
	Name       string  `json:"name,omitempty" validate:"max=64"`
	Value      float64 `json:"value,omitempty"`
	Percentile float64 `json:"percentile" validate:"gte=0,lte=100"`
}

// PointContribution is 100 points scaled by the tier multiplier of p.
func (c *Classifier) PointContribution(p float64) int {
	return int(math.Round(basePoints * c.Classify(p).PointMultiplier))
}

// XRayScore sums the point contributions of every metric.
func (c *Classifier) XRayScore(metrics []Metric) int {
	total := 0
	for _, m := range metrics {
		total += c.PointContribution(m.Percentile)
	}
	return total
}

func (c *Classifier) CategoryBreakdown(metrics []Metric) map[Category]int {
	breakdown := map[Category]int{
		CategoryMechanical:  0,
		CategoryGameSense:   0,
		CategoryConsistency: 0,
	}
	for _, m := range metrics {
		breakdown[CategoryOf(m.ID)] += c.PointContribution(m.Percentile)
	}
	return breakdown
}

// OverallPercentile is the rounded mean, or 50 when there is nothing to average.
func OverallPercentile(metrics []Metric) float64 {
	if len(metrics) == 0 {
		return 50
	}
	var sum float64
	for _, m := range metrics {
		sum += m.Percentile
	}
	return math.Round(sum / float64(len(metrics)))
}
