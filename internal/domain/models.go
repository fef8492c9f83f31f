package domain

import (
	"time"
	"xray-tracker/internal/tier"
)

type Player struct {
	Puuid          string
	DisplayName    string
	Region         string
	Tier           tier.Name
	Division       tier.Division
	LeaguePoints   int
	ProfileIconID  int
	MainRole       string
	ShadowEligible bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p *Player) Profile() PlayerProfile {
	return PlayerProfile{
		Puuid:         p.Puuid,
		DisplayName:   p.DisplayName,
		Tier:          p.Tier,
		Division:      p.Division,
		ProfileIconID: p.ProfileIconID,
	}
}

// PlayerProfile is the public, read-only view of a player used for display.
type PlayerProfile struct {
	Puuid         string        `json:"puuid"`
	DisplayName   string        `json:"display_name"`
	Tier          tier.Name     `json:"tier"`
	Division      tier.Division `json:"division,omitempty"`
	ProfileIconID int           `json:"profile_icon_id"`
	Placeholder   bool          `json:"placeholder,omitempty"`
}

// SimilarityEdge is a directed, precomputed subject -> candidate score.
type SimilarityEdge struct {
	ID              string
	SubjectPuuid    string
	CandidatePuuid  string
	SimilarityScore float64
	Role            string
	SharedChampions []string
	UserWeakness    string
	ShadowStrength  string
	Reasoning       map[string]any
	ComputedAt      time.Time
}

type ShadowRecommendation struct {
	CandidatePuuid  string         `json:"candidate_puuid"`
	SimilarityScore float64        `json:"similarity_score"`
	Role            string         `json:"role,omitempty"`
	SharedChampions []string       `json:"shared_champions,omitempty"`
	UserWeakness    string         `json:"user_weakness,omitempty"`
	ShadowStrength  string         `json:"shadow_strength,omitempty"`
	Reasoning       map[string]any `json:"reasoning,omitempty"`
	ComputedAt      time.Time      `json:"computed_at"`
	Profile         PlayerProfile  `json:"profile"`
}

func NewShadowRecommendation(edge SimilarityEdge, profile PlayerProfile) ShadowRecommendation {
	return ShadowRecommendation{
		CandidatePuuid:  edge.CandidatePuuid,
		SimilarityScore: edge.SimilarityScore,
		Role:            edge.Role,
		SharedChampions: edge.SharedChampions,
		UserWeakness:    edge.UserWeakness,
		ShadowStrength:  edge.ShadowStrength,
		Reasoning:       edge.Reasoning,
		ComputedAt:      edge.ComputedAt,
		Profile:         profile,
	}
}

type ShadowState string

const (
	// ShadowsNotComputed means the similarity job has never run for the subject.
	ShadowsNotComputed ShadowState = "NOT_COMPUTED"
	ShadowsComputed    ShadowState = "COMPUTED"
)

type ShadowResult struct {
	State           ShadowState            `json:"state"`
	Subject         PlayerProfile          `json:"subject"`
	Recommendations []ShadowRecommendation `json:"recommendations"`
}

type XRayReport struct {
	OverallPercentile           float64               `json:"overall_percentile"`
	Rank                        tier.Rank             `json:"rank"`
	Score                       int                   `json:"score"`
	Breakdown                   map[tier.Category]int `json:"breakdown"`
	DivisionGap                 int                   `json:"division_gap"`
	CurrentRank                 *tier.Target          `json:"current_rank,omitempty"`
	NextDivision                *tier.Target          `json:"next_division,omitempty"`
	NextTier                    *tier.Target          `json:"next_tier,omitempty"`
	ImprovementsForNextDivision []tier.Improvement    `json:"improvements_for_next_division,omitempty"`
	ImprovementsForNextTier     []tier.Improvement    `json:"improvements_for_next_tier,omitempty"`
	RecommendedFocus            *tier.Improvement     `json:"recommended_focus,omitempty"`
}
