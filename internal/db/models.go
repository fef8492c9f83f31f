package db

import (
	"time"
)

type Player struct {
	Puuid            string
	DisplayName      string
	Region           string
	Tier             string
	Division         string
	LeaguePoints     int64
	ProfileIconID    int64
	MainRole         string
	IsShadowEligible bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type ShadowRecommendation struct {
	ID              string
	UserPuuid       string
	ShadowPuuid     string
	SimilarityScore float64
	Role            string
	SharedChampions string
	UserWeakness    string
	ShadowStrength  string
	Reasoning       string
	ComputedAt      time.Time
}

type ShadowRun struct {
	UserPuuid      string
	RunID          string
	CandidateCount int64
	ComputedAt     time.Time
}
