package server

import (
	"xray-tracker/internal/domain"
	"xray-tracker/internal/tier"
)

type ClassifyTierRequest struct {
	Percentile float64 `json:"percentile"`
}

type ClassifyTierResponse struct {
	Tier        tier.Tier     `json:"tier"`
	Division    tier.Division `json:"division,omitempty"`
	DisplayText string        `json:"display_text"`
	Points      int           `json:"points"`
}

type GetShadowsRequest struct {
	Puuid string `json:"puuid" validate:"required,max=128"`
	Limit *int32 `json:"limit,omitempty"`
}

type GetShadowsByNameRequest struct {
	Name  string `json:"name" validate:"required,max=64"`
	Limit *int32 `json:"limit,omitempty"`
}

type ShadowEdge struct {
	ShadowPuuid     string         `json:"shadow_puuid" validate:"required,max=128"`
	SimilarityScore float64        `json:"similarity_score" validate:"gte=0,lte=1"`
	Role            string         `json:"role,omitempty" validate:"max=16"`
	SharedChampions []string       `json:"shared_champions,omitempty" validate:"max=10"`
	UserWeakness    string         `json:"user_weakness,omitempty"`
	ShadowStrength  string         `json:"shadow_strength,omitempty"`
	Reasoning       map[string]any `json:"reasoning,omitempty"`
}

type ImportShadowsRequest struct {
	Puuid   string       `json:"puuid" validate:"required,max=128"`
	Shadows []ShadowEdge `json:"shadows" validate:"max=100,unique=ShadowPuuid,dive"`
}

type ImportShadowsResponse struct {
	RunID string `json:"run_id"`
	Count int    `json:"count"`
}

type GetPlayerRequest struct {
	Puuid string `json:"puuid,omitempty" validate:"required_without=Name,max=128"`
	Name  string `json:"name,omitempty" validate:"max=64"`
}

type PlayerInput struct {
	Puuid          string `json:"puuid" validate:"required,max=128"`
	DisplayName    string `json:"display_name" validate:"required,max=64"`
	Region         string `json:"region" validate:"max=16"`
	Tier           string `json:"tier" validate:"required,max=16"`
	Division       string `json:"division,omitempty" validate:"max=3"`
	LeaguePoints   int    `json:"league_points" validate:"gte=0"`
	ProfileIconID  int    `json:"profile_icon_id" validate:"gte=0"`
	MainRole       string `json:"main_role,omitempty" validate:"max=16"`
	ShadowEligible bool   `json:"shadow_eligible"`
}

type ImportPlayersRequest struct {
	Players []PlayerInput `json:"players" validate:"required,min=1,max=500,unique=Puuid,dive"`
}

type ImportPlayersResponse struct {
	Count int `json:"count"`
}

type PlayerResponse struct {
	Puuid          string        `json:"puuid"`
	DisplayName    string        `json:"display_name"`
	Region         string        `json:"region"`
	Tier           tier.Name     `json:"tier"`
	Division       tier.Division `json:"division,omitempty"`
	LeaguePoints   int           `json:"league_points"`
	ProfileIconID  int           `json:"profile_icon_id"`
	MainRole       string        `json:"main_role,omitempty"`
	ShadowEligible bool          `json:"shadow_eligible"`
	UpdatedAt      int64         `json:"updated_at"`
	TierInfo       *tier.Tier    `json:"tier_info,omitempty"`
}

type SearchSuggestionsRequest struct {
	Query string `json:"query" validate:"max=64"`
}

type SearchSuggestionsResponse struct {
	Players []domain.PlayerProfile `json:"players"`
}

type EvaluateXRayRequest struct {
	Puuid   string        `json:"puuid,omitempty" validate:"max=128"`
	Metrics []tier.Metric `json:"metrics" validate:"max=64,dive"`
}

func toPlayerResponse(p *domain.Player) *PlayerResponse {
	return &PlayerResponse{
		Puuid:          p.Puuid,
		DisplayName:    p.DisplayName,
		Region:         p.Region,
		Tier:           p.Tier,
		Division:       p.Division,
		LeaguePoints:   p.LeaguePoints,
		ProfileIconID:  p.ProfileIconID,
		MainRole:       p.MainRole,
		ShadowEligible: p.ShadowEligible,
		UpdatedAt:      p.UpdatedAt.Unix(),
	}
}

func (p PlayerInput) toDomain() domain.Player {
	return domain.Player{
		Puuid:          p.Puuid,
		DisplayName:    p.DisplayName,
		Region:         p.Region,
		Tier:           tier.Name(p.Tier),
		Division:       tier.Division(p.Division),
		LeaguePoints:   p.LeaguePoints,
		ProfileIconID:  p.ProfileIconID,
		MainRole:       p.MainRole,
		ShadowEligible: p.ShadowEligible,
	}
}

func (e ShadowEdge) toDomain(subject string) domain.SimilarityEdge {
	return domain.SimilarityEdge{
		SubjectPuuid:    subject,
		CandidatePuuid:  e.ShadowPuuid,
		SimilarityScore: e.SimilarityScore,
		Role:            e.Role,
		SharedChampions: e.SharedChampions,
		UserWeakness:    e.UserWeakness,
		ShadowStrength:  e.ShadowStrength,
		Reasoning:       e.Reasoning,
	}
}

func limitPtr(limit *int32) *int {
	if limit == nil {
		return nil
	}
	n := int(*limit)
	return &n
}
