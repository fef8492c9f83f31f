package service

import (
	"context"
	"errors"
	"fmt"
	"xray-tracker/internal/constants"
	"xray-tracker/internal/domain"
	"xray-tracker/internal/tier"
	"xray-tracker/internal/validation"

	"github.com/rs/zerolog"
)

type XRayService struct {
	classifier *tier.Classifier
	profiles   ProfileStore
	validator  *validation.Validator
	logger     zerolog.Logger
}

func NewXRayService(classifier *tier.Classifier, profiles ProfileStore, validator *validation.Validator, logger zerolog.Logger) *XRayService {
	return &XRayService{
		classifier: classifier,
		profiles:   profiles,
		validator:  validator,
		logger:     logger,
	}
}

// Evaluate scores a player's metric percentiles. When puuid is set the
// report also carries the division gap to that player's current rank and
// the next rank to aim for; otherwise targets are relative to the rank the
// metrics map to. Each target comes with a per-metric improvement plan.
func (s *XRayService) Evaluate(ctx context.Context, puuid string, metrics []tier.Metric) (*domain.XRayReport, error) {
	for i := range metrics {
		if err := s.validator.Validate(&metrics[i]); err != nil {
			return nil, fmt.Errorf("metric %d: %w", i, err)
		}
	}

	overall := tier.OverallPercentile(metrics)
	rank := s.classifier.Rank(overall)

	report := &domain.XRayReport{
		OverallPercentile: overall,
		Rank:              rank,
		Score:             s.classifier.XRayScore(metrics),
		Breakdown:         s.classifier.CategoryBreakdown(metrics),
	}

	currentTier, currentDiv := rank.Tier.Name, rank.Division
	if puuid != "" {
		if err := validatePuuid(puuid); err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
		defer cancel()

		profile, err := s.profiles.GetProfile(ctx, puuid)
		if err == nil && profile == nil {
			err = domain.ErrNotFound
		}
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", domain.ErrSubjectNotFound, puuid)
			}
			return nil, upstreamErr("profile store", err)
		}
		currentTier, currentDiv = profile.Tier, profile.Division
		report.DivisionGap = s.classifier.DivisionGap(currentTier, currentDiv, overall)
	}

	table := s.classifier.Table()
	if current, ok := table.RankTarget(currentTier, currentDiv); ok {
		report.CurrentRank = &current
	}
	if next, ok := table.NextDivision(currentTier, currentDiv); ok {
		report.NextDivision = &next
		report.ImprovementsForNextDivision = tier.PlanImprovements(metrics, next.MinPercentile)
		report.RecommendedFocus = tier.RecommendedFocus(report.ImprovementsForNextDivision)
	}
	if next, ok := table.NextTier(currentTier); ok {
		report.NextTier = &next
		report.ImprovementsForNextTier = tier.PlanImprovements(metrics, next.MinPercentile)
	}

	s.logger.Debug().
		Str("puuid", puuid).
		Int("metrics", len(metrics)).
		Str("rank", rank.DisplayText).
		Int("score", report.Score).
		Msg("x-ray evaluated")

	return report, nil
}
