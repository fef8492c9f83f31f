package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"xray-tracker/internal/config"
	"xray-tracker/internal/constants"
	"xray-tracker/internal/domain"
	"xray-tracker/internal/metrics"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type ShadowService struct {
	profiles     ProfileStore
	similarity   SimilarityStore
	writer       ShadowWriter
	defaultLimit int
	timeout      time.Duration
	logger       zerolog.Logger
}

func NewShadowService(profiles ProfileStore, similarity SimilarityStore, writer ShadowWriter, cfg *config.Config, logger zerolog.Logger) *ShadowService {
	limit := cfg.ShadowDefaultLimit
	if limit <= 0 {
		limit = constants.DefaultShadowLimit
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = constants.RequestTimeout
	}
	return &ShadowService{
		profiles:     profiles,
		similarity:   similarity,
		writer:       writer,
		defaultLimit: limit,
		timeout:      timeout,
		logger:       logger,
	}
}

// GetShadows returns up to limit similar players for subject, best first,
// each enriched with its profile. A nil limit uses the configured default.
//
// A subject the similarity job has never processed yields NOT_COMPUTED with
// no recommendations. A candidate whose profile cannot be loaded gets the
// placeholder profile instead of failing the request. Cancellation of ctx
// fails the whole call.
func (s *ShadowService) GetShadows(ctx context.Context, subject string, limit *int) (*domain.ShadowResult, error) {
	start := time.Now()
	result, err := s.getShadows(ctx, subject, limit)
	metrics.RecordShadowRequest(outcomeOf(result, err), time.Since(start))
	return result, err
}

func (s *ShadowService) getShadows(ctx context.Context, subject string, limit *int) (*domain.ShadowResult, error) {
	n, err := s.resolveLimit(subject, limit)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	log := s.logger.With().Str("puuid", subject).Int("limit", n).Logger()
	log.Debug().Msg("getting shadows")

	var (
		subjectProfile *domain.PlayerProfile
		edges          []domain.SimilarityEdge
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.profiles.GetProfile(gCtx, subject)
		if err == nil && p == nil {
			err = domain.ErrNotFound
		}
		if err != nil {
			return classifySubjectErr(subject, err)
		}
		subjectProfile = p
		return nil
	})
	g.Go(func() error {
		e, err := s.similarity.TopCandidates(gCtx, subject, n)
		if err != nil {
			return upstreamErr("similarity store", err)
		}
		edges = e
		return nil
	})
	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.Warn().Err(err).Msg("failed to resolve subject or candidates")
		return nil, err
	}

	if len(edges) == 0 {
		computed, err := s.similarity.HasComputed(ctx, subject)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, upstreamErr("similarity store", err)
		}
		state := domain.ShadowsComputed
		if !computed {
			state = domain.ShadowsNotComputed
		}
		log.Info().Str("state", string(state)).Msg("no shadows for player")
		return &domain.ShadowResult{
			State:           state,
			Subject:         *subjectProfile,
			Recommendations: []domain.ShadowRecommendation{},
		}, nil
	}

	recommendations, err := s.enrich(ctx, edges, log)
	if err != nil {
		return nil, err
	}
	// lookups that ignore ctx can all succeed after the caller gave up
	if err := ctx.Err(); err != nil {
		log.Warn().Err(err).Msg("shadow request cancelled after enrichment")
		return nil, err
	}

	log.Info().Int("count", len(recommendations)).Msg("shadows fetched successfully")
	return &domain.ShadowResult{
		State:           domain.ShadowsComputed,
		Subject:         *subjectProfile,
		Recommendations: recommendations,
	}, nil
}

// enrich looks up every candidate concurrently. Each result lands in the slot
// of its edge, so the store's score order survives any completion order.
func (s *ShadowService) enrich(ctx context.Context, edges []domain.SimilarityEdge, log zerolog.Logger) ([]domain.ShadowRecommendation, error) {
	recommendations := make([]domain.ShadowRecommendation, len(edges))

	g, gCtx := errgroup.WithContext(ctx)
	for i, edge := range edges {
		g.Go(func() error {
			profile, err := s.profiles.GetProfile(gCtx, edge.CandidatePuuid)
			if err == nil && profile == nil {
				err = domain.ErrNotFound
			}
			if err != nil {
				if ctxErr := gCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.Warn().
					Err(err).
					Str("candidate", edge.CandidatePuuid).
					Msg("candidate profile unavailable, using placeholder")
				metrics.ShadowPlaceholders.Inc()
				placeholder := domain.PlaceholderProfile(edge.CandidatePuuid)
				profile = &placeholder
			}
			recommendations[i] = domain.NewShadowRecommendation(edge, *profile)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Msg("shadow enrichment abandoned")
		return nil, err
	}
	return recommendations, nil
}

// ImportShadows stores the similarity job's output for subject, replacing
// any previous run.
func (s *ShadowService) ImportShadows(ctx context.Context, subject string, edges []domain.SimilarityEdge) (string, error) {
	if err := validatePuuid(subject); err != nil {
		return "", err
	}
	for i, e := range edges {
		if err := validatePuuid(e.CandidatePuuid); err != nil {
			return "", fmt.Errorf("edge %d: %w", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	runID, err := s.writer.ReplaceForSubject(ctx, subject, edges)
	if err != nil {
		metrics.ShadowImports.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Str("puuid", subject).Msg("failed to import shadows")
		if errors.Is(err, domain.ErrInvalidArgument) {
			return "", err
		}
		return "", upstreamErr("similarity store", err)
	}

	metrics.ShadowImports.WithLabelValues("ok").Inc()
	return runID, nil
}

func (s *ShadowService) resolveLimit(subject string, limit *int) (int, error) {
	if err := validatePuuid(subject); err != nil {
		return 0, err
	}
	if limit == nil {
		return s.defaultLimit, nil
	}
	if *limit <= 0 {
		return 0, fmt.Errorf("%w: limit must be at least 1, got %d", domain.ErrInvalidArgument, *limit)
	}
	if *limit > constants.MaxShadowLimit {
		return 0, fmt.Errorf("%w: limit must not exceed %d, got %d", domain.ErrInvalidArgument, constants.MaxShadowLimit, *limit)
	}
	return *limit, nil
}

func validatePuuid(puuid string) error {
	if puuid == "" {
		return fmt.Errorf("%w: puuid is required", domain.ErrInvalidArgument)
	}
	if len(puuid) > constants.MaxPuuidLength {
		return fmt.Errorf("%w: puuid exceeds %d characters", domain.ErrInvalidArgument, constants.MaxPuuidLength)
	}
	return nil
}

func classifySubjectErr(subject string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrSubjectNotFound, subject)
	}
	return upstreamErr("profile store", err)
}

func upstreamErr(store string, err error) error {
	if errors.Is(err, domain.ErrUpstreamUnavailable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", store, err)
	}
	return fmt.Errorf("%s: %w: %w", store, domain.ErrUpstreamUnavailable, err)
}

func outcomeOf(result *domain.ShadowResult, err error) string {
	switch {
	case err == nil && result.State == domain.ShadowsNotComputed:
		return "not_computed"
	case err == nil:
		return "computed"
	case errors.Is(err, domain.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, domain.ErrSubjectNotFound):
		return "subject_not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "unavailable"
	}
}
