package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	"xray-tracker/internal/db"
	"xray-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// ShadowRepository reads the precomputed similarity rows and, for the batch
// job, replaces them per subject.
type ShadowRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewShadowRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *ShadowRepository {
	return &ShadowRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// TopCandidates returns at most limit edges, best score first, ties broken by
// candidate puuid. No rows is an empty slice, not an error.
func (r *ShadowRepository) TopCandidates(ctx context.Context, subject string, limit int) ([]domain.SimilarityEdge, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", domain.ErrInvalidArgument, limit)
	}

	rows, err := r.queries.ListTopShadows(ctx, db.ListTopShadowsParams{
		UserPuuid: subject,
		Limit:     int64(limit),
	})
	if err != nil {
		r.logger.Error().Err(err).Str("puuid", subject).Msg("failed to list shadows")
		return nil, fmt.Errorf("failed to list shadows for %s: %w", subject, err)
	}

	edges := make([]domain.SimilarityEdge, 0, len(rows))
	for _, row := range rows {
		edge, err := toDomainEdge(row)
		if err != nil {
			return nil, fmt.Errorf("shadow %s: %w", row.ID, err)
		}
		edges = append(edges, edge)
	}
	return edges, nil
}

// HasComputed reports whether the similarity job has ever processed subject.
func (r *ShadowRepository) HasComputed(ctx context.Context, subject string) (bool, error) {
	count, err := r.queries.CountShadowRuns(ctx, subject)
	if err != nil {
		r.logger.Error().Err(err).Str("puuid", subject).Msg("failed to check shadow run")
		return false, fmt.Errorf("failed to check shadow run for %s: %w", subject, err)
	}
	return count > 0, nil
}

// ReplaceForSubject swaps subject's edges for edges and records the run in one
// transaction. An empty edges slice still records the run.
func (r *ShadowRepository) ReplaceForSubject(ctx context.Context, subject string, edges []domain.SimilarityEdge) (string, error) {
	runID, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate nanoid: %w", err)
	}
	computedAt := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	if err := qtx.DeleteShadowsForUser(ctx, subject); err != nil {
		return "", fmt.Errorf("failed to clear shadows for %s: %w", subject, err)
	}

	for _, edge := range edges {
		params, err := toInsertParams(subject, edge, computedAt)
		if err != nil {
			return "", err
		}
		if err := qtx.InsertShadow(ctx, params); err != nil {
			return "", fmt.Errorf("failed to insert shadow %s -> %s: %w", subject, edge.CandidatePuuid, err)
		}
	}

	if err := qtx.UpsertShadowRun(ctx, db.UpsertShadowRunParams{
		UserPuuid:      subject,
		RunID:          runID,
		CandidateCount: int64(len(edges)),
		ComputedAt:     computedAt,
	}); err != nil {
		return "", fmt.Errorf("failed to record shadow run for %s: %w", subject, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit shadows for %s: %w", subject, err)
	}

	r.logger.Info().
		Str("puuid", subject).
		Str("run_id", runID).
		Int("candidates", len(edges)).
		Msg("shadow recommendations replaced")
	return runID, nil
}

func toInsertParams(subject string, edge domain.SimilarityEdge, computedAt time.Time) (db.InsertShadowParams, error) {
	id := edge.ID
	if id == "" {
		var err error
		id, err = gonanoid.New()
		if err != nil {
			return db.InsertShadowParams{}, fmt.Errorf("failed to generate nanoid: %w", err)
		}
	}
	if !edge.ComputedAt.IsZero() {
		computedAt = edge.ComputedAt.UTC()
	}

	champions, err := encodeChampions(edge.SharedChampions)
	if err != nil {
		return db.InsertShadowParams{}, err
	}
	reasoning, err := encodeReasoning(edge.Reasoning)
	if err != nil {
		return db.InsertShadowParams{}, err
	}

	return db.InsertShadowParams{
		ID:              id,
		UserPuuid:       subject,
		ShadowPuuid:     edge.CandidatePuuid,
		SimilarityScore: edge.SimilarityScore,
		Role:            edge.Role,
		SharedChampions: champions,
		UserWeakness:    edge.UserWeakness,
		ShadowStrength:  edge.ShadowStrength,
		Reasoning:       reasoning,
		ComputedAt:      computedAt,
	}, nil
}

func toDomainEdge(row db.ShadowRecommendation) (domain.SimilarityEdge, error) {
	champions, err := decodeChampions(row.SharedChampions)
	if err != nil {
		return domain.SimilarityEdge{}, err
	}
	reasoning, err := decodeReasoning(row.Reasoning)
	if err != nil {
		return domain.SimilarityEdge{}, err
	}
	return domain.SimilarityEdge{
		ID:              row.ID,
		SubjectPuuid:    row.UserPuuid,
		CandidatePuuid:  row.ShadowPuuid,
		SimilarityScore: row.SimilarityScore,
		Role:            row.Role,
		SharedChampions: champions,
		UserWeakness:    row.UserWeakness,
		ShadowStrength:  row.ShadowStrength,
		Reasoning:       reasoning,
		ComputedAt:      row.ComputedAt,
	}, nil
}
