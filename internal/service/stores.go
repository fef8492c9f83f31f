package service

import (
	"context"
	"xray-tracker/internal/domain"
)

// ProfileStore resolves a player's public profile. Missing players are
// reported as domain.ErrNotFound.
type ProfileStore interface {
	GetProfile(ctx context.Context, puuid string) (*domain.PlayerProfile, error)
}

// SimilarityStore serves precomputed shadow edges, best score first with
// ties broken by candidate puuid, never more than limit. HasComputed is the
// explicit signal that the similarity job has processed subject.
type SimilarityStore interface {
	TopCandidates(ctx context.Context, subject string, limit int) ([]domain.SimilarityEdge, error)
	HasComputed(ctx context.Context, subject string) (bool, error)
}

// ShadowWriter is the write side used by the offline similarity job.
type ShadowWriter interface {
	ReplaceForSubject(ctx context.Context, subject string, edges []domain.SimilarityEdge) (string, error)
}
