package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"xray-tracker/internal/constants"
	"xray-tracker/internal/db"
	"xray-tracker/internal/domain"
	"xray-tracker/internal/tier"

	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Get returns domain.ErrNotFound when no player has the puuid.
func (r *PlayerRepository) Get(ctx context.Context, puuid string) (*domain.Player, error) {
	player, err := r.queries.GetPlayerByPuuid(ctx, puuid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", puuid, domain.ErrNotFound)
	}
	if err != nil {
		r.logger.Error().Err(err).Str("puuid", puuid).Msg("failed to get player")
		return nil, fmt.Errorf("failed to get player %s: %w", puuid, err)
	}

	return toDomainPlayer(player), nil
}

// GetProfile satisfies service.ProfileStore.
func (r *PlayerRepository) GetProfile(ctx context.Context, puuid string) (*domain.PlayerProfile, error) {
	player, err := r.Get(ctx, puuid)
	if err != nil {
		return nil, err
	}
	profile := player.Profile()
	return &profile, nil
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (*domain.Player, error) {
	player, err := r.queries.GetPlayerByDisplayName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		r.logger.Error().Err(err).Str("name", name).Msg("failed to get player by name")
		return nil, fmt.Errorf("failed to get player %q: %w", name, err)
	}

	return toDomainPlayer(player), nil
}

func (r *PlayerRepository) UpsertBatch(ctx context.Context, players []domain.Player) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	for i := 0; i < len(players); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(players))

		for _, player := range players[i:end] {
			if err := qtx.UpsertPlayer(ctx, toUpsertParams(&player)); err != nil {
				return fmt.Errorf("failed to upsert player %s: %w", player.Puuid, err)
			}
		}
	}

	return tx.Commit()
}

func (r *PlayerRepository) Search(ctx context.Context, query string, limit int) ([]domain.Player, error) {
	players, err := r.queries.SearchPlayers(ctx, db.SearchPlayersParams{
		DisplayName: "%" + likeEscaper.Replace(query) + "%",
		Limit:       int64(limit),
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.Player, len(players))
	for i, p := range players {
		result[i] = *toDomainPlayer(p)
	}
	return result, nil
}

// escapes LIKE wildcards; pairs with ESCAPE '\' in SearchPlayers
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func toDomainPlayer(p db.Player) *domain.Player {
	return &domain.Player{
		Puuid:          p.Puuid,
		DisplayName:    p.DisplayName,
		Region:         p.Region,
		Tier:           tier.Name(p.Tier),
		Division:       tier.Division(p.Division),
		LeaguePoints:   int(p.LeaguePoints),
		ProfileIconID:  int(p.ProfileIconID),
		MainRole:       p.MainRole,
		ShadowEligible: p.IsShadowEligible,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toUpsertParams(p *domain.Player) db.UpsertPlayerParams {
	now := time.Now().UTC()
	createdAt, updatedAt := p.CreatedAt, p.UpdatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	if updatedAt.IsZero() {
		updatedAt = now
	}
	return db.UpsertPlayerParams{
		Puuid:            p.Puuid,
		DisplayName:      p.DisplayName,
		Region:           p.Region,
		Tier:             string(p.Tier),
		Division:         string(p.Division),
		LeaguePoints:     int64(p.LeaguePoints),
		ProfileIconID:    int64(p.ProfileIconID),
		MainRole:         p.MainRole,
		IsShadowEligible: p.ShadowEligible,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}
