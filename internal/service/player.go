package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"xray-tracker/internal/constants"
	"xray-tracker/internal/domain"
	"xray-tracker/internal/repository"
	"xray-tracker/internal/tier"

	"github.com/rs/zerolog"
)

type PlayerService struct {
	repo   *repository.PlayerRepository
	table  *tier.Table
	logger zerolog.Logger
}

func NewPlayerService(repo *repository.PlayerRepository, table *tier.Table, logger zerolog.Logger) *PlayerService {
	return &PlayerService{repo: repo, table: table, logger: logger}
}

// GetPlayerByName resolves a display name, URL-escaped or not, to a stored
// player. Unknown names are domain.ErrSubjectNotFound.
func (s *PlayerService) GetPlayerByName(ctx context.Context, name string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	name, err := url.QueryUnescape(name)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to unescape name: %v", domain.ErrInvalidArgument, err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidArgument)
	}

	s.logger.Debug().Str("name", name).Msg("getting player by name")

	player, err := s.repo.GetByName(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Debug().Str("name", name).Msg("player not found")
		return nil, fmt.Errorf("%w: %s", domain.ErrSubjectNotFound, name)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to get player")
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}

	return player, nil
}

func (s *PlayerService) GetPlayerByPuuid(ctx context.Context, puuid string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := validatePuuid(puuid); err != nil {
		return nil, err
	}

	player, err := s.repo.Get(ctx, puuid)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSubjectNotFound, puuid)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("puuid", puuid).Msg("failed to get player")
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	return player, nil
}

func (s *PlayerService) SearchSuggestions(ctx context.Context, query string) ([]domain.PlayerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.PlayerProfile{}, nil
	}

	s.logger.Debug().Str("query", query).Msg("searching players")

	players, err := s.repo.Search(ctx, query, constants.SearchSuggestionLimit)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to search players")
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}

	suggestions := make([]domain.PlayerProfile, 0, len(players))
	for _, p := range players {
		suggestions = append(suggestions, p.Profile())
	}

	s.logger.Info().Int("count", len(suggestions)).Str("query", query).Msg("search completed")
	return suggestions, nil
}

// ImportPlayers upserts profiles delivered by the player-data sync. Tier
// names are normalized against the table; apex tiers drop their division.
// Nothing is written if any player is invalid.
func (s *PlayerService) ImportPlayers(ctx context.Context, players []domain.Player) (int, error) {
	normalized := make([]domain.Player, len(players))
	for i, p := range players {
		if err := validatePuuid(p.Puuid); err != nil {
			return 0, fmt.Errorf("player %d: %w", i, err)
		}
		name, ok := s.table.Parse(string(p.Tier))
		if !ok {
			return 0, fmt.Errorf("%w: player %d: unknown tier %q", domain.ErrInvalidArgument, i, p.Tier)
		}
		div, ok := tier.ParseDivision(string(p.Division))
		if !ok {
			return 0, fmt.Errorf("%w: player %d: unknown division %q", domain.ErrInvalidArgument, i, p.Division)
		}
		switch {
		case !s.table.HasDivisions(name):
			div = tier.DivisionNone
		case div == tier.DivisionNone:
			return 0, fmt.Errorf("%w: player %d: %s requires a division", domain.ErrInvalidArgument, i, name)
		}

		p.Tier, p.Division = name, div
		normalized[i] = p
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.repo.UpsertBatch(ctx, normalized); err != nil {
		s.logger.Error().Err(err).Int("count", len(normalized)).Msg("failed to import players")
		return 0, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}

	s.logger.Info().Int("count", len(normalized)).Msg("players imported")
	return len(normalized), nil
}
