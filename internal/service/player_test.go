package service

import (
	"context"
	"path/filepath"
	"testing"
	"xray-tracker/internal/config"
	"xray-tracker/internal/database"
	"xray-tracker/internal/db"
	"xray-tracker/internal/domain"
	"xray-tracker/internal/repository"
	"xray-tracker/internal/tier"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlayerService(t *testing.T) (*PlayerService, *repository.PlayerRepository) {
	t.Helper()
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "xray.db")}
	sqlDB, err := database.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	repo := repository.NewPlayerRepository(sqlDB, db.New(sqlDB), zerolog.Nop())
	require.NoError(t, repo.UpsertBatch(context.Background(), []domain.Player{
		{Puuid: "p-1", DisplayName: "petRoXD", Region: "eun1", Tier: tier.Gold, Division: tier.DivisionII, ProfileIconID: 10},
		{Puuid: "p-2", DisplayName: "Pete Mid", Region: "eun1", Tier: tier.Master, ProfileIconID: 20},
		{Puuid: "p-3", DisplayName: "Warsaw Jungle", Region: "eun1", Tier: tier.Silver, Division: tier.DivisionIV, ProfileIconID: 30},
	}))
	return NewPlayerService(repo, tier.DefaultTable(), zerolog.Nop()), repo
}

func TestPlayerService_GetPlayerByName(t *testing.T) {
	svc, _ := newTestPlayerService(t)
	ctx := context.Background()

	player, err := svc.GetPlayerByName(ctx, "Pete%20Mid")
	require.NoError(t, err)
	assert.Equal(t, "p-2", player.Puuid)

	player, err = svc.GetPlayerByName(ctx, "PETROXD")
	require.NoError(t, err)
	assert.Equal(t, "p-1", player.Puuid)

	_, err = svc.GetPlayerByName(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrSubjectNotFound)

	_, err = svc.GetPlayerByName(ctx, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.GetPlayerByName(ctx, "%zz")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestPlayerService_GetPlayerByPuuid(t *testing.T) {
	svc, _ := newTestPlayerService(t)
	ctx := context.Background()

	player, err := svc.GetPlayerByPuuid(ctx, "p-3")
	require.NoError(t, err)
	assert.Equal(t, "Warsaw Jungle", player.DisplayName)
	assert.Equal(t, tier.DivisionIV, player.Division)

	_, err = svc.GetPlayerByPuuid(ctx, "p-404")
	assert.ErrorIs(t, err, domain.ErrSubjectNotFound)

	_, err = svc.GetPlayerByPuuid(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestPlayerService_SearchSuggestions(t *testing.T) {
	svc, _ := newTestPlayerService(t)
	ctx := context.Background()

	suggestions, err := svc.SearchSuggestions(ctx, "pet")
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	for _, s := range suggestions {
		assert.Contains(t, []string{"p-1", "p-2"}, s.Puuid)
		assert.False(t, s.Placeholder)
	}

	suggestions, err = svc.SearchSuggestions(ctx, "  ")
	require.NoError(t, err)
	assert.NotNil(t, suggestions)
	assert.Empty(t, suggestions)
}

func TestPlayerService_ImportPlayers(t *testing.T) {
	svc, repo := newTestPlayerService(t)
	ctx := context.Background()

	n, err := svc.ImportPlayers(ctx, []domain.Player{
		{Puuid: "p-4", DisplayName: "Sopot Support", Tier: "platinum", Division: "iii", ProfileIconID: 40},
		{Puuid: "p-5", DisplayName: "Apex Jungler", Tier: "GRANDMASTER", Division: "I", LeaguePoints: 512},
		{Puuid: "p-1", DisplayName: "petRoXD", Tier: "GOLD", Division: "I", ProfileIconID: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	p4, err := repo.Get(ctx, "p-4")
	require.NoError(t, err)
	assert.Equal(t, tier.Platinum, p4.Tier)
	assert.Equal(t, tier.DivisionIII, p4.Division)

	p5, err := repo.Get(ctx, "p-5")
	require.NoError(t, err)
	assert.Equal(t, tier.DivisionNone, p5.Division)

	p1, err := repo.Get(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, tier.DivisionI, p1.Division)
}

func TestPlayerService_ImportPlayersRejectsInvalid(t *testing.T) {
	svc, repo := newTestPlayerService(t)
	ctx := context.Background()

	for name, players := range map[string][]domain.Player{
		"unknown tier":     {{Puuid: "p-9", DisplayName: "x", Tier: "UNRANKED", Division: "I"}},
		"bad division":     {{Puuid: "p-9", DisplayName: "x", Tier: "GOLD", Division: "V"}},
		"missing division": {{Puuid: "p-9", DisplayName: "x", Tier: "GOLD"}},
		"missing puuid":    {{DisplayName: "x", Tier: "GOLD", Division: "I"}},
	} {
		_, err := svc.ImportPlayers(ctx, players)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument, name)
	}

	_, err := repo.Get(ctx, "p-9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
