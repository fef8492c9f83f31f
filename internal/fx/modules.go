package fx

import (
	"database/sql"
	"fmt"
	"xray-tracker/internal/api"
	"xray-tracker/internal/config"
	"xray-tracker/internal/database"
	"xray-tracker/internal/db"
	"xray-tracker/internal/logger"
	"xray-tracker/internal/repository"
	"xray-tracker/internal/server"
	"xray-tracker/internal/service"
	"xray-tracker/internal/tier"
	"xray-tracker/internal/validation"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

// ProvideTable builds the default ladder with the configured apex tier.
func ProvideTable(cfg *config.Config) (*tier.Table, error) {
	defaults := tier.DefaultTable()
	apex, ok := defaults.Parse(cfg.ApexTier)
	if !ok {
		return nil, fmt.Errorf("unknown APEX_TIER %q", cfg.ApexTier)
	}
	return tier.NewTable(defaults.Tiers(), apex)
}

// ProvideProfileStore picks where candidate profiles come from.
func ProvideProfileStore(cfg *config.Config, players *repository.PlayerRepository, logger zerolog.Logger) service.ProfileStore {
	if cfg.ProfileSource == config.ProfileSourceRemote {
		logger.Info().Str("url", cfg.ProfileAPIURL).Msg("using remote profile store")
		return api.NewProfileClient(cfg, logger)
	}
	return players
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(validation.New),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// tiers
	fx.Provide(ProvideTable),
	fx.Provide(tier.NewClassifier),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(fx.Annotate(
		repository.NewShadowRepository,
		fx.As(new(service.SimilarityStore)),
		fx.As(new(service.ShadowWriter)),
	)),
	fx.Provide(ProvideProfileStore),
	// svc
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewShadowService),
	fx.Provide(service.NewXRayService),
	// server
	fx.Provide(server.NewTrackerServer),
)
