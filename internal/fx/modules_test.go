package fx

import (
	"path/filepath"
	"testing"
	"xray-tracker/internal/config"
	"xray-tracker/internal/server"
	"xray-tracker/internal/tier"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestProvideTable(t *testing.T) {
	table, err := ProvideTable(&config.Config{ApexTier: "grandmaster"})
	require.NoError(t, err)
	assert.True(t, table.HasDivisions(tier.Master))
	assert.False(t, table.HasDivisions(tier.Grandmaster))

	_, err = ProvideTable(&config.Config{ApexTier: "UNRANKED"})
	assert.Error(t, err)
}

func TestModuleGraph(t *testing.T) {
	cfg := &config.Config{
		DBPath:             filepath.Join(t.TempDir(), "xray.db"),
		ServerPort:         "0",
		LogLevel:           "info",
		ProfileSource:      config.ProfileSourceSQLite,
		ShadowDefaultLimit: 3,
		ApexTier:           "MASTER",
	}

	var srv *server.TrackerServer
	app := fxtest.New(t,
		Module,
		fx.Replace(cfg, zerolog.Nop()),
		fx.Populate(&srv),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.NotNil(t, srv)
}
