//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"coach-booking-engine/cmd/bootstrap"
	"coach-booking-engine/cmd/bootstrap/components"
	"coach-booking-engine/internal/pkg/config"
	"coach-booking-engine/tests/common/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

// ------------------------------------------------------------
// Builds the full application against a fake carrier
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T, mutate func(*config.Config)) (*testutil.FakeCarrier, *gin.Engine, config.Config) {
	gin.SetMode(gin.TestMode)
	carrier := testutil.NewFakeCarrier(t)

	cfg := createTestConfig(carrier.URL)
	if mutate != nil {
		mutate(&cfg)
	}

	router, app := buildE2EApp(cfg)
	require.NotNil(t, router, "router setup failed")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx application", "error", err.Error())
		}
	})

	return carrier, router, cfg
}

// ------------------------------------------------------------
// Returns router and fx.App for proper lifecycle management
// ------------------------------------------------------------
func buildE2EApp(cfg config.Config) (*gin.Engine, *fx.App) {
	var router *gin.Engine

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config { return cfg }),
		bootstrap.ConfigSections,
	)

	app := fx.New(
		testConfigModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		components.InfraModule,
		components.EngineModule,
		components.HandlerModule,

		fx.Populate(&router),

		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start fx app: %v", err))
	}

	return router, app
}

func createTestConfig(carrierURL string) config.Config {
	testConfig := config.NewTestConfig()
	testConfig.Carrier.BaseURL = carrierURL
	testConfig.Timer.TickInterval = 50 * time.Millisecond
	return testConfig
}

// ------------------------------------------------------------
// Common setup shared by e2e suites
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router  *gin.Engine
	Carrier *testutil.FakeCarrier
	Config  config.Config

	// ConfigOverride customizes the configuration before the app is built.
	ConfigOverride func(*config.Config)
}

func (s *SharedSuite) SetupTest() {
	s.Carrier, s.Router, s.Config = setupE2EEnvironment(s.T(), s.ConfigOverride)
	require.NotEmpty(s.T(), s.Config, "config is empty")
}
