package app

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/portwarden/portwarden/config"
	"github.com/portwarden/portwarden/domain"
	"github.com/portwarden/portwarden/pkg/logger"
	"github.com/portwarden/portwarden/rest"
	"go.uber.org/fx"
)

func NewRestApp(configName string, configDirPath string) (*fx.App, error) {
	cfg, err := config.InitConfig(configName, configDirPath)
	if err != nil {
		return nil, err
	}

	handlerModule := HandlerModule(ServiceModule(
		ConfigModule(cfg),
		AdapterModule(),
		RepoModule(),
	))

	app := fx.New(
		handlerModule,
		fx.Invoke(StartRestApp),
		fx.Invoke(StartPollScheduler),
	)
	return app, nil
}

func StartRestApp(lc fx.Lifecycle, cfg config.ServerConfig, handler *rest.Handler) error {
	engine := echo.New()
	engine.HideBanner = true
	handler.SetupRoutes(engine)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			serverHost := cfg.Host
			if serverHost == "" {
				serverHost = ":8090"
			}
			go func() {
				logger.Logger(ctx).Info().Msgf("starting rest server on port %s", serverHost)
				if err := engine.Start(serverHost); err != nil {
					logger.Logger(ctx).Fatal().Err(err).Msgf("start rest server fail on port %s", serverHost)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Logger(ctx).Info().Msg("shutting down rest server")
			return engine.Shutdown(ctx)
		},
	})

	return nil
}

// StartPollScheduler ties the reconciliation loop to the app lifecycle: the
// first fetch fires immediately on start, and shutdown stops the chain
// without cancelling an in-flight fetch.
func StartPollScheduler(lc fx.Lifecycle, svc domain.Service) error {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			svc.StartPolling()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			svc.StopPolling()
			return nil
		},
	})

	return nil
}
