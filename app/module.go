package app

import (
	"github.com/portwarden/portwarden/client"
	"github.com/portwarden/portwarden/config"
	"github.com/portwarden/portwarden/repository"
	"github.com/portwarden/portwarden/rest"
	"github.com/portwarden/portwarden/service"
	"go.uber.org/fx"
)

func ConfigModule(cfg config.Config) fx.Option {
	return fx.Options(
		fx.Provide(func() config.Config {
			return cfg
		}),
		fx.Provide(func(cfg config.Config) config.ServerConfig {
			return cfg.Server
		}),
		fx.Provide(func(cfg config.Config) config.BackendConfig {
			return cfg.Backend
		}),
		fx.Provide(func(cfg config.Config) config.PollingConfig {
			return cfg.Polling
		}),
		fx.Provide(func(cfg config.Config) config.FavoritesConfig {
			return cfg.Favorites
		}),
		fx.Provide(func(cfg config.Config) config.KeyConfig {
			return cfg.Key
		}),
	)
}

// AdapterModule provides the remote backend client, return domain.Backend
func AdapterModule() fx.Option {
	return fx.Provide(client.NewBackendClient)
}

// RepoModule provides the favorites persistence layer, return domain.FavoritesRepository
func RepoModule() fx.Option {
	return fx.Provide(repository.NewFavoritesRepository)
}

// ServiceModule provides the service layer, return domain.Service
func ServiceModule(deps ...fx.Option) fx.Option {
	return fx.Options(
		fx.Options(deps...),
		fx.Provide(service.NewService),
	)
}

// HandlerModule provides the REST handler, return *rest.Handler
func HandlerModule(serviceModule fx.Option) fx.Option {
	return fx.Options(
		serviceModule,
		fx.Provide(rest.NewHandler),
	)
}
