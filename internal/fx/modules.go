package fx

import (
	"league-tracker/internal/api"
	"league-tracker/internal/assets"
	"league-tracker/internal/config"
	"league-tracker/internal/database"
	"league-tracker/internal/logger"
	"league-tracker/internal/repository"
	"league-tracker/internal/server"
	"league-tracker/internal/service"
	"league-tracker/internal/storage"

	"go.uber.org/fx"
)

func ProvideRiotAPI(client *api.Client) service.RiotAPI {
	return client
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(assets.NewResolver),
	fx.Provide(storage.NewRedisClient),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewMatchRepository),
	// api client
	fx.Provide(api.NewClient),
	fx.Provide(ProvideRiotAPI),
	// svc
	fx.Provide(service.NewTransformer),
	fx.Provide(service.NewProfileService),
	fx.Provide(service.NewMatchService),
	// server
	fx.Provide(server.NewTrackerServer),
)
