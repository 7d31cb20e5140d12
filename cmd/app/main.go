package main

import (
	"pms/config"
	"pms/di"
	"pms/helper"
	"pms/shared/logger"

	"github.com/rs/zerolog/log"
)

//	@title						PMS Night Audit API
//	@version					1.0
//	@description				Room occupancy resolution and night audit posting.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
