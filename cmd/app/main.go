package main

import (
	"galpao/config"
	"galpao/di"
	"galpao/helper"
	"galpao/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Galpao Check-in API
// @version 1.0
// @description Students book and cancel places in the daily slots; the administrator manages students and credits.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
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
