package main

import (
	"hotel/config"
	"hotel/helper"
	"hotel/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	if len(os.Args) < 2 {
		log.Fatal().Msg("Migration action (up, step-up, down, drop, version) is required")
	}

	action, err := helper.ParseAction(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	cfg := config.Get()
	logger.Configure(cfg)

	if err := helper.Run(cfg, action); err != nil {
		log.Fatal().Err(err).Str("action", string(action)).Msg("migration failed")
	}
}
