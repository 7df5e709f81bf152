package main

import (
	"context"
	"os"

	"hotel/config"
	"hotel/helper"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration action is required: up, down, step-up, drop or version")
	}

	cfg := config.Get()

	action := helper.Action(os.Args[1])

	var err error

	if action == helper.ActionUp {
		err = helper.Migrate(context.Background(), cfg)
	} else {
		err = helper.Runner(cfg, action)
	}

	if err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
