// Comando migrate aplica o revierte el esquema embebido.
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/stock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-api/pkg/config"
	"github.com/jhoicas/stock-api/pkg/logger"
)

func main() {
	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "migrate"})

	mg, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir migraciones")
	}
	defer mg.Close()

	switch direction {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down()
	default:
		log.Fatal().Str("direction", direction).Msg("uso: migrate [up|down]")
	}
	if err != nil {
		log.Fatal().Err(err).Str("direction", direction).Msg("migración fallida")
	}
}
