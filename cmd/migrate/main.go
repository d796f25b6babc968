package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/panaderia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/panaderia-api/pkg/config"
	"github.com/jhoicas/panaderia-api/pkg/logger"
)

const usage = "uso: migrate [up|status|down]"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	ctx := context.Background()
	dsn := cfg.DB.ConnectionString()
	switch cmd {
	case "up":
		err = postgres.Migrate(ctx, dsn)
	case "status":
		err = postgres.MigrationStatus(ctx, dsn)
	case "down":
		err = postgres.Rollback(ctx, dsn)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migraciones")
	}
	log.Info().Str("cmd", cmd).Msg("migraciones completadas")
}
