// migrate aplica las migraciones embebidas sobre la base configurada y termina.
//
// Uso: go run ./cmd/migrate [-list]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/taller-api/internal/infrastructure/postgres"
	"github.com/jhoicas/taller-api/pkg/config"
	"github.com/jhoicas/taller-api/pkg/logger"
)

func main() {
	list := flag.Bool("list", false, "solo lista las migraciones embebidas")
	flag.Parse()

	if *list {
		migrations, err := postgres.Migrations()
		if err != nil {
			fmt.Fprintf(os.Stderr, "leer migraciones: %v\n", err)
			os.Exit(1)
		}
		for _, m := range migrations {
			fmt.Printf("%s  %s  %s\n", m.Version, m.Checksum[:12], m.Filename)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
		log.Fatal().Err(err).Msg("migración fallida")
	}
	log.Info().Msg("migraciones aplicadas")
}
