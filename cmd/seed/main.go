// seed crea el operador administrador inicial y, opcionalmente, carga un listado de
// repuestos desde un CSV de proveedor (separado por ';', UTF-8 o ISO-8859-1).
//
// Uso: go run ./cmd/seed -user admin -password secreto123 [-parts lista.csv] [-latin1]
//
// Columnas del CSV: nombre;referencia;fabricante;precio_compra;precio_venta;cantidad
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/taller-api/internal/application/auth"
	"github.com/jhoicas/taller-api/internal/application/catalog"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/infrastructure/postgres"
	"github.com/jhoicas/taller-api/pkg/config"
	"github.com/jhoicas/taller-api/pkg/logger"
)

func main() {
	username := flag.String("user", "admin", "usuario administrador")
	password := flag.String("password", "", "contraseña del administrador (vacía = no crear)")
	partsPath := flag.String("parts", "", "CSV de repuestos a suministrar")
	latin1 := flag.Bool("latin1", false, "el CSV viene en ISO-8859-1")
	flag.Parse()

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

	if *password != "" {
		authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{Secret: cfg.JWT.Secret})
		u, err := authUC.RegisterUser(ctx, dto.RegisterRequest{
			Username: *username, Password: *password, Name: "Administrador", Role: entity.RoleAdmin,
		})
		switch {
		case errors.Is(err, domain.ErrConflict):
			log.Info().Str("username", *username).Msg("el administrador ya existe")
		case err != nil:
			log.Fatal().Err(err).Msg("crear administrador")
		default:
			log.Info().Int64("user_id", u.ID).Str("username", u.Username).Msg("administrador creado")
		}
	}

	if *partsPath == "" {
		return
	}
	f, err := os.Open(*partsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	var in io.Reader = f
	if *latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	uc := catalog.NewUseCase(postgres.NewTxRunner(pool), postgres.NewPartRepository(pool))
	created, updated, failed, err := loadParts(ctx, uc, in)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}
	log.Info().Int("creados", created).Int("actualizados", updated).Int("rechazados", failed).Msg("suministro cargado")
}

// loadParts suministra cada fila; las filas inválidas se registran y se omiten.
func loadParts(ctx context.Context, uc *catalog.UseCase, in io.Reader) (created, updated, failed int, err error) {
	r := csv.NewReader(in)
	r.Comma = ';'
	r.FieldsPerRecord = 6
	r.TrimLeadingSpace = true

	line := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return created, updated, failed, nil
		}
		if err != nil {
			return created, updated, failed, err
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "nombre") {
			continue
		}
		res, err := uc.SupplyFromRequest(ctx, dto.SupplyPartRequest{
			Name:          rec[0],
			Reference:     rec[1],
			Manufacturer:  rec[2],
			PurchasePrice: rec[3],
			SalePrice:     rec[4],
			Quantity:      rec[5],
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "línea %d: %v\n", line, err)
			failed++
			continue
		}
		if res.Created {
			created++
		} else {
			updated++
		}
	}
}
