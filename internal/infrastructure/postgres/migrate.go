package postgres

import (
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// advisory lock compartido por todas las instancias que migran la misma base.
const migrationLockID = 81234017

// Migration archivo NNN_descripcion.sql embebido.
type Migration struct {
	Version  string
	Filename string
	SQL      string
	Checksum string
}

// Migrations devuelve las migraciones embebidas ordenadas por nombre.
func Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("leer migraciones: %w", err)
	}
	seen := make(map[string]bool)
	var out []Migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		parts := strings.SplitN(e.Name(), "_", 2)
		if len(parts) < 2 {
			return nil, fmt.Errorf("nombre de migración inválido %q (NNN_descripcion.sql)", e.Name())
		}
		if seen[parts[0]] {
			return nil, fmt.Errorf("versión de migración duplicada %s", parts[0])
		}
		seen[parts[0]] = true
		body, err := migrationsFS.ReadFile("migrations/" + e.Name())
		if err != nil {
			return nil, err
		}
		sum := sha256.Sum256(body)
		out = append(out, Migration{
			Version:  parts[0],
			Filename: e.Name(),
			SQL:      string(body),
			Checksum: hex.EncodeToString(sum[:]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out, nil
}

// Migrate aplica las migraciones pendientes, cada una en su transacción, bajo un advisory lock.
// Una migración ya aplicada con checksum distinto es un error.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("migrate: adquirir conexión: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, migrationLockID); err != nil {
		return fmt.Errorf("migrate: advisory lock: %w", err)
	}
	defer func() { _, _ = conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, migrationLockID) }()

	if _, err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			filename   TEXT NOT NULL,
			checksum   TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return fmt.Errorf("migrate: crear schema_migrations: %w", err)
	}

	migrations, err := Migrations()
	if err != nil {
		return err
	}
	for _, m := range migrations {
		var existing string
		err := conn.QueryRow(ctx, `SELECT checksum FROM schema_migrations WHERE version = $1`, m.Version).Scan(&existing)
		switch {
		case err == nil && existing == m.Checksum:
			log.Debug().Str("file", m.Filename).Msg("migración ya aplicada")
			continue
		case err == nil:
			return fmt.Errorf("migrate: checksum distinto para %s", m.Filename)
		case !errors.Is(err, pgx.ErrNoRows):
			return fmt.Errorf("migrate: consultar %s: %w", m.Filename, err)
		}

		tx, err := conn.Begin(ctx)
		if err != nil {
			return fmt.Errorf("migrate: begin %s: %w", m.Filename, err)
		}
		if _, err := tx.Exec(ctx, m.SQL); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("migrate: ejecutar %s: %w", m.Filename, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version, filename, checksum) VALUES ($1, $2, $3)`,
			m.Version, m.Filename, m.Checksum); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("migrate: registrar %s: %w", m.Filename, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("migrate: commit %s: %w", m.Filename, err)
		}
		log.Info().Str("file", m.Filename).Msg("migración aplicada")
	}
	return nil
}
