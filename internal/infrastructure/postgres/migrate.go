package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-api/internal/infrastructure/postgres/migrations"
)

// Migrator aplica las migraciones embebidas en el binario.
type Migrator struct {
	m   *migrate.Migrate
	log zerolog.Logger
}

// NewMigrator abre el origen iofs y la base indicada por dsn (postgres:// o postgresql://).
func NewMigrator(dsn string, log zerolog.Logger) (*Migrator, error) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("migraciones embebidas: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, migrateURL(dsn))
	if err != nil {
		return nil, fmt.Errorf("abrir migrador: %w", err)
	}
	return &Migrator{m: m, log: log}, nil
}

// Up aplica todas las migraciones pendientes. Sin cambios no es error.
func (mg *Migrator) Up() error {
	err := mg.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		mg.log.Info().Msg("esquema al día")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	mg.logVersion("migraciones aplicadas")
	return nil
}

// Down revierte la última migración.
func (mg *Migrator) Down() error {
	err := mg.m.Steps(-1)
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	mg.logVersion("migración revertida")
	return nil
}

// Close libera origen y conexión.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (mg *Migrator) logVersion(msg string) {
	v, dirty, err := mg.m.Version()
	if err != nil {
		mg.log.Info().Msg(msg)
		return
	}
	mg.log.Info().Uint("version", v).Bool("dirty", dirty).Msg(msg)
}

// migrateURL cambia el esquema al del driver pgx/v5 de golang-migrate.
func migrateURL(dsn string) string {
	for _, p := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dsn, p) {
			return "pgx5://" + strings.TrimPrefix(dsn, p)
		}
	}
	return dsn
}
