// Package migrations применяет SQL-миграции схемы трекера через golang-migrate.
package migrations

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Run применяет все непримененные миграции из каталога path.
// Повторный запуск без новых файлов не считается ошибкой.
func Run(db *sql.DB, path string) error {
	const op = "migrations.Run"

	m, err := newMigrate(db, path)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Version возвращает текущую версию схемы и признак незавершённой миграции.
func Version(db *sql.DB, path string) (uint, bool, error) {
	const op = "migrations.Version"

	m, err := newMigrate(db, path)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	return version, dirty, nil
}

func newMigrate(db *sql.DB, path string) (*migrate.Migrate, error) {
	driver, err := pgxv5.WithInstance(db, &pgxv5.Config{})
	if err != nil {
		return nil, err
	}
	return migrate.NewWithDatabaseInstance(
		"file://"+path,
		"pgx_v5",
		driver,
	)
}

// Migrator применяет миграции к заданной базе по требованию.
type Migrator struct {
	db   *sql.DB
	path string
}

// NewMigrator создаёт Migrator для каталога path.
func NewMigrator(db *sql.DB, path string) *Migrator {
	return &Migrator{db: db, path: path}
}

// Up применяет миграции и возвращает итоговую версию схемы.
func (m *Migrator) Up() (uint, error) {
	if err := Run(m.db, m.path); err != nil {
		return 0, err
	}
	version, dirty, err := Version(m.db, m.path)
	if err != nil {
		return 0, err
	}
	if dirty {
		return version, fmt.Errorf("migrations.Up: schema version %d is dirty", version)
	}
	return version, nil
}
