package cli

import (
	"os"

	"github.com/magabrotheeeer/subscription-tracker/internal/config"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/logger"
	"github.com/magabrotheeeer/subscription-tracker/internal/migrations"
	trackerservice "github.com/magabrotheeeer/subscription-tracker/internal/services/tracker"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// Open открывает хранилище по конфигу и собирает сервис без кеша и событий.
// Пустой путь означает CONFIG_PATH.
func Open(configPath string) (*Deps, error) {
	var cfg *config.Config
	if configPath == "" {
		cfg = config.MustLoad()
	} else {
		cfg = config.MustLoadPath(configPath)
	}
	log := logger.New(cfg.Env, os.Stderr)

	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}

	return &Deps{
		Service:  trackerservice.New(db, nil, nil, log),
		Tokens:   jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL),
		Migrator: migrations.NewMigrator(db.DB, cfg.MigrationsPath),
		Close:    db.Close,
	}, nil
}
