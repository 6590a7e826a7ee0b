package sqlstore

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"github.com/JoeShih716/go-daily-ledger/pkg/database"
)

//go:embed migrations
var migrationFS embed.FS

// Migrate 將資料庫 schema 升級到最新版本
//
// 參數:
//
//	cfg: 資料庫配置，依 Driver 選擇 migrations/postgres 或 migrations/mysql
//	log: logger
//
// 回傳:
//
//	error: 無法連線、schema 為 dirty 或 migration 執行失敗
func Migrate(cfg database.Config, log *zap.Logger) error {
	cfg.SetDefaults()
	if log == nil {
		log = zap.NewNop()
	}

	src, err := iofs.New(migrationFS, "migrations/"+cfg.Driver)
	if err != nil {
		return fmt.Errorf("failed to load %s migrations: %w", cfg.Driver, err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.MigrationURL())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("database schema is up to date", zap.String("driver", cfg.Driver))
			return nil
		}
		var dirtyErr migrate.ErrDirty
		if errors.As(err, &dirtyErr) {
			return fmt.Errorf("database schema is dirty at version %d, manual fix required: %w", dirtyErr.Version, err)
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, _, _ := m.Version()
	log.Info("database migrated", zap.String("driver", cfg.Driver), zap.Uint("version", version))
	return nil
}
