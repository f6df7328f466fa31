package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"logistics/internal/adapters/out/postgres/migrations"

	_ "github.com/lib/pq" // database/sql driver
	"github.com/pressly/goose/v3"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to dsn with lib/pq and layers gorm on the same pool, so
// migrations and the unit of work share connections.
func Open(dsn string, logger *slog.Logger) (*sql.DB, *gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.New(
			slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("open gorm: %w", err)
	}

	return sqlDB, gormDB, nil
}

// Migrate applies every pending migration and returns the resulting version.
func Migrate(ctx context.Context, db *sql.DB) (int64, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return 0, fmt.Errorf("create goose provider: %w", err)
	}

	if _, err = provider.Up(ctx); err != nil {
		return 0, fmt.Errorf("apply migrations: %w", err)
	}

	return provider.GetDBVersion(ctx)
}
