package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/portfolio-site-backend/config"
)

const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypeSupabase = "supa"
)

// Open picks the storage adapter from DB_TYPE and connects it. The returned
// Storage owns the connection; callers must Close it.
func Open(ctx context.Context, cfg map[string]string) (Storage, error) {
	dbType := strings.ToLower(config.GetString(cfg, "DB_TYPE", TypeSQLite))
	zlog.Info().Str("dbType", dbType).Msg("opening storage")

	switch dbType {
	case TypeSQLite:
		path := config.GetString(cfg, "SQLITE_PATH", "./portfolio.db")
		db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", path, err)
		}
		return prepare(ctx, New(db), cfg)

	case TypePostgres:
		dsn := config.GetString(cfg, "DATABASE_URL", "")
		if dsn == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when DB_TYPE=%s", TypePostgres)
		}
		db, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return prepare(ctx, New(db), cfg)

	case TypeSupabase:
		db, err := sqlx.ConnectContext(ctx, "postgres", SupabaseDSN(cfg))
		if err != nil {
			return nil, fmt.Errorf("connect supabase: %w", err)
		}
		return NewSupabaseStorage(db), nil

	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}
}

// SupabaseDSN builds the libpq connection string for the hosted database
func SupabaseDSN(cfg map[string]string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
		config.GetString(cfg, "SUPABASE_DB_HOST", ""),
		config.GetString(cfg, "SUPABASE_DB_USER", ""),
		config.GetString(cfg, "SUPABASE_DB_PASSWORD", ""),
		config.GetString(cfg, "SUPABASE_DB_NAME", ""),
		config.GetString(cfg, "SUPABASE_DB_PORT", "5432"),
	)
}

func gormConfig() *gorm.Config {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	return &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	}
}

// prepare migrates the ORM schema when enabled and checks the connection
func prepare(ctx context.Context, d Database, cfg map[string]string) (Storage, error) {
	if config.GetBool(cfg, "AUTO_MIGRATE", true) {
		if err := d.Migrate(); err != nil {
			d.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	} else {
		logColumnReport(ctx, d)
	}
	if err := d.Ping(ctx); err != nil {
		d.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return d, nil
}
