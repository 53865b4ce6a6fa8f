package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"healthagentapi/pkg/logger"
	"healthagentapi/pkg/memdb"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB is the global GORM database instance used throughout the application.
var DB *gorm.DB

var embedded *memdb.Server

// ConnectDB opens the configured database and stores it in DB.
func ConnectDB() error {
	logger.Infof("Connecting to %s database %s", Cfg.DBDriver, Cfg.DBName)

	db, err := OpenDB(context.Background(), Cfg)
	if err != nil {
		logger.Errorf("GORM connection failed: %v", err)
		return err
	}
	logger.Infof("GORM connected successfully to %s database %s", Cfg.DBDriver, Cfg.DBName)

	DB = db
	return nil
}

// OpenDB opens a GORM handle for cfg.DBDriver and applies the pool settings.
// Insert-time unique violations surface as gorm.ErrDuplicatedKey (TranslateError).
func OpenDB(ctx context.Context, cfg AppConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(ctx, cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(cfg.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	maxOpen, maxIdle, lifetime := poolSettings(cfg)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(lifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping %s database: %w", cfg.DBDriver, err)
	}
	return db, nil
}

// poolSettings returns the connection pool limits for cfg.
func poolSettings(cfg AppConfig) (maxOpen, maxIdle int, lifetime time.Duration) {
	switch cfg.DBDriver {
	case DriverSQLite:
		// one writer, and ":memory:" lives only as long as its single connection
		return 1, 1, 0
	case DriverEmbedded:
		// memory tables do not isolate concurrent transactions; the unique
		// pan_number index only holds when writes are serialized
		return 1, 1, cfg.DBConnMaxLifetime
	}
	return cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetime
}

func dialectorFor(ctx context.Context, cfg AppConfig) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case DriverMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		return mysql.Open(dsn), nil
	case DriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBSSL)
		return postgres.Open(dsn), nil
	case DriverSQLite:
		if cfg.DBPath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
				return nil, fmt.Errorf("cannot create sqlite directory: %w", err)
			}
		}
		return sqlite.Open(cfg.DBPath), nil
	case DriverEmbedded:
		srv, err := memdb.Start(ctx, cfg.DBName)
		if err != nil {
			return nil, fmt.Errorf("start embedded database: %w", err)
		}
		embedded = srv
		logger.Warnf("Using embedded in-memory database; policies are lost on restart")
		return mysql.Open(srv.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// CloseDB closes the pool and stops the embedded server when one is running.
func CloseDB() error {
	if DB != nil {
		if sqlDB, err := DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warnf("Failed to close database pool: %v", err)
			}
		}
	}
	if embedded != nil {
		return embedded.Close()
	}
	return nil
}

// gormLogWriter routes GORM's log lines through the application logger.
type gormLogWriter struct{}

func (gormLogWriter) Printf(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

func newGormLogger(level string) gormlogger.Interface {
	gormLevel := gormlogger.Warn
	if logger.ParseLogLevel(level) == logger.DEBUG {
		gormLevel = gormlogger.Info
	}
	return gormlogger.New(gormLogWriter{}, gormlogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormLevel,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
