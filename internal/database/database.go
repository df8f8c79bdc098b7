package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"depositdefender/config"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/valkey-io/valkey-go"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// ErrStorageUnavailable marks failures of the storage engine itself: the
// database could not be opened or a read/write failed for a reason other
// than record absence. Callers surface it to the user and never retry.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrNotFound marks record absence. A normal outcome, branched on with
// errors.Is, never propagated as fatal.
var ErrNotFound = errors.New("record not found")

type CacheClient valkey.Client

type Cache struct {
	General CacheClient
	Events  CacheClient
}

// Enabled reports whether a cache backend was configured. The service runs
// fully without one; repositories skip the read-through path and the event
// bus dispatches locally only.
func (c Cache) Enabled() bool {
	return c.General != nil
}

type DB struct {
	SQL   *gorm.DB
	Cache Cache
	log   logger.Logger
}

func New(config config.Config) (DB, error) {
	log := logger.New("database").Function("New")

	log.Info("Initializing database")
	db := &DB{log: log}

	if err := db.initializeDB(config); err != nil {
		return DB{}, log.Err("failed to initialize database", err)
	}

	if err := db.initializeCacheDB(config); err != nil {
		return DB{}, log.Err("failed to initialize cache database", err)
	}

	return *db, nil
}

func (s *DB) initializeDB(config config.Config) error {
	gormLogger := gormLogger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelError),
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Silent,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gormConfig := &gorm.Config{
		Logger:                 gormLogger,
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
	}

	return s.initializeSqliteDB(gormConfig, config)
}

func (s *DB) initializeSqliteDB(gormConfig *gorm.Config, config config.Config) error {
	log := s.log.Function("initializeSqliteDB")

	if config.DatabasePath == "" {
		return log.Error("database path is empty")
	}

	dsn := fmt.Sprintf(
		"file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on",
		config.DatabasePath,
	)

	log.Info("Opening SQLite database", "path", config.DatabasePath)
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return log.Err("failed to open SQLite database with GORM", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return log.Err("failed to get database from GORM", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return log.Err("failed to ping SQLite database through GORM", err)
	}

	log.Info("Successfully opened SQLite database with GORM")

	// Single writer: SQLite serializes writes, extra connections only add
	// lock contention.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	s.SQL = db

	return nil
}

func (s *DB) Close() (err error) {
	if s.SQL != nil {
		sqlDB, dbErr := s.SQL.DB()
		if dbErr == nil {
			if closeErr := sqlDB.Close(); closeErr != nil {
				err = s.log.Err("failed to close database", closeErr)
			}
		}
	}

	if s.Cache.General != nil {
		s.Cache.General.Close()
	}

	if s.Cache.Events != nil {
		s.Cache.Events.Close()
	}

	return err
}

func (s *DB) SQLWithContext(ctx context.Context) *gorm.DB {
	return s.SQL.WithContext(ctx)
}

func (s *DB) FlushAllCaches() error {
	log := s.log.Function("FlushAllCaches")

	if !s.Cache.Enabled() {
		return nil
	}

	log.Info("Flushing all cache databases")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cacheClients := []struct {
		client CacheClient
		name   string
	}{
		{s.Cache.General, "General"},
		{s.Cache.Events, "Events"},
	}

	for _, cache := range cacheClients {
		if cache.client != nil {
			if err := cache.client.Do(ctx, cache.client.B().Flushdb().Build()).Error(); err != nil {
				log.Er("Failed to flush cache database", err, "cache", cache.name)
				return err
			}
			log.Info("Successfully flushed cache database", "cache", cache.name)
		}
	}

	return nil
}
