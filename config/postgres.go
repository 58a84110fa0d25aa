package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresDB backs the local_storage table when STORAGE_BACKEND=postgres.
var PostgresDB *gorm.DB

// PostgresPool sizes the connection pool behind the local_storage table.
// Every request reads the browser's row, so idle connections are kept warm.
type PostgresPool struct {
	MaxIdle     int
	MaxOpen     int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
}

func postgresDSN() string {
	for _, k := range []string{"POSTGRES_URI", "DATABASE_URL"} {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func postgresPool() PostgresPool {
	return PostgresPool{
		MaxIdle:     getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
		MaxOpen:     getEnvInt("POSTGRES_MAX_OPEN_CONNS", 25),
		MaxLifetime: time.Duration(getEnvInt("POSTGRES_CONN_MAX_LIFETIME_MIN", 30)) * time.Minute,
		MaxIdleTime: time.Duration(getEnvInt("POSTGRES_CONN_MAX_IDLE_MIN", 5)) * time.Minute,
	}
}

// NewPostgresDB opens the database holding local_storage. gorm only logs
// warnings; the storage layer reports its own failures.
func NewPostgresDB(dsn string, pool PostgresPool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(pool.MaxIdle)
	sqlDB.SetMaxOpenConns(pool.MaxOpen)
	sqlDB.SetConnMaxLifetime(pool.MaxLifetime)
	sqlDB.SetConnMaxIdleTime(pool.MaxIdleTime)
	return db, nil
}

func InitPostgres() error {
	dsn := postgresDSN()
	if dsn == "" {
		return errors.New("POSTGRES_URI (or DATABASE_URL) environment variable is not set")
	}
	db, err := NewPostgresDB(dsn, postgresPool())
	if err != nil {
		return err
	}
	PostgresDB = db
	return nil
}
