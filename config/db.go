package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"booking-backend/models"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectTimeout bounds dialing and the startup ping.
const ConnectTimeout = 5 * time.Second

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}
	if q.Get("timeout") == "" {
		q.Set("timeout", ConnectTimeout.String())
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

// normalizeMySQLDSN makes sure a raw DSN parses times and has a dial timeout.
func normalizeMySQLDSN(raw string) (string, error) {
	cfg, err := mysqldriver.ParseDSN(raw)
	if err != nil {
		return "", err
	}
	cfg.ParseTime = true
	if cfg.Timeout == 0 {
		cfg.Timeout = ConnectTimeout
	}
	return cfg.FormatDSN(), nil
}

func postgresDSN(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	q := u.Query()
	if q.Get("connect_timeout") == "" {
		q.Set("connect_timeout", fmt.Sprintf("%d", int(ConnectTimeout.Seconds())))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Dialector picks the GORM driver for a DATABASE_URL value.
func Dialector(databaseURL string) (gorm.Dialector, error) {
	raw := strings.TrimSpace(databaseURL)
	switch {
	case raw == "":
		return nil, fmt.Errorf("empty database url")
	case strings.HasPrefix(raw, "mysql://"):
		dsn, err := mysqlDSNFromURL(raw)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		dsn, err := postgresDSN(raw)
		if err != nil {
			return nil, err
		}
		return postgres.Open(dsn), nil
	case strings.HasPrefix(raw, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(raw, "sqlite://")), nil
	case strings.HasPrefix(raw, "file:"):
		return sqlite.Open(raw), nil
	}

	dsn, err := normalizeMySQLDSN(raw)
	if err != nil {
		return nil, fmt.Errorf("unrecognized database url: %w", err)
	}
	return mysql.Open(dsn), nil
}

// OpenDatabase connects, pings within ConnectTimeout and migrates the schema.
func OpenDatabase(cfg *Config, log zerolog.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	level := logger.Info
	if cfg.IsProduction() {
		level = logger.Warn
	}
	gormLog := log.With().Str("component", "gorm").Logger()
	newLogger := logger.New(
		&gormLog,
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Ping(context.Background(), db); err != nil {
		return nil, err
	}

	if err := MigrateSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Ping checks the connection within ConnectTimeout.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// MigrateSchema creates the bookings table if absent. Running it again
// against an initialized database changes nothing.
func MigrateSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Booking{}); err != nil {
		return fmt.Errorf("migrate bookings: %w", err)
	}
	return nil
}
