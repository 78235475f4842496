package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type (
	Container struct {
		App    *App
		Log    *Log
		HTTP   *HTTP
		Store  *Store
		DB     *DB
		SQLite *SQLite
		Redis  *Redis
	}

	App struct {
		Name string
		Env  string
	}

	Log struct {
		Level string
	}

	HTTP struct {
		Env            string
		Port           string
		AllowedOrigins string
		URL            string
		ReadTimeout    time.Duration
		WriteTimeout   time.Duration
		IdleTimeout    time.Duration
	}

	Store struct {
		Backend  string
		DataFile string
	}

	DB struct {
		Host          string
		Port          string
		User          string
		Password      string
		Name          string
		SSLMode       string
		MigrationsDir string
	}

	SQLite struct {
		Path string
	}

	Redis struct {
		Address  string
		Password string
		DB       int
		Prefix   string
	}
)

const (
	BackendJSON     = "json"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

func defaultContainer() *Container {
	return &Container{
		App: &App{
			Name: "carsharing",
			Env:  "development",
		},
		Log: &Log{
			Level: "info",
		},
		HTTP: &HTTP{
			Port:           "8080",
			AllowedOrigins: "*",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    120 * time.Second,
		},
		Store: &Store{
			Backend:  BackendJSON,
			DataFile: "./data/cars.json",
		},
		DB: &DB{
			Port:          "5432",
			SSLMode:       "disable",
			MigrationsDir: "./internal/adapter/sqlstore/migrations",
		},
		SQLite: &SQLite{
			Path: "./data/carsharing.db",
		},
		Redis: &Redis{
			Prefix: "carsharing",
		},
	}
}

// New reads the configuration from the environment. Outside production a
// .env file is loaded first when present.
func New() (*Container, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := defaultContainer()
	var errs []error

	setStringFromEnv(&cfg.App.Name, "APP_NAME")
	setStringFromEnv(&cfg.App.Env, "APP_ENV")
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}

	cfg.HTTP.Env = cfg.App.Env
	setStringFromEnv(&cfg.HTTP.URL, "HTTP_URL")
	setStringFromEnv(&cfg.HTTP.Port, "HTTP_PORT")
	setStringFromEnv(&cfg.HTTP.AllowedOrigins, "ALLOWED_ORIGINS")
	setDurationFromEnv(&cfg.HTTP.ReadTimeout, "HTTP_READ_TIMEOUT", &errs)
	setDurationFromEnv(&cfg.HTTP.WriteTimeout, "HTTP_WRITE_TIMEOUT", &errs)
	setDurationFromEnv(&cfg.HTTP.IdleTimeout, "HTTP_IDLE_TIMEOUT", &errs)

	if v := os.Getenv("STORE_BACKEND"); v != "" {
		cfg.Store.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	setStringFromEnv(&cfg.Store.DataFile, "STORE_FILE")

	setStringFromEnv(&cfg.DB.Host, "DB_HOST")
	setStringFromEnv(&cfg.DB.Port, "DB_PORT")
	setStringFromEnv(&cfg.DB.User, "DB_USER")
	cfg.DB.Password = os.Getenv("DB_PASSWORD")
	setStringFromEnv(&cfg.DB.Name, "DB_NAME")
	setStringFromEnv(&cfg.DB.SSLMode, "DB_SSLMODE")
	setStringFromEnv(&cfg.DB.MigrationsDir, "DB_MIGRATIONS_DIR")

	setStringFromEnv(&cfg.SQLite.Path, "SQLITE_PATH")

	setStringFromEnv(&cfg.Redis.Address, "REDIS_ADDRESS")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	setIntFromEnv(&cfg.Redis.DB, "REDIS_DB", &errs)
	setStringFromEnv(&cfg.Redis.Prefix, "REDIS_PREFIX")

	if _, err := strconv.Atoi(cfg.HTTP.Port); err != nil {
		errs = append(errs, fmt.Errorf("invalid HTTP_PORT: %w", err))
	}
	switch cfg.Store.Backend {
	case BackendJSON, BackendMemory, BackendSQLite, BackendPostgres, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q (supported: json, memory, sqlite, postgres, redis)", cfg.Store.Backend))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DSN builds the lib/pq connection string.
func (d *DB) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Origins splits ALLOWED_ORIGINS on commas.
func (h *HTTP) Origins() []string {
	raw := strings.Split(h.AllowedOrigins, ",")
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (h *HTTP) Addr() string {
	return fmt.Sprintf("%s:%s", h.URL, h.Port)
}

func setDurationFromEnv(target *time.Duration, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = d
	}
}

func setIntFromEnv(target *int, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = i
	}
}

func setStringFromEnv(target *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*target = v
	}
}
