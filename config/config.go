package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	HTTP     HTTPConfig
	Storage  StorageConfig
	DB       DBConfig
	Session  SessionConfig
	Content  ContentConfig
	Telegram TelegramConfig
}

type HTTPConfig struct {
	Addr string `envconfig:"HTTP_ADDR" default:":8080"`
}

type StorageConfig struct {
	Kind        string `envconfig:"STORAGE" default:"postgres"`
	AutoMigrate bool   `envconfig:"AUTO_MIGRATE"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD"`
	Database string `envconfig:"DB_NAME" default:"cafe"`
}

// DSN builds the pgx connection string. Credentials are percent-encoded.
func (c DBConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Database,
	}
	return u.String()
}

type SessionConfig struct {
	TTL time.Duration `envconfig:"SESSION_TTL" default:"168h"`
	// AdminEmails limits the admin API to these accounts; empty lets any
	// active user in.
	AdminEmails []string `envconfig:"ADMIN_EMAILS"`
}

type ContentConfig struct {
	SeedFile string `envconfig:"SEED_FILE"` // optional JSON/YAML default document
}

type TelegramConfig struct {
	AdminToken string `envconfig:"ADMIN_BOT_TOKEN"`
	Login      string `envconfig:"LOGIN"`    // admin password for the bot
	AdminID    int64  `envconfig:"ADMIN_ID"` // 0 = any chat may log in with LOGIN
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	// Sections are processed one by one so env names stay unprefixed.
	sections := []interface{}{&cfg.HTTP, &cfg.Storage, &cfg.DB, &cfg.Session, &cfg.Content, &cfg.Telegram}
	for _, s := range sections {
		if err := envconfig.Process("", s); err != nil {
			return nil, err
		}
	}
	if cfg.Storage.Kind != StorageMemory && cfg.Storage.Kind != StoragePostgres {
		return nil, fmt.Errorf("invalid STORAGE %q (want %s or %s)", cfg.Storage.Kind, StorageMemory, StoragePostgres)
	}
	return &cfg, nil
}
