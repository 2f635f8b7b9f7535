package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Client configures the register: where the backend lives and how the
// terminal keeps its session.
type Client struct {
	APIURL      string        `env:"POS_API_URL,required"`
	HTTPTimeout time.Duration `env:"POS_HTTP_TIMEOUT,default=30s"`
	TaxPercent  int           `env:"POS_TAX_PERCENT,default=10"`
	StoragePath string        `env:"POS_STORAGE_PATH,default=.padipos/storage.json"`
	LogLevel    string        `env:"LOG_LEVEL,default=info"`
	LogFormat   string        `env:"LOG_FORMAT,default=text"`
}

// Sandbox configures the in-memory backend.
type Sandbox struct {
	Addr       string `env:"SANDBOX_ADDR,default=:8080"`
	SecretKey  string `env:"JWT_SECRET_KEY,required"`
	TaxPercent int    `env:"SANDBOX_TAX_PERCENT,default=10"`
	SeedFile   string `env:"SANDBOX_SEED_FILE"`
	RateLimit  int    `env:"SANDBOX_RATE_LIMIT,default=20"`
	RateBurst  int    `env:"SANDBOX_RATE_BURST,default=40"`
	LogLevel   string `env:"LOG_LEVEL,default=info"`
	LogFormat  string `env:"LOG_FORMAT,default=text"`
}

// LoadClient reads an optional .env file and decodes the client settings
// from the environment.
func LoadClient() (*Client, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	var cfg Client
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return nil, fmt.Errorf("decode client config: %w", err)
	}

	u, err := url.Parse(cfg.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("POS_API_URL %q is not an absolute URL", cfg.APIURL)
	}
	if err := checkTax(cfg.TaxPercent); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func LoadSandbox() (*Sandbox, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	var cfg Sandbox
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return nil, fmt.Errorf("decode sandbox config: %w", err)
	}
	if err := checkTax(cfg.TaxPercent); err != nil {
		return nil, err
	}
	if cfg.RateLimit <= 0 || cfg.RateBurst <= 0 {
		return nil, errors.New("SANDBOX_RATE_LIMIT and SANDBOX_RATE_BURST must be positive")
	}
	return &cfg, nil
}

// SetupLogging applies level and formatter to the standard logrus logger.
func SetupLogging(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	logrus.SetLevel(lvl)

	switch format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("LOG_FORMAT %q: want text or json", format)
	}
	return nil
}

func loadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func checkTax(percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("tax percent %d out of range", percent)
	}
	return nil
}
