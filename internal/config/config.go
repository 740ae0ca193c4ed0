package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultMaxUploadBytes caps a single uploaded file.
const DefaultMaxUploadBytes = 50 << 20

// Config defines server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"  envPrefix:"SERVER_"`
	DB      DBConfig      `yaml:"db"      envPrefix:"DB_"`
	Storage StorageConfig `yaml:"storage" envPrefix:"STORAGE_"`
	Upload  UploadConfig  `yaml:"upload"  envPrefix:"UPLOAD_"`
	Auth    AuthConfig    `yaml:"auth"    envPrefix:"AUTH_"`
	Log     LogConfig     `yaml:"log"     envPrefix:"LOG_"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"             env:"HOST"`
	Port            int           `yaml:"port"             env:"PORT"`
	RequestTimeout  time.Duration `yaml:"request_timeout"  env:"REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

type DBConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver" env:"DRIVER"`
	DSN    string `yaml:"dsn"    env:"DSN"`
}

type StorageConfig struct {
	Root          string `yaml:"root"            env:"ROOT"`
	Bucket        string `yaml:"bucket"          env:"BUCKET"`
	PublicBaseURL string `yaml:"public_base_url" env:"PUBLIC_BASE_URL"`
}

type UploadConfig struct {
	MaxBytes int64 `yaml:"max_bytes" env:"MAX_BYTES"`
}

type AuthConfig struct {
	// ProtectWrites requires admin basic credentials on mutating routes.
	ProtectWrites bool `yaml:"protect_writes" env:"PROTECT_WRITES"`
}

type LogConfig struct {
	Level    string         `yaml:"level"    env:"LEVEL"`
	JSON     bool           `yaml:"json"     env:"JSON"`
	File     string         `yaml:"file"     env:"FILE"`
	Rotation RotationConfig `yaml:"rotation" envPrefix:"ROTATION_"`
}

type RotationConfig struct {
	MaxSize    int  `yaml:"max_size"    env:"MAX_SIZE"`
	MaxBackups int  `yaml:"max_backups" env:"MAX_BACKUPS"`
	MaxAge     int  `yaml:"max_age"     env:"MAX_AGE"`
	Compress   bool `yaml:"compress"    env:"COMPRESS"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			RequestTimeout:  60 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		DB: DBConfig{
			Driver: "sqlite",
			DSN:    "portfolio.db",
		},
		Storage: StorageConfig{
			Root:          "data/uploads",
			Bucket:        "uploads",
			PublicBaseURL: "http://localhost:8080/storage",
		},
		Upload: UploadConfig{
			MaxBytes: DefaultMaxUploadBytes,
		},
		Log: LogConfig{
			Level: "info",
			Rotation: RotationConfig{
				MaxSize:    64,
				MaxBackups: 5,
				MaxAge:     14,
			},
		},
	}
}

// Load reads configuration from .env files, an optional YAML file and
// environment variables, in that order of precedence (lowest first).
func Load() (Config, error) {
	// godotenv never overrides a variable that is already set, so the more
	// specific file loads first. Missing files are fine.
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}

	cfg := Default()

	if path := os.Getenv("PORTFOLIO_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "PORTFOLIO_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late at startup.
func (c Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid db.driver %q: want sqlite or postgres", c.DB.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("invalid upload.max_bytes %d", c.Upload.MaxBytes)
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required")
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
