// Package config loads wireframe settings from a YAML or JSON file.
package config

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/wireframe/internal/logging"
	"github.com/aretw0/wireframe/pkg/adapters/process"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "WIREFRAME_CONFIG"

// DefaultPath is read when no path is given. A missing default file is not an error.
const DefaultPath = "wireframe.yaml"

// Store backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full set of settings.
type Config struct {
	LogLevel string        `yaml:"log_level" json:"log_level"`
	Store    StoreConfig   `yaml:"store" json:"store"`
	History  HistoryConfig `yaml:"history" json:"history"`
	Server   ServerConfig  `yaml:"server" json:"server"`
	Codegen  CodegenConfig `yaml:"codegen" json:"codegen"`
	// Preview is the command "wireframe run" starts the generated app with.
	Preview process.Config `yaml:"preview" json:"preview"`
}

// StoreConfig selects and configures the project store.
type StoreConfig struct {
	Backend string      `yaml:"backend" json:"backend"`
	Dir     string      `yaml:"dir" json:"dir"`
	Path    string      `yaml:"path" json:"path"`
	Redis   RedisConfig `yaml:"redis" json:"redis"`

	// Strict rejects invalid projects on save instead of logging them.
	Strict bool `yaml:"strict" json:"strict"`
	// Redact lists prop key patterns masked before projects are stored.
	Redact []string `yaml:"redact" json:"redact"`
	// EncryptionKey is a base64 AES-256 key. Empty disables encryption.
	EncryptionKey string   `yaml:"encryption_key" json:"encryption_key"`
	FallbackKeys  []string `yaml:"fallback_keys" json:"fallback_keys"`
}

// RedisConfig configures the redis store and locker.
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	Prefix   string `yaml:"prefix" json:"prefix"`
	TTL      string `yaml:"ttl" json:"ttl"`
	Lock     bool   `yaml:"lock" json:"lock"`
}

// HistoryConfig bounds undo history.
type HistoryConfig struct {
	Capacity int `yaml:"capacity" json:"capacity"`
}

// ServerConfig configures the HTTP adapter.
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// CodegenConfig holds defaults for generated code.
type CodegenConfig struct {
	Title  string `yaml:"title" json:"title"`
	Indent int    `yaml:"indent" json:"indent"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		LogLevel: "info",
		Store: StoreConfig{
			Backend: BackendFile,
			Dir:     ".wireframe/projects",
			Path:    ".wireframe/wireframe.db",
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		History: HistoryConfig{Capacity: 50},
		Server:  ServerConfig{Addr: ":8080"},
		Codegen: CodegenConfig{Indent: 4},
		Preview: process.DefaultConfig(),
	}
}

// Load reads the config at path, falling back to $WIREFRAME_CONFIG and then
// DefaultPath. Only a missing DefaultPath yields defaults; a missing explicit
// file is an error. Values absent from the file keep their defaults.
func Load(path string) (Config, error) {
	explicit := true
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		path = DefaultPath
		explicit = false
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}
	switch c.Store.Backend {
	case BackendFile, BackendMemory, BackendRedis, BackendSQLite, BackendBolt:
	default:
		return fmt.Errorf("%w: store.backend %q", ErrInvalid, c.Store.Backend)
	}
	if _, err := c.Store.Redis.Expiry(); err != nil {
		return fmt.Errorf("%w: store.redis.ttl: %v", ErrInvalid, err)
	}
	if _, _, err := c.Store.Keys(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.History.Capacity < 0 {
		return fmt.Errorf("%w: history.capacity must not be negative", ErrInvalid)
	}
	return nil
}

// Expiry parses TTL. Empty means no expiry.
func (r RedisConfig) Expiry() (time.Duration, error) {
	if r.TTL == "" {
		return 0, nil
	}
	return time.ParseDuration(r.TTL)
}

// Keys decodes the encryption keys. A nil active key means encryption is off.
func (s StoreConfig) Keys() (active []byte, fallback [][]byte, err error) {
	if s.EncryptionKey == "" {
		return nil, nil, nil
	}
	decode := func(field, v string) ([]byte, error) {
		k, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", field, err)
		}
		if len(k) != 32 {
			return nil, fmt.Errorf("%s: key must be 32 bytes, got %d", field, len(k))
		}
		return k, nil
	}
	if active, err = decode("store.encryption_key", s.EncryptionKey); err != nil {
		return nil, nil, err
	}
	for i, v := range s.FallbackKeys {
		k, err := decode(fmt.Sprintf("store.fallback_keys[%d]", i), v)
		if err != nil {
			return nil, nil, err
		}
		fallback = append(fallback, k)
	}
	return active, fallback, nil
}
