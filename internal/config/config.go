// Package config loads the CLI configuration from voyager.yaml (or .json) and flag
// overrides.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "voyager.yaml"

// Store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreHTTP   = "http"
)

// Config is the CLI configuration.
type Config struct {
	RootURL  string      `mapstructure:"root_url"`
	LogLevel string      `mapstructure:"log_level"`
	Listen   string      `mapstructure:"listen"`
	Store    StoreConfig `mapstructure:"store"`
}

type StoreConfig struct {
	Kind  string      `mapstructure:"kind"`
	Dir   string      `mapstructure:"dir"`
	Redis RedisConfig `mapstructure:"redis"`
	HTTP  HTTPConfig  `mapstructure:"http"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type HTTPConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

func defaults() map[string]any {
	return map[string]any{
		"root_url":  "",
		"log_level": "info",
		"listen":    ":8080",
		"store": map[string]any{
			"kind": StoreFile,
			"dir":  ".",
			"redis": map[string]any{
				"addr": "localhost:6379",
			},
		},
	}
}

// Load reads the file at path, applies overrides and decodes the result. Override keys
// are dotted paths such as "store.dir". A missing file is an error only when required.
func Load(path string, required bool, overrides map[string]any) (Config, error) {
	raw := defaults()

	file, err := readFile(path)
	switch {
	case os.IsNotExist(err) && !required:
	case err != nil:
		return Config{}, err
	default:
		merge(raw, file)
	}

	for key, value := range overrides {
		set(raw, strings.Split(key, "."), value)
	}

	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the store kind and log level.
func (c Config) Validate() error {
	switch c.Store.Kind {
	case StoreMemory, StoreFile, StoreRedis:
	case StoreHTTP:
		if c.Store.HTTP.BaseURL == "" {
			return fmt.Errorf("store.http.base_url is required for the http store")
		}
	default:
		return fmt.Errorf("unknown store kind %q", c.Store.Kind)
	}
	_, err := c.Level()
	return err
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &out)
	} else {
		err = yaml.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return out, nil
}

// merge copies src into dst, descending into nested maps.
func merge(dst, src map[string]any) {
	for k, v := range src {
		sub, ok := v.(map[string]any)
		if d, isMap := dst[k].(map[string]any); ok && isMap {
			merge(d, sub)
			continue
		}
		dst[k] = v
	}
}

func set(dst map[string]any, keys []string, value any) {
	for _, k := range keys[:len(keys)-1] {
		next, ok := dst[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			dst[k] = next
		}
		dst = next
	}
	dst[keys[len(keys)-1]] = value
}
