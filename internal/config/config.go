// Package config reads the json5 configuration shared by the server and the cli.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"contribcal/internal/components/telemetry"
	"contribcal/internal/scrapers/github"
	"contribcal/internal/scrapers/gitlab"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

type ServerConfig struct {
	Port            int `json:"port"`
	CacheSize       int `json:"cache_size"`
	CacheTtlSeconds int `json:"cache_ttl_seconds"`
}

type Config struct {
	GithubBaseUrl  string               `json:"github_base_url"`
	GitlabApiUrl   string               `json:"gitlab_api_url"`
	UserAgent      string               `json:"user_agent"`
	TimeoutSeconds int                  `json:"timeout_seconds"`
	Timezone       string               `json:"timezone"`
	Server         ServerConfig         `json:"server"`
	Otlp           telemetry.OtlpConfig `json:"otlp"`
}

func Default() Config {
	return Config{
		GithubBaseUrl: github.DefaultBaseUrl,
		GitlabApiUrl:  gitlab.DefaultBaseUrl,
		UserAgent:     "contribcal",
		Timezone:      "UTC",
		Server: ServerConfig{
			Port:            8000,
			CacheSize:       1024,
			CacheTtlSeconds: 3600,
		},
	}
}

// Timeout is 0 when requests should never time out.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) CacheTtl() time.Duration {
	return time.Duration(c.Server.CacheTtlSeconds) * time.Second
}

func (c Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	for name, raw := range map[string]string{
		"github_base_url": c.GithubBaseUrl,
		"gitlab_api_url":  c.GitlabApiUrl,
	} {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("%s: expected an http(s) url, got %q", name, raw)
		}
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds: must not be negative")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: %d is out of range", c.Server.Port)
	}
	if c.Server.CacheSize <= 0 {
		return fmt.Errorf("server.cache_size: must be positive")
	}
	return nil
}

func readOverlay(path string, into *Config) (bool, error) {
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(contents) == 0 {
		return false, nil
	}

	var overlay Config
	err = json5.Unmarshal(contents, &overlay)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	err = mergo.Merge(into, overlay, mergo.WithOverride)
	if err != nil {
		return false, err
	}
	return true, nil
}

// localPath turns "dir/config.json5" into "dir/config.local.json5".
func localPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

// Load merges the following over Default(), later entries take priority.
// 1. <name>.<ext>
// 2. <name>.local.<ext>
//
// Missing files are skipped, zero values in a file leave the value below them untouched.
func Load(path string) (Config, error) {
	cfg := Default()

	for _, p := range []string{path, localPath(path)} {
		found, err := readOverlay(p, &cfg)
		if err != nil {
			return Config{}, err
		}
		if found {
			slog.Debug("merged config file", "path", p)
		}
	}

	err := cfg.Validate()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}
