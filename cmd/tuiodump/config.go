package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// config holds the tuiodump runtime settings.
type config struct {
	ListenAddr string
	Source     string
	Verbose    bool
	JSON       bool
}

func defaultConfig() config {
	return config{
		ListenAddr: ":3333",
	}
}

// tuiodump config.toml key mapping.
type fileConfig struct {
	ListenAddr string `toml:"listen_addr"`
	Source     string `toml:"source"`
	Verbose    bool   `toml:"verbose"`
	JSON       bool   `toml:"json"`
}

// loadConfig overlays the TOML file at path on the defaults. Keys absent from
// the file keep their default value.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("listen_addr") {
		cfg.ListenAddr = strings.TrimSpace(raw.ListenAddr)
	}
	if meta.IsDefined("source") {
		cfg.Source = strings.TrimSpace(raw.Source)
	}
	if meta.IsDefined("verbose") {
		cfg.Verbose = raw.Verbose
	}
	if meta.IsDefined("json") {
		cfg.JSON = raw.JSON
	}

	if cfg.ListenAddr == "" {
		return config{}, fmt.Errorf("load config: listen_addr must not be empty")
	}

	return cfg, nil
}
