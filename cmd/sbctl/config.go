package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/sbcontrol/internal/config"
)

// sbctl config.toml key mapping to demo settings.
type fileConfig struct {
	HostConfig  string   `toml:"host_config"`
	Version     string   `toml:"version"`
	Title       string   `toml:"title"`
	Clients     int      `toml:"clients"`
	Entities    []string `toml:"entities"`
	MetricsAddr string   `toml:"metrics_addr"`
}

// demoOptions drive one scripted session.
type demoOptions struct {
	Host        config.Config
	Title       string
	Clients     int
	Entities    []string
	MetricsAddr string
}

func defaultOptions() demoOptions {
	return demoOptions{
		Host:     config.Default(),
		Title:    "&6&lArena",
		Clients:  2,
		Entities: []string{"alex", "steve", "notch"},
	}
}

// loadOptions overlays the keys present in path onto the defaults. An empty
// path yields the defaults.
func loadOptions(path string) (demoOptions, error) {
	opts := defaultOptions()
	if strings.TrimSpace(path) == "" {
		return opts, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return demoOptions{}, fmt.Errorf("load sbctl config: %w", err)
	}

	if meta.IsDefined("host_config") {
		host, err := loadHostConfig(path, raw.HostConfig)
		if err != nil {
			return demoOptions{}, err
		}
		opts.Host = host
	}
	if meta.IsDefined("version") {
		opts.Host.Version = strings.TrimSpace(raw.Version)
	}
	if meta.IsDefined("title") {
		opts.Title = raw.Title
	}
	if meta.IsDefined("clients") {
		opts.Clients = raw.Clients
	}
	if meta.IsDefined("entities") {
		opts.Entities = raw.Entities
	}
	if meta.IsDefined("metrics_addr") {
		opts.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	}

	if err := opts.validate(); err != nil {
		return demoOptions{}, fmt.Errorf("load sbctl config: %w", err)
	}
	return opts, nil
}

func (o demoOptions) validate() error {
	if o.Clients < 1 {
		return fmt.Errorf("clients must be at least 1, got %d", o.Clients)
	}
	if len(o.Entities) == 0 {
		return fmt.Errorf("entities must not be empty")
	}
	for _, e := range o.Entities {
		if strings.TrimSpace(e) == "" {
			return fmt.Errorf("entities must not contain blank names")
		}
	}
	return config.Validate(o.Host)
}

// loadHostConfig resolves hostPath against the directory of the sbctl config.
func loadHostConfig(sbctlConfigPath string, hostPath string) (config.Config, error) {
	resolved := strings.TrimSpace(hostPath)
	if resolved == "" {
		return config.Config{}, fmt.Errorf("load sbctl config: host_config is empty")
	}
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(sbctlConfigPath), resolved)
	}
	if _, err := os.Stat(resolved); err != nil {
		return config.Config{}, fmt.Errorf("load sbctl config: host config path %q: %w", hostPath, err)
	}
	host, err := config.Load(resolved)
	if err != nil {
		return config.Config{}, fmt.Errorf("load sbctl config: %w", err)
	}
	return host, nil
}
