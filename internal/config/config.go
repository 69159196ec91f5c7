// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package config provides the configuration handling for the tripfare service.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kkyr/fig"
)

const configEnv = "TRIPFARE"

// Config represents the application's configuration structure.
type Config struct {
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`
	Listen   string     `fig:"listen" default:"localhost:8080"`

	Geocoding struct {
		// API key for the openrouteservice Pelias search. Optional, the resolver
		// falls back to Nominatim without it.
		ORSAPIKey string `fig:"ors_api_key"`
		// ISO-3166-1 alpha-2 code used to bias geocoding results.
		CountryBias string `fig:"country_bias" default:"MY"`
	} `fig:"geocoding"`

	Routing struct {
		// Allowed values: auto, google, ors, osrm
		Provider     string `fig:"provider" default:"auto"`
		GoogleAPIKey string `fig:"google_api_key"`
		ORSAPIKey    string `fig:"ors_api_key"`
	} `fig:"routing"`

	Address struct {
		// Country name appended to addresses that do not carry one.
		DefaultCountry string `fig:"default_country" default:"Malaysia"`
	} `fig:"address"`

	Fare struct {
		Base      float64 `fig:"base" default:"3"`
		PerKm     float64 `fig:"per_km" default:"1"`
		PerMinute float64 `fig:"per_minute" default:"0.5"`
	} `fig:"fare"`
}

// NewFromFile reads the Config from the given config file.
func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

// New reads the Config from the environment alone.
func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

// Validate normalizes and sanity-checks the loaded configuration.
func (c *Config) Validate() error {
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	c.Routing.Provider = strings.ToLower(c.Routing.Provider)
	switch c.Routing.Provider {
	case "auto", "google", "ors", "osrm":
	default:
		return fmt.Errorf("invalid routing provider: %s", c.Routing.Provider)
	}
	if c.Geocoding.CountryBias != "" && len(c.Geocoding.CountryBias) != 2 {
		return fmt.Errorf("invalid country bias code: %s", c.Geocoding.CountryBias)
	}
	c.Geocoding.CountryBias = strings.ToUpper(c.Geocoding.CountryBias)
	if c.Address.DefaultCountry == "" {
		return fmt.Errorf("default country must not be empty")
	}
	if c.Fare.Base < 0 || c.Fare.PerKm < 0 || c.Fare.PerMinute < 0 {
		return fmt.Errorf("fare rates must not be negative")
	}

	return nil
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
