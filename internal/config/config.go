// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kkyr/fig"
)

const (
	configEnv         = "WEATHEROUTLOOK"
	DefaultTextTpl    = "{{.Current.ConditionIcon}} {{.Current.Temperature}}{{.TempUnit}}"
	DefaultTooltipTpl = "{{.Location.Name}}, {{.Location.Country}}\n" +
		"{{.Current.DayName}} ({{.Current.Date}}): {{.Current.Description}}\n" +
		"{{loc \"apparent\"}}: {{.Current.FeelsLike}}{{.TempUnit}} " +
		"{{.Current.TempMin}}{{.TempUnit}}↓ {{.Current.TempMax}}{{.TempUnit}}↑\n" +
		"{{loc \"sunrise\"}}: {{.Sunrise}} {{loc \"sunset\"}}: {{.Sunset}}\n" +
		"{{range .Outlook}}\n{{.ConditionIconWithSpace}}{{.DayName}} {{.Date}}: {{.Temperature}}{{$.TempUnit}} {{.Description}}{{end}}"
)

// Config represents the application's configuration structure.
type Config struct {
	// Allowed values: metric, imperial
	Units    string     `fig:"units" default:"metric"`
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	Location struct {
		Query     string  `fig:"query"`
		Latitude  float64 `fig:"latitude"`
		Longitude float64 `fig:"longitude"`
	} `fig:"location"`

	Weather struct {
		APIKey string `fig:"apikey"`
		// Allowed value: 1 to 40
		SampleCount uint          `fig:"sample_count" default:"40"`
		CacheTTL    time.Duration `fig:"cache_ttl" default:"10m"`
		RateLimit   float64       `fig:"rate_limit" default:"1"`
		RateBurst   int           `fig:"rate_burst" default:"3"`
	} `fig:"weather"`

	Forecast struct {
		SortSamples bool `fig:"sort_samples"`
		// Allowed value: 1 to 7
		OutlookDays uint `fig:"outlook_days" default:"7"`
	} `fig:"forecast"`

	Intervals struct {
		WeatherUpdate time.Duration `fig:"weather_update" default:"15m"`
		Output        time.Duration `fig:"output" default:"30s"`
	} `fig:"intervals"`

	Templates struct {
		Text    string `fig:"text"`
		Tooltip string `fig:"tooltip"`
	} `fig:"templates"`

	Server struct {
		Enable  bool   `fig:"enable"`
		Address string `fig:"address" default:"127.0.0.1:8080"`
	} `fig:"server"`
}

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

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	if c.Units != "metric" && c.Units != "imperial" {
		return fmt.Errorf("invalid units: %s", c.Units)
	}
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	if c.Weather.SampleCount < 1 || c.Weather.SampleCount > 40 {
		return fmt.Errorf("invalid sample count: %d", c.Weather.SampleCount)
	}
	if c.Weather.RateLimit <= 0 || c.Weather.RateBurst < 1 {
		return fmt.Errorf("invalid rate limit: %g requests/s with burst %d", c.Weather.RateLimit,
			c.Weather.RateBurst)
	}
	if c.Forecast.OutlookDays < 1 || c.Forecast.OutlookDays > 7 {
		return fmt.Errorf("invalid outlook days: %d", c.Forecast.OutlookDays)
	}
	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return fmt.Errorf("invalid latitude: %f", c.Location.Latitude)
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return fmt.Errorf("invalid longitude: %f", c.Location.Longitude)
	}
	if c.Intervals.WeatherUpdate <= 0 || c.Intervals.Output <= 0 {
		return fmt.Errorf("intervals must be positive")
	}
	if c.Templates.Text == "" {
		c.Templates.Text = DefaultTextTpl
	}
	if c.Templates.Tooltip == "" {
		c.Templates.Tooltip = DefaultTooltipTpl
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
