// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

//go:build linux

// Package main implements the weather-outlook service.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/wneessen/weather-outlook/internal/api"
	"github.com/wneessen/weather-outlook/internal/config"
	"github.com/wneessen/weather-outlook/internal/forecast"
	"github.com/wneessen/weather-outlook/internal/i18n"
	"github.com/wneessen/weather-outlook/internal/logger"
	"github.com/wneessen/weather-outlook/internal/service"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, os.Interrupt)
	defer cancel()

	// Initialize Logger
	log := logger.New(slog.LevelError)

	// Read config
	confRead := false
	confPath := flag.String("config", "", "path to the config file")
	location := flag.String("location", "", "place name (\"Cologne,DE\") or coordinates (\"50.93,6.95\")")
	flag.Parse()

	// Read default config
	conf, err := config.New()
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}

	// If config file was specified, read it
	if *confPath != "" {
		file := filepath.Base(*confPath)
		path := filepath.Dir(*confPath)
		conf, err = config.NewFromFile(path, file)
		if err != nil {
			log.Error("failed to load config from file", logger.Err(err))
			os.Exit(1)
		}
		confRead = true
	}

	// Check if we have a config file in the default location
	if path, file := findConfigFile(); !confRead && (path != "" && file != "") {
		conf, err = config.NewFromFile(path, file)
		if err != nil {
			log.Error("failed to load config from file", logger.Err(err))
			os.Exit(1)
		}
	}

	log = logger.New(conf.LogLevel)
	t, err := i18n.New(conf.Locale)
	if err != nil {
		log.Error("failed to initialize localizer", logger.Err(err))
		os.Exit(1)
	}

	// Initialize the service
	serv, err := service.New(conf, log, t)
	if err != nil {
		log.Error("failed to initialize weather-outlook service", logger.Err(err))
		os.Exit(1)
	}
	if *location != "" {
		if err = serv.SetLocation(ctx, parseLocation(*location)); err != nil {
			log.Error("failed to set location", logger.Err(err), slog.String("location", *location))
		}
	}

	// Refetch on SIGUSR1, log the current location on SIGUSR2
	sigChan := make(chan os.Signal, 1)
	serv.SignalSrc.Notify(sigChan, syscall.SIGUSR1, syscall.SIGUSR2)
	go func() {
		defer serv.SignalSrc.Stop(sigChan)
		serv.HandleSignals(ctx, sigChan)
	}()

	// Optional HTTP API
	if conf.Server.Enable {
		server, err := api.New(serv, log, conf.Server.Address)
		if err != nil {
			log.Error("failed to initialize API server", logger.Err(err))
			os.Exit(1)
		}
		go func() {
			if err := server.Run(ctx); err != nil {
				log.Error("API server failed", logger.Err(err))
			}
		}()
	}

	// Start the service loop
	log.Info(t.Get("starting weather-outlook service"), slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date))
	if err = serv.Run(ctx); err != nil {
		log.Error(t.Get("failed to start weather-outlook service"), logger.Err(err))
	}
	log.Info(t.Get("shutting down weather-outlook service"))
}

// parseLocation treats "lat,lon" as coordinates and anything else as a place name.
func parseLocation(value string) forecast.Query {
	if lat, lon, ok := strings.Cut(value, ","); ok {
		latitude, errLat := strconv.ParseFloat(strings.TrimSpace(lat), 64)
		longitude, errLon := strconv.ParseFloat(strings.TrimSpace(lon), 64)
		if errLat == nil && errLon == nil {
			return forecast.Query{Latitude: latitude, Longitude: longitude}
		}
	}
	return forecast.Query{Place: value}
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "weather-outlook", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
