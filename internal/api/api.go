// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package api serves the forecast outlook as JSON over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/wneessen/weather-outlook/internal/forecast"
	"github.com/wneessen/weather-outlook/internal/forecast/provider/openweathermap"
	"github.com/wneessen/weather-outlook/internal/logger"
	"github.com/wneessen/weather-outlook/internal/presenter"
)

const (
	appName         = "weather-outlook"
	requestTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

var validate = validator.New()

// Backend provides the forecast data the API serves. A zero query selects the location
// the backend is currently configured for.
type Backend interface {
	Outlook(ctx context.Context, query forecast.Query) (forecast.Outlook, error)
	Daily(ctx context.Context, query forecast.Query) ([]presenter.CardView, error)
}

type Server struct {
	app     *fiber.App
	address string
	logger  *logger.Logger
}

func New(backend Backend, log *logger.Logger, address string) (*Server, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           requestTimeout,
		WriteTimeout:          requestTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			if code >= fiber.StatusInternalServerError {
				log.Error("API request failed", logger.Err(err), slog.String("path", c.Path()))
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})
	app.Use(recover.New())
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": appName,
		})
	})
	RegisterRoutes(app, backend)

	return &Server{app: app, address: address, logger: log}, nil
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves the API until ctx is canceled and then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", slog.String("address", s.address))
		errChan <- s.app.Listen(s.address)
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("API server stopped: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down API server: %w", err)
	}
	return nil
}

// RegisterRoutes wires the forecast handlers into the fiber app.
func RegisterRoutes(app *fiber.App, backend Backend) {
	v1 := app.Group("/api/v1")

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		query, err := parseForecastQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		outlook, err := backend.Outlook(c.UserContext(), query)
		if err != nil {
			return loaderError(err)
		}
		return c.JSON(outlook)
	})

	v1.Get("/forecast/daily", func(c *fiber.Ctx) error {
		query, err := parseForecastQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		cards, err := backend.Daily(c.UserContext(), query)
		if err != nil {
			return loaderError(err)
		}
		return c.JSON(fiber.Map{
			"query": query.String(),
			"days":  cards,
		})
	})
}

// forecastQuery holds the query parameters selecting a location.
type forecastQuery struct {
	Place     string  `validate:"max=200"`
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
}

func parseForecastQuery(c *fiber.Ctx) (forecast.Query, error) {
	var q forecastQuery
	q.Place = c.Query("q")

	lat, lon := c.Query("lat"), c.Query("lon")
	if (lat == "") != (lon == "") {
		return forecast.Query{}, errors.New("lat and lon query parameters must be given together")
	}
	if lat != "" {
		var err error
		if q.Latitude, err = strconv.ParseFloat(lat, 64); err != nil {
			return forecast.Query{}, fmt.Errorf("invalid lat: %w", err)
		}
		if q.Longitude, err = strconv.ParseFloat(lon, 64); err != nil {
			return forecast.Query{}, fmt.Errorf("invalid lon: %w", err)
		}
		// A zero query selects the configured location, so 0,0 cannot be requested.
		if q.Latitude == 0 && q.Longitude == 0 {
			return forecast.Query{}, errors.New("lat=0 and lon=0 are not supported")
		}
	}

	if err := validate.Struct(q); err != nil {
		return forecast.Query{}, err
	}
	return forecast.Query{Place: q.Place, Latitude: q.Latitude, Longitude: q.Longitude}, nil
}

func loaderError(err error) error {
	switch {
	case errors.Is(err, forecast.ErrEmptyQuery):
		return fiber.NewError(fiber.StatusBadRequest, "no location given and no location configured")
	case errors.Is(err, openweathermap.ErrCircuitOpen):
		return fiber.NewError(fiber.StatusServiceUnavailable, "forecast API temporarily unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.NewError(fiber.StatusGatewayTimeout, "forecast API timed out")
	default:
		return fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("failed to fetch forecast: %s", err))
	}
}
