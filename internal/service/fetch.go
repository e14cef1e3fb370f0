// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/weather-outlook/internal/logger"
)

const FetchTimeout = time.Second * 10

// refresh fetches the forecast for the current location and logs failures. The last good
// forecast stays in place when a fetch fails.
func (s *Service) refresh(ctx context.Context) {
	if err := s.fetchForecast(ctx); err != nil {
		s.logger.Error("failed to update forecast", logger.Err(err))
	}
}

func (s *Service) fetchForecast(ctx context.Context) error {
	query := s.Query()
	if err := query.Validate(); err != nil {
		return err
	}

	ctxFetch, cancelFetch := context.WithTimeout(ctx, FetchTimeout)
	defer cancelFetch()
	result, err := s.loader.Forecast(ctxFetch, query)
	if err != nil {
		return fmt.Errorf("failed to get forecast data: %w", err)
	}
	s.logger.Debug("forecast updated", slog.String("location", result.Location.Name),
		slog.Int("samples", len(result.Series)), slog.Bool("cache_hit", result.CacheHit))

	s.forecastLock.Lock()
	defer s.forecastLock.Unlock()
	if current := s.Query(); current != query {
		s.logger.Debug("discarding forecast for replaced location", slog.String("fetched", query.String()),
			slog.String("current", current.String()))
		return nil
	}
	s.forecast = result
	return nil
}
