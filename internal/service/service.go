// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/vorlif/spreak"

	"github.com/wneessen/weather-outlook/internal/config"
	"github.com/wneessen/weather-outlook/internal/forecast"
	"github.com/wneessen/weather-outlook/internal/forecast/provider/openweathermap"
	"github.com/wneessen/weather-outlook/internal/http"
	"github.com/wneessen/weather-outlook/internal/i18n"
	"github.com/wneessen/weather-outlook/internal/logger"
	"github.com/wneessen/weather-outlook/internal/presenter"
)

type Service struct {
	config    *config.Config
	logger    *logger.Logger
	t         *spreak.Localizer
	scheduler gocron.Scheduler
	presenter *presenter.Presenter
	cache     *forecast.CachedLoader
	loader    forecast.Loader
	output    io.Writer
	jobs      []gocron.Job
	buildOpts []forecast.Option

	SignalSrc signalSource

	queryLock sync.RWMutex
	query     forecast.Query

	forecastLock sync.RWMutex
	forecast     *forecast.Forecast
}

func New(conf *config.Config, log *logger.Logger, t *spreak.Localizer) (*Service, error) {
	if conf == nil {
		return nil, fmt.Errorf("config is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if t == nil {
		return nil, fmt.Errorf("localizer is required")
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	lang := i18n.Language(conf.Locale)
	pres, err := presenter.New(conf, lang, t)
	if err != nil {
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}

	owm, err := openweathermap.New(http.New(log), log, conf.Weather.APIKey, conf.Weather.SampleCount, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to create forecast loader: %w", err)
	}
	limited := forecast.NewRateLimitedLoader(owm, conf.Weather.RateLimit, conf.Weather.RateBurst)
	cache := forecast.NewCachedLoader(limited, conf.Weather.CacheTTL)

	service := &Service{
		config:    conf,
		logger:    log,
		t:         t,
		scheduler: scheduler,
		presenter: pres,
		cache:     cache,
		loader:    cache,
		output:    os.Stdout,
		SignalSrc: stdLibSignalSource{},
		query: forecast.Query{
			Place:     conf.Location.Query,
			Latitude:  conf.Location.Latitude,
			Longitude: conf.Location.Longitude,
		},
	}
	if conf.Forecast.SortSamples {
		service.buildOpts = append(service.buildOpts, forecast.WithChronologicalOrder())
	}

	return service, nil
}

// Run schedules the forecast refresh and output jobs and blocks until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	job, err := s.createScheduledJob(ctx, s.config.Intervals.Output, s.printOutput, "forecast_output_job")
	if err != nil {
		return errors.Join(err, s.scheduler.Shutdown())
	}
	s.jobs = append(s.jobs, job)
	job, err = s.createScheduledJob(ctx, s.config.Intervals.WeatherUpdate, s.refresh, "forecast_update_job")
	if err != nil {
		return errors.Join(err, s.scheduler.Shutdown())
	}
	s.jobs = append(s.jobs, job)
	s.scheduler.Start()

	s.printOutput(ctx)
	if err = s.Query().Validate(); err == nil {
		s.refresh(ctx)
	} else {
		s.logger.Warn("no location configured, waiting for a location update")
	}

	<-ctx.Done()
	return s.scheduler.Shutdown()
}

func (s *Service) createScheduledJob(ctx context.Context, interval time.Duration, task func(context.Context),
	jobName string,
) (gocron.Job, error) {
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(jobName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	return job, nil
}

// Query returns the location query the service currently fetches forecasts for.
func (s *Service) Query() forecast.Query {
	s.queryLock.RLock()
	defer s.queryLock.RUnlock()
	return s.query
}

// SetLocation replaces the location query and immediately fetches and prints the forecast
// for it.
func (s *Service) SetLocation(ctx context.Context, query forecast.Query) error {
	if err := query.Validate(); err != nil {
		return fmt.Errorf("invalid location: %w", err)
	}

	s.queryLock.Lock()
	s.query = query
	s.queryLock.Unlock()
	s.logger.Debug("location updated", slog.String("query", query.String()))

	if err := s.fetchForecast(ctx); err != nil {
		return err
	}
	s.printOutput(ctx)
	return nil
}

// Forecast returns the last successfully fetched forecast, or nil if none was fetched yet.
func (s *Service) Forecast() *forecast.Forecast {
	s.forecastLock.RLock()
	defer s.forecastLock.RUnlock()
	return s.forecast
}

// Outlook loads the forecast for query through the service's cached loader and derives
// its outlook. A zero query selects the service's current location.
func (s *Service) Outlook(ctx context.Context, query forecast.Query) (forecast.Outlook, error) {
	result, err := s.load(ctx, query)
	if err != nil {
		return forecast.Outlook{}, err
	}
	return forecast.Build(result, s.buildOpts...), nil
}

// Daily returns the rendered outlook cards for query.
func (s *Service) Daily(ctx context.Context, query forecast.Query) ([]presenter.CardView, error) {
	result, err := s.load(ctx, query)
	if err != nil {
		return nil, err
	}
	view := s.presenter.BuildContext(result, forecast.Build(result, s.buildOpts...))
	return view.Outlook, nil
}

func (s *Service) load(ctx context.Context, query forecast.Query) (*forecast.Forecast, error) {
	if query == (forecast.Query{}) {
		query = s.Query()
	}
	ctxFetch, cancelFetch := context.WithTimeout(ctx, FetchTimeout)
	defer cancelFetch()
	return s.loader.Forecast(ctxFetch, query)
}

// printOutput renders the latest forecast and writes it as a JSON line to the output.
// Before the first forecast arrived the loading state is printed.
func (s *Service) printOutput(context.Context) {
	s.forecastLock.RLock()
	result := s.forecast
	s.forecastLock.RUnlock()

	view := s.presenter.BuildContext(result, forecast.Build(result, s.buildOpts...))
	output, err := s.presenter.Render(view)
	if err != nil {
		s.logger.Error("failed to render forecast output", logger.Err(err))
		return
	}

	if err = json.NewEncoder(s.output).Encode(output); err != nil {
		s.logger.Error("failed to encode forecast output", logger.Err(err))
	}
}
