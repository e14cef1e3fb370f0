// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package openweathermap loads 5 day / 3 hour forecasts from the OpenWeatherMap API.
package openweathermap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/text/language"

	"github.com/wneessen/weather-outlook/internal/forecast"
	"github.com/wneessen/weather-outlook/internal/http"
	"github.com/wneessen/weather-outlook/internal/logger"
	"github.com/wneessen/weather-outlook/internal/vartype"
)

const (
	name        = "openweathermap"
	apiEndpoint = "https://api.openweathermap.org/data/2.5/forecast"
	apiTimeout  = time.Second * 10

	// MaxSampleCount is the largest cnt value the API honours (5 days of 3-hour steps).
	MaxSampleCount = 40
)

var (
	ErrAPIKeyMissing    = errors.New("OpenWeatherMap API key is required")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrCircuitOpen      = errors.New("circuit breaker open")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	errServerError      = errors.New("server error")
)

type OpenWeatherMap struct {
	apikey  string
	count   uint
	lang    language.Tag
	http    *http.Client
	log     *logger.Logger
	breaker *gobreaker.CircuitBreaker
}

// epochTime decodes the integer epoch seconds used for dt, sunrise and sunset.
type epochTime struct {
	time.Time
}

type response struct {
	Cod     json.RawMessage `json:"cod"`
	Message json.RawMessage `json:"message"`
	Count   int             `json:"cnt"`
	List    []entry         `json:"list"`
	City    city            `json:"city"`
}

type entry struct {
	Dt   epochTime `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  float64 `json:"pressure"`
		SeaLevel  float64 `json:"sea_level"`
		GrndLevel float64 `json:"grnd_level"`
		Humidity  float64 `json:"humidity"`
		TempKf    float64 `json:"temp_kf"`
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Clouds struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
		Gust  float64 `json:"gust"`
	} `json:"wind"`
	Visibility float64            `json:"visibility"`
	Pop        vartype.VarFloat64 `json:"pop"`
	Rain       struct {
		ThreeHours vartype.VarFloat64 `json:"3h"`
	} `json:"rain"`
	Sys struct {
		Pod string `json:"pod"`
	} `json:"sys"`
	DtTxt string `json:"dt_txt"`
}

type city struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Country    string    `json:"country"`
	Population int64     `json:"population"`
	Timezone   int       `json:"timezone"`
	Sunrise    epochTime `json:"sunrise"`
	Sunset     epochTime `json:"sunset"`
}

// New returns an OpenWeatherMap loader that requests count samples per query. A count of
// 0 or above MaxSampleCount requests the maximum.
func New(client *http.Client, log *logger.Logger, apikey string, count uint, lang language.Tag) (*OpenWeatherMap, error) {
	if client == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if apikey == "" {
		return nil, ErrAPIKeyMissing
	}
	if count == 0 || count > MaxSampleCount {
		count = MaxSampleCount
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker changed state", slog.String("name", name),
				slog.String("from", from.String()), slog.String("to", to.String()))
		},
	})

	return &OpenWeatherMap{
		apikey:  apikey,
		count:   count,
		lang:    lang,
		http:    client,
		log:     log,
		breaker: breaker,
	}, nil
}

func (o *OpenWeatherMap) Name() string {
	return name
}

// Forecast queries the API and maps the response into a forecast.Forecast. The series
// keeps the order the API delivered.
func (o *OpenWeatherMap) Forecast(ctx context.Context, q forecast.Query) (*forecast.Forecast, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("appid", o.apikey)
	query.Set("cnt", strconv.FormatUint(uint64(o.count), 10))
	if base, conf := o.lang.Base(); conf != language.No {
		query.Set("lang", base.String())
	}
	if q.HasCoordinates() {
		query.Set("lat", strconv.FormatFloat(q.Latitude, 'f', 6, 64))
		query.Set("lon", strconv.FormatFloat(q.Longitude, 'f', 6, 64))
	} else {
		query.Set("q", q.Place)
	}

	res := new(response)
	result, err := o.breaker.Execute(func() (any, error) {
		code, err := o.http.GetWithTimeout(ctx, apiEndpoint, res, query, nil, apiTimeout)
		if err != nil {
			return code, err
		}
		if code >= 500 {
			return code, fmt.Errorf("%w: %d", errServerError, code)
		}
		return code, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %s", ErrCircuitOpen, err)
		}
		return nil, fmt.Errorf("failed to retrieve forecast data from OpenWeatherMap API: %w", err)
	}
	if code, ok := result.(int); !ok || code != 200 {
		return nil, fmt.Errorf("%w: OpenWeatherMap API returned %v: %s", ErrUnexpectedStatus, result,
			res.errorMessage())
	}

	series, err := res.series()
	if err != nil {
		return nil, err
	}
	o.log.Debug("forecast retrieved", slog.String("provider", name), slog.String("query", q.String()),
		slog.Int("samples", len(series)))

	return &forecast.Forecast{
		GeneratedAt: time.Now(),
		Location:    res.location(),
		Series:      series,
	}, nil
}

func (r *response) series() (forecast.Series, error) {
	series := make(forecast.Series, 0, len(r.List))
	for i, e := range r.List {
		if e.Dt.IsZero() {
			return nil, fmt.Errorf("%w: list entry %d has no dt field", ErrInvalidTimestamp, i)
		}
		sample := forecast.Sample{
			Time:                     e.Dt.Time,
			Temperature:              e.Main.Temp,
			FeelsLike:                e.Main.FeelsLike,
			TempMin:                  e.Main.TempMin,
			TempMax:                  e.Main.TempMax,
			Humidity:                 e.Main.Humidity,
			Pressure:                 e.Main.Pressure,
			Visibility:               e.Visibility,
			WindSpeed:                e.Wind.Speed,
			WindDirection:            e.Wind.Deg,
			WindGust:                 e.Wind.Gust,
			Cloudiness:               e.Clouds.All,
			PrecipitationProbability: e.Pop,
			Rain3h:                   e.Rain.ThreeHours,
			PartOfDay:                e.Sys.Pod,
		}
		if len(e.Weather) > 0 {
			sample.ConditionCode = e.Weather[0].ID
			sample.ConditionMain = e.Weather[0].Main
			sample.ConditionDescription = e.Weather[0].Description
			sample.ConditionIcon = e.Weather[0].Icon
		}
		series = append(series, sample)
	}
	return series, nil
}

func (r *response) location() forecast.Location {
	return forecast.Location{
		ID:         r.City.ID,
		Name:       r.City.Name,
		Country:    r.City.Country,
		Latitude:   r.City.Coord.Lat,
		Longitude:  r.City.Coord.Lon,
		Population: r.City.Population,
		UTCOffset:  time.Duration(r.City.Timezone) * time.Second,
		Sunrise:    r.City.Sunrise.Time,
		Sunset:     r.City.Sunset.Time,
	}
}

// errorMessage returns the message of an API error body. Successful responses carry a
// numeric message instead.
func (r *response) errorMessage() string {
	var msg string
	if err := json.Unmarshal(r.Message, &msg); err != nil {
		return "no error message"
	}
	return msg
}

func (e *epochTime) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("%w: empty value", ErrInvalidTimestamp)
	}
	seconds, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimestamp, string(b))
	}
	e.Time = time.Unix(seconds, 0).UTC()
	return nil
}
