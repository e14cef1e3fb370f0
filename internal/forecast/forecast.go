// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package forecast holds the forecast domain model and the pure transforms that turn a
// flat series of 3-hour samples into the timeline and daily outlook views.
package forecast

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/wneessen/weather-outlook/internal/vartype"
)

// coordPrecision is the precision used to quantize coordinates (0.01 degrees ≈ 1.1 km)
const coordPrecision = 1e-2

// ErrEmptyQuery is returned when a Query names neither a place nor coordinates.
var ErrEmptyQuery = errors.New("forecast query requires a place name or coordinates")

// Loader is implemented by each forecast API backend.
type Loader interface {
	Name() string
	Forecast(ctx context.Context, query Query) (*Forecast, error)
}

// Query selects the location a forecast is requested for. Coordinates take precedence
// over the place name when both are given.
type Query struct {
	Place     string
	Latitude  float64
	Longitude float64
}

// Forecast is the result of one successful Loader query.
type Forecast struct {
	GeneratedAt time.Time
	Location    Location
	Series      Series
	CacheHit    bool
}

// Series is the sequence of samples returned by one query, in the order the API delivered them.
type Series []Sample

// Sample is one forecast observation at a point in time. Temperatures are in Kelvin, wind
// speeds in m/s and visibility in metres, exactly as delivered by the API.
type Sample struct {
	Time                     time.Time          `json:"time"`
	Temperature              float64            `json:"temperature"`
	FeelsLike                float64            `json:"feels_like"`
	TempMin                  float64            `json:"temp_min"`
	TempMax                  float64            `json:"temp_max"`
	Humidity                 float64            `json:"humidity"`
	Pressure                 float64            `json:"pressure"`
	Visibility               float64            `json:"visibility"`
	WindSpeed                float64            `json:"wind_speed"`
	WindDirection            float64            `json:"wind_direction"`
	WindGust                 float64            `json:"wind_gust"`
	Cloudiness               float64            `json:"cloudiness"`
	ConditionCode            int                `json:"condition_code"`
	ConditionMain            string             `json:"condition_main"`
	ConditionDescription     string             `json:"condition_description"`
	ConditionIcon            string             `json:"condition_icon"`
	PrecipitationProbability vartype.VarFloat64 `json:"precipitation_probability"`
	Rain3h                   vartype.VarFloat64 `json:"rain_3h"`
	PartOfDay                string             `json:"part_of_day"`
}

// Location is the static metadata of the queried place.
type Location struct {
	ID         int64         `json:"id"`
	Name       string        `json:"name"`
	Country    string        `json:"country"`
	Latitude   float64       `json:"latitude"`
	Longitude  float64       `json:"longitude"`
	Population int64         `json:"population"`
	UTCOffset  time.Duration `json:"utc_offset"`
	Sunrise    time.Time     `json:"sunrise"`
	Sunset     time.Time     `json:"sunset"`
}

// Validate returns ErrEmptyQuery if the query cannot select a location.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Place) == "" && !q.HasCoordinates() {
		return ErrEmptyQuery
	}
	return nil
}

func (q Query) HasCoordinates() bool {
	return q.Latitude != 0 || q.Longitude != 0
}

// Key returns a normalized identifier for the query. Nearby coordinates share the same key.
func (q Query) Key() string {
	if q.HasCoordinates() {
		return fmt.Sprintf("%d,%d", quantizeCoord(q.Latitude), quantizeCoord(q.Longitude))
	}
	return strings.ToLower(strings.TrimSpace(q.Place))
}

func (q Query) String() string {
	if q.HasCoordinates() {
		return fmt.Sprintf("%.4f,%.4f", q.Latitude, q.Longitude)
	}
	return strings.TrimSpace(q.Place)
}

func quantizeCoord(val float64) int32 {
	return int32(math.Round(val / coordPrecision))
}
