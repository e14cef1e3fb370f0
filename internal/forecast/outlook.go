// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package forecast

import (
	"slices"
)

// MorningCutoffHour is the first UTC hour at which a sample may represent its day.
const MorningCutoffHour = 6

// Outlook is the presentation ready view of a Forecast. Daily has the same length and
// order as Dates; a nil entry means no sample qualified for that day.
type Outlook struct {
	Location Location  `json:"location"`
	Dates    []DateKey `json:"dates"`
	Daily    []*Sample `json:"daily"`
	Timeline Series    `json:"timeline"`
}

type options struct {
	chronological bool
}

// Option configures Build.
type Option func(*options)

// WithChronologicalOrder sorts a copy of the series by time before the daily representatives
// are selected, so the selected sample is always the earliest qualifying one of its day.
func WithChronologicalOrder() Option {
	return func(o *options) {
		o.chronological = true
	}
}

// Build derives the distinct dates, daily representatives and timeline of f. A nil
// Forecast yields an empty Outlook.
func Build(f *Forecast, opts ...Option) Outlook {
	o := new(options)
	for _, opt := range opts {
		opt(o)
	}

	outlook := Outlook{
		Dates:    []DateKey{},
		Daily:    []*Sample{},
		Timeline: Series{},
	}
	if f == nil {
		return outlook
	}

	selectFrom := f.Series
	if o.chronological {
		selectFrom = SortedByTime(f.Series)
	}

	outlook.Location = f.Location
	outlook.Dates = DistinctDates(f.Series)
	outlook.Daily = DailyRepresentatives(selectFrom, outlook.Dates)
	outlook.Timeline = Timeline(f.Series)
	return outlook
}

// DistinctDates returns each DateKey present in series once, in the order of its first
// occurrence.
func DistinctDates(series Series) []DateKey {
	dates := make([]DateKey, 0)
	seen := make(map[DateKey]struct{})
	for _, sample := range series {
		key := NewDateKey(sample.Time)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		dates = append(dates, key)
	}
	return dates
}

// DailyRepresentatives returns, for every date, the first sample of series in input order
// that falls on that date at or after MorningCutoffHour UTC. Dates without such a sample
// get a nil entry.
func DailyRepresentatives(series Series, dates []DateKey) []*Sample {
	first := make(map[DateKey]int)
	for i, sample := range series {
		if !Representable(sample) {
			continue
		}
		key := NewDateKey(sample.Time)
		if _, ok := first[key]; !ok {
			first[key] = i
		}
	}

	reps := make([]*Sample, len(dates))
	for i, date := range dates {
		idx, ok := first[date]
		if !ok {
			continue
		}
		sample := series[idx]
		reps[i] = &sample
	}
	return reps
}

// Representable reports whether s lies outside the pre-dawn window and may represent its day.
func Representable(s Sample) bool {
	return s.Time.UTC().Hour() >= MorningCutoffHour
}

// Timeline returns series unchanged for the hourly view.
func Timeline(series Series) Series {
	if series == nil {
		return Series{}
	}
	return series
}

// Current returns the first sample of series as the current conditions snapshot.
func Current(series Series) (Sample, bool) {
	if len(series) == 0 {
		return Sample{}, false
	}
	return series[0], true
}

// SortedByTime returns a copy of series stably sorted by ascending time.
func SortedByTime(series Series) Series {
	sorted := slices.Clone(series)
	slices.SortStableFunc(sorted, func(a, b Sample) int {
		return a.Time.Compare(b.Time)
	})
	return sorted
}
