// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package forecast

import (
	"reflect"
	"testing"
	"time"
)

func sampleAt(t *testing.T, value string) Sample {
	t.Helper()
	ts, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		t.Fatalf("failed to parse sample time %q: %s", value, err)
	}
	return Sample{Time: ts, Temperature: 273.15 + float64(ts.Hour())}
}

func seriesAt(t *testing.T, values ...string) Series {
	t.Helper()
	series := make(Series, 0, len(values))
	for _, value := range values {
		series = append(series, sampleAt(t, value))
	}
	return series
}

func TestDistinctDates(t *testing.T) {
	t.Run("empty series yields no dates", func(t *testing.T) {
		dates := DistinctDates(nil)
		if dates == nil {
			t.Fatal("expected dates to be non-nil")
		}
		if len(dates) != 0 {
			t.Errorf("expected no dates, got %v", dates)
		}
	})
	t.Run("dates are unique and in first-seen order", func(t *testing.T) {
		series := seriesAt(t, "2024-01-10T03:00", "2024-01-10T09:00", "2024-01-11T00:00",
			"2024-01-11T12:00", "2024-01-12T06:00")
		want := []DateKey{"2024-01-10", "2024-01-11", "2024-01-12"}
		if got := DistinctDates(series); !reflect.DeepEqual(got, want) {
			t.Errorf("expected dates %v, got %v", want, got)
		}
	})
	t.Run("order follows the first occurrence, not the calendar", func(t *testing.T) {
		series := seriesAt(t, "2024-01-11T12:00", "2024-01-10T09:00", "2024-01-11T15:00")
		want := []DateKey{"2024-01-11", "2024-01-10"}
		if got := DistinctDates(series); !reflect.DeepEqual(got, want) {
			t.Errorf("expected dates %v, got %v", want, got)
		}
	})
	t.Run("timestamps are grouped by their UTC day", func(t *testing.T) {
		berlin := time.FixedZone("CET", 3600)
		series := Series{
			{Time: time.Date(2024, 1, 11, 0, 30, 0, 0, berlin)},
			{Time: time.Date(2024, 1, 11, 1, 30, 0, 0, berlin)},
		}
		want := []DateKey{"2024-01-10", "2024-01-11"}
		if got := DistinctDates(series); !reflect.DeepEqual(got, want) {
			t.Errorf("expected dates %v, got %v", want, got)
		}
	})
	t.Run("no date appears twice", func(t *testing.T) {
		series := seriesAt(t, "2024-01-10T00:00", "2024-01-11T00:00", "2024-01-10T03:00",
			"2024-01-12T00:00", "2024-01-11T21:00")
		seen := make(map[DateKey]bool)
		for _, date := range DistinctDates(series) {
			if seen[date] {
				t.Errorf("date %s appears more than once", date)
			}
			seen[date] = true
		}
	})
}

func TestDailyRepresentatives(t *testing.T) {
	t.Run("all samples before the morning cutoff leave the day absent", func(t *testing.T) {
		series := seriesAt(t, "2024-01-10T00:00", "2024-01-10T02:00", "2024-01-10T04:00", "2024-01-10T05:00")
		dates := DistinctDates(series)
		if !reflect.DeepEqual(dates, []DateKey{"2024-01-10"}) {
			t.Fatalf("unexpected dates: %v", dates)
		}
		reps := DailyRepresentatives(series, dates)
		if len(reps) != 1 {
			t.Fatalf("expected 1 representative, got %d", len(reps))
		}
		if reps[0] != nil {
			t.Errorf("expected representative to be absent, got %+v", reps[0])
		}
	})
	t.Run("mixed days pick the first sample at or after six", func(t *testing.T) {
		series := seriesAt(t, "2024-01-10T03:00", "2024-01-10T09:00", "2024-01-11T00:00", "2024-01-11T12:00")
		dates := DistinctDates(series)
		reps := DailyRepresentatives(series, dates)
		if len(reps) != 2 {
			t.Fatalf("expected 2 representatives, got %d", len(reps))
		}
		if reps[0] == nil || !reps[0].Time.Equal(series[1].Time) {
			t.Errorf("expected the 09:00 sample for 2024-01-10, got %+v", reps[0])
		}
		if reps[1] == nil || !reps[1].Time.Equal(series[3].Time) {
			t.Errorf("expected the 12:00 sample for 2024-01-11, got %+v", reps[1])
		}
	})
	t.Run("six o'clock sharp qualifies", func(t *testing.T) {
		series := seriesAt(t, "2024-01-10T05:59", "2024-01-10T06:00")
		reps := DailyRepresentatives(series, DistinctDates(series))
		if reps[0] == nil {
			t.Fatal("expected a representative")
		}
		if !reps[0].Time.Equal(series[1].Time) {
			t.Errorf("expected the 06:00 sample, got %s", reps[0].Time)
		}
	})
	t.Run("a minute before six does not qualify", func(t *testing.T) {
		series := seriesAt(t, "2024-01-10T05:59")
		reps := DailyRepresentatives(series, DistinctDates(series))
		if reps[0] != nil {
			t.Errorf("expected no representative, got %s", reps[0].Time)
		}
	})
	t.Run("out of order input picks the first match in input order", func(t *testing.T) {
		series := seriesAt(t, "2024-01-10T14:00", "2024-01-10T07:00")
		reps := DailyRepresentatives(series, DistinctDates(series))
		if reps[0] == nil {
			t.Fatal("expected a representative")
		}
		if reps[0].Time.Hour() != 14 {
			t.Errorf("expected the 14:00 sample, got %s", reps[0].Time)
		}
	})
	t.Run("every representative matches its date and the cutoff", func(t *testing.T) {
		series := seriesAt(t, "2024-01-10T21:00", "2024-01-11T00:00", "2024-01-11T03:00",
			"2024-01-11T06:00", "2024-01-11T09:00", "2024-01-12T03:00", "2024-01-12T18:00")
		dates := DistinctDates(series)
		reps := DailyRepresentatives(series, dates)
		if len(reps) != len(dates) {
			t.Fatalf("expected %d representatives, got %d", len(dates), len(reps))
		}
		for i, rep := range reps {
			if rep == nil {
				continue
			}
			if NewDateKey(rep.Time) != dates[i] {
				t.Errorf("representative %d is on %s, expected %s", i, NewDateKey(rep.Time), dates[i])
			}
			if rep.Time.UTC().Hour() < MorningCutoffHour {
				t.Errorf("representative %d is before the cutoff: %s", i, rep.Time)
			}
		}
	})
	t.Run("dates without any sample stay absent", func(t *testing.T) {
		series := seriesAt(t, "2024-01-10T09:00")
		reps := DailyRepresentatives(series, []DateKey{"2024-01-09", "2024-01-10"})
		if reps[0] != nil {
			t.Errorf("expected no representative for 2024-01-09, got %+v", reps[0])
		}
		if reps[1] == nil {
			t.Error("expected a representative for 2024-01-10")
		}
	})
	t.Run("representatives do not alias the series", func(t *testing.T) {
		series := seriesAt(t, "2024-01-10T09:00")
		reps := DailyRepresentatives(series, DistinctDates(series))
		reps[0].Temperature = 0
		if series[0].Temperature == 0 {
			t.Error("expected series to be unchanged")
		}
	})
}

func TestTimeline(t *testing.T) {
	t.Run("the timeline is the unchanged series", func(t *testing.T) {
		series := seriesAt(t, "2024-01-10T14:00", "2024-01-10T07:00", "2024-01-10T07:00")
		if got := Timeline(series); !reflect.DeepEqual(got, series) {
			t.Errorf("expected timeline %v, got %v", series, got)
		}
	})
	t.Run("an empty series yields an empty timeline", func(t *testing.T) {
		got := Timeline(nil)
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil timeline, got %v", got)
		}
	})
}

func TestCurrent(t *testing.T) {
	t.Run("current is the first sample", func(t *testing.T) {
		series := seriesAt(t, "2024-01-10T14:00", "2024-01-10T07:00")
		current, ok := Current(series)
		if !ok {
			t.Fatal("expected current conditions")
		}
		if !current.Time.Equal(series[0].Time) {
			t.Errorf("expected %s, got %s", series[0].Time, current.Time)
		}
	})
	t.Run("an empty series has no current conditions", func(t *testing.T) {
		if _, ok := Current(Series{}); ok {
			t.Error("expected no current conditions")
		}
	})
}

func TestBuild(t *testing.T) {
	t.Run("a nil forecast yields an empty outlook", func(t *testing.T) {
		outlook := Build(nil)
		if len(outlook.Dates) != 0 || len(outlook.Daily) != 0 || len(outlook.Timeline) != 0 {
			t.Errorf("expected empty outlook, got %+v", outlook)
		}
		if outlook.Dates == nil || outlook.Daily == nil || outlook.Timeline == nil {
			t.Error("expected empty outlook slices to be non-nil")
		}
	})
	t.Run("an empty series yields an empty outlook", func(t *testing.T) {
		outlook := Build(&Forecast{Location: Location{Name: "Cologne"}})
		if len(outlook.Dates) != 0 || len(outlook.Daily) != 0 || len(outlook.Timeline) != 0 {
			t.Errorf("expected empty outlook, got %+v", outlook)
		}
		if outlook.Location.Name != "Cologne" {
			t.Errorf("expected location to be passed through, got %q", outlook.Location.Name)
		}
	})
	t.Run("building twice yields identical outlooks", func(t *testing.T) {
		f := &Forecast{Series: seriesAt(t, "2024-01-10T03:00", "2024-01-10T09:00", "2024-01-11T12:00")}
		first, second := Build(f), Build(f)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("expected identical outlooks, got %+v and %+v", first, second)
		}
	})
	t.Run("daily has the length and order of dates", func(t *testing.T) {
		f := &Forecast{Series: seriesAt(t, "2024-01-10T03:00", "2024-01-11T09:00", "2024-01-12T00:00")}
		outlook := Build(f)
		if len(outlook.Daily) != len(outlook.Dates) {
			t.Fatalf("expected %d daily entries, got %d", len(outlook.Dates), len(outlook.Daily))
		}
		if outlook.Daily[0] != nil || outlook.Daily[2] != nil {
			t.Error("expected first and last day to be absent")
		}
		if outlook.Daily[1] == nil || NewDateKey(outlook.Daily[1].Time) != outlook.Dates[1] {
			t.Errorf("expected second day to be represented, got %+v", outlook.Daily[1])
		}
	})
	t.Run("chronological order picks the earliest qualifying sample", func(t *testing.T) {
		f := &Forecast{Series: seriesAt(t, "2024-01-10T14:00", "2024-01-10T07:00")}
		outlook := Build(f, WithChronologicalOrder())
		if outlook.Daily[0] == nil || outlook.Daily[0].Time.Hour() != 7 {
			t.Errorf("expected the 07:00 sample, got %+v", outlook.Daily[0])
		}
		if outlook.Timeline[0].Time.Hour() != 14 {
			t.Error("expected the timeline to keep the input order")
		}
		if f.Series[0].Time.Hour() != 14 {
			t.Error("expected the input series to stay unsorted")
		}
	})
}

func TestSortedByTime(t *testing.T) {
	series := seriesAt(t, "2024-01-11T00:00", "2024-01-10T07:00", "2024-01-10T14:00")
	sorted := SortedByTime(series)
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Time.Before(sorted[i-1].Time) {
			t.Errorf("expected ascending order, got %s before %s", sorted[i-1].Time, sorted[i].Time)
		}
	}
	if !series[0].Time.Equal(time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected the input series to be unchanged")
	}
}

func TestOrDefault(t *testing.T) {
	t.Run("nil falls back to the default sample", func(t *testing.T) {
		if got := OrDefault(nil); !reflect.DeepEqual(got, DefaultSample) {
			t.Errorf("expected default sample, got %+v", got)
		}
	})
	t.Run("a present sample is returned as is", func(t *testing.T) {
		s := Sample{Temperature: 280}
		if got := OrDefault(&s); got.Temperature != 280 {
			t.Errorf("expected temperature 280, got %f", got.Temperature)
		}
	})
}
