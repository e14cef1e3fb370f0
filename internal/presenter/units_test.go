// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"testing"
	"time"
)

func TestKelvinToCelsius(t *testing.T) {
	tests := []struct {
		kelvin float64
		want   int
	}{
		{273.15, 0},
		{296.37, 23},
		{272.9, -1},
		{0, -274},
	}
	for _, tc := range tests {
		if got := KelvinToCelsius(tc.kelvin); got != tc.want {
			t.Errorf("KelvinToCelsius(%f): expected %d, got %d", tc.kelvin, tc.want, got)
		}
	}
}

func TestKelvinToFahrenheit(t *testing.T) {
	if got := KelvinToFahrenheit(273.15); got != 32 {
		t.Errorf("expected 32°F, got %d", got)
	}
	if got := KelvinToFahrenheit(300); got != 80 {
		t.Errorf("expected 80°F, got %d", got)
	}
}

func TestDayOrNightIcon(t *testing.T) {
	tests := []struct {
		name string
		icon string
		hour int
		want string
	}{
		{"early morning is night", "10d", 5, "10n"},
		{"six is day", "10n", 6, "10d"},
		{"afternoon is day", "01n", 17, "01d"},
		{"eighteen is night", "01d", 18, "01n"},
		{"invalid icons are kept", "x", 12, "x"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := time.Date(2024, 1, 10, tc.hour, 0, 0, 0, time.UTC)
			if got := DayOrNightIcon(tc.icon, ts); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestConversions(t *testing.T) {
	if got := MetersToKilometers(10000); got != 10 {
		t.Errorf("expected 10 km, got %f", got)
	}
	if got := MetersPerSecondToKilometersPerHour(10); got < 35.99 || got > 36.01 {
		t.Errorf("expected 36 km/h, got %f", got)
	}
	if got := MetersPerSecondToMilesPerHour(1); got < 2.23 || got > 2.24 {
		t.Errorf("expected 2.24 mph, got %f", got)
	}
	if got := ClockTime(time.Date(2024, 1, 10, 7, 5, 0, 0, time.UTC)); got != "7:05" {
		t.Errorf("expected 7:05, got %s", got)
	}
}

func TestEmojiWithSpace(t *testing.T) {
	if got := EmojiWithSpace(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if got := EmojiWithSpace("🌧️"); len(got) <= len("🌧️") {
		t.Errorf("expected padding, got %q", got)
	}
}
