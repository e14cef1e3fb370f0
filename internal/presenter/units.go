// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"
	"math"
	"time"
)

const kelvinOffset = 273.15

// KelvinToCelsius converts and floors a Kelvin temperature.
func KelvinToCelsius(kelvin float64) int {
	return int(math.Floor(kelvin - kelvinOffset))
}

// KelvinToFahrenheit converts and floors a Kelvin temperature.
func KelvinToFahrenheit(kelvin float64) int {
	return int(math.Floor((kelvin-kelvinOffset)*9/5 + 32))
}

func MetersToKilometers(meters float64) float64 {
	return meters / 1000
}

// MetersPerSecondToKilometersPerHour converts a wind speed as delivered by the API.
func MetersPerSecondToKilometersPerHour(speed float64) float64 {
	return speed * 3.6
}

func MetersPerSecondToMilesPerHour(speed float64) float64 {
	return speed * 2.236936
}

// DayOrNightIcon forces the day/night suffix of an icon code ("10d", "10n") based on
// the UTC hour of t. Hours from 06:00 to 17:59 count as day.
func DayOrNightIcon(icon string, t time.Time) string {
	if len(icon) < 2 {
		return icon
	}
	hour := t.UTC().Hour()
	suffix := "n"
	if hour >= 6 && hour < 18 {
		suffix = "d"
	}
	return icon[:len(icon)-1] + suffix
}

// ClockTime formats t like "7:05", without a leading zero on the hour.
func ClockTime(t time.Time) string {
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}
