// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import "github.com/vorlif/spreak/localize"

// MoonPhaseIcon is a map where moon phase names are keys and their corresponding emoji representations are values.
var MoonPhaseIcon = map[string]string{
	"New Moon":        "🌑",
	"Waxing Crescent": "🌒",
	"First Quarter":   "🌓",
	"Waxing Gibbous":  "🌔",
	"Full Moon":       "🌕",
	"Waning Gibbous":  "🌖",
	"Third Quarter":   "🌗",
	"Waning Crescent": "🌘",
}

// ConditionIcons maps OpenWeatherMap icon codes to emoji
var ConditionIcons = map[string]string{
	"01d": "☀️",
	"01n": "🌙",
	"02d": "🌤️",
	"02n": "☁️",
	"03d": "⛅",
	"03n": "☁️",
	"04d": "☁️",
	"04n": "☁️",
	"09d": "🌧️",
	"09n": "🌧️",
	"10d": "🌦️",
	"10n": "🌧️",
	"11d": "⛈️",
	"11n": "⛈️",
	"13d": "🌨️",
	"13n": "🌨️",
	"50d": "🌫️",
	"50n": "🌫️",
}

var i18nVars = map[string]localize.MsgID{
	"temp":            "Temperature",
	"humidity":        "Humidity",
	"pressure":        "Pressure",
	"visibility":      "Visibility",
	"windspeed":       "Wind speed",
	"apparent":        "Feels like",
	"precipitation":   "Precipitation",
	"sunrise":         "Sunrise",
	"sunset":          "Sunset",
	"forecast":        "Forecast",
	"today":           "Today",
	"loading":         "Loading...",
	"new moon":        "New moon",
	"waxing crescent": "Waxing crescent",
	"first quarter":   "First quarter",
	"waxing gibbous":  "Waxing gibbous",
	"full moon":       "Full moon",
	"waning gibbous":  "Waning gibbous",
	"third quarter":   "Third quarter",
	"waning crescent": "Waning crescent",
}
