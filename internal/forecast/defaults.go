// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package forecast

import "time"

// DefaultSample is rendered in place of a missing sample. The values match a mild,
// clear day so that an empty card still renders sensibly.
var DefaultSample = Sample{
	Temperature:          296.37,
	FeelsLike:            296.37,
	TempMin:              296.37,
	TempMax:              296.37,
	Visibility:           10000,
	WindSpeed:            1.64,
	ConditionIcon:        "01d",
	ConditionDescription: "",
	PartOfDay:            "d",
}

var (
	// DefaultSunrise and DefaultSunset are used when the location carries no sun times
	// and none can be computed from its coordinates.
	DefaultSunrise = time.Unix(1702949452, 0).UTC()
	DefaultSunset  = time.Unix(1702517657, 0).UTC()
)

// OrDefault returns *s, or DefaultSample if s is nil.
func OrDefault(s *Sample) Sample {
	if s == nil {
		return DefaultSample
	}
	return *s
}
