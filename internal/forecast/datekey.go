// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package forecast

import "time"

const dateKeyLayout = "2006-01-02"

// DateKey identifies a calendar day in UTC, formatted as YYYY-MM-DD. It is a grouping
// key only and carries no time of day.
type DateKey string

// NewDateKey truncates t to its UTC day.
func NewDateKey(t time.Time) DateKey {
	return DateKey(t.UTC().Format(dateKeyLayout))
}

// Time returns midnight UTC of the day, or the zero time if the key is malformed.
func (d DateKey) Time() time.Time {
	t, err := time.Parse(dateKeyLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d DateKey) String() string {
	return string(d)
}
