// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package presenter turns a forecast outlook into the view models and rendered text the
// status bar and tooltip display.
package presenter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/vorlif/humanize"
	"github.com/vorlif/humanize/locale/de"
	"github.com/vorlif/spreak"
	"github.com/wneessen/go-moonphase"
	"golang.org/x/text/language"

	"github.com/wneessen/weather-outlook/internal/config"
	"github.com/wneessen/weather-outlook/internal/forecast"
)

const OutputClass = "weather-outlook"

// CardView is the presentation of a single sample, either on the timeline or as a day
// of the outlook. Present is false for outlook days without a representative sample; the
// remaining fields then carry the values of forecast.DefaultSample.
type CardView struct {
	Present bool      `json:"present"`
	Time    time.Time `json:"time"`
	DayName string    `json:"day_name"`
	Date    string    `json:"date"`
	Clock   string    `json:"clock,omitempty"`

	Temperature   int     `json:"temperature"`
	FeelsLike     int     `json:"feels_like"`
	TempMin       int     `json:"temp_min"`
	TempMax       int     `json:"temp_max"`
	Humidity      float64 `json:"humidity"`
	Pressure      float64 `json:"pressure"`
	Visibility    float64 `json:"visibility"`
	WindSpeed     float64 `json:"wind_speed"`
	Precipitation string  `json:"precipitation,omitempty"`

	Condition              string `json:"condition"`
	Description            string `json:"description"`
	Icon                   string `json:"icon"`
	ConditionIcon          string `json:"condition_icon"`
	ConditionIconWithSpace string `json:"-"`

	Sunrise       string `json:"sunrise"`
	Sunset        string `json:"sunset"`
	MoonPhase     string `json:"moon_phase"`
	MoonPhaseIcon string `json:"moon_phase_icon"`
}

type TemplateContext struct {
	Location   forecast.Location
	Loading    bool
	UpdateTime time.Time
	Updated    string

	TempUnit       string
	WindUnit       string
	VisibilityUnit string
	PressureUnit   string

	Sunrise     string
	Sunset      string
	SunriseTime time.Time
	SunsetTime  time.Time

	Current  CardView
	Timeline []CardView
	Outlook  []CardView
}

// Output is the JSON line consumed by the status bar.
type Output struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
	Class   string `json:"class"`
}

type Presenter struct {
	units       string
	outlookDays int
	localizer   *spreak.Localizer
	humanizer   *humanize.Humanizer

	text    *template.Template
	tooltip *template.Template
}

func New(conf *config.Config, lang language.Tag, loc *spreak.Localizer) (*Presenter, error) {
	collection, err := humanize.New(humanize.WithLocale(de.New()))
	if err != nil {
		return nil, fmt.Errorf("failed to create humanizer: %w", err)
	}

	pres := &Presenter{
		units:       conf.Units,
		outlookDays: int(conf.Forecast.OutlookDays),
		localizer:   loc,
		humanizer:   collection.CreateHumanizer(lang),
	}

	pres.text, err = template.New("text").Funcs(pres.templateFuncMap()).Parse(conf.Templates.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse text template: %w", err)
	}
	pres.tooltip, err = template.New("tooltip").Funcs(pres.templateFuncMap()).Parse(conf.Templates.Tooltip)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tooltip template: %w", err)
	}

	return pres, nil
}

// BuildContext fills the template context from f and its outlook. A nil forecast yields
// a context in loading state.
func (p *Presenter) BuildContext(f *forecast.Forecast, outlook forecast.Outlook) TemplateContext {
	ctx := TemplateContext{
		Loading:        f == nil,
		TempUnit:       "°C",
		WindUnit:       "km/h",
		VisibilityUnit: "km",
		PressureUnit:   "hPa",
		Timeline:       make([]CardView, 0, len(outlook.Timeline)),
		Outlook:        make([]CardView, 0, len(outlook.Dates)),
	}
	if p.units == "imperial" {
		ctx.TempUnit = "°F"
		ctx.WindUnit = "mph"
	}
	if f == nil {
		return ctx
	}

	ctx.Location = outlook.Location
	ctx.UpdateTime = f.GeneratedAt
	ctx.Updated = p.humanizer.NaturalTime(f.GeneratedAt)

	current, ok := forecast.Current(outlook.Timeline)
	ctx.Current = p.cardFromSample(current, ok, outlook.Location)
	if !ok {
		ctx.Current = p.cardFromSample(forecast.DefaultSample, false, outlook.Location)
	}
	ctx.SunriseTime, ctx.SunsetTime = p.sunTimes(outlook.Location, current.Time)
	ctx.Sunrise = ClockTime(ctx.SunriseTime)
	ctx.Sunset = ClockTime(ctx.SunsetTime)

	for _, sample := range outlook.Timeline {
		ctx.Timeline = append(ctx.Timeline, p.cardFromSample(sample, true, outlook.Location))
	}
	for i, date := range outlook.Dates {
		if i >= p.outlookDays {
			break
		}
		card := p.cardFromSample(forecast.OrDefault(outlook.Daily[i]), outlook.Daily[i] != nil, outlook.Location)
		if outlook.Daily[i] == nil {
			p.setDay(&card, date.Time().Add(12*time.Hour), outlook.Location)
			card.Clock = ""
		}
		ctx.Outlook = append(ctx.Outlook, card)
	}

	return ctx
}

// Render executes the text and tooltip templates. In loading state both show the
// localized loading message.
func (p *Presenter) Render(ctx TemplateContext) (Output, error) {
	output := Output{Class: OutputClass}
	if ctx.Loading {
		output.Text = p.loc("loading")
		output.Tooltip = p.loc("loading")
		output.Class = OutputClass + "-loading"
		return output, nil
	}

	buf := bytes.NewBuffer(nil)
	if err := p.text.Execute(buf, ctx); err != nil {
		return output, fmt.Errorf("failed to render text template: %w", err)
	}
	output.Text = buf.String()

	buf.Reset()
	if err := p.tooltip.Execute(buf, ctx); err != nil {
		return output, fmt.Errorf("failed to render tooltip template: %w", err)
	}
	output.Tooltip = buf.String()

	return output, nil
}

func (p *Presenter) cardFromSample(s forecast.Sample, present bool, loc forecast.Location) CardView {
	icon := s.ConditionIcon
	if icon == "" {
		icon = forecast.DefaultSample.ConditionIcon
	}
	if present {
		icon = DayOrNightIcon(icon, s.Time)
	}

	card := CardView{
		Present:     present,
		Time:        s.Time,
		Temperature: p.temperature(s.Temperature),
		FeelsLike:   p.temperature(s.FeelsLike),
		TempMin:     p.temperature(s.TempMin),
		TempMax:     p.temperature(s.TempMax),
		Humidity:    s.Humidity,
		Pressure:    s.Pressure,
		Visibility:  MetersToKilometers(s.Visibility),
		WindSpeed:   p.windSpeed(s.WindSpeed),
		Condition:   s.ConditionMain,
		Description: s.ConditionDescription,
		Icon:        icon,
	}
	card.ConditionIcon = ConditionIcons[icon]
	card.ConditionIconWithSpace = EmojiWithSpace(card.ConditionIcon)
	if s.PrecipitationProbability.IsSet() {
		card.Precipitation = fmt.Sprintf("%.0f%%", s.PrecipitationProbability.Value()*100)
	}
	if present {
		p.setDay(&card, s.Time, loc)
	}
	return card
}

// setDay fills the calendar related fields of card for the day of t. Day and clock are
// shown in UTC, matching the day grouping of the outlook.
func (p *Presenter) setDay(card *CardView, t time.Time, loc forecast.Location) {
	if t.IsZero() {
		return
	}
	day := t.UTC()
	card.DayName = p.localizer.Get(day.Weekday().String())
	card.Date = day.Format("02.01.")
	card.Clock = day.Format("3:04 PM")

	rise, set := p.sunTimes(loc, t)
	card.Sunrise = ClockTime(rise)
	card.Sunset = ClockTime(set)

	phase := moonphase.New(t).PhaseName()
	card.MoonPhase = p.loc(strings.ToLower(phase))
	card.MoonPhaseIcon = MoonPhaseIcon[phase]
}

// sunTimes returns sunrise and sunset for the day of t in the location's local time. The
// times delivered with the location are used for its first day; other days are computed
// from the coordinates. Without either, the package defaults are returned.
func (p *Presenter) sunTimes(loc forecast.Location, t time.Time) (time.Time, time.Time) {
	zone := time.FixedZone("", int(loc.UTCOffset.Seconds()))
	if !loc.Sunrise.IsZero() && !loc.Sunset.IsZero() &&
		(t.IsZero() || forecast.NewDateKey(t) == forecast.NewDateKey(loc.Sunrise)) {
		return loc.Sunrise.In(zone), loc.Sunset.In(zone)
	}
	if t.IsZero() || (loc.Latitude == 0 && loc.Longitude == 0) {
		if !loc.Sunrise.IsZero() && !loc.Sunset.IsZero() {
			return loc.Sunrise.In(zone), loc.Sunset.In(zone)
		}
		return forecast.DefaultSunrise.In(zone), forecast.DefaultSunset.In(zone)
	}
	day := t.UTC()
	rise, set := sunrise.SunriseSunset(loc.Latitude, loc.Longitude, day.Year(), day.Month(), day.Day())
	if rise.IsZero() || set.IsZero() {
		return forecast.DefaultSunrise.In(zone), forecast.DefaultSunset.In(zone)
	}
	return rise.In(zone), set.In(zone)
}

func (p *Presenter) temperature(kelvin float64) int {
	if p.units == "imperial" {
		return KelvinToFahrenheit(kelvin)
	}
	return KelvinToCelsius(kelvin)
}

func (p *Presenter) windSpeed(speed float64) float64 {
	if p.units == "imperial" {
		return MetersPerSecondToMilesPerHour(speed)
	}
	return MetersPerSecondToKilometersPerHour(speed)
}
