// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package i18n

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/Xuanwo/go-locale"
	"github.com/vorlif/spreak"
	"golang.org/x/text/language"
)

//go:embed locale/*
var locales embed.FS

// Language resolves loc into a language tag. An empty loc detects the system locale and
// falls back to English.
func Language(loc string) language.Tag {
	if loc != "" {
		return language.Make(loc)
	}
	tag, err := locale.Detect()
	if err != nil {
		return language.English
	}
	return tag
}

// New returns a localizer for loc backed by the embedded message catalogs.
func New(loc string) (*spreak.Localizer, error) {
	tag := Language(loc)

	localeFS, err := fs.Sub(locales, "locale")
	if err != nil {
		return nil, fmt.Errorf("failed to load locales: %w", err)
	}

	bundle, err := spreak.NewBundle(
		spreak.WithSourceLanguage(language.English),
		spreak.WithFallbackLanguage(language.English),
		spreak.WithDomainFs("", localeFS),
		spreak.WithLanguage(tag),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create i18n bundle: %w", err)
	}
	return spreak.NewLocalizer(bundle, tag), nil
}
