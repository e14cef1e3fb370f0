// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestNew(t *testing.T) {
	t.Run("new i18n provider with empty locale string succeeds", func(t *testing.T) {
		provider, err := New("")
		if err != nil {
			t.Fatalf("failed to create i18n provider: %s", err)
		}
		if provider == nil {
			t.Fatal("expected i18n provider to be non-nil")
		}
	})
	t.Run("english messages are returned untranslated", func(t *testing.T) {
		provider, err := New("en")
		if err != nil {
			t.Fatalf("failed to create i18n provider: %s", err)
		}
		if got := provider.Get("Sunrise"); got != "Sunrise" {
			t.Errorf("expected Sunrise, got %q", got)
		}
	})
}

func TestLanguage(t *testing.T) {
	t.Run("an explicit locale is parsed", func(t *testing.T) {
		if got := Language("de-DE"); got != language.MustParse("de-DE") {
			t.Errorf("expected de-DE, got %s", got)
		}
	})
	t.Run("an empty locale yields a usable tag", func(t *testing.T) {
		if got := Language(""); got == language.Und {
			t.Error("expected a defined language tag")
		}
	})
}
