// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package translate formats user-visible text for the current locale.
package translate

import (
	"github.com/jeandeaual/go-locale"
	"github.com/sirupsen/logrus"

	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		logrus.Warnf("dis86: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
