// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package translate renders user visible messages in the host locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// fallback is used when the host reports no usable locale.
const fallback = "en-US"

var (
	printer     *message.Printer
	printerOnce sync.Once
)

// Printer returns the message printer for the host locale.
func Printer() *message.Printer {
	printerOnce.Do(func() {
		locales, err := locale.GetLocales()
		if err != nil {
			log.Printf("uop: locale: %v", err)
		}
		if len(locales) == 0 {
			locales = []string{fallback}
		}
		printer = message.NewPrinter(message.MatchLanguage(locales...))
	})

	return printer
}

// From formats an en-US Sprintf() style key in the host locale.
func From(key message.Reference, args ...any) string {
	return Printer().Sprintf(key, args...)
}
