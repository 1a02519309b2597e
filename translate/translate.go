// Package translate formats user visible messages in the user's language.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	matched language.Tag
	printer *message.Printer
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("ls8: locale: %v", err)
	}

	SetLocales(locales...)
}

// SetLocales selects the message language from a list of preferred
// locales, falling back to en-US.
func SetLocales(locales ...string) {
	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	matched = message.MatchLanguage(locales...)
	printer = message.NewPrinter(matched)
}

// Language returns the language messages are printed in.
func Language() language.Tag {
	return matched
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
