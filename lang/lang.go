// Package lang holds the localized string bundles and the per-request
// preferences view handlers read prefixes, timezones and strings from.
package lang

import (
	"fmt"
	"sort"
	"strings"

	"hourglass/models"
)

// DefaultCode is used when a user or guild has no language set.
const DefaultCode = "EN"

// Bundle maps string keys to format templates.
type Bundle map[string]string

var bundles = map[string]Bundle{
	"EN": en,
}

var names = map[string]string{
	"EN": "english",
}

// Available returns a Language row per shipped bundle, for table seeding.
func Available() []models.Language {
	codes := make([]string, 0, len(bundles))
	for code := range bundles {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	rows := make([]models.Language, 0, len(codes))
	for _, code := range codes {
		rows = append(rows, models.Language{Code: code, Name: names[code]})
	}
	return rows
}

// Get looks up key in the bundle for code, falling back to the default
// bundle, then to the key itself so a missing string is visible rather
// than silent.
func Get(code, key string) string {
	if b, ok := bundles[strings.ToUpper(code)]; ok {
		if s, ok := b[key]; ok {
			return s
		}
	}
	if s, ok := bundles[DefaultCode][key]; ok {
		return s
	}
	return key
}

// Getf is Get plus formatting.
func Getf(code, key string, args ...interface{}) string {
	return fmt.Sprintf(Get(code, key), args...)
}
