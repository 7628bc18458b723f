package lang

import (
	"time"

	"hourglass/models"
)

// Preferences is the per-invocation view of guild and user settings
// handlers read from. Guild is nil for DM invocations. Fallback is the
// process-local timezone used when neither row names one.
type Preferences struct {
	Guild    *models.Guild
	User     *models.User
	Fallback *time.Location
}

// NewPreferences bundles the resolved guild and user rows.
func NewPreferences(guild *models.Guild, user *models.User) *Preferences {
	return &Preferences{Guild: guild, User: user}
}

// Prefix returns the invoking guild's prefix, or the default in DMs.
func (p *Preferences) Prefix() string {
	return p.Guild.EffectivePrefix()
}

// TimezoneName prefers the user's personal timezone, then the guild's.
// Empty means neither has one configured.
func (p *Preferences) TimezoneName() string {
	if p.User != nil && p.User.Timezone != "" {
		return p.User.Timezone
	}
	if p.Guild != nil && p.Guild.Timezone != "" {
		return p.Guild.Timezone
	}
	return ""
}

// Location resolves TimezoneName, falling back to the process-local
// timezone, then UTC.
func (p *Preferences) Location() *time.Location {
	if name := p.TimezoneName(); name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if p.Fallback != nil {
		return p.Fallback
	}
	return time.UTC
}

// LanguageCode returns the user's language, defaulting to English.
func (p *Preferences) LanguageCode() string {
	if p.User != nil && p.User.Language != "" {
		return p.User.Language
	}
	return DefaultCode
}

// String looks up key in the preferred language bundle.
func (p *Preferences) String(key string) string {
	return Get(p.LanguageCode(), key)
}

// Stringf is String plus formatting.
func (p *Preferences) Stringf(key string, args ...interface{}) string {
	return Getf(p.LanguageCode(), key, args...)
}
