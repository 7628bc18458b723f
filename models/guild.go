package models

import "gorm.io/gorm"

// DefaultPrefix is used for guilds that never configured their own.
const DefaultPrefix = "$"

// MaxPrefixLength bounds the configurable command prefix.
const MaxPrefixLength = 5

// Guild represents a server the bot is a member of.
type Guild struct {
	gorm.Model
	DiscordID string `gorm:"uniqueIndex"`
	Prefix    string `gorm:"size:5"`
	Timezone  string
	Users     []*User   `gorm:"many2many:guild_users"`
	Channels  []Channel `gorm:"constraint:OnDelete:CASCADE"`
}

// EffectivePrefix returns the configured prefix, falling back to the default.
func (g *Guild) EffectivePrefix() string {
	if g == nil || g.Prefix == "" {
		return DefaultPrefix
	}
	return g.Prefix
}
