package models

import "gorm.io/gorm"

// NudgeBound is the exclusive bound on a channel's nudge, in seconds.
// Nudges are stored as a signed 16-bit-range value.
const NudgeBound = 1 << 15

// Channel is a delivery target: either a guild text channel or a user's
// DM channel (GuildID is nil for DMs). The webhook pair is the outbound
// delivery handle, attached lazily the first time a reminder targets the
// channel.
type Channel struct {
	gorm.Model
	DiscordID    string `gorm:"uniqueIndex"`
	GuildID      *uint  `gorm:"index"`
	Blacklisted  bool
	Nudge        int
	WebhookID    string
	WebhookToken string
	Reminders    []Reminder `gorm:"constraint:OnDelete:CASCADE"`
}
