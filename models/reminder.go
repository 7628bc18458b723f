package models

import "gorm.io/gorm"

// Reminder creation method tags.
const (
	MethodNatural = "natural"
	MethodRemind  = "remind"
)

// Message is the immutable text payload of a reminder. Kept as its own
// row so the text survives independent of scheduling attributes.
type Message struct {
	gorm.Model
	Content string
}

// Reminder is a scheduled, possibly recurring, notification bound to a
// delivery channel. Time is a unix timestamp. Interval is nil for
// one-shot reminders.
type Reminder struct {
	gorm.Model
	MessageID uint
	Message   Message
	ChannelID uint `gorm:"index"`
	Channel   Channel
	Time      int64 `gorm:"index"`
	Enabled   bool
	Method    string
	Interval  *int64
}
