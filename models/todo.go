package models

import "gorm.io/gorm"

// Todo is an ordered text item owned by either a user or a guild.
// Exactly one of UserID/GuildID is set. Display indexes are 1-based
// positions in creation order.
type Todo struct {
	gorm.Model
	UserID  *uint `gorm:"index"`
	GuildID *uint `gorm:"index"`
	Value   string
}
