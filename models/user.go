package models

import "gorm.io/gorm"

// User is a participant the bot has interacted with. Every user owns a
// direct-message Channel row, created the first time we see them.
type User struct {
	gorm.Model
	DiscordID   string `gorm:"uniqueIndex"`
	Name        string
	Timezone    string
	Language    string `gorm:"size:2"`
	DMChannelID uint
	DMChannel   Channel  `gorm:"foreignKey:DMChannelID"`
	Guilds      []*Guild `gorm:"many2many:guild_users"`
}
