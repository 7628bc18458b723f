// Package dal wraps database bootstrap and the repository operations
// the dispatcher and command handlers use. Get-or-create lookups are
// explicit here; nothing creates rows as a hidden side effect of a read.
package dal

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hourglass/lang"
	"hourglass/models"
)

// InitDB opens the database, migrates the schema and seeds the
// language table.
func InitDB(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(
		sqlite.Open(dbPath),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	err = db.AutoMigrate(
		&models.Guild{},
		&models.User{},
		&models.Channel{},
		&models.Message{},
		&models.Reminder{},
		&models.Todo{},
		&models.Timer{},
		&models.CommandRestriction{},
		&models.Language{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	if err := seedLanguages(db); err != nil {
		return nil, fmt.Errorf("seed languages: %w", err)
	}

	return db, nil
}

func seedLanguages(db *gorm.DB) error {
	for _, row := range lang.Available() {
		err := db.Where(&models.Language{Code: row.Code}).
			FirstOrCreate(&row).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// GetOrCreateGuild resolves a guild row by discord id, creating it on
// first contact.
func GetOrCreateGuild(discordID string, db *gorm.DB) (*models.Guild, error) {
	var guild models.Guild
	err := db.Where(&models.Guild{DiscordID: discordID}).
		Attrs(&models.Guild{Prefix: models.DefaultPrefix, Timezone: "UTC"}).
		FirstOrCreate(&guild).Error
	if err != nil {
		return nil, err
	}
	return &guild, nil
}

// FindUser looks a user up by discord id. Returns (nil, nil) when the
// user has never been seen; the caller decides whether to create them.
func FindUser(discordID string, db *gorm.DB) (*models.User, error) {
	var user models.User
	err := db.Preload("DMChannel").
		Where(&models.User{DiscordID: discordID}).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a user row together with their DM channel row.
// dmChannelID is the discord id of the user's DM channel, which the
// caller must already have created on the platform side.
func CreateUser(discordID, name, dmChannelID string, db *gorm.DB) (*models.User, error) {
	channel, _, err := GetOrCreateChannel(dmChannelID, nil, db)
	if err != nil {
		return nil, err
	}

	user := models.User{
		DiscordID:   discordID,
		Name:        name,
		Language:    lang.DefaultCode,
		DMChannelID: channel.ID,
		DMChannel:   *channel,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureMembership records that user belongs to guild.
func EnsureMembership(guild *models.Guild, user *models.User, db *gorm.DB) error {
	var count int64
	err := db.Table("guild_users").
		Where("guild_id = ? AND user_id = ?", guild.ID, user.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Model(guild).Association("Users").Append(user)
}

// GetOrCreateChannel resolves a channel row by discord id. guildRowID is
// nil for DM channels. The second return reports whether the row was
// created by this call.
func GetOrCreateChannel(discordID string, guildRowID *uint, db *gorm.DB) (*models.Channel, bool, error) {
	var channel models.Channel
	err := db.Where(&models.Channel{DiscordID: discordID}).Take(&channel).Error
	if err == nil {
		if channel.GuildID == nil && guildRowID != nil {
			channel.GuildID = guildRowID
			if err := db.Save(&channel).Error; err != nil {
				return nil, false, err
			}
		}
		return &channel, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	channel = models.Channel{DiscordID: discordID, GuildID: guildRowID}
	if err := db.Create(&channel).Error; err != nil {
		return nil, false, err
	}
	return &channel, true, nil
}

// DeleteChannel removes a channel row and its reminders. Used when the
// underlying platform channel is deleted.
func DeleteChannel(discordID string, db *gorm.DB) error {
	var channel models.Channel
	err := db.Where(&models.Channel{DiscordID: discordID}).Take(&channel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	err = db.Where(&models.Reminder{ChannelID: channel.ID}).
		Delete(&models.Reminder{}).Error
	if err != nil {
		return err
	}
	return db.Delete(&channel).Error
}
