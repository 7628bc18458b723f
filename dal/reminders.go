package dal

import (
	"gorm.io/gorm"

	"hourglass/models"
)

// DueReminders returns enabled reminders scheduled at or before now,
// with their message and channel loaded. This is the poller's read side
// of the scheduling contract.
func DueReminders(now int64, db *gorm.DB) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := db.Preload("Message").Preload("Channel").
		Where("enabled = ? AND time <= ?", true, now).
		Order("time").
		Find(&reminders).Error
	return reminders, err
}

// RemindersForChannel lists a channel's reminders ordered by due time.
// limit <= 0 means no limit.
func RemindersForChannel(channelID uint, onlyEnabled bool, limit int, db *gorm.DB) ([]models.Reminder, error) {
	q := db.Preload("Message").
		Where("channel_id = ?", channelID).
		Order("time")
	if onlyEnabled {
		q = q.Where("enabled = ?", true)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var reminders []models.Reminder
	err := q.Find(&reminders).Error
	return reminders, err
}

// RemindersForGuild lists reminders across all of a guild's channels.
func RemindersForGuild(guildRowID uint, db *gorm.DB) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := db.Preload("Message").Preload("Channel").
		Joins("JOIN channels ON channels.id = reminders.channel_id").
		Where("channels.guild_id = ?", guildRowID).
		Order("reminders.time").
		Find(&reminders).Error
	return reminders, err
}

// RemindersForUser lists reminders targeting the user's DM channel.
func RemindersForUser(user *models.User, db *gorm.DB) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := db.Preload("Message").Preload("Channel").
		Where("channel_id = ?", user.DMChannelID).
		Order("time").
		Find(&reminders).Error
	return reminders, err
}

// DeleteReminders removes reminders by row id.
func DeleteReminders(ids []uint, db *gorm.DB) error {
	if len(ids) == 0 {
		return nil
	}
	return db.Where("id IN ?", ids).Delete(&models.Reminder{}).Error
}

// OffsetGuildReminders shifts every reminder in every channel of a
// guild by delta seconds.
func OffsetGuildReminders(guildRowID uint, delta int64, db *gorm.DB) error {
	return db.Model(&models.Reminder{}).
		Where("channel_id IN (?)",
			db.Model(&models.Channel{}).Select("id").Where("guild_id = ?", guildRowID)).
		UpdateColumn("time", gorm.Expr("time + ?", delta)).Error
}

// OffsetChannelReminders shifts every reminder in one channel by delta
// seconds.
func OffsetChannelReminders(channelID uint, delta int64, db *gorm.DB) error {
	return db.Model(&models.Reminder{}).
		Where("channel_id = ?", channelID).
		UpdateColumn("time", gorm.Expr("time + ?", delta)).Error
}
