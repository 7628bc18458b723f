package dal

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"hourglass/models"
)

// RestrictionExists reports whether any of the caller's roles has been
// granted the command in the guild.
func RestrictionExists(guildRowID uint, command string, roleIDs []string, db *gorm.DB) (bool, error) {
	if len(roleIDs) == 0 {
		return false, nil
	}
	var count int64
	err := db.Model(&models.CommandRestriction{}).
		Where("guild_id = ? AND command = ? AND role_id IN ?", guildRowID, command, roleIDs).
		Count(&count).Error
	return count > 0, err
}

// ListRestrictions returns all restriction rows for a guild.
func ListRestrictions(guildRowID uint, db *gorm.DB) ([]models.CommandRestriction, error) {
	var rows []models.CommandRestriction
	err := db.Where("guild_id = ?", guildRowID).
		Order("role_id, command").
		Find(&rows).Error
	return rows, err
}

// CreateRestriction grants a role a command, idempotently.
func CreateRestriction(guildRowID uint, command, roleID string, db *gorm.DB) error {
	row := models.CommandRestriction{
		GuildID: guildRowID,
		Command: command,
		RoleID:  roleID,
	}
	return db.Where(&row).FirstOrCreate(&row).Error
}

// DeleteRestrictionsForRole revokes everything granted to a role in a
// guild.
func DeleteRestrictionsForRole(guildRowID uint, roleID string, db *gorm.DB) error {
	return db.Where("guild_id = ? AND role_id = ?", guildRowID, roleID).
		Delete(&models.CommandRestriction{}).Error
}

// TodosForUser lists a user's todos in creation order.
func TodosForUser(userRowID uint, db *gorm.DB) ([]models.Todo, error) {
	var todos []models.Todo
	err := db.Where("user_id = ?", userRowID).Order("id").Find(&todos).Error
	return todos, err
}

// TodosForGuild lists a guild's todos in creation order.
func TodosForGuild(guildRowID uint, db *gorm.DB) ([]models.Todo, error) {
	var todos []models.Todo
	err := db.Where("guild_id = ?", guildRowID).Order("id").Find(&todos).Error
	return todos, err
}

// AddTodo appends a todo owned by exactly one of user/guild.
func AddTodo(userRowID, guildRowID *uint, value string, db *gorm.DB) error {
	return db.Create(&models.Todo{UserID: userRowID, GuildID: guildRowID, Value: value}).Error
}

// DeleteTodo removes one todo by row id.
func DeleteTodo(id uint, db *gorm.DB) error {
	return db.Delete(&models.Todo{}, id).Error
}

// ClearTodosForUser removes all of a user's todos.
func ClearTodosForUser(userRowID uint, db *gorm.DB) error {
	return db.Where("user_id = ?", userRowID).Delete(&models.Todo{}).Error
}

// ClearTodosForGuild removes all of a guild's todos.
func ClearTodosForGuild(guildRowID uint, db *gorm.DB) error {
	return db.Where("guild_id = ?", guildRowID).Delete(&models.Todo{}).Error
}

// TimersForOwner lists an owner's timers in creation order.
func TimersForOwner(owner string, db *gorm.DB) ([]models.Timer, error) {
	var timers []models.Timer
	err := db.Where("owner = ?", owner).Order("id").Find(&timers).Error
	return timers, err
}

// CreateTimer starts a named stopwatch for the owner.
func CreateTimer(owner, name string, startTime int64, db *gorm.DB) error {
	return db.Create(&models.Timer{Owner: owner, Name: name, StartTime: startTime}).Error
}

// DeleteTimer removes a timer by owner and name. Returns false when no
// such timer exists.
func DeleteTimer(owner, name string, db *gorm.DB) (bool, error) {
	res := db.Where("owner = ? AND name = ?", owner, name).Delete(&models.Timer{})
	return res.RowsAffected > 0, res.Error
}

// FindLanguage resolves a language by code or by display name.
func FindLanguage(token string, db *gorm.DB) (*models.Language, error) {
	var language models.Language
	err := db.Where("code = ? OR name = ?",
		strings.ToUpper(token), strings.ToLower(token)).
		Take(&language).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &language, nil
}

// ListLanguages returns all available languages.
func ListLanguages(db *gorm.DB) ([]models.Language, error) {
	var languages []models.Language
	err := db.Order("code").Find(&languages).Error
	return languages, err
}
