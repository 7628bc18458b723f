package models

import "gorm.io/gorm"

// CommandRestriction grants a role the use of one managed command in one
// guild. Only commands whose base tier is managed ever get rows here.
type CommandRestriction struct {
	gorm.Model
	GuildID uint   `gorm:"index:idx_restriction,unique"`
	Command string `gorm:"index:idx_restriction,unique"`
	RoleID  string `gorm:"index:idx_restriction,unique"`
}
