package models

import "gorm.io/gorm"

// Timer limits.
const (
	MaxTimersPerOwner  = 25
	MaxTimerNameLength = 32
)

// Timer is a named stopwatch. Owner is the discord id of the owning
// guild, or of the user for DM timers. Names are unique per owner.
type Timer struct {
	gorm.Model
	Name      string `gorm:"size:32;index:idx_timer_owner_name,unique"`
	Owner     string `gorm:"index:idx_timer_owner_name,unique"`
	StartTime int64
}
