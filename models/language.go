package models

import "gorm.io/gorm"

// Language is a row per available localized string bundle. The bundles
// themselves ship with the binary; this table exists so `lang` can list
// and validate codes.
type Language struct {
	gorm.Model
	Code string `gorm:"size:2;uniqueIndex"`
	Name string
}
