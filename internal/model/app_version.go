package model

import "gorm.io/gorm"

// AppVersion describes a published client version. Clients compare their
// own version against the latest row to decide on force updates.
type AppVersion struct {
	gorm.Model
	Version              int    `gorm:"column:version;not null"`
	LowestAllowedVersion int    `gorm:"column:lowest_allowed_version;not null"`
	Message              string `gorm:"column:message;type:varchar(700);not null"`
	DownloadURL          string `gorm:"column:download_url;type:varchar(700);not null"`
}

func (AppVersion) TableName() string {
	return "app_version"
}
