// Package model defines the database entity models.
// This file defines the user model, including profile and credentials.
package model

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserInfo is the user entity, mapped to the user_info table.
type UserInfo struct {
	gorm.Model // ID, CreatedAt, UpdatedAt, DeletedAt

	// Uuid is the stable user identifier carried in tokens.
	// Format: U + timestamp-prefixed random string, e.g. "U260829aB3xYz9qWe71"
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);not null"`

	// UserName is the login name, unique case-insensitively through
	// the normalized column.
	UserName string `gorm:"column:user_name;type:varchar(30);not null"`

	// NormalizedUserName is the lowercase form used for uniqueness
	// and member search.
	NormalizedUserName string `gorm:"column:normalized_user_name;uniqueIndex;type:varchar(30);not null"`

	FirstName string `gorm:"column:first_name;type:varchar(30);not null"`
	LastName  string `gorm:"column:last_name;type:varchar(30);not null"`

	// Password stores the bcrypt hash, never the plaintext.
	Password string `gorm:"column:password;type:varchar(100);not null"`

	// RawPassword receives the plaintext from the caller and is hashed
	// into Password by the BeforeSave hook. Never persisted.
	RawPassword string `gorm:"-" json:"-"`
}

// TableName pins the table name instead of relying on gorm pluralization.
func (UserInfo) TableName() string {
	return "user_info"
}

// BeforeSave hashes RawPassword into Password when a plaintext was provided,
// and keeps NormalizedUserName in sync with UserName.
func (u *UserInfo) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = ""
	}
	if u.UserName != "" {
		u.NormalizedUserName = strings.ToLower(u.UserName)
	}
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (u *UserInfo) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}
