package models

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm/clause"
)

type Token struct {
	BaseModel
	Key       string    `gorm:"not null;uniqueIndex"`
	UserID    uint      `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

func (Token) TableName() string {
	return "auth_tokens"
}

// Expired reports whether the token is past its expiry at 'now'
func (token *Token) Expired(now time.Time) bool {
	return !now.Before(token.ExpiresAt)
}

func FindToken(key string) (*Token, error) {
	token := Token{}

	err := db.Where(&Token{Key: key}).First(&token).Error
	if err != nil {
		return nil, err
	}

	return &token, nil
}

// DeleteExpiredTokens removes tokens that expired before 'now' & returns how many were removed
func DeleteExpiredTokens(now time.Time) (int64, error) {
	result := db.Where("expires_at <= ?", now.UTC()).Delete(&Token{})
	return result.RowsAffected, errors.Wrap(result.Error, "delete expired tokens")
}

func (user *User) StoredToken() (*Token, error) {
	token := Token{}

	err := db.Where("user_id = ?", user.ID).First(&token).Error
	if err != nil {
		return nil, err
	}

	return &token, nil
}

// SaveToken replaces the user's stored token
func (user *User) SaveToken(key string, expiresAt time.Time) error {
	token := Token{Key: key, UserID: user.ID, ExpiresAt: expiresAt.UTC()}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"key", "expires_at", "updated_at"}),
	}).Create(&token).Error

	return errors.Wrap(err, "save token")
}
