package models

import (
	"errors"
	"strings"

	"github.com/Daskott/contactbook/server/auth"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type User struct {
	BaseModel
	Email    string   `json:"email" gorm:"not null;unique"`
	Password string   `json:"-" gorm:"not null"`
	Token    *Token   `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Contacts []Person `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// CreateUser hashes the user's password & inserts the user. The unique email
// index decides duplicates, so concurrent registrations still get ErrDuplicateIdentity.
func CreateUser(user *User) error {
	passwordHash, err := auth.HashPassword(user.Password)
	if err != nil {
		return pkgErrors.Wrap(err, "hash password")
	}
	user.Password = passwordHash

	err = db.Create(user).Error
	if isUniqueViolation(err) {
		return ErrDuplicateIdentity
	}

	return pkgErrors.Wrap(err, "create user")
}

func FindUserBy(field string, value interface{}) (*User, error) {
	user := User{}

	err := db.Where(map[string]interface{}{field: value}).First(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindUserByCredentials returns ErrInvalidCredentials for an unknown email or a wrong password
func FindUserByCredentials(email, password string) (*User, error) {
	user, err := FindUserBy("email", email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// isUniqueViolation matches the constraint error of both the plain & the sqlcipher driver
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
