package models

import "errors"

var (
	ErrDuplicateIdentity  = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("email and password don't match")
	ErrDuplicateContact   = errors.New("contact already exists")
	ErrPageNotFound       = errors.New("page not found")
)
