package services

import "errors"

// Failures callers are expected to handle. The HTTP layer maps each one to
// a distinct status code and message.
var (
	ErrInvalidToken       = errors.New("invalid token provided")
	ErrForbidden          = errors.New("token does not belong to this user")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyConfirmed   = errors.New("email is already confirmed")
	ErrWrongCredentials   = errors.New("wrong email or password provided")
	ErrWrongPassword      = errors.New("incorrect password provided")
	ErrNoAvatar           = errors.New("no avatar has been uploaded")
)
