package domain

import "errors"

var (
	ErrRequestNotFound    = errors.New("request not found")
	ErrConflict           = errors.New("request moved by another caller")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrNotAllowed         = errors.New("not allowed")
	ErrMissingFields      = errors.New("missing fields")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserExists         = errors.New("user exists")
	ErrInvalidCredentials = errors.New("invalid login")
	ErrInvalidID          = errors.New("invalid id")
)
