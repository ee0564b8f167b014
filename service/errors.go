package service

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("email already registered")
	ErrUnauthorized = errors.New("invalid email or password")
	ErrNotFound     = errors.New("not found")
)
