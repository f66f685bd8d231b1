package models

import "errors"

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrAlreadyShared  = errors.New("image already shared")
	ErrInvalidContent = errors.New("invalid content")
	ErrInvalidInput   = errors.New("invalid input")
)
