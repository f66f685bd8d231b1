package storage

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrImageNotFound = fmt.Errorf("image %w", ErrNotFound)
	ErrPostNotFound  = fmt.Errorf("post %w", ErrNotFound)
	ErrAlreadyShared = errors.New("image already shared")
)

var (
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileNotFound    = errors.New("file not found")
)
