package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Image is a generated picture stored in the owner's gallery.
type Image struct {
	ID        int64     `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	FilePath  string    `db:"file_path" json:"file_path"`
	Prompt    string    `db:"prompt" json:"prompt"`
	ArtStyle  string    `db:"art_style" json:"art_style"`
	ColorTone string    `db:"color_tone" json:"color_tone"`
	Tags      []string  `db:"tags" json:"tags"`
	IsPublic  bool      `db:"is_public" json:"is_public"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (i Image) OwnerID() string { return i.UserID }

func (i Image) Public() bool { return i.IsPublic }

// ImageFilter narrows a gallery listing to one owner's images.
type ImageFilter struct {
	OwnerID    string
	ArtStyle   string
	ColorTone  string
	From       *time.Time
	To         *time.Time
	PublicOnly bool
	Tags       []string
	SortBy     SortOrder
	Page       Page
}

// ImagePage is one page of a gallery listing.
type ImagePage struct {
	Images     []Image
	TotalCount int
	HasMore    bool
}

const (
	MaxPromptLength = 500
	MaxTags         = 20
	MaxTagLength    = 30
)

// NormalizeTags trims, drops empty and duplicate tags, and enforces the tag
// limits. The result is never nil.
func NormalizeTags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))

	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if utf8.RuneCountInString(t) > MaxTagLength {
			return nil, ErrInvalidInput
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	if len(out) > MaxTags {
		return nil, ErrInvalidInput
	}

	return out, nil
}
