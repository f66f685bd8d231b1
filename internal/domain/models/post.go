package models

import (
	"time"
)

// Post is the public wrapper around a shared image.
type Post struct {
	ID          int64     `db:"id" json:"id"`
	ImageID     int64     `db:"image_id" json:"image_id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ShareInput carries everything the share workflow writes in one transaction.
type ShareInput struct {
	ImageID     int64
	UserID      string
	Title       string
	Description string
	Tags        []string
}

// PostVisibility is the minimal view of a post needed by guards.
type PostVisibility struct {
	PostID        int64
	AuthorID      string
	ImageIsPublic bool
}

func (v PostVisibility) OwnerID() string { return v.AuthorID }

func (v PostVisibility) Public() bool { return v.ImageIsPublic }

// FeedItem is a post annotated with aggregate counts and the viewer's like state.
type FeedItem struct {
	PostID        int64
	ImageID       int64
	AuthorID      string
	Title         string
	Description   string
	FilePath      string
	Prompt        string
	LikesCount    int
	CommentsCount int
	IsLiked       bool
	CreatedAt     time.Time
	Author        Author
}

type FeedQuery struct {
	ViewerID string
	SortBy   SortOrder
	Page     Page
}

type Feed struct {
	Items      []FeedItem
	TotalCount int
	HasMore    bool
}
