package models

import "time"

type Like struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"post_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// LikeState is the result of a toggle or a status read.
type LikeState struct {
	Liked      bool `json:"is_liked"`
	TotalLikes int  `json:"likes"`
}
