package dto

import (
	"time"

	"artfeed/internal/domain/models"
	"artfeed/internal/transport/http/dto/response"
)

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type Comment struct {
	ID                int64     `json:"id"`
	PostID            int64     `json:"postId"`
	UserID            string    `json:"userId"`
	Content           string    `json:"content"`
	AuthorDisplayName string    `json:"authorDisplayName"`
	AuthorAvatarURL   string    `json:"authorAvatarUrl"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type CommentsResponse struct {
	response.Envelope
	Comments []Comment `json:"comments"`
}

type CommentResponse struct {
	response.Envelope
	Comment Comment `json:"comment"`
}

func NewComment(c models.Comment) Comment {
	return Comment{
		ID:                c.ID,
		PostID:            c.PostID,
		UserID:            c.UserID,
		Content:           c.Content,
		AuthorDisplayName: c.Author.DisplayName,
		AuthorAvatarURL:   c.Author.AvatarURL,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func NewCommentsResponse(comments []models.Comment) CommentsResponse {
	out := make([]Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewComment(c))
	}
	return CommentsResponse{Envelope: response.OK(), Comments: out}
}
