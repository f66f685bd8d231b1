package dto

import (
	"time"

	"artfeed/internal/domain/models"
	"artfeed/internal/transport/http/dto/response"
)

type ShareRequest struct {
	ImageID     int64    `json:"imageId" validate:"required,gt=0"`
	Title       string   `json:"title" validate:"required,max=100"`
	Description string   `json:"description" validate:"max=1000"`
	Tags        []string `json:"tags" validate:"max=20,dive,max=30"`
}

type SharedPost struct {
	ID          int64     `json:"id"`
	ImageID     int64     `json:"imageId"`
	AuthorID    string    `json:"authorId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ShareResponse struct {
	response.Envelope
	Post SharedPost `json:"post"`
}

func NewShareResponse(post models.Post) ShareResponse {
	return ShareResponse{
		Envelope: response.OK(),
		Post: SharedPost{
			ID:          post.ID,
			ImageID:     post.ImageID,
			AuthorID:    post.UserID,
			Title:       post.Title,
			Description: post.Description,
			CreatedAt:   post.CreatedAt,
			UpdatedAt:   post.UpdatedAt,
		},
	}
}
