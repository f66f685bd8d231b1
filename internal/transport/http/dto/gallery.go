package dto

import (
	"time"

	"artfeed/internal/domain/models"
	"artfeed/internal/transport/http/dto/response"
)

// GalleryQuery is bound from the query string of GET /gallery.
type GalleryQuery struct {
	Page      int      `query:"page" validate:"omitempty,min=1"`
	Limit     int      `query:"limit" validate:"omitempty,min=1,max=100"`
	SortBy    string   `query:"sortBy" validate:"omitempty,oneof=latest oldest"`
	ArtStyle  string   `query:"artStyle"`
	ColorTone string   `query:"colorTone"`
	Tags      []string `query:"tag"`
	From      string   `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string   `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Public    bool     `query:"public"`
}

type UpdateImageRequest struct {
	Tags     []string `json:"tags" validate:"max=20,dive,max=30"`
	IsPublic *bool    `json:"isPublic"`
}

type Image struct {
	ID        int64     `json:"id"`
	ImageURL  string    `json:"imageUrl"`
	Prompt    string    `json:"prompt"`
	ArtStyle  string    `json:"artStyle"`
	ColorTone string    `json:"colorTone"`
	Tags      []string  `json:"tags"`
	IsPublic  bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ImageResponse struct {
	response.Envelope
	Image Image `json:"image"`
}

type GalleryResponse struct {
	response.Envelope
	Images     []Image `json:"images"`
	TotalCount int     `json:"totalCount"`
	HasMore    bool    `json:"hasMore"`
}

func NewImage(img models.Image, url URLFunc) Image {
	tags := img.Tags
	if tags == nil {
		tags = []string{}
	}
	return Image{
		ID:        img.ID,
		ImageURL:  url(img.FilePath),
		Prompt:    img.Prompt,
		ArtStyle:  img.ArtStyle,
		ColorTone: img.ColorTone,
		Tags:      tags,
		IsPublic:  img.IsPublic,
		CreatedAt: img.CreatedAt,
		UpdatedAt: img.UpdatedAt,
	}
}

func NewGalleryResponse(page models.ImagePage, url URLFunc) GalleryResponse {
	images := make([]Image, 0, len(page.Images))
	for _, img := range page.Images {
		images = append(images, NewImage(img, url))
	}
	return GalleryResponse{
		Envelope:   response.OK(),
		Images:     images,
		TotalCount: page.TotalCount,
		HasMore:    page.HasMore,
	}
}
