package dto

import (
	"time"

	"artfeed/internal/domain/models"
	"artfeed/internal/transport/http/dto/response"
)

// URLFunc turns a stored relative path into a client-facing URL.
type URLFunc func(path string) string

type FeedPost struct {
	PostID            int64     `json:"postId"`
	ImageID           int64     `json:"imageId"`
	AuthorID          string    `json:"authorId"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	ImageURL          string    `json:"imageUrl"`
	Prompt            string    `json:"prompt"`
	AuthorDisplayName string    `json:"authorDisplayName"`
	AuthorAvatarURL   string    `json:"authorAvatarUrl"`
	LikesCount        int       `json:"likesCount"`
	CommentsCount     int       `json:"commentsCount"`
	IsLikedByViewer   bool      `json:"isLikedByViewer"`
	CreatedAt         time.Time `json:"createdAt"`
}

type FeedResponse struct {
	response.Envelope
	Posts      []FeedPost `json:"posts"`
	TotalCount int        `json:"totalCount"`
	HasMore    bool       `json:"hasMore"`
}

type PostResponse struct {
	response.Envelope
	Post FeedPost `json:"post"`
}

func NewFeedPost(item models.FeedItem, url URLFunc) FeedPost {
	return FeedPost{
		PostID:            item.PostID,
		ImageID:           item.ImageID,
		AuthorID:          item.AuthorID,
		Title:             item.Title,
		Description:       item.Description,
		ImageURL:          url(item.FilePath),
		Prompt:            item.Prompt,
		AuthorDisplayName: item.Author.DisplayName,
		AuthorAvatarURL:   item.Author.AvatarURL,
		LikesCount:        item.LikesCount,
		CommentsCount:     item.CommentsCount,
		IsLikedByViewer:   item.IsLiked,
		CreatedAt:         item.CreatedAt,
	}
}

func NewFeedResponse(feed models.Feed, url URLFunc) FeedResponse {
	posts := make([]FeedPost, 0, len(feed.Items))
	for _, item := range feed.Items {
		posts = append(posts, NewFeedPost(item, url))
	}

	return FeedResponse{
		Envelope:   response.OK(),
		Posts:      posts,
		TotalCount: feed.TotalCount,
		HasMore:    feed.HasMore,
	}
}
