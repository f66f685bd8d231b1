package dto

import (
	"artfeed/internal/domain/models"
	"artfeed/internal/transport/http/dto/response"
)

type LikeResponse struct {
	response.Envelope
	Likes   int  `json:"likes"`
	IsLiked bool `json:"isLiked"`
}

func NewLikeResponse(state models.LikeState) LikeResponse {
	return LikeResponse{
		Envelope: response.OK(),
		Likes:    state.TotalLikes,
		IsLiked:  state.Liked,
	}
}
