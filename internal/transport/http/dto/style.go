package dto

import (
	"artfeed/internal/domain/models"
	"artfeed/internal/transport/http/dto/response"
)

type Styles struct {
	ArtStyles  []models.StyleOption `json:"artStyles"`
	ColorTones []models.StyleOption `json:"colorTones"`
}

type StylesResponse struct {
	response.Envelope
	Styles Styles `json:"styles"`
}
