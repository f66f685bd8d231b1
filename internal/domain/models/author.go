package models

const UnknownAuthorName = "Unknown User"

// Author is the display data the identity provider keeps for a user id.
type Author struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// UnknownAuthor is used when a profile cannot be resolved.
func UnknownAuthor(userID string) Author {
	return Author{
		UserID:      userID,
		DisplayName: UnknownAuthorName,
	}
}
