// Package identity is a client for the external identity provider's user
// lookup endpoint.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"artfeed/internal/domain/models"
)

const maxIDsPerRequest = 100

var ErrUnexpectedStatus = errors.New("unexpected status from identity provider")

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type user struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	ImageURL  string `json:"image_url"`
}

func (u user) author() models.Author {
	name := u.Username
	if name == "" {
		name = u.FirstName
	}
	if name == "" {
		name = models.UnknownAuthorName
	}

	return models.Author{
		UserID:      u.ID,
		DisplayName: name,
		AvatarURL:   u.ImageURL,
	}
}

// GetUsers looks up profiles for ids. Ids the provider does not know are
// left out of the result.
func (c *Client) GetUsers(ctx context.Context, ids []string) ([]models.Author, error) {
	const op = "clients.identity.GetUsers"

	out := make([]models.Author, 0, len(ids))
	for start := 0; start < len(ids); start += maxIDsPerRequest {
		end := min(start+maxIDsPerRequest, len(ids))

		users, err := c.fetch(ctx, ids[start:end])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		for _, u := range users {
			out = append(out, u.author())
		}
	}

	return out, nil
}

func (c *Client) fetch(ctx context.Context, ids []string) ([]user, error) {
	q := url.Values{}
	for _, id := range ids {
		q.Add("user_id", id)
	}
	q.Set("limit", fmt.Sprint(len(ids)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/users?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var users []user
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	return users, nil
}
