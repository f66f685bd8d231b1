package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"artfeed/internal/domain/models"
	redisapp "artfeed/internal/storage/redis"
)

// ProfileCacheRepo keeps resolved author profiles in Redis under
// "profile:<user id>" as JSON.
type ProfileCacheRepo struct {
	Client *redisapp.Client
}

func NewProfileCacheRepository(client *redisapp.Client) *ProfileCacheRepo {
	return &ProfileCacheRepo{Client: client}
}

// GetProfiles returns the cached subset of userIDs; misses are simply absent
// from the map.
func (r *ProfileCacheRepo) GetProfiles(ctx context.Context, userIDs []string) (map[string]models.Author, error) {
	const op = "repository.ProfileCacheRepo.GetProfiles"

	out := make(map[string]models.Author, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = profileKey(id)
	}

	vals, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}

		var author models.Author
		if err := json.Unmarshal([]byte(s), &author); err != nil {
			continue
		}
		out[userIDs[i]] = author
	}

	return out, nil
}

func (r *ProfileCacheRepo) SaveProfiles(ctx context.Context, profiles []models.Author, ttl time.Duration) error {
	const op = "repository.ProfileCacheRepo.SaveProfiles"

	for _, p := range profiles {
		payload, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if err := r.Client.Set(ctx, profileKey(p.UserID), payload, ttl).Err(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

func profileKey(userID string) string {
	return "profile:" + userID
}
