package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"artfeed/internal/domain/models"
	"artfeed/internal/lib/logger/sl"
	"artfeed/internal/metrics"
	"artfeed/internal/repository"
)

type IdentityProvider interface {
	GetUsers(ctx context.Context, ids []string) ([]models.Author, error)
}

// ProfileService resolves author display data through an in-process cache,
// the shared Redis cache and finally the identity provider.
type ProfileService struct {
	log      *slog.Logger
	local    *cache.Cache
	shared   repository.ProfileCacheRepository
	provider IdentityProvider
	ttl      time.Duration
}

func NewProfileService(
	log *slog.Logger,
	local *cache.Cache,
	shared repository.ProfileCacheRepository,
	provider IdentityProvider,
	sharedTTL time.Duration,
) *ProfileService {
	return &ProfileService{
		log:      log,
		local:    local,
		shared:   shared,
		provider: provider,
		ttl:      sharedTTL,
	}
}

// Resolve returns an author for every distinct non-empty id. Lookup failures
// are logged and fall back to the placeholder author.
func (s *ProfileService) Resolve(ctx context.Context, userIDs []string) map[string]models.Author {
	const op = "service.ProfileService.Resolve"
	log := s.log.With(slog.String("op", op))

	ids := dedupe(userIDs)
	out := make(map[string]models.Author, len(ids))

	missing := make([]string, 0, len(ids))
	for _, id := range ids {
		if v, ok := s.local.Get(id); ok {
			out[id] = v.(models.Author)
			continue
		}
		missing = append(missing, id)
	}
	metrics.ProfileLookupsTotal.WithLabelValues("memory").Add(float64(len(out)))

	if len(missing) > 0 {
		missing = s.fromShared(ctx, log, missing, out)
	}

	if len(missing) > 0 {
		missing = s.fromProvider(ctx, log, missing, out)
	}

	for _, id := range missing {
		out[id] = models.UnknownAuthor(id)
	}
	metrics.ProfileLookupsTotal.WithLabelValues("fallback").Add(float64(len(missing)))

	return out
}

func (s *ProfileService) fromShared(ctx context.Context, log *slog.Logger, ids []string, out map[string]models.Author) []string {
	cached, err := s.shared.GetProfiles(ctx, ids)
	if err != nil {
		log.Warn("shared profile cache unavailable", sl.Err(err))
		return ids
	}

	rest := ids[:0:0]
	for _, id := range ids {
		author, ok := cached[id]
		if !ok {
			rest = append(rest, id)
			continue
		}
		out[id] = author
		s.local.SetDefault(id, author)
	}
	metrics.ProfileLookupsTotal.WithLabelValues("redis").Add(float64(len(cached)))

	return rest
}

func (s *ProfileService) fromProvider(ctx context.Context, log *slog.Logger, ids []string, out map[string]models.Author) []string {
	found, err := s.provider.GetUsers(ctx, ids)
	if err != nil {
		log.Warn("identity provider lookup failed", slog.Int("ids", len(ids)), sl.Err(err))
		return ids
	}

	for _, author := range found {
		out[author.UserID] = author
		s.local.SetDefault(author.UserID, author)
	}
	metrics.ProfileLookupsTotal.WithLabelValues("identity").Add(float64(len(found)))

	if len(found) > 0 {
		if err := s.shared.SaveProfiles(ctx, found, s.ttl); err != nil {
			log.Warn("failed to fill shared profile cache", sl.Err(err))
		}
	}

	rest := ids[:0:0]
	for _, id := range ids {
		if _, ok := out[id]; !ok {
			rest = append(rest, id)
		}
	}
	return rest
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
