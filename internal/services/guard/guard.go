// Package guard holds the existence, ownership and visibility checks every
// mutating operation runs before it touches storage.
package guard

import (
	"context"
	"errors"

	"artfeed/internal/domain/models"
	"artfeed/internal/storage"
)

type Owned interface {
	OwnerID() string
}

type Visible interface {
	Public() bool
}

// Find loads an entity and turns a storage miss into models.ErrNotFound.
func Find[T any](ctx context.Context, find func(context.Context) (T, error)) (T, error) {
	entity, err := find(ctx)
	if err != nil {
		var zero T
		if errors.Is(err, storage.ErrNotFound) {
			return zero, models.ErrNotFound
		}
		return zero, err
	}
	return entity, nil
}

// RequireOwner fails with ErrUnauthorized for an anonymous caller, ErrNotFound
// when the entity is absent and ErrForbidden when someone else owns it.
func RequireOwner[T Owned](ctx context.Context, find func(context.Context) (T, error), actingUserID string) (T, error) {
	var zero T
	if actingUserID == "" {
		return zero, models.ErrUnauthorized
	}

	entity, err := Find(ctx, find)
	if err != nil {
		return zero, err
	}

	if entity.OwnerID() != actingUserID {
		return zero, models.ErrForbidden
	}

	return entity, nil
}

func RequirePublic[T Visible](entity T) (T, error) {
	if !entity.Public() {
		var zero T
		return zero, models.ErrForbidden
	}
	return entity, nil
}
