package token

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/taskboard-app/taskboard/internal/store"
)

// ErrNoStoredToken is returned when no refresh token is on record for a
// subject.
var ErrNoStoredToken = errors.New("no stored refresh token for subject")

const refreshKeyPrefix = "refresh_token:"

// RefreshStore records the single currently-valid refresh token per
// subject. Writing a new token replaces the previous one, which is how
// issuing a fresh pair invalidates every earlier refresh token.
type RefreshStore struct {
	kv store.Store
}

func NewRefreshStore(kv store.Store) *RefreshStore {
	return &RefreshStore{kv: kv}
}

func (s *RefreshStore) Put(ctx context.Context, userID uuid.UUID, refreshToken string, ttl time.Duration) error {
	return s.kv.Set(ctx, refreshKeyPrefix+userID.String(), refreshToken, ttl)
}

func (s *RefreshStore) Get(ctx context.Context, userID uuid.UUID) (string, error) {
	value, err := s.kv.Get(ctx, refreshKeyPrefix+userID.String())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNoStoredToken
		}
		return "", err
	}
	return value, nil
}

func (s *RefreshStore) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return s.kv.Delete(ctx, refreshKeyPrefix+userID.String())
}
