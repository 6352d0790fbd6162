package redisstore

import (
	"context"
	"errors"
	"fmt"

	"licentia/internal/domain"
	"licentia/internal/usecase"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "licentia:revoked:"

// Store keeps revocation flags in redis so multiple authority instances
// observe the same state. Absent keys read as not revoked; a redis
// failure surfaces as authority unavailability.
type Store struct {
	client *redis.Client
}

func New(addr, password string, db int) (*Store, error) {
	if addr == "" {
		return nil, errors.New("redis addr is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Store{client: client}, nil
}

func (s *Store) SetRevoked(ctx context.Context, subjectID string, revoked bool, reason string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("%w: redis unavailable", domain.ErrAuthorityUnavailable)
	}
	key := keyPrefix + subjectID
	var err error
	if revoked {
		err = s.client.Set(ctx, key, "1", 0).Err()
	} else {
		err = s.client.Del(ctx, key).Err()
	}
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAuthorityUnavailable, err)
	}
	return nil
}

func (s *Store) IsRevoked(ctx context.Context, subjectID string) (bool, error) {
	if s == nil || s.client == nil {
		return false, fmt.Errorf("%w: redis unavailable", domain.ErrAuthorityUnavailable)
	}
	_, err := s.client.Get(ctx, keyPrefix+subjectID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", domain.ErrAuthorityUnavailable, err)
	}
	return true, nil
}

var _ usecase.RevocationStore = (*Store)(nil)
