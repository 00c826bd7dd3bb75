package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"datasentinel/internal/risk/models"
	"datasentinel/pkg/platform/sentinel"
)

const (
	riskKeyPrefix   = "sentinel:risk:"
	riskIndexKey    = "sentinel:risk:partners"
	maxWatchRetries = 16
)

// RedisStore keeps one JSON document per partner and updates it with
// WATCH/MULTI so concurrent hits never lose an increment.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedis(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(partnerID string) string {
	return riskKeyPrefix + partnerID
}

func (s *RedisStore) Get(ctx context.Context, partnerID string) (*models.State, error) {
	data, err := s.client.Get(ctx, s.key(partnerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get risk state: %w", err)
	}
	return decodeState(data)
}

// Update retries when another writer touched the key between WATCH and EXEC.
// After maxWatchRetries it gives up with sentinel.ErrConflict.
func (s *RedisStore) Update(ctx context.Context, partnerID string, fn func(*models.State) error) (*models.State, error) {
	key := s.key(partnerID)
	var result *models.State

	txf := func(tx *redis.Tx) error {
		working := &models.State{PartnerID: partnerID}
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return fmt.Errorf("get risk state for update: %w", err)
		default:
			if working, err = decodeState(data); err != nil {
				return err
			}
		}

		if err := fn(working); err != nil {
			return err
		}

		encoded, err := json.Marshal(working)
		if err != nil {
			return fmt.Errorf("marshal risk state: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, 0)
			pipe.SAdd(ctx, riskIndexKey, partnerID)
			return nil
		})
		if err != nil {
			return err
		}
		result = working
		return nil
	}

	for attempt := 0; attempt < maxWatchRetries; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, sentinel.ErrConflict
}

func (s *RedisStore) List(ctx context.Context) ([]*models.State, error) {
	partners, err := s.client.SMembers(ctx, riskIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list risk partners: %w", err)
	}
	if len(partners) == 0 {
		return nil, nil
	}
	keys := make([]string, len(partners))
	for i, p := range partners {
		keys[i] = s.key(p)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load risk states: %w", err)
	}
	states := make([]*models.State, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		st, err := decodeState([]byte(raw))
		if err != nil {
			return nil, err
		}
		states = append(states, st)
	}
	return states, nil
}

func decodeState(data []byte) (*models.State, error) {
	var st models.State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("unmarshal risk state: %w", err)
	}
	return &st, nil
}
