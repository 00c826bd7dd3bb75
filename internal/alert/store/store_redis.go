package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"datasentinel/internal/alert/models"
)

const (
	adminKey              = "sentinel:alerts:admin"
	userAlertKeyPrefix    = "sentinel:alerts:user:"
	notificationsAllKey   = "sentinel:notifications:all"
	notificationKeyPrefix = "sentinel:notifications:user:"
	raisedKeyPrefix       = "sentinel:alerts:raised:"
)

// RedisStore keeps each feed as a capped list of JSON documents.
type RedisStore struct {
	client    redis.UniversalClient
	retention int64
}

func NewRedis(client redis.UniversalClient, retention int) *RedisStore {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &RedisStore{client: client, retention: int64(retention)}
}

func (s *RedisStore) push(ctx context.Context, value any, keys ...string) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.RPush(ctx, key, encoded)
			pipe.LTrim(ctx, key, -s.retention, -1)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("append alert: %w", err)
	}
	return nil
}

func listJSON[T any](ctx context.Context, client redis.UniversalClient, key string) ([]*T, error) {
	raw, err := client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	out := make([]*T, 0, len(raw))
	for _, r := range raw {
		var v T
		if err := json.Unmarshal([]byte(r), &v); err != nil {
			return nil, fmt.Errorf("unmarshal %s entry: %w", key, err)
		}
		out = append(out, &v)
	}
	return out, nil
}

func (s *RedisStore) AppendAdmin(ctx context.Context, a *models.AdminAlert) error {
	return s.push(ctx, a, adminKey)
}

func (s *RedisStore) ListAdmin(ctx context.Context) ([]*models.AdminAlert, error) {
	return listJSON[models.AdminAlert](ctx, s.client, adminKey)
}

func (s *RedisStore) AppendUser(ctx context.Context, a *models.UserAlert) error {
	return s.push(ctx, a, userAlertKeyPrefix+a.UserID)
}

func (s *RedisStore) ListUser(ctx context.Context, userID string) ([]*models.UserAlert, error) {
	return listJSON[models.UserAlert](ctx, s.client, userAlertKeyPrefix+userID)
}

func (s *RedisStore) AppendNotification(ctx context.Context, n *models.Notification) error {
	return s.push(ctx, n, notificationsAllKey, notificationKeyPrefix+n.UserID)
}

func (s *RedisStore) ListNotifications(ctx context.Context, userID string) ([]*models.Notification, error) {
	key := notificationsAllKey
	if userID != "" {
		key = notificationKeyPrefix + userID
	}
	return listJSON[models.Notification](ctx, s.client, key)
}

// MarkRaised uses SETNX so exactly one caller across instances wins.
func (s *RedisStore) MarkRaised(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, raisedKeyPrefix+key, 1, 0).Result()
	if err != nil {
		return false, fmt.Errorf("mark alert raised: %w", err)
	}
	return ok, nil
}

func (s *RedisStore) ClearRaised(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, raisedKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("clear alert mark: %w", err)
	}
	return nil
}
