package redis

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"datasentinel/internal/platform/config"
)

var (
	poolTotalConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sentinel_redis_pool_total_conns",
		Help: "Number of total connections in the Redis pool",
	})
	poolIdleConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sentinel_redis_pool_idle_conns",
		Help: "Number of idle connections in the Redis pool",
	})
	poolTimeouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sentinel_redis_pool_timeouts_total",
		Help: "Number of times a connection could not be obtained in time",
	})
)

// Client wraps go-redis with health and pool metrics.
type Client struct {
	*redis.Client
	lastTimeouts uint32
}

// New connects to Redis. An empty URL returns nil, nil.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck // best-effort cleanup on init failure
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{Client: client}, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// RecordPoolStats publishes pool statistics; call it periodically.
func (c *Client) RecordPoolStats() {
	stats := c.PoolStats()
	poolTotalConns.Set(float64(stats.TotalConns))
	poolIdleConns.Set(float64(stats.IdleConns))
	if stats.Timeouts > c.lastTimeouts {
		poolTimeouts.Add(float64(stats.Timeouts - c.lastTimeouts))
	}
	c.lastTimeouts = stats.Timeouts
}
