// internal/infrastructure/database/redis/connection.go
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/config"
)

const pingTimeout = 5 * time.Second

// Client owns the shared Redis pool used by the cart store and the rate limiter.
type Client struct {
	rdb  *redis.Client
	addr string
}

func options(cfg *config.Config) *redis.Options {
	return &redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  pingTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	}
}

// NewConnection dials Redis and fails unless the server answers a PING.
func NewConnection(cfg *config.Config, log logrus.FieldLogger) (*Client, error) {
	c := &Client{rdb: redis.NewClient(options(cfg)), addr: cfg.GetRedisAddr()}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := c.Health(ctx); err != nil {
		_ = c.rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", c.addr, err)
	}

	log.WithFields(logrus.Fields{
		"addr": c.addr,
		"db":   cfg.Redis.DB,
	}).Info("Redis connection established")

	return c, nil
}

// GetClient returns the underlying pool.
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// Health satisfies the server's health check contract.
func (c *Client) Health(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
