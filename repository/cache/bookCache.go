package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avnishka/BookBee/model"
)

// BookCache is a best-effort read-through cache for book detail.
// Failures are logged and reported as misses.
type BookCache interface {
	Get(ctx context.Context, id int64) (*model.BookDetail, bool)
	Set(ctx context.Context, d *model.BookDetail)
	Invalidate(ctx context.Context, id int64)
}

func Key(id int64) string { return fmt.Sprintf("book:%d", id) }

func InitRedis(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

type redisCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *slog.Logger
}

func NewRedis(rdb *redis.Client, ttl time.Duration, log *slog.Logger) BookCache {
	return &redisCache{rdb: rdb, ttl: ttl, log: log}
}

func (c *redisCache) Get(ctx context.Context, id int64) (*model.BookDetail, bool) {
	raw, err := c.rdb.Get(ctx, Key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("book cache get", "book_id", id, "err", err)
		}
		return nil, false
	}
	var d model.BookDetail
	if err := json.Unmarshal(raw, &d); err != nil {
		c.log.Warn("book cache decode", "book_id", id, "err", err)
		return nil, false
	}
	return &d, true
}

func (c *redisCache) Set(ctx context.Context, d *model.BookDetail) {
	raw, err := json.Marshal(d)
	if err != nil {
		c.log.Warn("book cache encode", "book_id", d.Book.ID, "err", err)
		return
	}
	if err := c.rdb.Set(ctx, Key(d.Book.ID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("book cache set", "book_id", d.Book.ID, "err", err)
	}
}

func (c *redisCache) Invalidate(ctx context.Context, id int64) {
	if err := c.rdb.Del(ctx, Key(id)).Err(); err != nil {
		c.log.Warn("book cache del", "book_id", id, "err", err)
	}
}

type noop struct{}

// Noop is used when no Redis address is configured.
func Noop() BookCache { return noop{} }

func (noop) Get(context.Context, int64) (*model.BookDetail, bool) { return nil, false }
func (noop) Set(context.Context, *model.BookDetail)               {}
func (noop) Invalidate(context.Context, int64)                    {}
