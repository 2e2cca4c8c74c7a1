package cron

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultLockTTL = 2 * defaultInterval

// Lock keeps maintenance cycles single-instance across cron workers.
type Lock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

type lockStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// RedisLock stores a holder token under key. The TTL outlives a cycle so a
// crashed worker frees the lock on its own.
type RedisLock struct {
	store  lockStore
	key    string
	ttl    time.Duration
	holder string
}

func NewRedisLock(store lockStore, key string, ttl time.Duration) (*RedisLock, error) {
	switch {
	case store == nil:
		return nil, errors.New("maintenance lock needs a redis store")
	case key == "":
		return nil, errors.New("maintenance lock key is empty")
	}
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisLock{store: store, key: key, ttl: ttl}, nil
}

func (l *RedisLock) Acquire(ctx context.Context) (bool, error) {
	token := holderToken()
	won, err := l.store.SetNX(ctx, l.key, token, l.ttl)
	if err != nil {
		return false, fmt.Errorf("acquire maintenance lock %s: %w", l.key, err)
	}
	if won {
		l.holder = token
	}
	return won, nil
}

// Release deletes the key only while it still carries our token; an expired
// lock taken over by another worker is left alone.
func (l *RedisLock) Release(ctx context.Context) error {
	if l.holder == "" {
		return nil
	}
	current, err := l.store.Get(ctx, l.key)
	switch {
	case errors.Is(err, redis.Nil):
		l.holder = ""
		return nil
	case err != nil:
		return fmt.Errorf("read maintenance lock %s: %w", l.key, err)
	case current != l.holder:
		l.holder = ""
		return nil
	}
	if err := l.store.Del(ctx, l.key); err != nil {
		return fmt.Errorf("release maintenance lock %s: %w", l.key, err)
	}
	l.holder = ""
	return nil
}

// holderToken names the worker in the lock value: host/pid/random.
func holderToken() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown"
	}
	return fmt.Sprintf("%s/%d/%s", host, os.Getpid(), uuid.NewString())
}
