package orders

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/logger"
)

const (
	DefaultNumberBase   int64 = 2280001
	DefaultNumberPrefix       = "228"

	counterName = "order_number"
)

// NextNumber returns the order number that follows last. An empty last number,
// or one outside the prefix, restarts the sequence at base.
func NextNumber(last string, base int64, prefix string) int64 {
	last = strings.TrimSpace(last)
	if last == "" || !strings.HasPrefix(last, prefix) {
		return base
	}
	n, err := strconv.ParseInt(last, 10, 64)
	if err != nil {
		return base
	}
	return n + 1
}

func parseNumber(number string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(number), 10, 64)
}

// CounterStore is the slice of the redis client used for the shared sequence.
type CounterStore interface {
	Incr(ctx context.Context, key string) (int64, error)
	RaiseCounter(ctx context.Context, key string, floor int64) (int64, error)
	CounterKey(name string) string
}

// NumberAllocator hands out order numbers. Next may be called inside the
// order transaction; Resync is called after a number collided.
type NumberAllocator interface {
	Next(ctx context.Context, tx *gorm.DB) (string, error)
	Resync(ctx context.Context) error
}

type numberAllocator struct {
	repo   Repository
	store  CounterStore
	base   int64
	prefix string
	logg   *logger.Logger

	mu     sync.Mutex
	seeded bool
}

// NewNumberAllocator builds an allocator backed by the redis counter. A nil
// store allocates from the database alone and relies on the unique index.
func NewNumberAllocator(repo Repository, store CounterStore, base int64, prefix string, logg *logger.Logger) NumberAllocator {
	if base <= 0 {
		base = DefaultNumberBase
	}
	if prefix == "" {
		prefix = DefaultNumberPrefix
	}
	return &numberAllocator{repo: repo, store: store, base: base, prefix: prefix, logg: logg}
}

func (a *numberAllocator) Next(ctx context.Context, tx *gorm.DB) (string, error) {
	if a.store == nil {
		return a.fromDatabase(ctx, tx)
	}
	n, err := a.fromCounter(ctx)
	if err != nil {
		if a.logg != nil {
			a.logg.Warn(a.logg.WithField(ctx, "error", err.Error()), "order counter unavailable, using database sequence")
		}
		return a.fromDatabase(ctx, tx)
	}
	return strconv.FormatInt(n, 10), nil
}

func (a *numberAllocator) fromCounter(ctx context.Context) (int64, error) {
	key := a.store.CounterKey(counterName)
	if err := a.seedOnce(ctx, key); err != nil {
		return 0, err
	}
	n, err := a.store.Incr(ctx, key)
	if err != nil {
		return 0, err
	}
	if n >= a.base {
		return n, nil
	}
	// The counter was lost after seeding; lift it back above the stored orders.
	if err := a.raise(ctx, key); err != nil {
		return 0, err
	}
	return a.store.Incr(ctx, key)
}

func (a *numberAllocator) seedOnce(ctx context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.seeded {
		return nil
	}
	if err := a.raise(ctx, key); err != nil {
		return err
	}
	a.seeded = true
	return nil
}

// raise moves the counter to the number just below the next free one.
func (a *numberAllocator) raise(ctx context.Context, key string) error {
	last, err := a.repo.LastOrderNumber(ctx, a.prefix)
	if err != nil {
		return err
	}
	_, err = a.store.RaiseCounter(ctx, key, NextNumber(last, a.base, a.prefix)-1)
	return err
}

func (a *numberAllocator) fromDatabase(ctx context.Context, tx *gorm.DB) (string, error) {
	last, err := a.repo.WithTx(tx).LastOrderNumber(ctx, a.prefix)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(NextNumber(last, a.base, a.prefix), 10), nil
}

func (a *numberAllocator) Resync(ctx context.Context) error {
	if a.store == nil {
		return nil
	}
	return a.raise(ctx, a.store.CounterKey(counterName))
}
