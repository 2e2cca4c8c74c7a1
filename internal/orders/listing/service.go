package listing

import (
	"context"
	"fmt"
	"time"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/logger"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/pagination"
)

const (
	DefaultPageSize = 50
	DefaultCooldown = 5 * time.Minute

	cooldownScope = "orders_load_more"
)

// CooldownStore is the slice of the redis client used for the load-more
// cooldown.
type CooldownStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	CooldownKey(scope, actor string) string
}

// ViewQuery selects one load-more page.
type ViewQuery struct {
	Offset        int
	OrderStatus   string
	PaymentStatus string
	Search        string
}

// ViewPage is one page of grouped orders.
type ViewPage struct {
	Groups        []Group         `json:"groups"`
	Counts        Counts          `json:"counts"`
	Page          pagination.Page `json:"page"`
	CanLoadMore   bool            `json:"canLoadMore"`
	CooldownUntil *time.Time      `json:"cooldownUntil,omitempty"`
}

// Service lists orders for the dashboard.
type Service interface {
	Range(ctx context.Context, start, end int) ([]orders.OrderView, error)
	View(ctx context.Context, adminID string, q ViewQuery) (*ViewPage, error)
}

// Options tunes paging and grouping. Zero values take the defaults.
type Options struct {
	PageSize int
	Cooldown time.Duration
	Location *time.Location
}

type service struct {
	repo     orders.Repository
	cooldown CooldownStore
	opts     Options
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the listing service. A nil cooldown store disables the
// load-more cooldown.
func NewService(repo orders.Repository, cooldown CooldownStore, opts Options, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = DefaultCooldown
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &service{repo: repo, cooldown: cooldown, opts: opts, logg: logg, now: time.Now}, nil
}

// Range returns orders [start, end) newest first.
func (s *service) Range(ctx context.Context, start, end int) ([]orders.OrderView, error) {
	params, err := pagination.Range(start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid range")
	}
	rows, err := s.repo.ListRange(ctx, params)
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to load orders")
	}
	return orders.NewOrderViews(rows), nil
}

// View returns the filtered page at q.Offset grouped by day. Offset zero is the
// initial load; later offsets are load-more calls subject to the cooldown that
// an empty load-more page starts.
func (s *service) View(ctx context.Context, adminID string, q ViewQuery) (*ViewPage, error) {
	params := pagination.Params{Offset: q.Offset, Limit: s.opts.PageSize}.Normalize()
	loadMore := params.Offset > 0

	if loadMore {
		if until, active := s.cooldownUntil(ctx, adminID); active {
			page, _ := pagination.NewPage(params, 0)
			return &ViewPage{Groups: []Group{}, Page: page, CooldownUntil: &until}, nil
		}
	}

	fetch := params
	fetch.Limit = pagination.LimitWithBuffer(params.Limit)
	rows, err := s.repo.ListFiltered(ctx, orders.ListFilter{
		OrderStatus:   q.OrderStatus,
		PaymentStatus: q.PaymentStatus,
		Search:        q.Search,
	}, fetch)
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to load orders")
	}
	page, keep := pagination.NewPage(params, len(rows))
	views := orders.NewOrderViews(rows[:keep])

	out := &ViewPage{
		Groups:      GroupByDay(views, s.now(), s.opts.Location),
		Counts:      CountOrders(views),
		Page:        page,
		CanLoadMore: true,
	}
	if loadMore && len(views) == 0 {
		out.CanLoadMore = false
		if until, ok := s.startCooldown(ctx, adminID); ok {
			out.CooldownUntil = &until
		}
	}
	return out, nil
}

func (s *service) cooldownUntil(ctx context.Context, adminID string) (time.Time, bool) {
	if s.cooldown == nil {
		return time.Time{}, false
	}
	ttl, err := s.cooldown.TTL(ctx, s.cooldown.CooldownKey(cooldownScope, adminID))
	if err != nil {
		s.warn(ctx, "load-more cooldown lookup failed", err)
		return time.Time{}, false
	}
	if ttl <= 0 {
		return time.Time{}, false
	}
	return s.now().Add(ttl).UTC(), true
}

func (s *service) startCooldown(ctx context.Context, adminID string) (time.Time, bool) {
	if s.cooldown == nil {
		return time.Time{}, false
	}
	if _, err := s.cooldown.SetNX(ctx, s.cooldown.CooldownKey(cooldownScope, adminID), "1", s.opts.Cooldown); err != nil {
		s.warn(ctx, "load-more cooldown start failed", err)
		return time.Time{}, false
	}
	return s.now().Add(s.opts.Cooldown).UTC(), true
}

func (s *service) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), msg)
}
