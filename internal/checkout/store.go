package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/redis"
)

const (
	recordSavedContact = "saved_contact"
	recordBuyNow       = "buy_now"
	recordLastOrder    = "last_order"

	DefaultSessionTTL = 2 * time.Hour
)

// KV is the slice of the redis client backing the client store.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	ClientKey(clientID, record string) string
}

// SavedContact is the shipping contact a shopper asked us to remember.
type SavedContact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	Province  string `json:"province"`
	City      string `json:"city"`
	Number    string `json:"number"`
}

// LastOrder bridges checkout and the confirmation page.
type LastOrder struct {
	OrderID int64                `json:"orderId"`
	Payload orders.SubmitPayload `json:"payload"`
}

// ClientStore keeps per-shopper state keyed by a client ID. Saved contacts
// persist; buy-now items and last orders expire with the session.
type ClientStore struct {
	kv         KV
	sessionTTL time.Duration
}

// NewClientStore builds the store. A non-positive ttl takes DefaultSessionTTL.
func NewClientStore(kv KV, sessionTTL time.Duration) (*ClientStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("client store backend required")
	}
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &ClientStore{kv: kv, sessionTTL: sessionTTL}, nil
}

func (s *ClientStore) LoadSavedContact(ctx context.Context, clientID string) (*SavedContact, error) {
	var contact SavedContact
	ok, err := s.load(ctx, clientID, recordSavedContact, &contact)
	if err != nil || !ok {
		return nil, err
	}
	return &contact, nil
}

func (s *ClientStore) SaveSavedContact(ctx context.Context, clientID string, contact SavedContact) error {
	return s.save(ctx, clientID, recordSavedContact, contact, 0)
}

func (s *ClientStore) ClearSavedContact(ctx context.Context, clientID string) error {
	return s.clear(ctx, clientID, recordSavedContact)
}

func (s *ClientStore) LoadBuyNow(ctx context.Context, clientID string) (*orders.ItemInput, error) {
	var item orders.ItemInput
	ok, err := s.load(ctx, clientID, recordBuyNow, &item)
	if err != nil || !ok {
		return nil, err
	}
	return &item, nil
}

func (s *ClientStore) SaveBuyNow(ctx context.Context, clientID string, item orders.ItemInput) error {
	return s.save(ctx, clientID, recordBuyNow, item, s.sessionTTL)
}

func (s *ClientStore) ClearBuyNow(ctx context.Context, clientID string) error {
	return s.clear(ctx, clientID, recordBuyNow)
}

func (s *ClientStore) LoadLastOrder(ctx context.Context, clientID string) (*LastOrder, error) {
	var last LastOrder
	ok, err := s.load(ctx, clientID, recordLastOrder, &last)
	if err != nil || !ok {
		return nil, err
	}
	return &last, nil
}

func (s *ClientStore) SaveLastOrder(ctx context.Context, clientID string, last LastOrder) error {
	return s.save(ctx, clientID, recordLastOrder, last, s.sessionTTL)
}

func (s *ClientStore) ClearLastOrder(ctx context.Context, clientID string) error {
	return s.clear(ctx, clientID, recordLastOrder)
}

// load reports false without error when the record is absent.
func (s *ClientStore) load(ctx context.Context, clientID, record string, dest any) (bool, error) {
	raw, err := s.kv.Get(ctx, s.kv.ClientKey(clientID, record))
	if errors.Is(err, redis.ErrNil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", record, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", record, err)
	}
	return true, nil
}

func (s *ClientStore) save(ctx context.Context, clientID, record string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", record, err)
	}
	if err := s.kv.Set(ctx, s.kv.ClientKey(clientID, record), string(data), ttl); err != nil {
		return fmt.Errorf("save %s: %w", record, err)
	}
	return nil
}

func (s *ClientStore) clear(ctx context.Context, clientID, record string) error {
	if err := s.kv.Del(ctx, s.kv.ClientKey(clientID, record)); err != nil {
		return fmt.Errorf("clear %s: %w", record, err)
	}
	return nil
}
