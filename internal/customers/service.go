package customers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbpkg "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db/models"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/outbox"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/outbox/payloads"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/validation"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Contact is the shopper-supplied identity attached to an order.
type Contact struct {
	Name       string
	Email      string
	Number     string
	Address    string
	City       string
	Province   string
	PostalCode string
}

// Patch lists the customer fields an admin may change. Nil fields are left
// untouched.
type Patch struct {
	Name       *string `json:"name" validate:"omitnil,min=2,max=100"`
	Email      *string `json:"email" validate:"omitnil,optemail"`
	Number     *string `json:"number" validate:"omitnil,pkphone"`
	Address    *string `json:"address" validate:"omitnil,min=3"`
	City       *string `json:"city" validate:"omitnil,min=2"`
	Province   *string `json:"province" validate:"omitnil,province"`
	PostalCode *string `json:"postalCode" validate:"omitnil,max=20"`
}

// ParsePatch validates a raw admin update object.
func ParsePatch(raw map[string]any) (Patch, error) {
	var patch Patch
	if err := validation.DecodePatch(raw, &patch); err != nil {
		return Patch{}, err
	}
	return patch, nil
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return len(p.Columns()) == 0
}

// Columns maps the patch onto table columns, keeping the match key in step
// with name and number.
func (p Patch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		cols["name"] = name
		cols["name_key"] = NameKey(name)
	}
	if p.Email != nil {
		cols["email"] = strings.TrimSpace(*p.Email)
	}
	if p.Number != nil {
		cols["number"] = strings.TrimSpace(*p.Number)
		cols["phone_key"] = PhoneKey(*p.Number)
	}
	if p.Address != nil {
		cols["address"] = strings.TrimSpace(*p.Address)
	}
	if p.City != nil {
		cols["city"] = strings.TrimSpace(*p.City)
	}
	if p.Province != nil {
		cols["province"] = *p.Province
	}
	if p.PostalCode != nil {
		cols["postal_code"] = strings.TrimSpace(*p.PostalCode)
	}
	return cols
}

// Fields returns the json names of the fields the patch touches, sorted.
func (p Patch) Fields() []string {
	fields := []string{}
	for name, set := range map[string]bool{
		"name":       p.Name != nil,
		"email":      p.Email != nil,
		"number":     p.Number != nil,
		"address":    p.Address != nil,
		"city":       p.City != nil,
		"province":   p.Province != nil,
		"postalCode": p.PostalCode != nil,
	} {
		if set {
			fields = append(fields, name)
		}
	}
	sort.Strings(fields)
	return fields
}

// Service resolves shoppers to customer records and applies admin edits.
type Service interface {
	Resolve(ctx context.Context, tx *gorm.DB, contact Contact) (*models.Customer, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	Patch(ctx context.Context, id uuid.UUID, patch Patch, actor *outbox.ActorRef) error
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outbox.Emitter
}

// NewService builds a customers service with the required dependencies.
func NewService(repo Repository, tx txRunner, emitter outbox.Emitter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if emitter == nil {
		return nil, fmt.Errorf("outbox emitter required")
	}
	return &service{repo: repo, tx: tx, outbox: emitter}, nil
}

// Resolve returns the customer matching the contact's name and phone, creating
// one from the contact when none exists. It runs on the caller's transaction.
func (s *service) Resolve(ctx context.Context, tx *gorm.DB, contact Contact) (*models.Customer, error) {
	repo := s.repo.WithTx(tx)
	nameKey := NameKey(contact.Name)
	phoneKey := PhoneKey(contact.Number)

	existing, err := repo.FindByMatchKey(ctx, nameKey, phoneKey)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	customer := &models.Customer{
		Name:       strings.TrimSpace(contact.Name),
		NameKey:    nameKey,
		Email:      strings.TrimSpace(contact.Email),
		Number:     strings.TrimSpace(contact.Number),
		PhoneKey:   phoneKey,
		Address:    strings.TrimSpace(contact.Address),
		City:       strings.TrimSpace(contact.City),
		Province:   contact.Province,
		PostalCode: strings.TrimSpace(contact.PostalCode),
	}
	if err := repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if dbpkg.IsNotFound(err) {
			return nil, pkgerrors.NotFound("Customer not found")
		}
		return nil, pkgerrors.Internal(err, "Failed to load customer")
	}
	return customer, nil
}

// Patch applies the admin edit and queues customer_updated in one transaction.
func (s *service) Patch(ctx context.Context, id uuid.UUID, patch Patch, actor *outbox.ActorRef) error {
	cols := patch.Columns()
	if len(cols) == 0 {
		return pkgerrors.Validation("no fields to update")
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Update(ctx, id, cols); err != nil {
			return err
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventCustomerUpdated,
			AggregateType: enums.AggregateCustomer,
			AggregateID:   id,
			Actor:         actor,
			Data: payloads.CustomerUpdatedEvent{
				CustomerID: id,
				Fields:     patch.Fields(),
			},
		})
	})
	if err != nil {
		if dbpkg.IsNotFound(err) {
			return pkgerrors.NotFound("Customer not found")
		}
		return pkgerrors.Internal(err, "Failed to update customer")
	}
	return nil
}
