package contact

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/repo"
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

// Input is the storefront contact form.
type Input struct {
	Name    string `json:"name" validate:"required,min=2,max=50"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,pkphone"`
	Message string `json:"message" validate:"required,min=2"`
}

// Repository stores contact messages.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, msg *models.ContactMessage) error
}

type repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: r.Base.WithTx(tx)}
}

func (r *repository) Create(ctx context.Context, msg *models.ContactMessage) error {
	return r.DB(ctx).Create(msg).Error
}

// Service records contact messages and hands them to the mailer through the
// outbox.
type Service interface {
	Submit(ctx context.Context, input Input) (*models.ContactMessage, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outbox.Emitter
}

func NewService(repo Repository, tx txRunner, emitter outbox.Emitter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("contact repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if emitter == nil {
		return nil, fmt.Errorf("outbox emitter required")
	}
	return &service{repo: repo, tx: tx, outbox: emitter}, nil
}

func (s *service) Submit(ctx context.Context, input Input) (*models.ContactMessage, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Message = strings.TrimSpace(input.Message)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	msg := &models.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Number:  input.Phone,
		Message: input.Message,
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, msg); err != nil {
			return err
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventContactMessageReceived,
			AggregateType: enums.AggregateContactMessage,
			AggregateID:   msg.ID,
			Actor:         &outbox.ActorRef{Channel: "storefront"},
			Data: payloads.ContactMessageReceivedEvent{
				MessageID: msg.ID,
				Name:      msg.Name,
				Email:     msg.Email,
				Phone:     msg.Number,
				Message:   msg.Message,
			},
		})
	})
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to send message, please try again")
	}
	return msg, nil
}
