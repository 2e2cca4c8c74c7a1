package reviews

import (
	"context"
	"fmt"
	"strings"
	"time"

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

const (
	MsgNotFound = "Review not found"

	dateLayout = "2006-01-02"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SubmitInput is a shopper's review.
type SubmitInput struct {
	ProductID     string   `json:"productId" validate:"required"`
	ReviewerName  string   `json:"reviewerName" validate:"required,min=2,max=50"`
	ReviewerEmail string   `json:"reviewerEmail" validate:"required,email"`
	Rating        int      `json:"rating" validate:"required,min=1,max=5"`
	Comment       string   `json:"comment" validate:"required"`
	ImageURLs     []string `json:"imageUrls" validate:"max=5,dive,url"`
}

// View is the public shape of a review. Reviewer emails are never listed.
type View struct {
	ID           uuid.UUID `json:"id"`
	ProductID    string    `json:"productId"`
	ReviewerName string    `json:"reviewerName"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Date         string    `json:"date"`
	ImageURLs    []string  `json:"imageUrls"`
	Approved     bool      `json:"approved"`
}

func NewView(r models.Review) View {
	images := r.ImageURLs
	if images == nil {
		images = []string{}
	}
	return View{
		ID:           r.ID,
		ProductID:    r.ProductID,
		ReviewerName: r.ReviewerName,
		Rating:       r.Rating,
		Comment:      r.Comment,
		Date:         r.ReviewDate,
		ImageURLs:    images,
		Approved:     r.Approved,
	}
}

func NewViews(rows []models.Review) []View {
	out := make([]View, 0, len(rows))
	for _, r := range rows {
		out = append(out, NewView(r))
	}
	return out
}

// Service accepts shopper reviews and moderates them.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*models.Review, error)
	ListApproved(ctx context.Context, productID string) ([]models.Review, error)
	List(ctx context.Context, filter Filter) ([]models.Review, error)
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*models.Review, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	outbox outbox.Emitter
	loc    *time.Location
	now    func() time.Time
}

// NewService builds the reviews service. Review dates are stamped in loc,
// UTC when nil.
func NewService(repo Repository, tx txRunner, emitter outbox.Emitter, loc *time.Location) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reviews repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if emitter == nil {
		return nil, fmt.Errorf("outbox emitter required")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{repo: repo, tx: tx, outbox: emitter, loc: loc, now: time.Now}, nil
}

// Submit stores the review unapproved and queues review_submitted for the
// moderators.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*models.Review, error) {
	input.ProductID = strings.TrimSpace(input.ProductID)
	input.ReviewerName = strings.TrimSpace(input.ReviewerName)
	input.ReviewerEmail = strings.TrimSpace(input.ReviewerEmail)
	input.Comment = strings.TrimSpace(input.Comment)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	review := &models.Review{
		ProductID:     input.ProductID,
		ReviewerName:  input.ReviewerName,
		ReviewerEmail: input.ReviewerEmail,
		Rating:        input.Rating,
		Comment:       input.Comment,
		Approved:      false,
		ReviewDate:    s.now().In(s.loc).Format(dateLayout),
		ImageURLs:     input.ImageURLs,
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, review); err != nil {
			return err
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventReviewSubmitted,
			AggregateType: enums.AggregateReview,
			AggregateID:   review.ID,
			Actor:         &outbox.ActorRef{Channel: "storefront"},
			Data: payloads.ReviewSubmittedEvent{
				ReviewID:     review.ID,
				ProductID:    review.ProductID,
				Rating:       review.Rating,
				ReviewerName: review.ReviewerName,
			},
		})
	})
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to submit review")
	}
	return review, nil
}

func (s *service) ListApproved(ctx context.Context, productID string) ([]models.Review, error) {
	approved := true
	return s.List(ctx, Filter{ProductID: strings.TrimSpace(productID), Approved: &approved})
}

func (s *service) List(ctx context.Context, filter Filter) ([]models.Review, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Internal(err, "Failed to load reviews")
	}
	return rows, nil
}

func (s *service) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*models.Review, error) {
	if err := s.repo.SetApproved(ctx, id, approved); err != nil {
		if dbpkg.IsNotFound(err) {
			return nil, pkgerrors.NotFound(MsgNotFound)
		}
		return nil, pkgerrors.Internal(err, "Failed to update review")
	}
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if dbpkg.IsNotFound(err) {
			return nil, pkgerrors.NotFound(MsgNotFound)
		}
		return nil, pkgerrors.Internal(err, "Failed to load review")
	}
	return review, nil
}
