package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/customers"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/pricing"
	dbpkg "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db/models"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
	pkgerrors "github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/errors"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/logger"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/metrics"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/outbox"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/outbox/payloads"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/types"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/validation"
)

const (
	// MsgNoItems rejects submissions without order items.
	MsgNoItems = "No order items found"
	// MsgUpdateFailed prefixes admin patch failures.
	MsgUpdateFailed = "Failed to update order, please try again"

	maxNumberAttempts = 5

	numberConstraint = "ux_orders_order_number"
	numberColumn     = "orders.order_number"
)

// Submission channels, used as metric labels and event actors.
const (
	ChannelStorefront = "storefront"
	ChannelCheckout   = "checkout"
	ChannelAdmin      = "admin"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type customerResolver interface {
	Resolve(ctx context.Context, tx *gorm.DB, contact customers.Contact) (*models.Customer, error)
}

// Service covers order submission and admin edits.
type Service interface {
	Submit(ctx context.Context, channel string, payload SubmitPayload) (*SubmitResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Patch(ctx context.Context, id uuid.UUID, patch OrderPatch, actor *outbox.ActorRef) (*models.Order, error)
}

type service struct {
	repo      Repository
	tx        txRunner
	customers customerResolver
	numbers   NumberAllocator
	outbox    outbox.Emitter
	metrics   *metrics.OrderMetrics
	logg      *logger.Logger
	now       func() time.Time
}

// NewService builds the order service. Metrics and logger may be nil.
func NewService(repo Repository, tx txRunner, resolver customerResolver, numbers NumberAllocator, emitter outbox.Emitter, m *metrics.OrderMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("customer resolver required")
	}
	if numbers == nil {
		return nil, fmt.Errorf("number allocator required")
	}
	if emitter == nil {
		return nil, fmt.Errorf("outbox emitter required")
	}
	return &service{
		repo:      repo,
		tx:        tx,
		customers: resolver,
		numbers:   numbers,
		outbox:    emitter,
		metrics:   m,
		logg:      logg,
		now:       time.Now,
	}, nil
}

// Submit validates the payload and stores the order under a fresh number.
// Customer matching, the order insert and the order_created event share one
// transaction; a number collision retries the whole transaction.
func (s *service) Submit(ctx context.Context, channel string, payload SubmitPayload) (*SubmitResult, error) {
	start := time.Now()
	result, err := s.submit(ctx, channel, payload)
	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case pkgerrors.IsCode(err, pkgerrors.CodeValidation):
		outcome = metrics.OutcomeRejected
	default:
		outcome = metrics.OutcomeFailure
	}
	s.metrics.ObserveSubmit(channel, outcome, time.Since(start))
	return result, err
}

func (s *service) submit(ctx context.Context, channel string, payload SubmitPayload) (*SubmitResult, error) {
	if len(payload.Items) == 0 {
		return nil, pkgerrors.Validation(MsgNoItems)
	}
	if err := validation.Struct(payload); err != nil {
		return nil, err
	}
	if err := checkSubmitAmounts(payload); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		result, err := s.submitOnce(ctx, channel, payload)
		if err == nil {
			return result, nil
		}
		if !dbpkg.IsUniqueViolation(err, numberConstraint, numberColumn) || attempt >= maxNumberAttempts {
			if pkgerrors.As(err) != nil {
				return nil, err
			}
			return nil, pkgerrors.Internal(err, "Failed to submit order")
		}
		s.metrics.IncNumberRetry()
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "attempt", attempt), "order number collided, resyncing sequence")
		}
		if err := s.numbers.Resync(ctx); err != nil && s.logg != nil {
			s.logg.Error(ctx, "order number resync failed", err)
		}
	}
}

func (s *service) submitOnce(ctx context.Context, channel string, payload SubmitPayload) (*SubmitResult, error) {
	var result *SubmitResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		customer, err := s.customers.Resolve(ctx, tx, customers.Contact{
			Name:       payload.Name,
			Email:      payload.Email,
			Number:     payload.Number,
			Address:    payload.Address,
			City:       payload.City,
			Province:   payload.Province,
			PostalCode: payload.PostalCode,
		})
		if err != nil {
			return err
		}

		number, err := s.numbers.Next(ctx, tx)
		if err != nil {
			return fmt.Errorf("allocate order number: %w", err)
		}

		order := buildOrder(payload, customer.ID, number, s.now())
		if err := s.repo.WithTx(tx).CreateOrder(ctx, order); err != nil {
			return err
		}
		order.Customer = *customer

		billing := order.ResolveBilling()
		if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         &outbox.ActorRef{Channel: channel},
			Data: payloads.OrderCreatedEvent{
				OrderID:        order.ID,
				OrderNumber:    order.OrderNumber,
				CustomerID:     customer.ID,
				CustomerName:   customer.Name,
				CustomerEmail:  customer.Email,
				PaymentMethod:  order.PaymentMethod,
				ShippingMethod: string(order.ShippingMethod),
				TotalAmount:    order.TotalAmount,
				ItemCount:      len(order.Items),
				BillingName:    billing.Name,
				BillingCity:    billing.City,
			},
		}); err != nil {
			return err
		}

		parsed, _ := parseNumber(order.OrderNumber)
		result = &SubmitResult{ID: order.ID, OrderNumber: order.OrderNumber, Number: parsed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"order_id": result.OrderNumber,
			"channel":  channel,
		})
		s.logg.Info(logCtx, "order.submitted")
	}
	return result, nil
}

func buildOrder(payload SubmitPayload, customerID uuid.UUID, number string, now time.Time) *models.Order {
	order := &models.Order{
		OrderNumber:    number,
		CustomerID:     customerID,
		ShippingMethod: payload.ShippingMethod,
		ShippingCost:   payload.ShippingCost,
		PaymentMethod:  payload.PaymentMethod,
		PaymentStatus:  enums.PaymentStatusUnpaid,
		OrderStatus:    enums.OrderStatusPending,
		Subscribe:      payload.Subscribe,
		SubtotalAmount: payload.SubtotalAmount,
		DiscountCode:   strings.TrimSpace(payload.DiscountCode),
		DiscountAmount: payload.DiscountAmount,
		TotalAmount:    payload.TotalAmount,
		Items:          buildItems(payload.Items, now, false),
	}
	if payload.BillingInfo != nil && !payload.BillingInfo.IsZero() {
		billing := *payload.BillingInfo
		order.BillingInfo = &billing
	}
	return order
}

// ItemKey is the stable per-item key: productId_variantKey_<unix millis>_<index>.
func ItemKey(productID, variantKey string, at time.Time, idx int) string {
	return fmt.Sprintf("%s_%s_%d_%d", productID, variantKey, at.UnixMilli(), idx)
}

// buildItems snapshots cart lines. Submitted lines always receive a fresh
// key; an admin edit keeps existing keys unless they are blank or repeated.
func buildItems(inputs []ItemInput, now time.Time, keepKeys bool) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for idx, in := range inputs {
		key := ""
		if keepKeys {
			key = strings.TrimSpace(in.Key)
		}
		if _, dup := seen[key]; key == "" || dup {
			key = ItemKey(in.ProductID, in.VariantKey, now, idx)
		}
		seen[key] = struct{}{}
		items = append(items, models.OrderItem{
			ItemKey:       key,
			Position:      idx,
			ProductID:     in.ProductID,
			Slug:          in.Slug,
			Title:         in.Title,
			Variant:       in.Variant,
			VariantKey:    in.VariantKey,
			Price:         in.Price,
			DiscountPrice: in.DiscountPrice,
			Quantity:      in.Quantity,
			ImageURL:      in.ImageURL,
		})
	}
	return items
}

func checkSubmitAmounts(payload SubmitPayload) error {
	details := map[string]string{}
	for field, amount := range map[string]interface{ IsNegative() bool }{
		"shippingCost":   payload.ShippingCost,
		"subtotalAmount": payload.SubtotalAmount,
		"discountAmount": payload.DiscountAmount,
		"totalAmount":    payload.TotalAmount,
	} {
		if amount.IsNegative() {
			details[field] = "must be greater than or equal to 0"
		}
	}
	for i, item := range payload.Items {
		if item.Price.IsNegative() {
			details[itemField(i, "price")] = "must be greater than or equal to 0"
		}
		if item.DiscountPrice.IsNegative() {
			details[itemField(i, "discountPrice")] = "must be greater than or equal to 0"
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	if !pricing.Consistent(payload.SubtotalAmount, payload.ShippingCost, payload.DiscountAmount, payload.TotalAmount) {
		return pkgerrors.New(pkgerrors.CodeValidation, "Order totals do not add up").
			WithDetails(map[string]string{"totalAmount": "must equal subtotalAmount + shippingCost - discountAmount"})
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if dbpkg.IsNotFound(err) {
			return nil, pkgerrors.NotFound("Order not found")
		}
		return nil, pkgerrors.Internal(err, "Failed to load order")
	}
	return order, nil
}

// Patch applies an admin edit to the order and queues order_updated.
func (s *service) Patch(ctx context.Context, id uuid.UUID, patch OrderPatch, actor *outbox.ActorRef) (*models.Order, error) {
	if patch.IsEmpty() {
		return nil, pkgerrors.Validation("no fields to update")
	}
	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		columns := patch.ApplyTo(order)
		if err := repo.SaveFields(ctx, order, columns); err != nil {
			return err
		}
		if patch.Items != nil {
			items := buildItems(*patch.Items, s.now(), true)
			if err := repo.ReplaceItems(ctx, order.ID, items); err != nil {
				return err
			}
			order.Items = items
		}
		if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderUpdated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         actor,
			Data: payloads.OrderUpdatedEvent{
				OrderID:       order.ID,
				OrderNumber:   order.OrderNumber,
				Fields:        patch.Fields(),
				OrderStatus:   order.OrderStatus,
				PaymentStatus: order.PaymentStatus,
			},
		}); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		s.metrics.IncAdminPatch("order", metrics.OutcomeFailure)
		if dbpkg.IsNotFound(err) {
			return nil, pkgerrors.NotFound("Order not found")
		}
		return nil, pkgerrors.Internal(err, MsgUpdateFailed)
	}
	s.metrics.IncAdminPatch("order", metrics.OutcomeSuccess)
	return updated, nil
}

// billingFromPatch keeps an all-blank billing block from masking the shipping
// contact.
func billingFromPatch(info types.BillingInfo) *types.BillingInfo {
	if info.IsZero() {
		return nil
	}
	return &info
}
