package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/entity"
	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/logging"
)

var ErrDuplicate = errors.New("duplicate idempotency key")

// NotReadyError carries every unmet checkout precondition, in evaluation
// order, as human-readable reasons.
type NotReadyError struct {
	Reasons []string
}

func (e *NotReadyError) Error() string {
	return "order not ready: " + strings.Join(e.Reasons, "; ")
}

// SchedulingDefaults are the service-wide same-day buffers used when a tenant
// has not configured its own.
type SchedulingDefaults struct {
	DeliveryBufferMin int
	PickupBufferMin   int
}

// CheckoutInput is everything the customer chose on the checkout page.
type CheckoutInput struct {
	SessionID      string
	BusinessID     string
	Customer       domain.Customer
	Fulfillment    domain.FulfillmentMode
	Schedule       domain.ScheduleMode
	Slot           time.Time // zero unless a concrete slot was picked
	Address        string
	IdempotencyKey string
}

// Assembler composes cart, customer, fulfillment choice and delivery quote
// into a submittable order and interprets the submission result.
type Assembler struct {
	carts    *CartService
	catalog  CatalogRepo
	fees     *FeeResolver
	orders   OrderGateway
	events   EventPublisher
	idem     IdempotencyStore
	defaults SchedulingDefaults
	now      func() time.Time
}

func NewAssembler(carts *CartService, catalog CatalogRepo, fees *FeeResolver, orders OrderGateway, events EventPublisher, idem IdempotencyStore, defaults SchedulingDefaults) *Assembler {
	return &Assembler{
		carts:    carts,
		catalog:  catalog,
		fees:     fees,
		orders:   orders,
		events:   events,
		idem:     idem,
		defaults: defaults,
		now:      time.Now,
	}
}

// effectiveQuote substitutes the tenant base fee before the first resolution:
// the storefront shows the base fee by default and Reset restores it, so a
// never-quoted session must behave the same as a freshly reset one.
func effectiveQuote(q domain.DeliveryQuote, cfg domain.TenantConfig) domain.DeliveryQuote {
	if q.Kind == domain.QuoteNone || q.Kind == "" {
		return domain.DeliveryQuote{Kind: domain.QuoteFee, FeeCents: cfg.BaseDeliveryFeeCents}
	}
	return q
}

// effectiveSchedule folds the store-closed state into the schedule choice:
// an immediate order attempted while the store is closed is forced into
// scheduled mode. Explicit transition, not a side flag.
func effectiveSchedule(chosen domain.ScheduleMode, storeOpen bool) domain.ScheduleMode {
	if !storeOpen {
		return domain.ScheduleScheduled
	}
	return chosen
}

// Readiness evaluates the submission preconditions in order and returns the
// unmet ones. An empty slice means Submit may proceed.
func (a *Assembler) Readiness(ctx context.Context, in CheckoutInput) ([]string, error) {
	cfg, err := a.catalog.Tenant(ctx, in.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("lookup tenant: %w", err)
	}
	cart, err := a.carts.Get(ctx, in.SessionID, in.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	hours, err := a.catalog.Hours(ctx, in.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("lookup hours: %w", err)
	}

	loc := tenantLocation(cfg)
	now := a.now().In(loc)
	quote := effectiveQuote(a.fees.Current(in.SessionID, in.BusinessID), cfg)

	var reasons []string
	if cfg.TemporarilyClosed {
		reasons = append(reasons, "store is temporarily closed")
	}
	if cart.Empty() {
		reasons = append(reasons, "cart is empty")
	}
	if strings.TrimSpace(in.Customer.Name) == "" {
		reasons = append(reasons, "customer name is required")
	}
	switch {
	case strings.TrimSpace(in.Customer.Phone) == "":
		reasons = append(reasons, "phone number is required")
	case !PhoneComplete(in.Customer.Phone):
		reasons = append(reasons, "phone number is incomplete")
	}

	if in.Fulfillment == domain.FulfillmentDelivery {
		if cfg.GeoDelivery {
			if strings.TrimSpace(in.Address) == "" {
				reasons = append(reasons, "delivery address is required")
			}
		} else {
			if _, ok := a.fees.PostalSelection(in.SessionID, in.BusinessID); !ok {
				reasons = append(reasons, "country, city and carrier must be selected")
			}
		}
		if quote.BlocksSubmission() {
			reasons = append(reasons, "address is outside the delivery area")
		}
		// The minimum-order check only applies on a valid quote; a quote
		// error already overrides it.
		if quote.Kind == domain.QuoteFee && cfg.MinimumOrderCents > 0 && cart.SubtotalCents() < cfg.MinimumOrderCents {
			reasons = append(reasons, fmt.Sprintf("minimum order for delivery is %d.%02d %s",
				cfg.MinimumOrderCents/100, cfg.MinimumOrderCents%100, cfg.Currency))
		}
	}

	storeOpen := !cfg.TemporarilyClosed && hours.OpenAt(now)
	if effectiveSchedule(in.Schedule, storeOpen) == domain.ScheduleScheduled && in.Slot.IsZero() {
		reasons = append(reasons, "a time slot must be selected")
	}

	return reasons, nil
}

// Submit assembles and submits the order. On acceptance the current tenant's
// cart is cleared, transient delivery state is reset and an order.created
// event goes out; on rejection nothing local is mutated so the customer can
// retry.
func (a *Assembler) Submit(ctx context.Context, in CheckoutInput) (domain.Receipt, error) {
	reasons, err := a.Readiness(ctx, in)
	if err != nil {
		return domain.Receipt{}, err
	}
	if len(reasons) > 0 {
		return domain.Receipt{}, &NotReadyError{Reasons: reasons}
	}

	// Duplicate-submit guard, keyed per session.
	if in.IdempotencyKey != "" {
		if num, ok, _ := a.idem.Recall(ctx, in.SessionID, in.IdempotencyKey); ok {
			return domain.Receipt{OrderNumber: num}, nil
		}
		ok, err := a.idem.TryLock(ctx, in.SessionID, in.IdempotencyKey)
		if err != nil {
			return domain.Receipt{}, err
		}
		if !ok {
			return domain.Receipt{}, ErrDuplicate
		}
	}

	cfg, err := a.catalog.Tenant(ctx, in.BusinessID)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("lookup tenant: %w", err)
	}
	cart, err := a.carts.Get(ctx, in.SessionID, in.BusinessID)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("load cart: %w", err)
	}

	quote := effectiveQuote(a.fees.Current(in.SessionID, in.BusinessID), cfg)
	var feeCents int64
	if in.Fulfillment == domain.FulfillmentDelivery && quote.Kind == domain.QuoteFee {
		feeCents = quote.FeeCents
	}

	order := domain.Order{
		ID:            uuid.NewString(),
		BusinessID:    in.BusinessID,
		Customer:      in.Customer,
		Items:         cart.Items,
		Fulfillment:   in.Fulfillment,
		Schedule:      in.Schedule,
		Slot:          in.Slot,
		Address:       in.Address,
		FeeCents:      feeCents,
		SubtotalCents: cart.SubtotalCents(),
		TotalCents:    cart.SubtotalCents() + feeCents,
		Currency:      cfg.Currency,
	}
	if sel, ok := a.fees.PostalSelection(in.SessionID, in.BusinessID); ok {
		order.Postal = &sel
	}

	receipt, err := a.orders.Submit(ctx, order)
	if err != nil {
		// The rejection leaves cart and form state untouched; free the key so
		// the retry is not mistaken for a duplicate.
		if in.IdempotencyKey != "" {
			if rerr := a.idem.Release(ctx, in.SessionID, in.IdempotencyKey); rerr != nil {
				logging.FromCtx(ctx).Error("release idempotency key", "error", rerr, "session", in.SessionID)
			}
		}
		return domain.Receipt{}, fmt.Errorf("submit order: %w", err)
	}

	// Accepted: clear this tenant's cart only and reset transient state.
	if err := a.carts.Clear(ctx, in.SessionID, in.BusinessID); err != nil {
		logging.FromCtx(ctx).Error("clear cart after submit", "error", err, "session", in.SessionID)
	}
	a.fees.Reset(in.SessionID, in.BusinessID, cfg.BaseDeliveryFeeCents)
	if in.IdempotencyKey != "" {
		_ = a.idem.Remember(ctx, in.SessionID, in.IdempotencyKey, receipt.OrderNumber)
	}
	if a.events != nil {
		if err := a.events.PublishCreated(ctx, OrderCreatedMsg{
			OrderID:     order.ID,
			OrderNumber: receipt.OrderNumber,
			BusinessID:  order.BusinessID,
			Fulfillment: string(order.Fulfillment),
			TotalCents:  order.TotalCents,
			Currency:    order.Currency,
		}); err != nil {
			logging.FromCtx(ctx).Error("publish order.created", "error", err, "order_id", order.ID)
		}
	}
	return receipt, nil
}

func tenantLocation(cfg domain.TenantConfig) *time.Location {
	if cfg.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
