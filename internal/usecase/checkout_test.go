package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/entity"
)

type checkoutFixture struct {
	assembler *Assembler
	carts     *CartService
	store     *fakeStore
	catalog   *fakeCatalog
	resolver  *FeeResolver
	orders    *fakeOrderGW
	events    *fakeEvents
	feeCents  int64
	feeErr    error
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	f := &checkoutFixture{
		store:   newFakeStore(),
		catalog: newFakeCatalog(),
		orders:  &fakeOrderGW{receipt: domain.Receipt{OrderNumber: "WO-1001"}},
		events:  &fakeEvents{},
	}
	f.catalog.put(domain.SellableUnit{ProductID: "p1", PriceCents: 1000, Stock: 50, TrackInventory: true})
	f.catalog.hours = nineToFive
	f.catalog.tenant.BaseDeliveryFeeCents = 150

	f.carts = NewCartService(f.store, f.catalog)
	f.resolver = NewFeeResolver(feeFunc(func(context.Context, string, float64, float64) (int64, error) {
		return f.feeCents, f.feeErr
	}), nil, time.Second)
	f.assembler = NewAssembler(f.carts, f.catalog, f.resolver, f.orders, f.events, newFakeIdem(), SchedulingDefaults{DeliveryBufferMin: 45, PickupBufferMin: 20})
	f.assembler.now = func() time.Time { return monday(12, 0) } // store open
	return f
}

func (f *checkoutFixture) add(t *testing.T, qty int) {
	t.Helper()
	_, warn, err := f.carts.AddItem(context.Background(), AddItemInput{
		SessionID: sessionA, BusinessID: tenantA, ProductID: "p1", Quantity: qty,
	})
	require.NoError(t, err)
	require.Nil(t, warn)
}

func (f *checkoutFixture) quoteGeo(t *testing.T) domain.DeliveryQuote {
	t.Helper()
	return f.resolver.ResolveGeo(context.Background(), sessionA, tenantA, 41.3, 19.8)
}

func baseInput() CheckoutInput {
	return CheckoutInput{
		SessionID:   sessionA,
		BusinessID:  tenantA,
		Customer:    domain.Customer{Name: "Arta", Phone: "+355 69 123 4567"},
		Fulfillment: domain.FulfillmentPickup,
		Schedule:    domain.ScheduleImmediate,
	}
}

func TestReadinessHappyPickup(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, 1)

	reasons, err := f.assembler.Readiness(context.Background(), baseInput())
	require.NoError(t, err)
	assert.Empty(t, reasons)
}

func TestReadinessCollectsReasonsInOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	f.catalog.tenant.TemporarilyClosed = true

	in := baseInput()
	in.Customer = domain.Customer{}

	reasons, err := f.assembler.Readiness(context.Background(), in)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(reasons), 4)
	assert.Equal(t, "store is temporarily closed", reasons[0])
	assert.Equal(t, "cart is empty", reasons[1])
	assert.Equal(t, "customer name is required", reasons[2])
	assert.Equal(t, "phone number is required", reasons[3])
}

func TestReadinessIncompletePhone(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, 1)

	in := baseInput()
	in.Customer.Phone = "+355 69"
	reasons, err := f.assembler.Readiness(context.Background(), in)
	require.NoError(t, err)
	assert.Contains(t, reasons, "phone number is incomplete")
}

func TestReadinessDeliveryNeedsAddress(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, 1)

	in := baseInput()
	in.Fulfillment = domain.FulfillmentDelivery
	reasons, err := f.assembler.Readiness(context.Background(), in)
	require.NoError(t, err)
	assert.Contains(t, reasons, "delivery address is required")
}

func TestReadinessOutsideAreaBlocks(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, 1)
	f.feeErr = &GatewayError{Code: CodeOutsideDeliveryArea, Message: "10 km max"}
	quote := f.quoteGeo(t)
	require.Equal(t, int64(0), quote.FeeCents, "fee clamps to 0 on error")

	in := baseInput()
	in.Fulfillment = domain.FulfillmentDelivery
	in.Address = "Rruga e Durresit 5"
	reasons, err := f.assembler.Readiness(context.Background(), in)
	require.NoError(t, err)
	assert.Contains(t, reasons, "address is outside the delivery area")
}

func TestReadinessCalculationFailedDoesNotBlock(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, 1)
	f.feeErr = errors.New("timeout")
	f.quoteGeo(t)

	in := baseInput()
	in.Fulfillment = domain.FulfillmentDelivery
	in.Address = "Rruga e Durresit 5"
	reasons, err := f.assembler.Readiness(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, reasons)
}

func TestReadinessMinimumOrderForDelivery(t *testing.T) {
	f := newCheckoutFixture(t)
	f.catalog.tenant.MinimumOrderCents = 1500
	f.add(t, 1) // subtotal 10.00
	f.feeCents = 300
	f.quoteGeo(t)

	in := baseInput()
	in.Fulfillment = domain.FulfillmentDelivery
	in.Address = "Rruga e Durresit 5"
	reasons, err := f.assembler.Readiness(context.Background(), in)
	require.NoError(t, err)
	assert.Contains(t, reasons, "minimum order for delivery is 15.00 EUR")

	f.add(t, 1) // subtotal 20.00
	reasons, err = f.assembler.Readiness(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, reasons)
}

func TestReadinessClosedStoreForcesScheduled(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, 1)
	f.assembler.now = func() time.Time { return monday(20, 0) } // past closing

	in := baseInput() // immediate, no slot
	reasons, err := f.assembler.Readiness(context.Background(), in)
	require.NoError(t, err)
	assert.Contains(t, reasons, "a time slot must be selected")

	in.Slot = monday(0, 0).AddDate(0, 0, 7).Add(10 * time.Hour)
	reasons, err = f.assembler.Readiness(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, reasons)
}

func TestReadinessScheduledNeedsConcreteSlot(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, 1)

	in := baseInput()
	in.Schedule = domain.ScheduleScheduled
	reasons, err := f.assembler.Readiness(context.Background(), in)
	require.NoError(t, err)
	assert.Contains(t, reasons, "a time slot must be selected")
}

func TestSubmitDeliveryTotals(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, 2) // 2 x 10.00
	f.feeCents = 300
	f.quoteGeo(t)

	in := baseInput()
	in.Fulfillment = domain.FulfillmentDelivery
	in.Address = "Rruga e Durresit 5"

	_, err := f.assembler.Submit(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, f.orders.submitted, 1)
	order := f.orders.submitted[0]
	assert.Equal(t, int64(2000), order.SubtotalCents)
	assert.Equal(t, int64(300), order.FeeCents)
	assert.Equal(t, int64(2300), order.TotalCents)
	assert.Equal(t, "EUR", order.Currency)
}

func TestSubmitPickupNeverAppliesFee(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, 1)
	f.feeCents = 300
	f.quoteGeo(t) // a fee quote exists, but pickup must ignore it

	_, err := f.assembler.Submit(context.Background(), baseInput())
	require.NoError(t, err)
	require.Len(t, f.orders.submitted, 1)
	assert.Equal(t, int64(0), f.orders.submitted[0].FeeCents)
	assert.Equal(t, int64(1000), f.orders.submitted[0].TotalCents)
}

func TestSubmitSuccessClearsOnlyOwnTenant(t *testing.T) {
	f := newCheckoutFixture(t)
	f.catalog.put(domain.SellableUnit{ProductID: "p9", PriceCents: 400, TrackInventory: false})
	f.add(t, 1)
	_, _, err := f.carts.AddItem(context.Background(), AddItemInput{
		SessionID: sessionA, BusinessID: tenantB, ProductID: "p9",
	})
	require.NoError(t, err)

	receipt, err := f.assembler.Submit(context.Background(), baseInput())
	require.NoError(t, err)
	assert.Equal(t, "WO-1001", receipt.OrderNumber)

	cartA, _ := f.carts.Get(context.Background(), sessionA, tenantA)
	assert.True(t, cartA.Empty(), "submitted tenant's cart is cleared")
	cartB, _ := f.carts.Get(context.Background(), sessionA, tenantB)
	assert.Len(t, cartB.Items, 1, "other tenant's cart survives")

	// transient delivery state reset to the tenant base fee
	q := f.resolver.Current(sessionA, tenantA)
	assert.Equal(t, domain.QuoteFee, q.Kind)
	assert.Equal(t, int64(150), q.FeeCents)

	require.Len(t, f.events.published, 1)
	assert.Equal(t, "WO-1001", f.events.published[0].OrderNumber)
}

func TestSubmitFailurePreservesState(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, 2)
	f.orders.err = errors.New("order rejected: store unreachable")

	_, err := f.assembler.Submit(context.Background(), baseInput())
	require.Error(t, err)

	cart, _ := f.carts.Get(context.Background(), sessionA, tenantA)
	assert.Len(t, cart.Items, 1, "cart preserved for retry")
	assert.Empty(t, f.events.published)
}

func TestSubmitNotReady(t *testing.T) {
	f := newCheckoutFixture(t) // empty cart

	_, err := f.assembler.Submit(context.Background(), baseInput())
	var notReady *NotReadyError
	require.ErrorAs(t, err, &notReady)
	assert.Contains(t, notReady.Reasons, "cart is empty")
	assert.Empty(t, f.orders.submitted)
}

func TestSubmitDeliveryWithoutQuoteUsesBaseFee(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, 1)

	in := baseInput()
	in.Fulfillment = domain.FulfillmentDelivery
	in.Address = "Rruga e Durresit 5"

	// no quote was ever resolved for this session
	_, err := f.assembler.Submit(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, f.orders.submitted, 1)
	assert.Equal(t, int64(150), f.orders.submitted[0].FeeCents)
	assert.Equal(t, int64(1150), f.orders.submitted[0].TotalCents)
}

func TestReadinessMinimumOrderAppliesBeforeFirstQuote(t *testing.T) {
	f := newCheckoutFixture(t)
	f.catalog.tenant.MinimumOrderCents = 1500
	f.add(t, 1) // subtotal 10.00, never quoted: base fee stands in

	in := baseInput()
	in.Fulfillment = domain.FulfillmentDelivery
	in.Address = "Rruga e Durresit 5"
	reasons, err := f.assembler.Readiness(context.Background(), in)
	require.NoError(t, err)
	assert.Contains(t, reasons, "minimum order for delivery is 15.00 EUR")
}

func TestSubmitRejectedThenRetrySameKey(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, 1)

	in := baseInput()
	in.IdempotencyKey = "k-1"

	f.orders.err = errors.New("order rejected: store unreachable")
	_, err := f.assembler.Submit(context.Background(), in)
	require.Error(t, err)

	// a rejection must not poison the key: the retry goes through
	f.orders.err = nil
	receipt, err := f.assembler.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "WO-1001", receipt.OrderNumber)
	assert.Len(t, f.orders.submitted, 1)
}

func TestSubmitIdempotencyKeyDeduplicates(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, 1)

	in := baseInput()
	in.IdempotencyKey = "k-1"

	first, err := f.assembler.Submit(context.Background(), in)
	require.NoError(t, err)

	// client retries with the same key after a refill of the cart
	f.add(t, 1)
	second, err := f.assembler.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first.OrderNumber, second.OrderNumber)
	assert.Len(t, f.orders.submitted, 1, "collaborator called once")
}
