package usecase

import (
	"context"
	"sync"

	domain "github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/entity"
)

// fakeStore mimics the shared multi-tenant cart store: one flat list per
// session, entries tagged with businessId, filtered on access.
type fakeStore struct {
	mu       sync.Mutex
	sessions map[string][]domain.LineItem
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[string][]domain.LineItem)}
}

func (s *fakeStore) Load(_ context.Context, sessionID, businessID string) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []domain.LineItem
	for _, li := range s.sessions[sessionID] {
		if li.BusinessID == businessID {
			items = append(items, li)
		}
	}
	return domain.Cart{BusinessID: businessID, Items: items}, nil
}

func (s *fakeStore) Save(_ context.Context, sessionID string, cart domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var merged []domain.LineItem
	for _, li := range s.sessions[sessionID] {
		if li.BusinessID == "" || li.BusinessID == cart.BusinessID {
			continue
		}
		merged = append(merged, li)
	}
	s.sessions[sessionID] = append(merged, cart.Items...)
	return nil
}

func (s *fakeStore) Clear(ctx context.Context, sessionID, businessID string) error {
	return s.Save(ctx, sessionID, domain.Cart{BusinessID: businessID})
}

// raw returns the full shared list, all tenants included.
func (s *fakeStore) raw(sessionID string) []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.LineItem(nil), s.sessions[sessionID]...)
}

type fakeCatalog struct {
	units  map[string]domain.SellableUnit // key productID|variantID
	mods   map[string]domain.Modifier
	hours  domain.BusinessHours
	tenant domain.TenantConfig
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		units: make(map[string]domain.SellableUnit),
		mods:  make(map[string]domain.Modifier),
		tenant: domain.TenantConfig{
			Currency:    "EUR",
			GeoDelivery: true,
		},
	}
}

func (c *fakeCatalog) put(u domain.SellableUnit) {
	c.units[u.ProductID+"|"+u.VariantID] = u
}

func (c *fakeCatalog) Unit(_ context.Context, _, productID, variantID string) (domain.SellableUnit, error) {
	u, ok := c.units[productID+"|"+variantID]
	if !ok {
		return domain.SellableUnit{}, ErrLineNotFound
	}
	return u, nil
}

func (c *fakeCatalog) Modifiers(_ context.Context, _, _ string, ids []string) ([]domain.Modifier, error) {
	var out []domain.Modifier
	for _, id := range ids {
		m, ok := c.mods[id]
		if !ok {
			return nil, ErrLineNotFound
		}
		out = append(out, m)
	}
	return out, nil
}

func (c *fakeCatalog) Hours(_ context.Context, _ string) (domain.BusinessHours, error) {
	return c.hours, nil
}

func (c *fakeCatalog) Tenant(_ context.Context, businessID string) (domain.TenantConfig, error) {
	cfg := c.tenant
	cfg.BusinessID = businessID
	return cfg, nil
}

type feeFunc func(ctx context.Context, businessID string, lat, lng float64) (int64, error)

func (f feeFunc) QuoteFee(ctx context.Context, businessID string, lat, lng float64) (int64, error) {
	return f(ctx, businessID, lat, lng)
}

type postalFunc func(ctx context.Context, businessID, country, city string) ([]domain.CarrierOption, error)

func (f postalFunc) Carriers(ctx context.Context, businessID, country, city string) ([]domain.CarrierOption, error) {
	return f(ctx, businessID, country, city)
}

type fakeOrderGW struct {
	mu        sync.Mutex
	submitted []domain.Order
	receipt   domain.Receipt
	err       error
}

func (g *fakeOrderGW) Submit(_ context.Context, order domain.Order) (domain.Receipt, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return domain.Receipt{}, g.err
	}
	g.submitted = append(g.submitted, order)
	return g.receipt, nil
}

type fakeEvents struct {
	mu        sync.Mutex
	published []OrderCreatedMsg
}

func (e *fakeEvents) PublishCreated(_ context.Context, msg OrderCreatedMsg) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.published = append(e.published, msg)
	return nil
}

type fakeIdem struct {
	mu     sync.Mutex
	locks  map[string]bool
	values map[string]string
}

func newFakeIdem() *fakeIdem {
	return &fakeIdem{locks: make(map[string]bool), values: make(map[string]string)}
}

func (s *fakeIdem) TryLock(_ context.Context, scope, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := scope + ":" + key
	if s.locks[k] {
		return false, nil
	}
	s.locks[k] = true
	return true, nil
}

func (s *fakeIdem) Release(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, scope+":"+key)
	return nil
}

func (s *fakeIdem) Remember(_ context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[scope+":"+key] = value
	return nil
}

func (s *fakeIdem) Recall(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[scope+":"+key]
	return v, ok, nil
}
