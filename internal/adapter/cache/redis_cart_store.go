package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/entity"
	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/usecase"
)

// RedisCartStore persists carts in a single global key per customer session.
// The value is a flat list of line items from every tenant the session has
// shopped at, each tagged with its businessId; tenant isolation happens by
// filtering in application code, never by nesting or locking.
type RedisCartStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCartStore(rdb *redis.Client, ttl time.Duration) *RedisCartStore {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RedisCartStore{rdb: rdb, ttl: ttl}
}

func cartKey(sessionID string) string { return "cart:" + sessionID }

func (s *RedisCartStore) readAll(ctx context.Context, sessionID string) ([]domain.LineItem, error) {
	raw, err := s.rdb.Get(ctx, cartKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var items []domain.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		// A corrupt blob is unrecoverable; start the session over rather
		// than failing every cart operation.
		return nil, nil
	}
	return items, nil
}

func (s *RedisCartStore) writeAll(ctx context.Context, sessionID string, items []domain.LineItem) error {
	if len(items) == 0 {
		if err := s.rdb.Del(ctx, cartKey(sessionID)).Err(); err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
		return nil
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.rdb.Set(ctx, cartKey(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Load returns the session's cart filtered to one tenant. Entries lacking a
// businessId are orphaned and dropped.
func (s *RedisCartStore) Load(ctx context.Context, sessionID, businessID string) (domain.Cart, error) {
	all, err := s.readAll(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}
	return domain.Cart{BusinessID: businessID, Items: FilterTenant(all, businessID)}, nil
}

// Save replaces the tenant's entries with the cart's lines and rewrites every
// other tenant's entries verbatim.
func (s *RedisCartStore) Save(ctx context.Context, sessionID string, cart domain.Cart) error {
	all, err := s.readAll(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.writeAll(ctx, sessionID, MergeTenant(all, cart.BusinessID, cart.Items))
}

// Clear removes the tenant's entries only.
func (s *RedisCartStore) Clear(ctx context.Context, sessionID, businessID string) error {
	all, err := s.readAll(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.writeAll(ctx, sessionID, MergeTenant(all, businessID, nil))
}

// FilterTenant keeps the lines belonging to businessID. Orphaned entries
// (no businessId tag) are never surfaced.
func FilterTenant(all []domain.LineItem, businessID string) []domain.LineItem {
	var out []domain.LineItem
	for _, li := range all {
		if li.BusinessID == businessID {
			out = append(out, li)
		}
	}
	return out
}

// MergeTenant rewrites the shared list: other tenants' entries stay untouched
// and in order, businessID's entries are replaced by items, and orphaned
// entries are purged.
func MergeTenant(all []domain.LineItem, businessID string, items []domain.LineItem) []domain.LineItem {
	merged := make([]domain.LineItem, 0, len(all)+len(items))
	for _, li := range all {
		if li.BusinessID == "" || li.BusinessID == businessID {
			continue
		}
		merged = append(merged, li)
	}
	return append(merged, items...)
}

var _ usecase.CartRepo = (*RedisCartStore)(nil)
