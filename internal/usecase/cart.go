package usecase

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/entity"
)

var ErrLineNotFound = errors.New("line item not found")

// CapacityWarning reports a stock limit hit by a cart mutation. It is a
// warning, not an error: the cart stays consistent (either unchanged or
// clamped) and the storefront shows a transient message.
type CapacityWarning struct {
	OutOfStock bool
	Clamped    bool
	MaxAddable int
}

func (w *CapacityWarning) Message() string {
	if w.OutOfStock {
		return "out of stock"
	}
	if w.Clamped {
		return fmt.Sprintf("only %d more can be added", w.MaxAddable)
	}
	return fmt.Sprintf("only %d available", w.MaxAddable)
}

// CartService owns all cart mutations for the storefront. Every mutation runs
// the stock ledger first and persists through the multi-tenant CartRepo.
type CartService struct {
	repo    CartRepo
	catalog CatalogRepo
}

func NewCartService(repo CartRepo, catalog CatalogRepo) *CartService {
	return &CartService{repo: repo, catalog: catalog}
}

// Get hydrates the session's cart for one tenant.
func (s *CartService) Get(ctx context.Context, sessionID, businessID string) (domain.Cart, error) {
	return s.repo.Load(ctx, sessionID, businessID)
}

type AddItemInput struct {
	SessionID   string
	BusinessID  string
	ProductID   string
	VariantID   string
	ModifierIDs []string
	Quantity    int // 0 means 1
}

// AddItem adds units to the line identified by (product, variant, modifiers),
// creating the line on first add. Requests exceeding the remaining stock are
// clamped to what fits and reported as a warning; when nothing fits the cart
// is left untouched.
func (s *CartService) AddItem(ctx context.Context, in AddItemInput) (domain.Cart, *CapacityWarning, error) {
	qty := in.Quantity
	if qty <= 0 {
		qty = 1
	}

	unit, err := s.catalog.Unit(ctx, in.BusinessID, in.ProductID, in.VariantID)
	if err != nil {
		return domain.Cart{}, nil, fmt.Errorf("lookup unit: %w", err)
	}
	mods, err := s.catalog.Modifiers(ctx, in.BusinessID, in.ProductID, in.ModifierIDs)
	if err != nil {
		return domain.Cart{}, nil, fmt.Errorf("lookup modifiers: %w", err)
	}

	cart, err := s.repo.Load(ctx, in.SessionID, in.BusinessID)
	if err != nil {
		return domain.Cart{}, nil, fmt.Errorf("load cart: %w", err)
	}

	id := domain.LineItemID(in.ProductID, in.VariantID, in.ModifierIDs)
	already := cart.Quantity(id)

	var warn *CapacityWarning
	dec := CanAdd(unit, qty, already)
	if dec.OutOfStock() {
		return cart, &CapacityWarning{OutOfStock: true}, nil
	}
	if !dec.Allowed {
		// Partial fit: clamp instead of rejecting outright.
		warn = &CapacityWarning{Clamped: true, MaxAddable: dec.MaxAddable}
		qty = dec.MaxAddable
	}

	cart.Upsert(domain.LineItem{
		ID:                     id,
		BusinessID:             in.BusinessID,
		ProductID:              in.ProductID,
		VariantID:              in.VariantID,
		Modifiers:              mods,
		Quantity:               already + qty,
		UnitPriceCents:         unit.PriceCents,
		UnitOriginalPriceCents: unit.OriginalPriceCents,
	})
	if err := s.repo.Save(ctx, in.SessionID, cart); err != nil {
		return domain.Cart{}, nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, warn, nil
}

// SetQuantity sets a line to an absolute quantity. qty <= 0 removes the line.
// Growth is re-validated against stock using the current quantity as baseline;
// a request that does not fit is a no-op surfaced as a warning.
func (s *CartService) SetQuantity(ctx context.Context, sessionID, businessID, lineItemID string, qty int) (domain.Cart, *CapacityWarning, error) {
	cart, err := s.repo.Load(ctx, sessionID, businessID)
	if err != nil {
		return domain.Cart{}, nil, fmt.Errorf("load cart: %w", err)
	}
	li := cart.Find(lineItemID)
	if li == nil {
		return cart, nil, ErrLineNotFound
	}

	if qty <= 0 {
		cart.Remove(lineItemID)
		if err := s.repo.Save(ctx, sessionID, cart); err != nil {
			return domain.Cart{}, nil, fmt.Errorf("save cart: %w", err)
		}
		return cart, nil, nil
	}

	if delta := qty - li.Quantity; delta > 0 {
		unit, err := s.catalog.Unit(ctx, businessID, li.ProductID, li.VariantID)
		if err != nil {
			return domain.Cart{}, nil, fmt.Errorf("lookup unit: %w", err)
		}
		if dec := CanAdd(unit, delta, li.Quantity); !dec.Allowed {
			if dec.OutOfStock() {
				return cart, &CapacityWarning{OutOfStock: true}, nil
			}
			return cart, &CapacityWarning{MaxAddable: dec.MaxAddable}, nil
		}
	}

	li.Quantity = qty
	if err := s.repo.Save(ctx, sessionID, cart); err != nil {
		return domain.Cart{}, nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil, nil
}

// RemoveItem drops a line entirely. Removing an absent line is not an error.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, businessID, lineItemID string) (domain.Cart, error) {
	cart, err := s.repo.Load(ctx, sessionID, businessID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}
	cart.Remove(lineItemID)
	if err := s.repo.Save(ctx, sessionID, cart); err != nil {
		return domain.Cart{}, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// Clear wipes the current tenant's lines only.
func (s *CartService) Clear(ctx context.Context, sessionID, businessID string) error {
	return s.repo.Clear(ctx, sessionID, businessID)
}
