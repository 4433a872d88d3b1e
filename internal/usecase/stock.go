package usecase

import (
	domain "github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/entity"
)

// StockDecision is the ledger's answer to an add/increment request.
type StockDecision struct {
	Allowed bool
	// MaxAddable is how many more units can still join the cart. When the
	// request was only partially coverable the caller may clamp to this
	// instead of rejecting (increment-by-one controls do).
	MaxAddable int
}

// OutOfStock reports that not a single additional unit is available.
func (d StockDecision) OutOfStock() bool { return !d.Allowed && d.MaxAddable == 0 }

// CanAdd adjudicates a request to put requestedQty more units into a cart that
// already holds alreadyInCart units of the same line identity. Pure query; the
// cart applies the outcome.
//
// Stock is always evaluated against the requested line identity's own in-cart
// quantity. Switching variant or modifiers produces a new identity, so the
// caller must pass that identity's count, not the previously selected one's.
func CanAdd(unit domain.SellableUnit, requestedQty, alreadyInCart int) StockDecision {
	if requestedQty < 0 {
		requestedQty = 0
	}
	if !unit.TrackInventory {
		return StockDecision{Allowed: true, MaxAddable: requestedQty}
	}
	max := unit.Stock - alreadyInCart
	if max < 0 {
		max = 0
	}
	return StockDecision{Allowed: requestedQty <= max, MaxAddable: max}
}
