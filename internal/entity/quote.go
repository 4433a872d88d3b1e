package domain

// QuoteKind classifies the outcome of a delivery eligibility check.
type QuoteKind string

const (
	// QuoteNone is the zero state before any resolution ran.
	QuoteNone QuoteKind = "NONE"
	// QuoteFee: delivery is available at FeeCents.
	QuoteFee QuoteKind = "FEE"
	// QuoteOutsideArea: the address is beyond the delivery radius.
	QuoteOutsideArea QuoteKind = "OUTSIDE_AREA"
	// QuoteUnavailable: the tenant does not deliver to this input at all.
	QuoteUnavailable QuoteKind = "UNAVAILABLE"
	// QuoteFailed: the check itself failed (network, unclassified error).
	QuoteFailed QuoteKind = "CALCULATION_FAILED"
)

// DeliveryQuote is the resolved outcome for one location or postal-zone input.
// It is recomputed whenever the input changes and never persisted.
//
// FeeCents is meaningful only for QuoteFee; every other kind clamps it to 0 so
// a stale fee cannot carry over into an order.
type DeliveryQuote struct {
	Kind          QuoteKind `json:"kind"`
	FeeCents      int64     `json:"feeCents"`
	MaxDistanceKm float64   `json:"maxDistanceKm,omitempty"` // best-effort, QuoteOutsideArea only
	Reason        string    `json:"reason,omitempty"`
}

// BlocksSubmission reports whether this quote alone prevents checkout. Only a
// confirmed out-of-area result blocks; transient calculation failures leave
// the decision to the user.
func (q DeliveryQuote) BlocksSubmission() bool {
	return q.Kind == QuoteOutsideArea
}
