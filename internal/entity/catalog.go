package domain

// SellableUnit is one purchasable thing: a product, optionally qualified by a
// variant. Prices are integer cents.
type SellableUnit struct {
	ProductID          string
	VariantID          string // empty when the product has no variants
	PriceCents         int64
	OriginalPriceCents int64 // 0 when the unit is not discounted
	Stock              int
	TrackInventory     bool
	Currency           string
}

// Purchasable reports whether the unit can be sold at all. Units that do not
// track inventory are always purchasable regardless of the stored stock figure.
func (u SellableUnit) Purchasable() bool {
	return !u.TrackInventory || u.Stock > 0
}

// Modifier is an add-on selected with a line item (extra cheese, gift wrap).
type Modifier struct {
	ID         string `json:"id"`
	PriceCents int64  `json:"priceCents"`
}

// CarrierOption is one postal-carrier choice returned by the postal pricing
// collaborator for a (country, city) zone.
type CarrierOption struct {
	Name          string `json:"carrierName"`
	PriceCents    int64  `json:"priceCents"`
	EstimatedTime string `json:"estimatedTime"`
}

// TenantConfig is the per-business configuration the engine needs. The rest of
// the business record (branding, contact pages) is owned by other services.
type TenantConfig struct {
	BusinessID           string
	Currency             string
	Timezone             string
	TemporarilyClosed    bool
	GeoDelivery          bool // true: geolocation fee mode; false: postal-zone mode
	BaseDeliveryFeeCents int64
	MinimumOrderCents    int64 // minimum subtotal for delivery orders; 0 = none
	DeliveryBufferMin    int
	PickupBufferMin      int
}

// BufferMinutes returns the same-day scheduling buffer for a fulfillment mode.
// Delivery carries a longer buffer than pickup or dine-in because preparation
// and the courier leg overlap.
func (c TenantConfig) BufferMinutes(mode FulfillmentMode) int {
	if mode == FulfillmentDelivery {
		return c.DeliveryBufferMin
	}
	return c.PickupBufferMin
}
