package usecase

import (
	"context"

	domain "github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/entity"
)

// CartRepo persists carts in the shared multi-tenant store. Implementations
// must obey the partition rule: a load or save for one business must never
// surface or disturb another business's lines stored under the same session.
type CartRepo interface {
	Load(ctx context.Context, sessionID, businessID string) (domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart domain.Cart) error
	Clear(ctx context.Context, sessionID, businessID string) error
}

// CatalogRepo reads tenant catalog data: sellable units, modifier prices,
// business hours and the per-tenant engine configuration.
type CatalogRepo interface {
	Unit(ctx context.Context, businessID, productID, variantID string) (domain.SellableUnit, error)
	Modifiers(ctx context.Context, businessID, productID string, modifierIDs []string) ([]domain.Modifier, error)
	Hours(ctx context.Context, businessID string) (domain.BusinessHours, error)
	Tenant(ctx context.Context, businessID string) (domain.TenantConfig, error)
}

// StockWriter applies stock figures pushed by the catalog collaborator.
type StockWriter interface {
	UpdateStock(ctx context.Context, businessID, productID, variantID string, stock int) error
}

// FeeGateway is the geolocation fee-calculation collaborator. A non-nil error
// is either a *GatewayError carrying a classification code or a plain
// transport error.
type FeeGateway interface {
	QuoteFee(ctx context.Context, businessID string, lat, lng float64) (feeCents int64, err error)
}

// PostalGateway lists carrier options for a postal zone.
type PostalGateway interface {
	Carriers(ctx context.Context, businessID, countryCode, cityName string) ([]domain.CarrierOption, error)
}

// OrderGateway is the external order-creation collaborator.
type OrderGateway interface {
	Submit(ctx context.Context, order domain.Order) (domain.Receipt, error)
}

// EventPublisher fans out order lifecycle events to downstream consumers
// (notification service, analytics).
type EventPublisher interface {
	PublishCreated(ctx context.Context, msg OrderCreatedMsg) error
}

// IdempotencyStore guards checkout against duplicate submissions. A lock held
// for a submission the collaborator rejected must be released so the client
// can retry with the same key.
type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Release(ctx context.Context, scope, key string) error
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

// GatewayError is a classified failure from a collaborator endpoint.
type GatewayError struct {
	Code    string // e.g. OUTSIDE_DELIVERY_AREA, DELIVERY_NOT_AVAILABLE
	Message string
}

func (e *GatewayError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

// Classification codes reported by the fee-calculation collaborator.
const (
	CodeOutsideDeliveryArea  = "OUTSIDE_DELIVERY_AREA"
	CodeDeliveryNotAvailable = "DELIVERY_NOT_AVAILABLE"
)
