package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/entity"
	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/usecase"
)

// OrderClient submits assembled orders to the external order-creation
// collaborator, which owns the order lifecycle from then on.
type OrderClient struct {
	c *Client
}

func NewOrderClient(baseURL string, timeout time.Duration) *OrderClient {
	return &OrderClient{c: newClient(baseURL, timeout)}
}

type orderItemPayload struct {
	ProductID  string            `json:"productId"`
	VariantID  string            `json:"variantId,omitempty"`
	Modifiers  []domain.Modifier `json:"modifiers,omitempty"`
	Quantity   int               `json:"quantity"`
	PriceCents int64             `json:"priceCents"`
	TotalCents int64             `json:"totalCents"`
}

type orderPayload struct {
	OrderID       string                  `json:"orderId"`
	BusinessID    string                  `json:"businessId"`
	Customer      domain.Customer         `json:"customer"`
	Items         []orderItemPayload      `json:"items"`
	Fulfillment   string                  `json:"fulfillment"`
	Schedule      string                  `json:"schedule"`
	SlotAt        *time.Time              `json:"slotAt,omitempty"`
	Address       string                  `json:"address,omitempty"`
	Postal        *domain.PostalSelection `json:"postal,omitempty"`
	FeeCents      int64                   `json:"feeCents"`
	SubtotalCents int64                   `json:"subtotalCents"`
	TotalCents    int64                   `json:"totalCents"`
	Currency      string                  `json:"currency"`
}

type orderResponse struct {
	Success      bool   `json:"success"`
	OrderNumber  string `json:"orderNumber"`
	MessagingURL string `json:"messagingUrl"`
	Error        string `json:"error"`
}

func (o *OrderClient) Submit(ctx context.Context, order domain.Order) (domain.Receipt, error) {
	payload := orderPayload{
		OrderID:       order.ID,
		BusinessID:    order.BusinessID,
		Customer:      order.Customer,
		Fulfillment:   string(order.Fulfillment),
		Schedule:      string(order.Schedule),
		Address:       order.Address,
		Postal:        order.Postal,
		FeeCents:      order.FeeCents,
		SubtotalCents: order.SubtotalCents,
		TotalCents:    order.TotalCents,
		Currency:      order.Currency,
	}
	if !order.Slot.IsZero() {
		slot := order.Slot
		payload.SlotAt = &slot
	}
	for _, li := range order.Items {
		payload.Items = append(payload.Items, orderItemPayload{
			ProductID:  li.ProductID,
			VariantID:  li.VariantID,
			Modifiers:  li.Modifiers,
			Quantity:   li.Quantity,
			PriceCents: li.UnitPriceCents,
			TotalCents: li.TotalCents(),
		})
	}

	var resp orderResponse
	if err := o.c.doJSON(ctx, "POST", "/v1/orders", payload, &resp); err != nil {
		var re *RemoteError
		if errors.As(err, &re) && re.Message != "" {
			// Surface the server-reported reason verbatim; the storefront
			// shows it and keeps the cart for retry.
			return domain.Receipt{}, fmt.Errorf("order rejected: %s", re.Message)
		}
		return domain.Receipt{}, err
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "order was not accepted"
		}
		return domain.Receipt{}, fmt.Errorf("order rejected: %s", msg)
	}
	return domain.Receipt{OrderNumber: resp.OrderNumber, MessagingURL: resp.MessagingURL}, nil
}

var _ usecase.OrderGateway = (*OrderClient)(nil)
