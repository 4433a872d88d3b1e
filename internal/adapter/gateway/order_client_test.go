package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/entity"
)

func sampleOrder() domain.Order {
	return domain.Order{
		ID:         "o-1",
		BusinessID: "biz-a",
		Customer:   domain.Customer{Name: "Arta", Phone: "+355691234567"},
		Items: []domain.LineItem{{
			ID: "li_1", BusinessID: "biz-a", ProductID: "p1",
			Quantity: 2, UnitPriceCents: 1000,
		}},
		Fulfillment:   domain.FulfillmentDelivery,
		Schedule:      domain.ScheduleImmediate,
		Address:       "Rruga e Durresit 5",
		FeeCents:      300,
		SubtotalCents: 2000,
		TotalCents:    2300,
		Currency:      "EUR",
	}
}

func TestSubmitOrderAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "o-1", payload["orderId"])
		assert.Equal(t, float64(2300), payload["totalCents"])
		items, ok := payload["items"].([]any)
		require.True(t, ok)
		require.Len(t, items, 1)
		_, hasSlot := payload["slotAt"]
		assert.False(t, hasSlot, "immediate orders carry no slot")

		json.NewEncoder(w).Encode(map[string]any{
			"success":      true,
			"orderNumber":  "WO-1001",
			"messagingUrl": "https://wa.me/355691234567",
		})
	}))
	defer srv.Close()

	c := NewOrderClient(srv.URL, time.Second)
	receipt, err := c.Submit(context.Background(), sampleOrder())
	require.NoError(t, err)
	assert.Equal(t, "WO-1001", receipt.OrderNumber)
	assert.Equal(t, "https://wa.me/355691234567", receipt.MessagingURL)
}

func TestSubmitOrderCarriesSlot(t *testing.T) {
	slot := time.Date(2025, 3, 3, 14, 30, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, slot.Format(time.RFC3339), payload["slotAt"])
		json.NewEncoder(w).Encode(map[string]any{"success": true, "orderNumber": "WO-1"})
	}))
	defer srv.Close()

	order := sampleOrder()
	order.Schedule = domain.ScheduleScheduled
	order.Slot = slot

	c := NewOrderClient(srv.URL, time.Second)
	_, err := c.Submit(context.Background(), order)
	require.NoError(t, err)
}

func TestSubmitOrderRejectedByBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "store offline"})
	}))
	defer srv.Close()

	c := NewOrderClient(srv.URL, time.Second)
	_, err := c.Submit(context.Background(), sampleOrder())
	require.Error(t, err)
	assert.EqualError(t, err, "order rejected: store offline")
}

func TestSubmitOrderRejectedByStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid phone"})
	}))
	defer srv.Close()

	c := NewOrderClient(srv.URL, time.Second)
	_, err := c.Submit(context.Background(), sampleOrder())
	require.Error(t, err)
	assert.EqualError(t, err, "order rejected: invalid phone")
}
