package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/adapter/http/middleware"
	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/adapter/repo"
	domain "github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/entity"
	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/usecase"
)

// StorefrontHandler serves time slots and delivery quotes.
type StorefrontHandler struct {
	catalog  usecase.CatalogRepo
	slots    *usecase.SlotGenerator
	fees     *usecase.FeeResolver
	defaults usecase.SchedulingDefaults
	now      func() time.Time
}

func NewStorefrontHandler(catalog usecase.CatalogRepo, slots *usecase.SlotGenerator, fees *usecase.FeeResolver, defaults usecase.SchedulingDefaults) *StorefrontHandler {
	return &StorefrontHandler{catalog: catalog, slots: slots, fees: fees, defaults: defaults, now: time.Now}
}

// GetSlots returns the bookable slots for ?date=YYYY-MM-DD and ?type=
// (fulfillment mode, default PICKUP). ?format=24h switches labels.
func (h *StorefrontHandler) GetSlots(c *gin.Context) {
	tenant := c.Param("tenant")

	mode := domain.FulfillmentPickup
	if t := c.Query("type"); t != "" {
		m, err := domain.ParseFulfillment(t)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_type"})
			return
		}
		mode = m
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	cfg, err := h.catalog.Tenant(ctx, tenant)
	if err != nil {
		tenantError(c, err)
		return
	}
	hours, err := h.catalog.Hours(ctx, tenant)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	loc := time.UTC
	if cfg.Timezone != "" {
		if l, err := time.LoadLocation(cfg.Timezone); err == nil {
			loc = l
		}
	}
	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}

	buffer, err := usecase.BufferFor(cfg, mode, h.defaults.DeliveryBufferMin, h.defaults.PickupBufferMin)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_type"})
		return
	}

	slots := h.slots.Generate(hours, date, h.now(), buffer)
	use24h := c.Query("format") == "24h"
	c.JSON(http.StatusOK, gin.H{"slots": usecase.Labeled(slots, use24h)})
}

type quoteReq struct {
	Lat float64 `json:"lat" binding:"required"`
	Lng float64 `json:"lng" binding:"required"`
}

// QuoteDelivery resolves a geolocation delivery quote. The quote itself is
// returned with HTTP 200 even for error kinds: eligibility failures are
// storefront state, not transport errors.
func (h *StorefrontHandler) QuoteDelivery(c *gin.Context) {
	tenant := c.Param("tenant")

	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	cfg, err := h.catalog.Tenant(ctx, tenant)
	if err != nil {
		tenantError(c, err)
		return
	}
	if !cfg.GeoDelivery {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postal_mode_tenant"})
		return
	}

	quote := h.fees.ResolveGeo(c.Request.Context(), middleware.SessionID(c), tenant, req.Lat, req.Lng)
	middleware.QuoteOutcomes.WithLabelValues(tenant, string(quote.Kind)).Inc()
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}

// GetCarriers lists postal carrier options for ?country=&city= and resets any
// prior carrier selection to the tenant default fee.
func (h *StorefrontHandler) GetCarriers(c *gin.Context) {
	tenant := c.Param("tenant")
	country, city := c.Query("country"), c.Query("city")
	if country == "" || city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "country_and_city_required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	cfg, err := h.catalog.Tenant(ctx, tenant)
	if err != nil {
		tenantError(c, err)
		return
	}

	carriers, quote, err := h.fees.SetPostalZone(c.Request.Context(), middleware.SessionID(c), tenant, country, city, cfg.BaseDeliveryFeeCents)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "quote": quote})
		return
	}
	c.JSON(http.StatusOK, gin.H{"carriers": carriers, "quote": quote})
}

type selectCarrierReq struct {
	Carrier string `json:"carrier" binding:"required"`
}

func (h *StorefrontHandler) SelectCarrier(c *gin.Context) {
	var req selectCarrierReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	quote, err := h.fees.SelectCarrier(middleware.SessionID(c), c.Param("tenant"), req.Carrier)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_carrier"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}

type fulfillmentReq struct {
	Mode string `json:"mode" binding:"required"`
}

// SetFulfillment records a fulfillment-mode switch. Switching away from
// delivery resets the fee to the tenant base and clears any delivery error.
func (h *StorefrontHandler) SetFulfillment(c *gin.Context) {
	tenant := c.Param("tenant")

	var req fulfillmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	mode, err := domain.ParseFulfillment(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_mode"})
		return
	}

	if mode != domain.FulfillmentDelivery {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		cfg, err := h.catalog.Tenant(ctx, tenant)
		if err != nil {
			tenantError(c, err)
			return
		}
		h.fees.Reset(middleware.SessionID(c), tenant, cfg.BaseDeliveryFeeCents)
	}
	c.JSON(http.StatusOK, gin.H{"mode": mode, "quote": h.fees.Current(middleware.SessionID(c), tenant)})
}

func tenantError(c *gin.Context, err error) {
	if errors.Is(err, repo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_business"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
