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

type CartHandler struct {
	carts *usecase.CartService
}

func NewCartHandler(carts *usecase.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type cartResp struct {
	Cart          domain.Cart `json:"cart"`
	SubtotalCents int64       `json:"subtotalCents"`
	UnitCount     int         `json:"unitCount"`
	Warning       string      `json:"warning,omitempty"`
}

func renderCart(c *gin.Context, cart domain.Cart, warn *usecase.CapacityWarning) {
	resp := cartResp{
		Cart:          cart,
		SubtotalCents: cart.SubtotalCents(),
		UnitCount:     cart.UnitCount(),
	}
	if warn != nil {
		resp.Warning = warn.Message()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) GetCart(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	cart, err := h.carts.Get(ctx, middleware.SessionID(c), c.Param("tenant"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart_unavailable"})
		return
	}
	renderCart(c, cart, nil)
}

type addItemReq struct {
	ProductID   string   `json:"productId" binding:"required"`
	VariantID   string   `json:"variantId"`
	ModifierIDs []string `json:"modifierIds"`
	Quantity    int      `json:"quantity"`
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	cart, warn, err := h.carts.AddItem(ctx, usecase.AddItemInput{
		SessionID:   middleware.SessionID(c),
		BusinessID:  c.Param("tenant"),
		ProductID:   req.ProductID,
		VariantID:   req.VariantID,
		ModifierIDs: req.ModifierIDs,
		Quantity:    req.Quantity,
	})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown_product"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	renderCart(c, cart, warn)
}

type setQuantityReq struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req setQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	cart, warn, err := h.carts.SetQuantity(ctx, middleware.SessionID(c), c.Param("tenant"), c.Param("id"), req.Quantity)
	if err != nil {
		if errors.Is(err, usecase.ErrLineNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "line_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	renderCart(c, cart, warn)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	cart, err := h.carts.RemoveItem(ctx, middleware.SessionID(c), c.Param("tenant"), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	renderCart(c, cart, nil)
}
