package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/adapter/http/middleware"
	domain "github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/entity"
	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/usecase"
)

type CheckoutHandler struct {
	assembler *usecase.Assembler
}

func NewCheckoutHandler(assembler *usecase.Assembler) *CheckoutHandler {
	return &CheckoutHandler{assembler: assembler}
}

type checkoutReq struct {
	Customer struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	} `json:"customer"`
	Fulfillment string     `json:"fulfillment" binding:"required"`
	Schedule    string     `json:"schedule"`
	SlotAt      *time.Time `json:"slotAt"`
	Address     string     `json:"address"`
}

func (r checkoutReq) toInput(c *gin.Context) (usecase.CheckoutInput, error) {
	fulfillment, err := domain.ParseFulfillment(r.Fulfillment)
	if err != nil {
		return usecase.CheckoutInput{}, err
	}
	schedule := domain.ScheduleImmediate
	if r.Schedule != "" {
		if schedule, err = domain.ParseSchedule(r.Schedule); err != nil {
			return usecase.CheckoutInput{}, err
		}
	}

	in := usecase.CheckoutInput{
		SessionID:  middleware.SessionID(c),
		BusinessID: c.Param("tenant"),
		Customer: domain.Customer{
			Name:  r.Customer.Name,
			Phone: r.Customer.Phone,
			Email: r.Customer.Email,
		},
		Fulfillment:    fulfillment,
		Schedule:       schedule,
		Address:        r.Address,
		IdempotencyKey: c.GetHeader("X-Idempotency-Key"),
	}
	if r.SlotAt != nil {
		in.Slot = *r.SlotAt
	}
	return in, nil
}

// Readiness reports the canSubmit() predicate with human-readable reasons for
// every unmet precondition. Always HTTP 200; readiness is state, not failure.
func (h *CheckoutHandler) Readiness(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	in, err := req.toInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	reasons, err := h.assembler.Readiness(ctx, in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"canSubmit": len(reasons) == 0, "reasons": reasons})
}

// Submit assembles and submits the order.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	tenant := c.Param("tenant")

	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	in, err := req.toInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	receipt, err := h.assembler.Submit(ctx, in)
	if err != nil {
		var notReady *usecase.NotReadyError
		switch {
		case errors.As(err, &notReady):
			middleware.OrdersSubmitted.WithLabelValues(tenant, "not_ready").Inc()
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "not_ready", "reasons": notReady.Reasons})
		case errors.Is(err, usecase.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "duplicate_submission"})
		default:
			middleware.OrdersSubmitted.WithLabelValues(tenant, "rejected").Inc()
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	middleware.OrdersSubmitted.WithLabelValues(tenant, "accepted").Inc()
	c.JSON(http.StatusCreated, gin.H{
		"orderNumber":  receipt.OrderNumber,
		"messagingUrl": receipt.MessagingURL,
	})
}
