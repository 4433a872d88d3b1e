package kafka

import (
	"context"

	"github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/usecase"
)

// StockChangedHandler applies catalog stock pushes so the stock ledger reads
// fresh figures on the next cart mutation.
type StockChangedHandler struct {
	Stock usecase.StockWriter
}

func NewStockChangedHandler(stock usecase.StockWriter) *StockChangedHandler {
	return &StockChangedHandler{Stock: stock}
}

func (h *StockChangedHandler) Handle(ctx context.Context, ev usecase.StockChangedMsg) error {
	return h.Stock.UpdateStock(ctx, ev.BusinessID, ev.ProductID, ev.VariantID, ev.Stock)
}
