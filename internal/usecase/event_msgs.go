package usecase

// OrderCreatedMsg is published to the event exchange after the order
// collaborator accepts a submission.
type OrderCreatedMsg struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	BusinessID  string `json:"businessId"`
	Fulfillment string `json:"fulfillment"`
	TotalCents  int64  `json:"totalCents"`
	Currency    string `json:"currency"`
}

// StockChangedMsg is consumed from the catalog collaborator's Kafka topic
// whenever a sellable unit's stock figure changes.
type StockChangedMsg struct {
	BusinessID string `json:"businessId"`
	ProductID  string `json:"productId"`
	VariantID  string `json:"variantId,omitempty"`
	Stock      int    `json:"stock"`
}
