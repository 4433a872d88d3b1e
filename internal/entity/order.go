package domain

import (
	"errors"
	"time"
)

// FulfillmentMode is how the customer receives the order.
type FulfillmentMode string

const (
	FulfillmentDelivery FulfillmentMode = "DELIVERY"
	FulfillmentPickup   FulfillmentMode = "PICKUP"
	FulfillmentDineIn   FulfillmentMode = "DINE_IN"
)

// ScheduleMode is when the order should be fulfilled.
type ScheduleMode string

const (
	ScheduleImmediate ScheduleMode = "IMMEDIATE"
	ScheduleScheduled ScheduleMode = "SCHEDULED"
)

var (
	ErrInvalidFulfillment = errors.New("invalid fulfillment mode")
	ErrInvalidSchedule    = errors.New("invalid schedule mode")
)

// ParseFulfillment validates a wire value.
func ParseFulfillment(s string) (FulfillmentMode, error) {
	switch m := FulfillmentMode(s); m {
	case FulfillmentDelivery, FulfillmentPickup, FulfillmentDineIn:
		return m, nil
	}
	return "", ErrInvalidFulfillment
}

// ParseSchedule validates a wire value.
func ParseSchedule(s string) (ScheduleMode, error) {
	switch m := ScheduleMode(s); m {
	case ScheduleImmediate, ScheduleScheduled:
		return m, nil
	}
	return "", ErrInvalidSchedule
}

// Customer is the contact block collected at checkout.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// PostalSelection is the full postal-zone choice in postal fee mode.
type PostalSelection struct {
	CountryCode string `json:"countryCode"`
	CityName    string `json:"cityName"`
	Carrier     string `json:"carrier"`
}

// Order is the assembled, submittable payload. After submission the external
// order collaborator owns the lifecycle; nothing here is persisted locally.
type Order struct {
	ID            string
	BusinessID    string
	Customer      Customer
	Items         []LineItem
	Fulfillment   FulfillmentMode
	Schedule      ScheduleMode
	Slot          time.Time // zero in immediate mode
	Address       string
	Postal        *PostalSelection
	FeeCents      int64
	SubtotalCents int64
	TotalCents    int64
	Currency      string
}

// Receipt is the collaborator's answer to an accepted order.
type Receipt struct {
	OrderNumber  string `json:"orderNumber"`
	MessagingURL string `json:"messagingUrl,omitempty"` // follow-on redirect, e.g. WhatsApp deep link
}
