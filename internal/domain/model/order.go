package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the current state of an order in the confirmation pipeline.
type Status string

const (
	StatusPending   Status = "pending"   // The order is accepted and waiting for its confirmation to be delivered.
	StatusNotified  Status = "notified"  // The confirmation has been delivered to the customer.
	StatusFailed    Status = "failed"    // Delivery failed after all retry attempts.
	StatusCancelled Status = "cancelled" // The order was cancelled before the confirmation went out.
)

// Order is the core business entity of the application.
// It is technology-agnostic and does not contain any DB or JSON tags.
type Order struct {
	ID     uuid.UUID
	Number string // Human-readable order number, e.g. "ORD-1042". Unique.

	CustomerEmail string // Primary delivery address for the confirmation.
	CustomerPhone string // Kept opaque; used by SMS-capable channel stacks.

	Total    decimal.Decimal
	Currency string

	Status   Status
	Attempts int

	NotifiedAt *time.Time // Pointer to allow null value.
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewOrder is a factory function to create a new pending order.
func NewOrder(number, customerEmail, customerPhone string, total decimal.Decimal, currency string) *Order {
	now := time.Now().UTC()
	return &Order{
		ID:            uuid.New(),
		Number:        number,
		CustomerEmail: customerEmail,
		CustomerPhone: customerPhone,
		Total:         total,
		Currency:      currency,
		Status:        StatusPending,
		Attempts:      0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
