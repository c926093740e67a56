package http

import (
	"time"

	"github.com/google/uuid"
)

// CreateOrderRequest defines the structure for a new order request.
// It uses `json` tags for unmarshalling and `binding` for validation with Gin.
type CreateOrderRequest struct {
	Number        string `json:"number" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
	Total         string `json:"total" binding:"required"`
	Currency      string `json:"currency" binding:"required"`
}

// OrderResponse defines the structure for a standard order response.
// We don't expose all internal fields to the client.
type OrderResponse struct {
	ID        uuid.UUID `json:"id"`
	Number    string    `json:"number"`
	Status    string    `json:"status"`
	Total     string    `json:"total"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorResponse defines a standard structure for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
