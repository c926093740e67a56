package http

import (
	"errors"
	"net/http"

	"github.com/avolkov-dev/order-notifier/internal/domain/model"
	repo "github.com/avolkov-dev/order-notifier/internal/domain/repository"
	"github.com/avolkov-dev/order-notifier/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	service *service.OrderService
	logger  zerolog.Logger
}

// NewHandlers creates a new instance of Handlers.
func NewHandlers(service *service.OrderService, logger *zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		logger:  logger.With().Str("layer", "http_handler").Logger(),
	}
}

// RegisterRoutes sets up the routing for the order API.
func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/orders", h.CreateOrder)
		api.GET("/orders/:id", h.GetOrderByID)
		api.DELETE("/orders/:id", h.CancelOrder)
	}
}

// CreateOrder handles the HTTP request for accepting a new order.
func (h *Handlers) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid request body")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	total, err := decimal.NewFromString(req.Total)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid total amount"})
		return
	}

	order, err := h.service.CreateOrder(
		c.Request.Context(),
		req.Number,
		req.CustomerEmail,
		req.CustomerPhone,
		total,
		req.Currency,
	)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateRecord) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		h.logger.Error().Err(err).Msg("failed to create order")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// GetOrderByID handles the HTTP request to retrieve an order.
func (h *Handlers) GetOrderByID(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid order ID format"})
		return
	}

	order, err := h.service.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		h.logger.Error().Err(err).Stringer("id", id).Msg("failed to get order by id")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to retrieve order"})
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// CancelOrder handles the HTTP request to cancel an order.
func (h *Handlers) CancelOrder(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid order ID format"})
		return
	}

	err = h.service.CancelOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		if errors.Is(err, repo.ErrNotPending) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}

		h.logger.Error().Err(err).Stringer("id", id).Msg("failed to cancel order")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to cancel order"})
		return
	}

	c.Status(http.StatusNoContent)
}

// toOrderResponse is a helper function to map the domain model to the DTO.
func toOrderResponse(o *model.Order) OrderResponse {
	return OrderResponse{
		ID:        o.ID,
		Number:    o.Number,
		Status:    string(o.Status),
		Total:     o.Total.String(),
		Currency:  o.Currency,
		CreatedAt: o.CreatedAt,
	}
}
