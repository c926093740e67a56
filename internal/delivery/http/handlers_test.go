package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/avolkov-dev/order-notifier/internal/domain/model"
	repo "github.com/avolkov-dev/order-notifier/internal/domain/repository"
	"github.com/avolkov-dev/order-notifier/internal/notify"
	"github.com/avolkov-dev/order-notifier/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	_ repo.OrderRepository = (*memoryRepo)(nil)
	_ repo.OrderQueue      = (*memoryQueue)(nil)
)

// memoryRepo is an in-memory OrderRepository for handler tests.
type memoryRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*model.Order
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *memoryRepo) Save(_ context.Context, o *model.Order) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.orders {
		if existing.Number == o.Number {
			return nil, repo.ErrDuplicateRecord
		}
	}
	stored := *o
	r.orders[o.ID] = &stored
	return o, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *memoryRepo) Update(_ context.Context, o *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		return repo.ErrNotFound
	}
	stored := *o
	r.orders[o.ID] = &stored
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = model.StatusCancelled
	return nil
}

// memoryQueue accepts everything and records nothing the tests care about.
type memoryQueue struct{}

func (memoryQueue) Publish(context.Context, *model.Order) error { return nil }
func (memoryQueue) PublishRetry(context.Context, *model.Order, time.Duration) error {
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *memoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zerolog.Nop()
	r := newMemoryRepo()
	svc := service.NewOrderService(r, memoryQueue{}, notify.NewRecorder(), &log)
	handlers := NewHandlers(svc, &log)

	router := gin.New()
	handlers.RegisterRoutes(router)
	return router, r
}

func seedOrder(t *testing.T, r *memoryRepo, status model.Status) *model.Order {
	t.Helper()
	o := model.NewOrder("ORD-1", "a@x.com", "+1", decimal.NewFromInt(10), "USD")
	o.Status = status
	if _, err := r.Save(context.Background(), o); err != nil {
		t.Fatalf("seed error: %v", err)
	}
	return o
}

func TestCancelPendingOrder(t *testing.T) {
	t.Parallel()

	router, r := newTestRouter(t)
	o := seedOrder(t, r, model.StatusPending)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/orders/"+o.ID.String(), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	stored, _ := r.GetByID(context.Background(), o.ID)
	if stored.Status != model.StatusCancelled {
		t.Fatalf("order status = %s, want %s", stored.Status, model.StatusCancelled)
	}
}

func TestCancelNonPendingOrderConflict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status model.Status
	}{
		{name: "notified", status: model.StatusNotified},
		{name: "failed", status: model.StatusFailed},
		{name: "cancelled", status: model.StatusCancelled},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router, r := newTestRouter(t)
			o := seedOrder(t, r, tt.status)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/orders/"+o.ID.String(), nil)
			router.ServeHTTP(w, req)

			if w.Code != http.StatusConflict {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusConflict)
			}
		})
	}
}

func TestCancelUnknownOrderNotFound(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/orders/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	body := `{"number":"ORD-9","customer_email":"a@x.com","customer_phone":"+1","total":"19.99","currency":"USD"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}
}
