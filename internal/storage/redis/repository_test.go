package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/avolkov-dev/order-notifier/internal/domain/model"
	repo "github.com/avolkov-dev/order-notifier/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	_ repo.OrderRepository = (*fakePrimary)(nil)
	_ repo.OrderCache      = (*fakeCache)(nil)
)

// fakePrimary counts reads so the tests can tell cache hits from misses.
type fakePrimary struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*model.Order
	reads  int
}

func newFakePrimary() *fakePrimary {
	return &fakePrimary{orders: make(map[uuid.UUID]*model.Order)}
}

func (p *fakePrimary) Save(_ context.Context, o *model.Order) (*model.Order, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	stored := *o
	p.orders[o.ID] = &stored
	return o, nil
}

func (p *fakePrimary) GetByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reads++
	o, ok := p.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (p *fakePrimary) Update(_ context.Context, o *model.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.orders[o.ID]; !ok {
		return repo.ErrNotFound
	}
	stored := *o
	p.orders[o.ID] = &stored
	return nil
}

func (p *fakePrimary) Delete(_ context.Context, id uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.orders[id]; !ok {
		return repo.ErrNotFound
	}
	delete(p.orders, id)
	return nil
}

// fakeCache is an in-memory OrderCache.
type fakeCache struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*model.Order
}

func newFakeCache() *fakeCache {
	return &fakeCache{orders: make(map[uuid.UUID]*model.Order)}
}

func (c *fakeCache) Get(_ context.Context, id uuid.UUID) (*model.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.orders[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (c *fakeCache) Set(_ context.Context, o *model.Order, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	stored := *o
	c.orders[o.ID] = &stored
	return nil
}

func (c *fakeCache) Delete(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.orders, id)
	return nil
}

func newCachedRepo() (*CachedOrderRepository, *fakePrimary, *fakeCache) {
	log := zerolog.Nop()
	primary := newFakePrimary()
	cache := newFakeCache()
	return NewCachedOrderRepository(primary, cache, &log), primary, cache
}

func testOrder() *model.Order {
	return model.NewOrder("ORD-100", "a@x.com", "+1", decimal.NewFromInt(10), "USD")
}

func TestCachedRepositorySaveWarmsCache(t *testing.T) {
	t.Parallel()

	cached, _, cache := newCachedRepo()
	o := testOrder()

	if _, err := cached.Save(context.Background(), o); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if _, err := cache.Get(context.Background(), o.ID); err != nil {
		t.Fatalf("cache not warmed after save: %v", err)
	}
}

func TestCachedRepositoryCacheAside(t *testing.T) {
	t.Parallel()

	cached, primary, _ := newCachedRepo()
	o := testOrder()
	if _, err := primary.Save(context.Background(), o); err != nil {
		t.Fatalf("seed error: %v", err)
	}

	// First read misses the cache and hits the primary.
	if _, err := cached.GetByID(context.Background(), o.ID); err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if primary.reads != 1 {
		t.Fatalf("primary reads = %d, want 1", primary.reads)
	}

	// Second read is served from the cache.
	if _, err := cached.GetByID(context.Background(), o.ID); err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if primary.reads != 1 {
		t.Fatalf("primary reads = %d after cached read, want 1", primary.reads)
	}
}

func TestCachedRepositoryUpdateInvalidates(t *testing.T) {
	t.Parallel()

	cached, primary, cache := newCachedRepo()
	o := testOrder()
	if _, err := cached.Save(context.Background(), o); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	o.Status = model.StatusNotified
	if err := cached.Update(context.Background(), o); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if _, err := cache.Get(context.Background(), o.ID); err == nil {
		t.Fatal("cache entry should be invalidated after update")
	}

	// The next read repopulates from the primary with the fresh status.
	got, err := cached.GetByID(context.Background(), o.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Status != model.StatusNotified {
		t.Fatalf("status = %s, want %s", got.Status, model.StatusNotified)
	}
	if primary.reads != 1 {
		t.Fatalf("primary reads = %d, want 1", primary.reads)
	}
}

func TestCachedRepositoryDeleteInvalidates(t *testing.T) {
	t.Parallel()

	cached, _, cache := newCachedRepo()
	o := testOrder()
	if _, err := cached.Save(context.Background(), o); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if err := cached.Delete(context.Background(), o.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := cache.Get(context.Background(), o.ID); err == nil {
		t.Fatal("cache entry should be gone after delete")
	}
}
