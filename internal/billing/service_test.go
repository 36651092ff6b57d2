package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	plans  map[uuid.UUID]PricingPlan
	orders map[uuid.UUID]Order
	users  map[uuid.UUID]bool
}

func newTestRepo() *testRepo {
	return &testRepo{
		plans:  map[uuid.UUID]PricingPlan{},
		orders: map[uuid.UUID]Order{},
		users:  map[uuid.UUID]bool{},
	}
}

func (r *testRepo) addUser() uuid.UUID {
	id := uuid.New()
	r.users[id] = true
	return id
}

func (r *testRepo) addPlan(name string, price float64) PricingPlan {
	p := PricingPlan{ID: uuid.New(), Name: name, Price: price, CreatedAt: time.Now()}
	r.plans[p.ID] = p
	return p
}

func (r *testRepo) ListPlans(ctx context.Context) ([]PricingPlan, error) {
	out := make([]PricingPlan, 0, len(r.plans))
	for _, p := range r.plans {
		out = append(out, p)
	}
	return out, nil
}

func (r *testRepo) GetPlanByID(ctx context.Context, id uuid.UUID) (*PricingPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, ErrPlanNotFound
	}
	return &p, nil
}

func (r *testRepo) CreateOrder(ctx context.Context, userID, planID uuid.UUID) (*Order, error) {
	o := Order{ID: uuid.New(), UserID: userID, PlanID: planID, Status: StatusPending, OrderDate: time.Now()}
	r.orders[o.ID] = o
	return &o, nil
}

func (r *testRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (*OrderDetail, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	d := OrderDetail{Order: o}
	if p, ok := r.plans[o.PlanID]; ok {
		d.PlanName = p.Name
		d.Price = p.Price
	}
	return &d, nil
}

func (r *testRepo) ListOrders(ctx context.Context) ([]OrderDetail, error) {
	out := make([]OrderDetail, 0, len(r.orders))
	for id := range r.orders {
		d, _ := r.GetOrderByID(ctx, id)
		out = append(out, *d)
	}
	return out, nil
}

func (r *testRepo) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]OrderDetail, error) {
	out := make([]OrderDetail, 0)
	for id, o := range r.orders {
		if o.UserID == userID {
			d, _ := r.GetOrderByID(ctx, id)
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *testRepo) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	o.Status = status
	r.orders[id] = o
	return nil
}

func (r *testRepo) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.users[id], nil
}

// -------------------------
// Tests
// -------------------------

func TestService_CreateOrder_ValidatesReferences(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	plan := repo.addPlan("Basic", 49.90)
	user := repo.addUser()

	if _, err := svc.CreateOrder(ctx, uuid.New(), plan.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.CreateOrder(ctx, user, uuid.New()); !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound, got %v", err)
	}

	created, err := svc.CreateOrder(ctx, user, plan.ID)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if created.Status != StatusPending {
		t.Fatalf("expected pending order, got %s", created.Status)
	}
	if created.PlanName != "Basic" {
		t.Fatalf("expected joined plan name, got %q", created.PlanName)
	}
}

func TestService_UpdateOrderStatus(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	plan := repo.addPlan("Basic", 49.90)
	user := repo.addUser()
	created, err := svc.CreateOrder(ctx, user, plan.ID)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if _, err := svc.UpdateOrderStatus(ctx, created.ID, "paid"); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
	}

	updated, err := svc.UpdateOrderStatus(ctx, created.ID, StatusActive)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != StatusActive {
		t.Fatalf("expected active, got %s", updated.Status)
	}

	if _, err := svc.UpdateOrderStatus(ctx, uuid.New(), StatusCancelled); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
