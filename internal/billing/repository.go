package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrPlanNotFound  = errors.New("pricing plan not found")
	ErrOrderNotFound = errors.New("order not found")
)

type Repository interface {
	ListPlans(ctx context.Context) ([]PricingPlan, error)
	GetPlanByID(ctx context.Context, id uuid.UUID) (*PricingPlan, error)

	CreateOrder(ctx context.Context, userID, planID uuid.UUID) (*Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*OrderDetail, error)
	ListOrders(ctx context.Context) ([]OrderDetail, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]OrderDetail, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error

	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
}
