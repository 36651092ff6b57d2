package billing

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case StatusPending, StatusActive, StatusCancelled:
		return true
	}
	return false
}

type PricingPlan struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description *string   `json:"description"`
	Features    *string   `json:"features"`
	CreatedAt   time.Time `json:"created_at"`
}

type Order struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	PlanID    uuid.UUID `json:"plan_id"`
	Status    string    `json:"status"`
	OrderDate time.Time `json:"order_date"`
}

// OrderDetail joins in the display names used by order listings.
type OrderDetail struct {
	Order
	UserName string  `json:"user_name"`
	PlanName string  `json:"plan_name"`
	Price    float64 `json:"price"`
}
