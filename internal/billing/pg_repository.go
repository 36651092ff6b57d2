package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanPlan(row pgx.Row) (*PricingPlan, error) {
	var p PricingPlan

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Description,
		&p.Features,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	return &p, nil
}

func scanOrderDetail(row pgx.Row) (*OrderDetail, error) {
	var d OrderDetail

	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.PlanID,
		&d.Status,
		&d.OrderDate,
		&d.UserName,
		&d.PlanName,
		&d.Price,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	return &d, nil
}

func (r *PgRepository) ListPlans(ctx context.Context) ([]PricingPlan, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, price, description, features, created_at
		FROM pricing_plans
		ORDER BY price ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]PricingPlan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	return result, rows.Err()
}

func (r *PgRepository) GetPlanByID(ctx context.Context, id uuid.UUID) (*PricingPlan, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, price, description, features, created_at
		FROM pricing_plans
		WHERE id = $1
	`, id)
	return scanPlan(row)
}

func (r *PgRepository) CreateOrder(ctx context.Context, userID, planID uuid.UUID) (*Order, error) {
	var o Order
	err := r.pool.QueryRow(ctx, `
		INSERT INTO pricing_plan_orders (id, user_id, plan_id, status)
		VALUES ($1, $2, $3, 'pending')
		RETURNING id, user_id, plan_id, status, order_date
	`, uuid.New(), userID, planID).Scan(&o.ID, &o.UserID, &o.PlanID, &o.Status, &o.OrderDate)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

const orderDetailQuery = `
	SELECT o.id, o.user_id, o.plan_id, o.status, o.order_date,
	       u.name AS user_name, p.name AS plan_name, p.price
	FROM pricing_plan_orders o
	JOIN users u ON u.id = o.user_id
	JOIN pricing_plans p ON p.id = o.plan_id`

func (r *PgRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*OrderDetail, error) {
	row := r.pool.QueryRow(ctx, orderDetailQuery+` WHERE o.id = $1`, id)
	return scanOrderDetail(row)
}

func (r *PgRepository) ListOrders(ctx context.Context) ([]OrderDetail, error) {
	rows, err := r.pool.Query(ctx, orderDetailQuery+` ORDER BY o.order_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrderDetails(rows)
}

func (r *PgRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]OrderDetail, error) {
	rows, err := r.pool.Query(ctx, orderDetailQuery+`
		WHERE o.user_id = $1 ORDER BY o.order_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrderDetails(rows)
}

func collectOrderDetails(rows pgx.Rows) ([]OrderDetail, error) {
	result := make([]OrderDetail, 0)
	for rows.Next() {
		d, err := scanOrderDetail(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	return result, rows.Err()
}

func (r *PgRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE pricing_plan_orders SET status = $2 WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *PgRepository) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)
	`, id).Scan(&exists)
	return exists, err
}
