package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidOrderStatus = errors.New("invalid status, must be one of: pending, active, cancelled")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListPlans(ctx context.Context) ([]PricingPlan, error) {
	return s.repo.ListPlans(ctx)
}

func (s *Service) GetPlan(ctx context.Context, id uuid.UUID) (*PricingPlan, error) {
	return s.repo.GetPlanByID(ctx, id)
}

func (s *Service) CreateOrder(ctx context.Context, userID, planID uuid.UUID) (*OrderDetail, error) {
	ok, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	if _, err := s.repo.GetPlanByID(ctx, planID); err != nil {
		return nil, err
	}

	o, err := s.repo.CreateOrder(ctx, userID, planID)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return s.repo.GetOrderByID(ctx, o.ID)
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*OrderDetail, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context) ([]OrderDetail, error) {
	return s.repo.ListOrders(ctx)
}

func (s *Service) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]OrderDetail, error) {
	return s.repo.ListOrdersByUser(ctx, userID)
}

func (s *Service) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*OrderDetail, error) {
	if !ValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}
	if err := s.repo.UpdateOrderStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetOrderByID(ctx, id)
}
