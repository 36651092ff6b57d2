package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("missing required fields")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, nu NewUser) (*User, error) {
	if strings.TrimSpace(nu.Name) == "" || strings.TrimSpace(nu.Email) == "" || nu.Password == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.repo.GetUserByEmail(ctx, nu.Email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := nu.Role
	if role == "" {
		role = RoleUser
	}

	created, err := s.repo.CreateUser(ctx, User{
		Name:         nu.Name,
		Email:        nu.Email,
		PasswordHash: string(hash),
		Phone:        nu.Phone,
		Role:         role,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Authenticate checks a login pair and returns the matching account.
// A missing account and a wrong password report the same error so the
// response does not reveal which emails are registered.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrMissingFields
	}

	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, patch Patch) (*User, error) {
	if patch.Name == nil && patch.Email == nil && patch.Password == nil &&
		patch.Phone == nil && patch.Role == nil {
		return nil, ErrNoFieldsToUpdate
	}

	current, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil && *patch.Email != current.Email {
		existing, err := s.repo.GetUserByEmail(ctx, *patch.Email)
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if existing != nil {
			return nil, ErrEmailTaken
		}
		current.Email = *patch.Email
	}
	if patch.Name != nil {
		current.Name = *patch.Name
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		current.PasswordHash = string(hash)
	}
	if patch.Phone != nil {
		current.Phone = patch.Phone
	}
	if patch.Role != nil {
		current.Role = *patch.Role
	}

	updated, err := s.repo.UpdateUser(ctx, *current)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteUser(ctx, id)
}
