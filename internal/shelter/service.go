package shelter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrCategoryNameTaken       = errors.New("category with this name already exists")
	ErrCategoryInUse           = errors.New("cannot delete category with pets, remove or reassign pets first")
	ErrPetUnavailable          = errors.New("pet is not available for adoption")
	ErrRequesterNotFound       = errors.New("user not found")
	ErrDuplicatePendingRequest = errors.New("user already has a pending adoption request for this pet")
	ErrInvalidRequestStatus    = errors.New("invalid status, must be one of: pending, approved, rejected")
	ErrMissingFields           = errors.New("missing required fields")
	ErrNoFieldsToUpdate        = errors.New("no fields to update")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Categories

func (s *Service) CreateCategory(ctx context.Context, name string, description *string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.repo.GetCategoryByName(ctx, name)
	if err != nil && !errors.Is(err, ErrCategoryNotFound) {
		return nil, fmt.Errorf("check category name: %w", err)
	}
	if existing != nil {
		return nil, ErrCategoryNameTaken
	}

	cat, err := s.repo.CreateCategory(ctx, name, description)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return cat, nil
}

func (s *Service) GetCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.GetCategoryByID(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*Category, error) {
	if patch == (CategoryPatch{}) {
		return nil, ErrNoFieldsToUpdate
	}

	if _, err := s.repo.GetCategoryByID(ctx, id); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		other, err := s.repo.GetCategoryByName(ctx, *patch.Name)
		if err != nil && !errors.Is(err, ErrCategoryNotFound) {
			return nil, fmt.Errorf("check category name: %w", err)
		}
		if other != nil && other.ID != id {
			return nil, ErrCategoryNameTaken
		}
	}

	cat, err := s.repo.UpdateCategory(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return cat, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetCategoryByID(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountPetsInCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("count pets in category: %w", err)
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	return s.repo.DeleteCategory(ctx, id)
}

// Pets

func (s *Service) CreatePet(ctx context.Context, p NewPet) (*Pet, error) {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Gender) == "" {
		return nil, ErrMissingFields
	}

	if _, err := s.repo.GetCategoryByID(ctx, p.CategoryID); err != nil {
		return nil, err
	}

	pet, err := s.repo.CreatePet(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create pet: %w", err)
	}
	return pet, nil
}

func (s *Service) GetPet(ctx context.Context, id uuid.UUID) (*Pet, error) {
	return s.repo.GetPetByID(ctx, id)
}

func (s *Service) ListPets(ctx context.Context, category string) ([]PetDetail, error) {
	if category != "" {
		return s.repo.ListPetsByCategoryName(ctx, category)
	}
	return s.repo.ListPets(ctx)
}

func (s *Service) UpdatePet(ctx context.Context, id uuid.UUID, patch PetPatch) (*Pet, error) {
	if patch == (PetPatch{}) {
		return nil, ErrNoFieldsToUpdate
	}

	if _, err := s.repo.GetPetByID(ctx, id); err != nil {
		return nil, err
	}

	if patch.CategoryID != nil {
		if _, err := s.repo.GetCategoryByID(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
	}

	pet, err := s.repo.UpdatePet(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update pet: %w", err)
	}
	return pet, nil
}

func (s *Service) DeletePet(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePet(ctx, id)
}

// Adoption requests

// CreateAdoptionRequest validates, in order: the pet exists, the pet is
// available, the requester exists, and no pending request for the same
// (pet, user) pair is already on file. The checks are reads before the
// insert, not locks; two racing requests can both pass them.
func (s *Service) CreateAdoptionRequest(ctx context.Context, petID, userID uuid.UUID, reason string) (*AdoptionRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrMissingFields
	}

	pet, err := s.repo.GetPetByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if !pet.IsAvailable {
		return nil, ErrPetUnavailable
	}

	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check requester: %w", err)
	}
	if !exists {
		return nil, ErrRequesterNotFound
	}

	pending, err := s.repo.HasPendingRequest(ctx, petID, userID)
	if err != nil {
		return nil, fmt.Errorf("check pending request: %w", err)
	}
	if pending {
		return nil, ErrDuplicatePendingRequest
	}

	req, err := s.repo.CreateAdoptionRequest(ctx, petID, userID, reason)
	if err != nil {
		return nil, fmt.Errorf("create adoption request: %w", err)
	}
	return req, nil
}

func (s *Service) GetAdoptionRequest(ctx context.Context, id uuid.UUID) (*AdoptionRequest, error) {
	return s.repo.GetAdoptionRequestByID(ctx, id)
}

func (s *Service) ListAdoptionRequests(ctx context.Context) ([]AdoptionRequestDetail, error) {
	return s.repo.ListAdoptionRequests(ctx)
}

func (s *Service) ListAdoptionRequestsByUser(ctx context.Context, userID uuid.UUID) ([]AdoptionRequestDetail, error) {
	return s.repo.ListAdoptionRequestsByUser(ctx, userID)
}

func (s *Service) ListAdoptionRequestsByPet(ctx context.Context, petID uuid.UUID) ([]AdoptionRequestDetail, error) {
	return s.repo.ListAdoptionRequestsByPet(ctx, petID)
}

// UpdateAdoptionRequestStatus moves a request to the given status. Approving
// a request that is not yet approved fans out in a single transaction: the
// pet becomes unavailable and every other pending request for it rejected.
// Any other status change is a plain single-row update.
func (s *Service) UpdateAdoptionRequestStatus(ctx context.Context, id uuid.UUID, status RequestStatus) (*AdoptionRequest, error) {
	if !ValidRequestStatus(status) {
		return nil, ErrInvalidRequestStatus
	}

	req, err := s.repo.GetAdoptionRequestByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == RequestApproved && req.Status != RequestApproved {
		if err := s.repo.ApproveAdoptionRequest(ctx, id, req.PetID); err != nil {
			return nil, err
		}
	} else {
		if err := s.repo.UpdateAdoptionRequestStatus(ctx, id, status); err != nil {
			return nil, fmt.Errorf("update request status: %w", err)
		}
	}

	return s.repo.GetAdoptionRequestByID(ctx, id)
}

func (s *Service) DeleteAdoptionRequest(ctx context.Context, id uuid.UUID) error {
	// Unconditional removal, no cascade validation.
	return s.repo.DeleteAdoptionRequest(ctx, id)
}
