package shelter

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrPetNotFound      = errors.New("pet not found")
	ErrRequestNotFound  = errors.New("adoption request not found")
)

// Repository contains all DB interactions needed by the shelter service.
type Repository interface {
	// Categories
	CreateCategory(ctx context.Context, name string, description *string) (*Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetCategoryByName(ctx context.Context, name string) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CountPetsInCategory(ctx context.Context, categoryID uuid.UUID) (int, error)

	// Pets
	CreatePet(ctx context.Context, p NewPet) (*Pet, error)
	GetPetByID(ctx context.Context, id uuid.UUID) (*Pet, error)
	ListPets(ctx context.Context) ([]PetDetail, error)
	ListPetsByCategoryName(ctx context.Context, category string) ([]PetDetail, error)
	UpdatePet(ctx context.Context, id uuid.UUID, patch PetPatch) (*Pet, error)
	DeletePet(ctx context.Context, id uuid.UUID) error

	// Adoption requests
	CreateAdoptionRequest(ctx context.Context, petID, userID uuid.UUID, reason string) (*AdoptionRequest, error)
	GetAdoptionRequestByID(ctx context.Context, id uuid.UUID) (*AdoptionRequest, error)
	ListAdoptionRequests(ctx context.Context) ([]AdoptionRequestDetail, error)
	ListAdoptionRequestsByUser(ctx context.Context, userID uuid.UUID) ([]AdoptionRequestDetail, error)
	ListAdoptionRequestsByPet(ctx context.Context, petID uuid.UUID) ([]AdoptionRequestDetail, error)
	HasPendingRequest(ctx context.Context, petID, userID uuid.UUID) (bool, error)
	UpdateAdoptionRequestStatus(ctx context.Context, id uuid.UUID, status RequestStatus) error

	// ApproveAdoptionRequest runs the approval as one transaction: the request
	// becomes approved, the pet unavailable, and every other pending request
	// for the same pet rejected. Partial state is never committed.
	ApproveAdoptionRequest(ctx context.Context, id, petID uuid.UUID) error

	DeleteAdoptionRequest(ctx context.Context, id uuid.UUID) error

	// Requester existence check against the users table
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
}
