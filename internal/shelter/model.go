package shelter

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// ValidRequestStatus reports whether s is one of the three request states.
func ValidRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected:
		return true
	}
	return false
}

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Pet struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	CategoryID     uuid.UUID  `json:"category_id"`
	Breed          *string    `json:"breed,omitempty"`
	Age            *int       `json:"age,omitempty"`
	Gender         string     `json:"gender"`
	Size           *string    `json:"size,omitempty"`
	Color          *string    `json:"color,omitempty"`
	Description    *string    `json:"description,omitempty"`
	MedicalHistory *string    `json:"medical_history,omitempty"`
	IsAvailable    bool       `json:"is_available"`
	ImageURL       *string    `json:"image_url,omitempty"`
	OwnerID        *uuid.UUID `json:"owner_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// PetDetail is a pet row joined with its category name for list/get reads.
type PetDetail struct {
	Pet
	CategoryName string `json:"category_name"`
}

type AdoptionRequest struct {
	ID        uuid.UUID     `json:"id"`
	PetID     uuid.UUID     `json:"pet_id"`
	UserID    uuid.UUID     `json:"user_id"`
	Reason    string        `json:"reason"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// AdoptionRequestDetail carries the joined pet and requester columns the
// admin views render alongside each request.
type AdoptionRequestDetail struct {
	AdoptionRequest
	PetName     string  `json:"pet_name"`
	PetImageURL *string `json:"pet_image_url,omitempty"`
	UserName    string  `json:"user_name"`
	UserEmail   string  `json:"user_email"`
}

// NewPet carries the fields accepted when registering a pet.
type NewPet struct {
	Name           string
	CategoryID     uuid.UUID
	Breed          *string
	Age            *int
	Gender         string
	Size           *string
	Color          *string
	Description    *string
	MedicalHistory *string
	IsAvailable    *bool
	ImageURL       *string
	OwnerID        *uuid.UUID
}

// PetPatch is a partial update: nil means the field keeps its stored value.
type PetPatch struct {
	Name           *string
	CategoryID     *uuid.UUID
	Breed          *string
	Age            *int
	Gender         *string
	Size           *string
	Color          *string
	Description    *string
	MedicalHistory *string
	IsAvailable    *bool
	ImageURL       *string
	OwnerID        *uuid.UUID
}

type CategoryPatch struct {
	Name        *string
	Description *string
}
