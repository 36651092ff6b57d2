package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pawhub/pet-adoption-platform/internal/shelter"
)

type createPetRequest struct {
	Name           string     `json:"name"`
	CategoryID     uuid.UUID  `json:"category_id"`
	Breed          *string    `json:"breed"`
	Age            *int       `json:"age"`
	Gender         string     `json:"gender"`
	Size           *string    `json:"size"`
	Color          *string    `json:"color"`
	Description    *string    `json:"description"`
	MedicalHistory *string    `json:"medical_history"`
	IsAvailable    *bool      `json:"is_available"`
	ImageURL       *string    `json:"image_url"`
	OwnerID        *uuid.UUID `json:"owner_id"`
}

type updatePetRequest struct {
	Name           *string    `json:"name"`
	CategoryID     *uuid.UUID `json:"category_id"`
	Breed          *string    `json:"breed"`
	Age            *int       `json:"age"`
	Gender         *string    `json:"gender"`
	Size           *string    `json:"size"`
	Color          *string    `json:"color"`
	Description    *string    `json:"description"`
	MedicalHistory *string    `json:"medical_history"`
	IsAvailable    *bool      `json:"is_available"`
	ImageURL       *string    `json:"image_url"`
	OwnerID        *uuid.UUID `json:"owner_id"`
}

func createPetHandler(svc *shelter.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if !decodeBody(w, r, &req) {
			return
		}

		pet, err := svc.CreatePet(r.Context(), shelter.NewPet{
			Name:           req.Name,
			CategoryID:     req.CategoryID,
			Breed:          req.Breed,
			Age:            req.Age,
			Gender:         req.Gender,
			Size:           req.Size,
			Color:          req.Color,
			Description:    req.Description,
			MedicalHistory: req.MedicalHistory,
			IsAvailable:    req.IsAvailable,
			ImageURL:       req.ImageURL,
			OwnerID:        req.OwnerID,
		})
		if err != nil {
			respondShelterError(w, err)
			return
		}
		writeSuccess(w, http.StatusCreated, pet)
	}
}

func listPetsHandler(svc *shelter.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")

		pets, err := svc.ListPets(r.Context(), category)
		if err != nil {
			respondShelterError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, pets)
	}
}

func getPetHandler(svc *shelter.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		pet, err := svc.GetPet(r.Context(), id)
		if err != nil {
			respondShelterError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, pet)
	}
}

func updatePetHandler(svc *shelter.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		var req updatePetRequest
		if !decodeBody(w, r, &req) {
			return
		}

		pet, err := svc.UpdatePet(r.Context(), id, shelter.PetPatch{
			Name:           req.Name,
			CategoryID:     req.CategoryID,
			Breed:          req.Breed,
			Age:            req.Age,
			Gender:         req.Gender,
			Size:           req.Size,
			Color:          req.Color,
			Description:    req.Description,
			MedicalHistory: req.MedicalHistory,
			IsAvailable:    req.IsAvailable,
			ImageURL:       req.ImageURL,
			OwnerID:        req.OwnerID,
		})
		if err != nil {
			respondShelterError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, pet)
	}
}

func deletePetHandler(svc *shelter.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		if err := svc.DeletePet(r.Context(), id); err != nil {
			respondShelterError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "pet deleted")
	}
}
