package api

import (
	"errors"
	"net/http"

	"github.com/pawhub/pet-adoption-platform/internal/shelter"
)

type createCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func createCategoryHandler(svc *shelter.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCategoryRequest
		if !decodeBody(w, r, &req) {
			return
		}

		cat, err := svc.CreateCategory(r.Context(), req.Name, req.Description)
		if err != nil {
			respondShelterError(w, err)
			return
		}
		writeSuccess(w, http.StatusCreated, cat)
	}
}

func listCategoriesHandler(svc *shelter.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := svc.ListCategories(r.Context())
		if err != nil {
			respondShelterError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, cats)
	}
}

func getCategoryHandler(svc *shelter.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		cat, err := svc.GetCategory(r.Context(), id)
		if err != nil {
			respondShelterError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, cat)
	}
}

func updateCategoryHandler(svc *shelter.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		var req updateCategoryRequest
		if !decodeBody(w, r, &req) {
			return
		}

		cat, err := svc.UpdateCategory(r.Context(), id, shelter.CategoryPatch{
			Name:        req.Name,
			Description: req.Description,
		})
		if err != nil {
			respondShelterError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, cat)
	}
}

func deleteCategoryHandler(svc *shelter.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteCategory(r.Context(), id); err != nil {
			respondShelterError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "category deleted")
	}
}

// respondShelterError maps shelter service errors to HTTP statuses. It is
// shared by the category, pet and adoption handlers.
func respondShelterError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shelter.ErrMissingFields),
		errors.Is(err, shelter.ErrNoFieldsToUpdate),
		errors.Is(err, shelter.ErrInvalidRequestStatus),
		errors.Is(err, shelter.ErrCategoryInUse),
		errors.Is(err, shelter.ErrPetUnavailable):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shelter.ErrCategoryNotFound),
		errors.Is(err, shelter.ErrPetNotFound),
		errors.Is(err, shelter.ErrRequestNotFound),
		errors.Is(err, shelter.ErrRequesterNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, shelter.ErrCategoryNameTaken),
		errors.Is(err, shelter.ErrDuplicatePendingRequest):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
