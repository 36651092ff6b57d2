package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pawhub/pet-adoption-platform/internal/shelter"
)

type createAdoptionRequest struct {
	PetID  uuid.UUID `json:"pet_id"`
	UserID uuid.UUID `json:"user_id"`
	Reason string    `json:"reason"`
}

type updateAdoptionRequest struct {
	Status string `json:"status"`
}

func createAdoptionHandler(svc *shelter.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAdoptionRequest
		if !decodeBody(w, r, &req) {
			return
		}

		created, err := svc.CreateAdoptionRequest(r.Context(), req.PetID, req.UserID, req.Reason)
		if err != nil {
			respondShelterError(w, err)
			return
		}
		writeSuccess(w, http.StatusCreated, created)
	}
}

func listAdoptionsHandler(svc *shelter.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, byUser, ok := queryUUID(w, r, "user_id")
		if !ok {
			return
		}
		petID, byPet, ok := queryUUID(w, r, "pet_id")
		if !ok {
			return
		}

		var (
			list []shelter.AdoptionRequestDetail
			err  error
		)
		switch {
		case byUser:
			list, err = svc.ListAdoptionRequestsByUser(r.Context(), userID)
		case byPet:
			list, err = svc.ListAdoptionRequestsByPet(r.Context(), petID)
		default:
			list, err = svc.ListAdoptionRequests(r.Context())
		}
		if err != nil {
			respondShelterError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, list)
	}
}

func getAdoptionHandler(svc *shelter.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		req, err := svc.GetAdoptionRequest(r.Context(), id)
		if err != nil {
			respondShelterError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, req)
	}
}

func updateAdoptionHandler(svc *shelter.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		var req updateAdoptionRequest
		if !decodeBody(w, r, &req) {
			return
		}

		updated, err := svc.UpdateAdoptionRequestStatus(r.Context(), id, shelter.RequestStatus(req.Status))
		if err != nil {
			respondShelterError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, updated)
	}
}

func deleteAdoptionHandler(svc *shelter.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteAdoptionRequest(r.Context(), id); err != nil {
			respondShelterError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "adoption request deleted")
	}
}
