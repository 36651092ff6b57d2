package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pawhub/pet-adoption-platform/internal/clinic"
)

type createServiceRequest struct {
	ClinicID    uuid.UUID `json:"clinic_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
}

type updateServiceRequest struct {
	ClinicID    *uuid.UUID `json:"clinic_id"`
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Price       *float64   `json:"price"`
}

func createServiceHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createServiceRequest
		if !decodeBody(w, r, &req) {
			return
		}

		created, err := svc.CreateService(r.Context(), req.ClinicID, clinic.NewClinicService{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
		})
		if err != nil {
			respondClinicError(w, err)
			return
		}
		writeSuccess(w, http.StatusCreated, created)
	}
}

func listServicesHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clinicID, byClinic, ok := queryUUID(w, r, "clinic_id")
		if !ok {
			return
		}

		if byClinic {
			list, err := svc.ListServicesByClinic(r.Context(), clinicID)
			if err != nil {
				respondClinicError(w, err)
				return
			}
			writeSuccess(w, http.StatusOK, list)
			return
		}

		list, err := svc.ListServices(r.Context())
		if err != nil {
			respondClinicError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, list)
	}
}

func getServiceHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		detail, err := svc.GetService(r.Context(), id)
		if err != nil {
			respondClinicError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, detail)
	}
}

func updateServiceHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		var req updateServiceRequest
		if !decodeBody(w, r, &req) {
			return
		}

		updated, err := svc.UpdateService(r.Context(), id, clinic.ServicePatch{
			ClinicID:    req.ClinicID,
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
		})
		if err != nil {
			respondClinicError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, updated)
	}
}

func deleteServiceHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteService(r.Context(), id); err != nil {
			respondClinicError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "service deleted")
	}
}
