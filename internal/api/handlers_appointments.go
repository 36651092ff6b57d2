package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pawhub/pet-adoption-platform/internal/clinic"
)

type createAppointmentRequest struct {
	PetID      uuid.UUID   `json:"pet_id"`
	ClinicID   uuid.UUID   `json:"clinic_id"`
	Date       string      `json:"appointment_date"`
	Time       string      `json:"appointment_time"`
	Reason     *string     `json:"reason"`
	ServiceIDs []uuid.UUID `json:"service_ids"`
}

type updateAppointmentRequest struct {
	PetID      *uuid.UUID   `json:"pet_id"`
	ClinicID   *uuid.UUID   `json:"clinic_id"`
	Date       *string      `json:"appointment_date"`
	Time       *string      `json:"appointment_time"`
	Reason     *string      `json:"reason"`
	Notes      *string      `json:"notes"`
	Status     *string      `json:"status"`
	ServiceIDs *[]uuid.UUID `json:"service_ids"`
}

func createAppointmentHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAppointmentRequest
		if !decodeBody(w, r, &req) {
			return
		}

		created, err := svc.CreateAppointment(r.Context(), clinic.NewAppointment{
			PetID:      req.PetID,
			ClinicID:   req.ClinicID,
			Date:       req.Date,
			Time:       req.Time,
			Reason:     req.Reason,
			ServiceIDs: req.ServiceIDs,
		})
		if err != nil {
			respondClinicError(w, err)
			return
		}
		writeSuccess(w, http.StatusCreated, created)
	}
}

func listAppointmentsHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, byPet, ok := queryUUID(w, r, "pet_id")
		if !ok {
			return
		}
		clinicID, byClinic, ok := queryUUID(w, r, "clinic_id")
		if !ok {
			return
		}
		userID, byUser, ok := queryUUID(w, r, "user_id")
		if !ok {
			return
		}

		var (
			list []clinic.AppointmentDetail
			err  error
		)
		switch {
		case byPet:
			list, err = svc.ListAppointmentsByPet(r.Context(), petID)
		case byClinic:
			list, err = svc.ListAppointmentsByClinic(r.Context(), clinicID)
		case byUser:
			list, err = svc.ListAppointmentsByOwner(r.Context(), userID)
		default:
			list, err = svc.ListAppointments(r.Context())
		}
		if err != nil {
			respondClinicError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, list)
	}
}

func getAppointmentHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		detail, err := svc.GetAppointment(r.Context(), id)
		if err != nil {
			respondClinicError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, detail)
	}
}

func updateAppointmentHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		var req updateAppointmentRequest
		if !decodeBody(w, r, &req) {
			return
		}

		patch := clinic.AppointmentPatch{
			PetID:      req.PetID,
			ClinicID:   req.ClinicID,
			Date:       req.Date,
			Time:       req.Time,
			Reason:     req.Reason,
			Notes:      req.Notes,
			ServiceIDs: req.ServiceIDs,
		}
		if req.Status != nil {
			status := clinic.AppointmentStatus(*req.Status)
			patch.Status = &status
		}

		updated, err := svc.UpdateAppointment(r.Context(), id, patch)
		if err != nil {
			respondClinicError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, updated)
	}
}

func deleteAppointmentHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteAppointment(r.Context(), id); err != nil {
			respondClinicError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "appointment deleted")
	}
}
