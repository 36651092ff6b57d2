package api

import (
	"errors"
	"net/http"

	"github.com/pawhub/pet-adoption-platform/internal/clinic"
)

type clinicHourPayload struct {
	Day       string `json:"day"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

type clinicServicePayload struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
}

type createClinicRequest struct {
	Name        string                 `json:"name"`
	Address     string                 `json:"address"`
	Phone       string                 `json:"phone"`
	Email       string                 `json:"email"`
	Description *string                `json:"description"`
	Image       *string                `json:"image"`
	Hours       []clinicHourPayload    `json:"hours"`
	Services    []clinicServicePayload `json:"services"`
}

type updateClinicRequest struct {
	Name        *string                 `json:"name"`
	Address     *string                 `json:"address"`
	Phone       *string                 `json:"phone"`
	Email       *string                 `json:"email"`
	Description *string                 `json:"description"`
	Image       *string                 `json:"image"`
	Hours       *[]clinicHourPayload    `json:"hours"`
	Services    *[]clinicServicePayload `json:"services"`
}

func toHours(in []clinicHourPayload) []clinic.Hour {
	out := make([]clinic.Hour, 0, len(in))
	for _, h := range in {
		out = append(out, clinic.Hour{Day: h.Day, OpenTime: h.OpenTime, CloseTime: h.CloseTime})
	}
	return out
}

func toNewServices(in []clinicServicePayload) []clinic.NewClinicService {
	out := make([]clinic.NewClinicService, 0, len(in))
	for _, s := range in {
		out = append(out, clinic.NewClinicService{Name: s.Name, Description: s.Description, Price: s.Price})
	}
	return out
}

func createClinicHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createClinicRequest
		if !decodeBody(w, r, &req) {
			return
		}

		created, err := svc.CreateClinic(r.Context(), clinic.NewClinic{
			Name:        req.Name,
			Address:     req.Address,
			Phone:       req.Phone,
			Email:       req.Email,
			Description: req.Description,
			Image:       req.Image,
			Hours:       toHours(req.Hours),
			Services:    toNewServices(req.Services),
		})
		if err != nil {
			respondClinicError(w, err)
			return
		}
		writeSuccess(w, http.StatusCreated, created)
	}
}

func listClinicsHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clinics, err := svc.ListClinics(r.Context())
		if err != nil {
			respondClinicError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, clinics)
	}
}

func getClinicHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		detail, err := svc.GetClinic(r.Context(), id)
		if err != nil {
			respondClinicError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, detail)
	}
}

func updateClinicHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		var req updateClinicRequest
		if !decodeBody(w, r, &req) {
			return
		}

		patch := clinic.ClinicPatch{
			Name:        req.Name,
			Address:     req.Address,
			Phone:       req.Phone,
			Email:       req.Email,
			Description: req.Description,
			Image:       req.Image,
		}
		if req.Hours != nil {
			hours := toHours(*req.Hours)
			patch.Hours = &hours
		}
		if req.Services != nil {
			services := toNewServices(*req.Services)
			patch.Services = &services
		}

		detail, err := svc.UpdateClinic(r.Context(), id, patch)
		if err != nil {
			respondClinicError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, detail)
	}
}

func deleteClinicHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteClinic(r.Context(), id); err != nil {
			respondClinicError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "clinic deleted")
	}
}

// respondClinicError maps clinic service errors for the clinic, service and
// appointment handlers.
func respondClinicError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, clinic.ErrMissingFields),
		errors.Is(err, clinic.ErrNoFieldsToUpdate),
		errors.Is(err, clinic.ErrInvalidAppointmentStatus),
		errors.Is(err, clinic.ErrInvalidDate),
		errors.Is(err, clinic.ErrInvalidTime),
		errors.Is(err, clinic.ErrClinicHasAppointments),
		errors.Is(err, clinic.ErrServiceNotInClinic):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, clinic.ErrClinicNotFound),
		errors.Is(err, clinic.ErrServiceNotFound),
		errors.Is(err, clinic.ErrAppointmentNotFound),
		errors.Is(err, clinic.ErrPetNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, clinic.ErrClinicNameTaken),
		errors.Is(err, clinic.ErrServiceNameTaken),
		errors.Is(err, clinic.ErrServiceInUse):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
