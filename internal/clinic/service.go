package clinic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrClinicNameTaken          = errors.New("clinic with this name already exists")
	ErrClinicHasAppointments    = errors.New("cannot delete clinic with existing appointments")
	ErrServiceNameTaken         = errors.New("service with this name already exists for this clinic")
	ErrServiceInUse             = errors.New("cannot delete service because it is used in one or more appointments")
	ErrServiceNotInClinic       = errors.New("invalid service id")
	ErrPetNotFound              = errors.New("pet not found")
	ErrInvalidAppointmentStatus = errors.New("invalid status, must be one of: scheduled, completed, cancelled")
	ErrInvalidDate              = errors.New("appointment_date must be in YYYY-MM-DD form")
	ErrInvalidTime              = errors.New("appointment_time must be in HH:MM form")
	ErrMissingFields            = errors.New("missing required fields")
	ErrNoFieldsToUpdate         = errors.New("no fields to update")
)


// Service orchestrates clinics, their services and appointment booking.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validTime(s string) bool {
	if _, err := time.Parse("15:04", s); err == nil {
		return true
	}
	_, err := time.Parse("15:04:05", s)
	return err == nil
}

// Clinics

func (s *Service) CreateClinic(ctx context.Context, c NewClinic) (*Clinic, error) {
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Address) == "" ||
		strings.TrimSpace(c.Phone) == "" || strings.TrimSpace(c.Email) == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.repo.GetClinicByName(ctx, c.Name)
	if err != nil && !errors.Is(err, ErrClinicNotFound) {
		return nil, fmt.Errorf("check clinic name: %w", err)
	}
	if existing != nil {
		return nil, ErrClinicNameTaken
	}

	created, err := s.repo.CreateClinic(ctx, c)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) GetClinic(ctx context.Context, id uuid.UUID) (*ClinicDetail, error) {
	c, err := s.repo.GetClinicByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hours, err := s.repo.GetClinicHours(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load clinic hours: %w", err)
	}

	services, err := s.repo.ListServicesByClinic(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load clinic services: %w", err)
	}

	return &ClinicDetail{Clinic: *c, Hours: hours, Services: services}, nil
}

func (s *Service) ListClinics(ctx context.Context) ([]Clinic, error) {
	return s.repo.ListClinics(ctx)
}

func (s *Service) UpdateClinic(ctx context.Context, id uuid.UUID, patch ClinicPatch) (*ClinicDetail, error) {
	if patch == (ClinicPatch{}) {
		return nil, ErrNoFieldsToUpdate
	}

	if _, err := s.repo.GetClinicByID(ctx, id); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		other, err := s.repo.GetClinicByName(ctx, *patch.Name)
		if err != nil && !errors.Is(err, ErrClinicNotFound) {
			return nil, fmt.Errorf("check clinic name: %w", err)
		}
		if other != nil && other.ID != id {
			return nil, ErrClinicNameTaken
		}
	}

	if err := s.repo.UpdateClinic(ctx, id, patch); err != nil {
		return nil, err
	}

	return s.GetClinic(ctx, id)
}

func (s *Service) DeleteClinic(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetClinicByID(ctx, id); err != nil {
		return err
	}

	busy, err := s.repo.ClinicHasAppointments(ctx, id)
	if err != nil {
		return fmt.Errorf("check clinic appointments: %w", err)
	}
	if busy {
		return ErrClinicHasAppointments
	}

	return s.repo.DeleteClinic(ctx, id)
}

// Clinic services

func (s *Service) CreateService(ctx context.Context, clinicID uuid.UUID, ns NewClinicService) (*ClinicService, error) {
	if strings.TrimSpace(ns.Name) == "" {
		return nil, ErrMissingFields
	}

	if _, err := s.repo.GetClinicByID(ctx, clinicID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetServiceByClinicAndName(ctx, clinicID, ns.Name)
	if err != nil && !errors.Is(err, ErrServiceNotFound) {
		return nil, fmt.Errorf("check service name: %w", err)
	}
	if existing != nil {
		return nil, ErrServiceNameTaken
	}

	created, err := s.repo.CreateService(ctx, clinicID, ns)
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return created, nil
}

func (s *Service) GetService(ctx context.Context, id uuid.UUID) (*ClinicServiceDetail, error) {
	return s.repo.GetServiceByID(ctx, id)
}

func (s *Service) ListServices(ctx context.Context) ([]ClinicServiceDetail, error) {
	return s.repo.ListServices(ctx)
}

func (s *Service) ListServicesByClinic(ctx context.Context, clinicID uuid.UUID) ([]ClinicService, error) {
	if _, err := s.repo.GetClinicByID(ctx, clinicID); err != nil {
		return nil, err
	}
	return s.repo.ListServicesByClinic(ctx, clinicID)
}

func (s *Service) UpdateService(ctx context.Context, id uuid.UUID, patch ServicePatch) (*ClinicService, error) {
	if patch == (ServicePatch{}) {
		return nil, ErrNoFieldsToUpdate
	}

	current, err := s.repo.GetServiceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	clinicID := current.ClinicID
	if patch.ClinicID != nil && *patch.ClinicID != current.ClinicID {
		if _, err := s.repo.GetClinicByID(ctx, *patch.ClinicID); err != nil {
			return nil, err
		}
		clinicID = *patch.ClinicID
	}

	if patch.Name != nil {
		other, err := s.repo.GetServiceByClinicAndName(ctx, clinicID, *patch.Name)
		if err != nil && !errors.Is(err, ErrServiceNotFound) {
			return nil, fmt.Errorf("check service name: %w", err)
		}
		if other != nil && other.ID != id {
			return nil, ErrServiceNameTaken
		}
	}

	updated, err := s.repo.UpdateService(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	return updated, nil
}

func (s *Service) DeleteService(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetServiceByID(ctx, id); err != nil {
		return err
	}

	used, err := s.repo.ServiceInUse(ctx, id)
	if err != nil {
		return fmt.Errorf("check service usage: %w", err)
	}
	if used {
		return ErrServiceInUse
	}

	return s.repo.DeleteService(ctx, id)
}

// Appointments

// validateServices checks every id individually against the clinic; the
// first offender aborts with its id named, before any row is written.
func (s *Service) validateServices(ctx context.Context, clinicID uuid.UUID, serviceIDs []uuid.UUID) error {
	for _, serviceID := range serviceIDs {
		ok, err := s.repo.ServiceBelongsToClinic(ctx, serviceID, clinicID)
		if err != nil {
			return fmt.Errorf("check service %s: %w", serviceID, err)
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrServiceNotInClinic, serviceID)
		}
	}
	return nil
}

func (s *Service) CreateAppointment(ctx context.Context, a NewAppointment) (*Appointment, error) {
	if a.Date == "" || a.Time == "" || len(a.ServiceIDs) == 0 {
		return nil, ErrMissingFields
	}
	if !validDate(a.Date) {
		return nil, ErrInvalidDate
	}
	if !validTime(a.Time) {
		return nil, ErrInvalidTime
	}

	exists, err := s.repo.PetExists(ctx, a.PetID)
	if err != nil {
		return nil, fmt.Errorf("check pet: %w", err)
	}
	if !exists {
		return nil, ErrPetNotFound
	}

	if _, err := s.repo.GetClinicByID(ctx, a.ClinicID); err != nil {
		return nil, err
	}

	if err := s.validateServices(ctx, a.ClinicID, a.ServiceIDs); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateAppointment(ctx, a)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*AppointmentDetail, error) {
	d, err := s.repo.GetAppointmentDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	services, err := s.repo.GetAppointmentServices(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load appointment services: %w", err)
	}
	d.Services = services

	return d, nil
}

// hydrateServices runs one services query per appointment row.
func (s *Service) hydrateServices(ctx context.Context, list []AppointmentDetail) ([]AppointmentDetail, error) {
	for i := range list {
		services, err := s.repo.GetAppointmentServices(ctx, list[i].ID)
		if err != nil {
			return nil, fmt.Errorf("load appointment services: %w", err)
		}
		list[i].Services = services
	}
	return list, nil
}

func (s *Service) ListAppointments(ctx context.Context) ([]AppointmentDetail, error) {
	list, err := s.repo.ListAppointments(ctx)
	if err != nil {
		return nil, err
	}
	return s.hydrateServices(ctx, list)
}

func (s *Service) ListAppointmentsByPet(ctx context.Context, petID uuid.UUID) ([]AppointmentDetail, error) {
	exists, err := s.repo.PetExists(ctx, petID)
	if err != nil {
		return nil, fmt.Errorf("check pet: %w", err)
	}
	if !exists {
		return nil, ErrPetNotFound
	}

	list, err := s.repo.ListAppointmentsByPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	return s.hydrateServices(ctx, list)
}

func (s *Service) ListAppointmentsByClinic(ctx context.Context, clinicID uuid.UUID) ([]AppointmentDetail, error) {
	if _, err := s.repo.GetClinicByID(ctx, clinicID); err != nil {
		return nil, err
	}

	list, err := s.repo.ListAppointmentsByClinic(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	return s.hydrateServices(ctx, list)
}

func (s *Service) ListAppointmentsByOwner(ctx context.Context, userID uuid.UUID) ([]AppointmentDetail, error) {
	list, err := s.repo.ListAppointmentsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.hydrateServices(ctx, list)
}

// UpdateAppointment merges the patch over the stored row, re-validates any
// supplied references, then writes the merged row and, when a service list
// was supplied, replaces the service set entirely, in one transaction.
func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, patch AppointmentPatch) (*Appointment, error) {
	if patch == (AppointmentPatch{}) {
		return nil, ErrNoFieldsToUpdate
	}

	current, err := s.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *current

	if patch.PetID != nil {
		exists, err := s.repo.PetExists(ctx, *patch.PetID)
		if err != nil {
			return nil, fmt.Errorf("check pet: %w", err)
		}
		if !exists {
			return nil, ErrPetNotFound
		}
		merged.PetID = *patch.PetID
	}

	if patch.ClinicID != nil {
		if _, err := s.repo.GetClinicByID(ctx, *patch.ClinicID); err != nil {
			return nil, err
		}
		merged.ClinicID = *patch.ClinicID
	}

	if patch.Date != nil {
		if !validDate(*patch.Date) {
			return nil, ErrInvalidDate
		}
		merged.Date = *patch.Date
	}
	if patch.Time != nil {
		if !validTime(*patch.Time) {
			return nil, ErrInvalidTime
		}
		merged.Time = *patch.Time
	}
	if patch.Reason != nil {
		merged.Reason = patch.Reason
	}
	if patch.Notes != nil {
		merged.Notes = patch.Notes
	}
	if patch.Status != nil {
		if !ValidAppointmentStatus(*patch.Status) {
			return nil, ErrInvalidAppointmentStatus
		}
		merged.Status = *patch.Status
	}

	// Services are validated against the clinic the row will reference
	// after the merge, which may differ from the stored one.
	if patch.ServiceIDs != nil {
		if err := s.validateServices(ctx, merged.ClinicID, *patch.ServiceIDs); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateAppointment(ctx, merged, patch.ServiceIDs); err != nil {
		return nil, err
	}

	return s.repo.GetAppointmentByID(ctx, id)
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetAppointmentByID(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteAppointment(ctx, id)
}
