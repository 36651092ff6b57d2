package clinic

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrClinicNotFound      = errors.New("clinic not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// Repository contains all DB interactions needed by the clinic service.
// Create, update and delete of clinics and appointments are transactional:
// the parent row and its child rows commit or roll back together.
type Repository interface {
	// Clinics
	CreateClinic(ctx context.Context, c NewClinic) (*Clinic, error)
	GetClinicByID(ctx context.Context, id uuid.UUID) (*Clinic, error)
	GetClinicByName(ctx context.Context, name string) (*Clinic, error)
	ListClinics(ctx context.Context) ([]Clinic, error)
	GetClinicHours(ctx context.Context, clinicID uuid.UUID) ([]Hour, error)
	UpdateClinic(ctx context.Context, id uuid.UUID, patch ClinicPatch) error
	DeleteClinic(ctx context.Context, id uuid.UUID) error
	ClinicHasAppointments(ctx context.Context, clinicID uuid.UUID) (bool, error)

	// Clinic services
	CreateService(ctx context.Context, clinicID uuid.UUID, s NewClinicService) (*ClinicService, error)
	GetServiceByID(ctx context.Context, id uuid.UUID) (*ClinicServiceDetail, error)
	GetServiceByClinicAndName(ctx context.Context, clinicID uuid.UUID, name string) (*ClinicService, error)
	ListServices(ctx context.Context) ([]ClinicServiceDetail, error)
	ListServicesByClinic(ctx context.Context, clinicID uuid.UUID) ([]ClinicService, error)
	UpdateService(ctx context.Context, id uuid.UUID, patch ServicePatch) (*ClinicService, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
	ServiceInUse(ctx context.Context, serviceID uuid.UUID) (bool, error)
	ServiceBelongsToClinic(ctx context.Context, serviceID, clinicID uuid.UUID) (bool, error)

	// Appointments
	CreateAppointment(ctx context.Context, a NewAppointment) (*Appointment, error)
	GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	GetAppointmentDetail(ctx context.Context, id uuid.UUID) (*AppointmentDetail, error)
	ListAppointments(ctx context.Context) ([]AppointmentDetail, error)
	ListAppointmentsByPet(ctx context.Context, petID uuid.UUID) ([]AppointmentDetail, error)
	ListAppointmentsByClinic(ctx context.Context, clinicID uuid.UUID) ([]AppointmentDetail, error)
	ListAppointmentsByOwner(ctx context.Context, userID uuid.UUID) ([]AppointmentDetail, error)
	GetAppointmentServices(ctx context.Context, appointmentID uuid.UUID) ([]ClinicService, error)

	// UpdateAppointment writes the fully merged row; a non-nil serviceIDs
	// slice additionally replaces the join rows, all in one transaction.
	UpdateAppointment(ctx context.Context, a Appointment, serviceIDs *[]uuid.UUID) error

	DeleteAppointment(ctx context.Context, id uuid.UUID) error

	// Pet existence check against the pets table
	PetExists(ctx context.Context, id uuid.UUID) (bool, error)
}
