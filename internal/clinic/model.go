package clinic

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ValidAppointmentStatus reports whether s is one of the three appointment states.
func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Clinic struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Description *string   `json:"description,omitempty"`
	Image       *string   `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ClinicDetail is a clinic with its child rows, the shape of the get-one read.
type ClinicDetail struct {
	Clinic
	Hours    []Hour          `json:"hours"`
	Services []ClinicService `json:"services"`
}

// Hour is one opening-hours row: one day of the week with open and close
// times in HH:MM form.
type Hour struct {
	Day       string `json:"day"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

type ClinicService struct {
	ID          uuid.UUID `json:"id"`
	ClinicID    uuid.UUID `json:"clinic_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
}

type ClinicServiceDetail struct {
	ClinicService
	ClinicName string `json:"clinic_name"`
}

type Appointment struct {
	ID        uuid.UUID         `json:"id"`
	PetID     uuid.UUID         `json:"pet_id"`
	ClinicID  uuid.UUID         `json:"clinic_id"`
	Date      string            `json:"appointment_date"`
	Time      string            `json:"appointment_time"`
	Reason    *string           `json:"reason,omitempty"`
	Notes     *string           `json:"notes,omitempty"`
	Status    AppointmentStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

type AppointmentDetail struct {
	Appointment
	PetName    string          `json:"pet_name"`
	ClinicName string          `json:"clinic_name"`
	Services   []ClinicService `json:"services"`
}

type NewClinic struct {
	Name        string
	Address     string
	Phone       string
	Email       string
	Description *string
	Image       *string
	Hours       []Hour
	Services    []NewClinicService
}

type NewClinicService struct {
	Name        string
	Description *string
	Price       float64
}

// ClinicPatch is a partial update. Nil scalar fields keep their stored
// values. A non-nil Hours or Services slice replaces the existing child rows
// entirely; nil leaves them untouched.
type ClinicPatch struct {
	Name        *string
	Address     *string
	Phone       *string
	Email       *string
	Description *string
	Image       *string
	Hours       *[]Hour
	Services    *[]NewClinicService
}

type ServicePatch struct {
	ClinicID    *uuid.UUID
	Name        *string
	Description *string
	Price       *float64
}

type NewAppointment struct {
	PetID      uuid.UUID
	ClinicID   uuid.UUID
	Date       string
	Time       string
	Reason     *string
	ServiceIDs []uuid.UUID
}

// AppointmentPatch is a partial update; a non-nil ServiceIDs slice replaces
// the appointment's service set entirely.
type AppointmentPatch struct {
	PetID      *uuid.UUID
	ClinicID   *uuid.UUID
	Date       *string
	Time       *string
	Reason     *string
	Notes      *string
	Status     *AppointmentStatus
	ServiceIDs *[]uuid.UUID
}
