package clinic

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	clinics      map[uuid.UUID]Clinic
	hours        map[uuid.UUID][]Hour
	services     map[uuid.UUID]ClinicService
	appointments map[uuid.UUID]Appointment
	joins        map[uuid.UUID][]uuid.UUID // appointment -> service ids
	pets         map[uuid.UUID]bool
}

func newTestRepo() *testRepo {
	return &testRepo{
		clinics:      map[uuid.UUID]Clinic{},
		hours:        map[uuid.UUID][]Hour{},
		services:     map[uuid.UUID]ClinicService{},
		appointments: map[uuid.UUID]Appointment{},
		joins:        map[uuid.UUID][]uuid.UUID{},
		pets:         map[uuid.UUID]bool{},
	}
}

func (r *testRepo) addPet() uuid.UUID {
	id := uuid.New()
	r.pets[id] = true
	return id
}

func (r *testRepo) addClinic(name string) Clinic {
	c := Clinic{
		ID:        uuid.New(),
		Name:      name,
		Address:   "1 Main St",
		Phone:     "555-0100",
		Email:     "front@clinic.test",
		CreatedAt: time.Now(),
	}
	r.clinics[c.ID] = c
	return c
}

func (r *testRepo) addService(clinicID uuid.UUID, name string, price float64) ClinicService {
	s := ClinicService{ID: uuid.New(), ClinicID: clinicID, Name: name, Price: price}
	r.services[s.ID] = s
	return s
}

func (r *testRepo) addAppointment(petID, clinicID uuid.UUID, serviceIDs ...uuid.UUID) Appointment {
	a := Appointment{
		ID:        uuid.New(),
		PetID:     petID,
		ClinicID:  clinicID,
		Date:      "2026-09-15",
		Time:      "10:30",
		Status:    StatusScheduled,
		CreatedAt: time.Now(),
	}
	r.appointments[a.ID] = a
	r.joins[a.ID] = serviceIDs
	return a
}

func (r *testRepo) CreateClinic(ctx context.Context, nc NewClinic) (*Clinic, error) {
	c := Clinic{
		ID:          uuid.New(),
		Name:        nc.Name,
		Address:     nc.Address,
		Phone:       nc.Phone,
		Email:       nc.Email,
		Description: nc.Description,
		Image:       nc.Image,
		CreatedAt:   time.Now(),
	}
	r.clinics[c.ID] = c
	r.hours[c.ID] = nc.Hours
	for _, ns := range nc.Services {
		r.addService(c.ID, ns.Name, ns.Price)
	}
	return &c, nil
}

func (r *testRepo) GetClinicByID(ctx context.Context, id uuid.UUID) (*Clinic, error) {
	c, ok := r.clinics[id]
	if !ok {
		return nil, ErrClinicNotFound
	}
	return &c, nil
}

func (r *testRepo) GetClinicByName(ctx context.Context, name string) (*Clinic, error) {
	for _, c := range r.clinics {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, ErrClinicNotFound
}

func (r *testRepo) ListClinics(ctx context.Context) ([]Clinic, error) {
	out := make([]Clinic, 0, len(r.clinics))
	for _, c := range r.clinics {
		out = append(out, c)
	}
	return out, nil
}

func (r *testRepo) GetClinicHours(ctx context.Context, clinicID uuid.UUID) ([]Hour, error) {
	return r.hours[clinicID], nil
}

func (r *testRepo) UpdateClinic(ctx context.Context, id uuid.UUID, patch ClinicPatch) error {
	c, ok := r.clinics[id]
	if !ok {
		return ErrClinicNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Address != nil {
		c.Address = *patch.Address
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Description != nil {
		c.Description = patch.Description
	}
	if patch.Image != nil {
		c.Image = patch.Image
	}
	r.clinics[id] = c

	if patch.Hours != nil {
		r.hours[id] = *patch.Hours
	}
	if patch.Services != nil {
		for sid, s := range r.services {
			if s.ClinicID == id {
				delete(r.services, sid)
			}
		}
		for _, ns := range *patch.Services {
			r.addService(id, ns.Name, ns.Price)
		}
	}
	return nil
}

func (r *testRepo) DeleteClinic(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.clinics[id]; !ok {
		return ErrClinicNotFound
	}
	delete(r.clinics, id)
	delete(r.hours, id)
	for sid, s := range r.services {
		if s.ClinicID == id {
			delete(r.services, sid)
		}
	}
	return nil
}

func (r *testRepo) ClinicHasAppointments(ctx context.Context, clinicID uuid.UUID) (bool, error) {
	for _, a := range r.appointments {
		if a.ClinicID == clinicID {
			return true, nil
		}
	}
	return false, nil
}

func (r *testRepo) CreateService(ctx context.Context, clinicID uuid.UUID, ns NewClinicService) (*ClinicService, error) {
	s := r.addService(clinicID, ns.Name, ns.Price)
	s.Description = ns.Description
	r.services[s.ID] = s
	return &s, nil
}

func (r *testRepo) GetServiceByID(ctx context.Context, id uuid.UUID) (*ClinicServiceDetail, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	d := ClinicServiceDetail{ClinicService: s}
	if c, ok := r.clinics[s.ClinicID]; ok {
		d.ClinicName = c.Name
	}
	return &d, nil
}

func (r *testRepo) GetServiceByClinicAndName(ctx context.Context, clinicID uuid.UUID, name string) (*ClinicService, error) {
	for _, s := range r.services {
		if s.ClinicID == clinicID && s.Name == name {
			s := s
			return &s, nil
		}
	}
	return nil, ErrServiceNotFound
}

func (r *testRepo) ListServices(ctx context.Context) ([]ClinicServiceDetail, error) {
	out := make([]ClinicServiceDetail, 0, len(r.services))
	for id := range r.services {
		d, _ := r.GetServiceByID(ctx, id)
		out = append(out, *d)
	}
	return out, nil
}

func (r *testRepo) ListServicesByClinic(ctx context.Context, clinicID uuid.UUID) ([]ClinicService, error) {
	out := make([]ClinicService, 0)
	for _, s := range r.services {
		if s.ClinicID == clinicID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *testRepo) UpdateService(ctx context.Context, id uuid.UUID, patch ServicePatch) (*ClinicService, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	if patch.ClinicID != nil {
		s.ClinicID = *patch.ClinicID
	}
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Description != nil {
		s.Description = patch.Description
	}
	if patch.Price != nil {
		s.Price = *patch.Price
	}
	r.services[id] = s
	return &s, nil
}

func (r *testRepo) DeleteService(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.services[id]; !ok {
		return ErrServiceNotFound
	}
	delete(r.services, id)
	return nil
}

func (r *testRepo) ServiceInUse(ctx context.Context, serviceID uuid.UUID) (bool, error) {
	for _, ids := range r.joins {
		for _, id := range ids {
			if id == serviceID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *testRepo) ServiceBelongsToClinic(ctx context.Context, serviceID, clinicID uuid.UUID) (bool, error) {
	s, ok := r.services[serviceID]
	return ok && s.ClinicID == clinicID, nil
}

func (r *testRepo) CreateAppointment(ctx context.Context, na NewAppointment) (*Appointment, error) {
	a := Appointment{
		ID:        uuid.New(),
		PetID:     na.PetID,
		ClinicID:  na.ClinicID,
		Date:      na.Date,
		Time:      na.Time,
		Reason:    na.Reason,
		Status:    StatusScheduled,
		CreatedAt: time.Now(),
	}
	r.appointments[a.ID] = a
	r.joins[a.ID] = na.ServiceIDs
	return &a, nil
}

func (r *testRepo) GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return &a, nil
}

func (r *testRepo) GetAppointmentDetail(ctx context.Context, id uuid.UUID) (*AppointmentDetail, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	d := AppointmentDetail{Appointment: a}
	if c, ok := r.clinics[a.ClinicID]; ok {
		d.ClinicName = c.Name
	}
	return &d, nil
}

func (r *testRepo) ListAppointments(ctx context.Context) ([]AppointmentDetail, error) {
	out := make([]AppointmentDetail, 0, len(r.appointments))
	for id := range r.appointments {
		d, _ := r.GetAppointmentDetail(ctx, id)
		out = append(out, *d)
	}
	return out, nil
}

func (r *testRepo) ListAppointmentsByPet(ctx context.Context, petID uuid.UUID) ([]AppointmentDetail, error) {
	out := make([]AppointmentDetail, 0)
	for id, a := range r.appointments {
		if a.PetID == petID {
			d, _ := r.GetAppointmentDetail(ctx, id)
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *testRepo) ListAppointmentsByClinic(ctx context.Context, clinicID uuid.UUID) ([]AppointmentDetail, error) {
	out := make([]AppointmentDetail, 0)
	for id, a := range r.appointments {
		if a.ClinicID == clinicID {
			d, _ := r.GetAppointmentDetail(ctx, id)
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *testRepo) ListAppointmentsByOwner(ctx context.Context, userID uuid.UUID) ([]AppointmentDetail, error) {
	return nil, nil
}

func (r *testRepo) GetAppointmentServices(ctx context.Context, appointmentID uuid.UUID) ([]ClinicService, error) {
	out := make([]ClinicService, 0)
	for _, sid := range r.joins[appointmentID] {
		if s, ok := r.services[sid]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *testRepo) UpdateAppointment(ctx context.Context, a Appointment, serviceIDs *[]uuid.UUID) error {
	if _, ok := r.appointments[a.ID]; !ok {
		return ErrAppointmentNotFound
	}
	r.appointments[a.ID] = a
	if serviceIDs != nil {
		r.joins[a.ID] = *serviceIDs
	}
	return nil
}

func (r *testRepo) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.appointments[id]; !ok {
		return ErrAppointmentNotFound
	}
	delete(r.appointments, id)
	delete(r.joins, id)
	return nil
}

func (r *testRepo) PetExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.pets[id], nil
}

// -------------------------
// Tests
// -------------------------

func TestService_CreateAppointment_RejectsForeignService(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	clinic := repo.addClinic("North Vet")
	other := repo.addClinic("South Vet")
	own := repo.addService(clinic.ID, "Checkup", 45)
	foreign := repo.addService(other.ID, "Grooming", 55)
	pet := repo.addPet()

	_, err := svc.CreateAppointment(ctx, NewAppointment{
		PetID:      pet,
		ClinicID:   clinic.ID,
		Date:       "2026-09-15",
		Time:       "10:30",
		ServiceIDs: []uuid.UUID{own.ID, foreign.ID},
	})
	if !errors.Is(err, ErrServiceNotInClinic) {
		t.Fatalf("expected ErrServiceNotInClinic, got %v", err)
	}
	// The offending id is named so the client can fix the request.
	if !strings.Contains(err.Error(), foreign.ID.String()) {
		t.Fatalf("expected error to name service %s, got %q", foreign.ID, err)
	}
	if len(repo.appointments) != 0 {
		t.Fatalf("expected no appointment row after failed validation")
	}
}

func TestService_CreateAppointment_ValidatesDateAndTime(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	clinic := repo.addClinic("North Vet")
	service := repo.addService(clinic.ID, "Checkup", 45)
	pet := repo.addPet()

	base := NewAppointment{
		PetID:      pet,
		ClinicID:   clinic.ID,
		ServiceIDs: []uuid.UUID{service.ID},
	}

	bad := base
	bad.Date, bad.Time = "15-09-2026", "10:30"
	if _, err := svc.CreateAppointment(ctx, bad); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}

	bad = base
	bad.Date, bad.Time = "2026-09-15", "quarter past"
	if _, err := svc.CreateAppointment(ctx, bad); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}

	good := base
	good.Date, good.Time = "2026-09-15", "10:30"
	created, err := svc.CreateAppointment(ctx, good)
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	if created.Status != StatusScheduled {
		t.Fatalf("expected scheduled status, got %s", created.Status)
	}
}

func TestService_UpdateClinic_ReplacesHoursEntirely(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	clinic := repo.addClinic("North Vet")
	repo.hours[clinic.ID] = []Hour{
		{Day: "Monday", OpenTime: "09:00", CloseTime: "18:00"},
		{Day: "Tuesday", OpenTime: "09:00", CloseTime: "18:00"},
	}

	newHours := []Hour{{Day: "Saturday", OpenTime: "10:00", CloseTime: "14:00"}}
	detail, err := svc.UpdateClinic(ctx, clinic.ID, ClinicPatch{Hours: &newHours})
	if err != nil {
		t.Fatalf("update clinic: %v", err)
	}

	if len(detail.Hours) != 1 || detail.Hours[0].Day != "Saturday" {
		t.Fatalf("expected hours replaced entirely, got %#v", detail.Hours)
	}
	// Scalars untouched.
	if detail.Name != "North Vet" {
		t.Fatalf("expected name unchanged, got %s", detail.Name)
	}
}

func TestService_UpdateAppointment_ReplacesServiceSet(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	clinic := repo.addClinic("North Vet")
	s1 := repo.addService(clinic.ID, "Checkup", 45)
	s2 := repo.addService(clinic.ID, "Vaccination", 30)
	s3 := repo.addService(clinic.ID, "Grooming", 55)
	pet := repo.addPet()
	appt := repo.addAppointment(pet, clinic.ID, s1.ID, s2.ID)

	ids := []uuid.UUID{s3.ID}
	if _, err := svc.UpdateAppointment(ctx, appt.ID, AppointmentPatch{ServiceIDs: &ids}); err != nil {
		t.Fatalf("update appointment: %v", err)
	}

	got := repo.joins[appt.ID]
	if len(got) != 1 || got[0] != s3.ID {
		t.Fatalf("expected service set replaced with %s, got %v", s3.ID, got)
	}
}

func TestService_UpdateAppointment_KeepsStoredFieldsWhenOmitted(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	clinic := repo.addClinic("North Vet")
	s1 := repo.addService(clinic.ID, "Checkup", 45)
	pet := repo.addPet()
	appt := repo.addAppointment(pet, clinic.ID, s1.ID)

	status := StatusCompleted
	updated, err := svc.UpdateAppointment(ctx, appt.ID, AppointmentPatch{Status: &status})
	if err != nil {
		t.Fatalf("update appointment: %v", err)
	}

	if updated.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", updated.Status)
	}
	if updated.Date != appt.Date || updated.Time != appt.Time || updated.PetID != appt.PetID {
		t.Fatalf("expected omitted fields to keep stored values")
	}
	if got := repo.joins[appt.ID]; len(got) != 1 || got[0] != s1.ID {
		t.Fatalf("expected service set untouched, got %v", got)
	}
}

func TestService_UpdateAppointment_EmptyPatch(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	_, err := svc.UpdateAppointment(context.Background(), uuid.New(), AppointmentPatch{})
	if !errors.Is(err, ErrNoFieldsToUpdate) {
		t.Fatalf("expected ErrNoFieldsToUpdate, got %v", err)
	}
}

func TestService_DeleteClinic_BlockedByAppointments(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	clinic := repo.addClinic("North Vet")
	s1 := repo.addService(clinic.ID, "Checkup", 45)
	repo.addAppointment(repo.addPet(), clinic.ID, s1.ID)

	if err := svc.DeleteClinic(ctx, clinic.ID); !errors.Is(err, ErrClinicHasAppointments) {
		t.Fatalf("expected ErrClinicHasAppointments, got %v", err)
	}
	if _, ok := repo.clinics[clinic.ID]; !ok {
		t.Fatalf("expected clinic to survive blocked delete")
	}
}

func TestService_DeleteClinic_RemovesChildRows(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	clinic := repo.addClinic("North Vet")
	repo.hours[clinic.ID] = []Hour{{Day: "Monday", OpenTime: "09:00", CloseTime: "18:00"}}
	repo.addService(clinic.ID, "Checkup", 45)

	if err := svc.DeleteClinic(ctx, clinic.ID); err != nil {
		t.Fatalf("delete clinic: %v", err)
	}
	if len(repo.hours[clinic.ID]) != 0 {
		t.Fatalf("expected hours removed with clinic")
	}
	for _, s := range repo.services {
		if s.ClinicID == clinic.ID {
			t.Fatalf("expected services removed with clinic")
		}
	}
}

func TestService_DeleteService_BlockedWhileReferenced(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	clinic := repo.addClinic("North Vet")
	s1 := repo.addService(clinic.ID, "Checkup", 45)
	repo.addAppointment(repo.addPet(), clinic.ID, s1.ID)

	if err := svc.DeleteService(ctx, s1.ID); !errors.Is(err, ErrServiceInUse) {
		t.Fatalf("expected ErrServiceInUse, got %v", err)
	}
}

func TestService_CreateClinic_DuplicateName(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	repo.addClinic("North Vet")

	_, err := svc.CreateClinic(ctx, NewClinic{
		Name:    "North Vet",
		Address: "2 Side St",
		Phone:   "555-0101",
		Email:   "other@clinic.test",
	})
	if !errors.Is(err, ErrClinicNameTaken) {
		t.Fatalf("expected ErrClinicNameTaken, got %v", err)
	}
}
