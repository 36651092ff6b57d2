package clinic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Helpers

func scanClinic(row pgx.Row) (*Clinic, error) {
	var c Clinic

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Address,
		&c.Phone,
		&c.Email,
		&c.Description,
		&c.Image,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClinicNotFound
		}
		return nil, err
	}

	return &c, nil
}

func scanService(row pgx.Row) (*ClinicService, error) {
	var s ClinicService

	err := row.Scan(
		&s.ID,
		&s.ClinicID,
		&s.Name,
		&s.Description,
		&s.Price,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	return &s, nil
}

func scanServiceDetail(row pgx.Row) (*ClinicServiceDetail, error) {
	var d ClinicServiceDetail

	err := row.Scan(
		&d.ID,
		&d.ClinicID,
		&d.Name,
		&d.Description,
		&d.Price,
		&d.ClinicName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	return &d, nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment

	err := row.Scan(
		&a.ID,
		&a.PetID,
		&a.ClinicID,
		&a.Date,
		&a.Time,
		&a.Reason,
		&a.Notes,
		&a.Status,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	return &a, nil
}

const clinicColumns = `id, name, address, phone, email, description, image, created_at`

const appointmentColumns = `id, pet_id, clinic_id,
		to_char(appointment_date, 'YYYY-MM-DD'),
		to_char(appointment_time, 'HH24:MI'),
		reason, notes, status, created_at`

// Clinics

func (r *PgRepository) CreateClinic(ctx context.Context, c NewClinic) (*Clinic, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin clinic create: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO vet_clinics (id, name, address, phone, email, description, image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING %s
	`, clinicColumns), uuid.New(), c.Name, c.Address, c.Phone, c.Email, c.Description, c.Image)

	created, err := scanClinic(row)
	if err != nil {
		return nil, fmt.Errorf("insert clinic: %w", err)
	}

	if err := insertHours(ctx, tx, created.ID, c.Hours); err != nil {
		return nil, err
	}
	if err := insertServices(ctx, tx, created.ID, c.Services); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit clinic create: %w", err)
	}

	return created, nil
}

func insertHours(ctx context.Context, tx pgx.Tx, clinicID uuid.UUID, hours []Hour) error {
	for _, h := range hours {
		_, err := tx.Exec(ctx, `
			INSERT INTO clinic_hours (id, clinic_id, day, open_time, close_time)
			VALUES ($1, $2, $3, $4::time, $5::time)
		`, uuid.New(), clinicID, h.Day, h.OpenTime, h.CloseTime)
		if err != nil {
			return fmt.Errorf("insert clinic hours: %w", err)
		}
	}
	return nil
}

func insertServices(ctx context.Context, tx pgx.Tx, clinicID uuid.UUID, services []NewClinicService) error {
	for _, s := range services {
		_, err := tx.Exec(ctx, `
			INSERT INTO clinic_services (id, clinic_id, name, description, price)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New(), clinicID, s.Name, s.Description, s.Price)
		if err != nil {
			return fmt.Errorf("insert clinic service: %w", err)
		}
	}
	return nil
}

func (r *PgRepository) GetClinicByID(ctx context.Context, id uuid.UUID) (*Clinic, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM vet_clinics WHERE id = $1
	`, clinicColumns), id)
	return scanClinic(row)
}

func (r *PgRepository) GetClinicByName(ctx context.Context, name string) (*Clinic, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM vet_clinics WHERE name = $1
	`, clinicColumns), name)
	return scanClinic(row)
}

func (r *PgRepository) ListClinics(ctx context.Context) ([]Clinic, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM vet_clinics ORDER BY name
	`, clinicColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []Clinic{}
	for rows.Next() {
		c, err := scanClinic(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}

	return result, rows.Err()
}

func (r *PgRepository) GetClinicHours(ctx context.Context, clinicID uuid.UUID) ([]Hour, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT day, to_char(open_time, 'HH24:MI'), to_char(close_time, 'HH24:MI')
		FROM clinic_hours
		WHERE clinic_id = $1
		ORDER BY array_position(
			ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday'], day)
	`, clinicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []Hour{}
	for rows.Next() {
		var h Hour
		if err := rows.Scan(&h.Day, &h.OpenTime, &h.CloseTime); err != nil {
			return nil, err
		}
		result = append(result, h)
	}

	return result, rows.Err()
}

func (r *PgRepository) UpdateClinic(ctx context.Context, id uuid.UUID, patch ClinicPatch) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin clinic update: %w", err)
	}
	defer tx.Rollback(ctx)

	sets := make([]string, 0, 6)
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Address != nil {
		add("address", *patch.Address)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Image != nil {
		add("image", *patch.Image)
	}

	if len(sets) > 0 {
		_, err := tx.Exec(ctx, fmt.Sprintf(`
			UPDATE vet_clinics SET %s WHERE id = $1
		`, strings.Join(sets, ", ")), args...)
		if err != nil {
			return fmt.Errorf("update clinic: %w", err)
		}
	}

	// Replace-entirely: delete all child rows, insert the supplied set.
	if patch.Hours != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM clinic_hours WHERE clinic_id = $1`, id); err != nil {
			return fmt.Errorf("delete clinic hours: %w", err)
		}
		if err := insertHours(ctx, tx, id, *patch.Hours); err != nil {
			return err
		}
	}

	if patch.Services != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM clinic_services WHERE clinic_id = $1`, id); err != nil {
			return fmt.Errorf("delete clinic services: %w", err)
		}
		if err := insertServices(ctx, tx, id, *patch.Services); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit clinic update: %w", err)
	}

	return nil
}

func (r *PgRepository) DeleteClinic(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin clinic delete: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM clinic_hours WHERE clinic_id = $1`, id); err != nil {
		return fmt.Errorf("delete clinic hours: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM clinic_services WHERE clinic_id = $1`, id); err != nil {
		return fmt.Errorf("delete clinic services: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM vet_clinics WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete clinic: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit clinic delete: %w", err)
	}

	return nil
}

func (r *PgRepository) ClinicHasAppointments(ctx context.Context, clinicID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM vet_appointments WHERE clinic_id = $1)
	`, clinicID).Scan(&exists)
	return exists, err
}

// Clinic services

func (r *PgRepository) CreateService(ctx context.Context, clinicID uuid.UUID, s NewClinicService) (*ClinicService, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO clinic_services (id, clinic_id, name, description, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, clinic_id, name, description, price
	`, uuid.New(), clinicID, s.Name, s.Description, s.Price)
	return scanService(row)
}

func (r *PgRepository) GetServiceByID(ctx context.Context, id uuid.UUID) (*ClinicServiceDetail, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT cs.id, cs.clinic_id, cs.name, cs.description, cs.price, vc.name AS clinic_name
		FROM clinic_services cs
		JOIN vet_clinics vc ON cs.clinic_id = vc.id
		WHERE cs.id = $1
	`, id)
	return scanServiceDetail(row)
}

func (r *PgRepository) GetServiceByClinicAndName(ctx context.Context, clinicID uuid.UUID, name string) (*ClinicService, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, clinic_id, name, description, price
		FROM clinic_services
		WHERE clinic_id = $1 AND name = $2
	`, clinicID, name)
	return scanService(row)
}

func (r *PgRepository) ListServices(ctx context.Context) ([]ClinicServiceDetail, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT cs.id, cs.clinic_id, cs.name, cs.description, cs.price, vc.name AS clinic_name
		FROM clinic_services cs
		JOIN vet_clinics vc ON cs.clinic_id = vc.id
		ORDER BY cs.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []ClinicServiceDetail{}
	for rows.Next() {
		d, err := scanServiceDetail(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}

	return result, rows.Err()
}

func (r *PgRepository) ListServicesByClinic(ctx context.Context, clinicID uuid.UUID) ([]ClinicService, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, clinic_id, name, description, price
		FROM clinic_services
		WHERE clinic_id = $1
		ORDER BY name
	`, clinicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectServices(rows)
}

func collectServices(rows pgx.Rows) ([]ClinicService, error) {
	result := []ClinicService{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

func (r *PgRepository) UpdateService(ctx context.Context, id uuid.UUID, patch ServicePatch) (*ClinicService, error) {
	sets := make([]string, 0, 4)
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.ClinicID != nil {
		add("clinic_id", *patch.ClinicID)
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}

	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE clinic_services
		SET %s
		WHERE id = $1
		RETURNING id, clinic_id, name, description, price
	`, strings.Join(sets, ", ")), args...)
	return scanService(row)
}

func (r *PgRepository) DeleteService(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clinic_services WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *PgRepository) ServiceInUse(ctx context.Context, serviceID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM vet_appointment_services WHERE service_id = $1)
	`, serviceID).Scan(&exists)
	return exists, err
}

func (r *PgRepository) ServiceBelongsToClinic(ctx context.Context, serviceID, clinicID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM clinic_services WHERE id = $1 AND clinic_id = $2)
	`, serviceID, clinicID).Scan(&exists)
	return exists, err
}

// Appointments

func (r *PgRepository) CreateAppointment(ctx context.Context, a NewAppointment) (*Appointment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin appointment create: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO vet_appointments
			(id, pet_id, clinic_id, appointment_date, appointment_time, reason, status, created_at)
		VALUES ($1, $2, $3, $4::date, $5::time, $6, 'scheduled', now())
		RETURNING %s
	`, appointmentColumns), uuid.New(), a.PetID, a.ClinicID, a.Date, a.Time, a.Reason)

	created, err := scanAppointment(row)
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}

	for _, serviceID := range a.ServiceIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO vet_appointment_services (appointment_id, service_id)
			VALUES ($1, $2)
		`, created.ID, serviceID)
		if err != nil {
			return nil, fmt.Errorf("insert appointment service: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit appointment create: %w", err)
	}

	return created, nil
}

func (r *PgRepository) GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM vet_appointments WHERE id = $1
	`, appointmentColumns), id)
	return scanAppointment(row)
}

func (r *PgRepository) GetAppointmentDetail(ctx context.Context, id uuid.UUID) (*AppointmentDetail, error) {
	row := r.pool.QueryRow(ctx, appointmentDetailQuery+` WHERE va.id = $1`, id)

	var d AppointmentDetail
	err := row.Scan(
		&d.ID,
		&d.PetID,
		&d.ClinicID,
		&d.Date,
		&d.Time,
		&d.Reason,
		&d.Notes,
		&d.Status,
		&d.CreatedAt,
		&d.PetName,
		&d.ClinicName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	return &d, nil
}

const appointmentDetailQuery = `
	SELECT va.id, va.pet_id, va.clinic_id,
		to_char(va.appointment_date, 'YYYY-MM-DD'),
		to_char(va.appointment_time, 'HH24:MI'),
		va.reason, va.notes, va.status, va.created_at,
		p.name AS pet_name, vc.name AS clinic_name
	FROM vet_appointments va
	JOIN pets p ON va.pet_id = p.id
	JOIN vet_clinics vc ON va.clinic_id = vc.id`

const appointmentDetailOrder = ` ORDER BY va.appointment_date DESC, va.appointment_time ASC`

func (r *PgRepository) ListAppointments(ctx context.Context) ([]AppointmentDetail, error) {
	rows, err := r.pool.Query(ctx, appointmentDetailQuery+appointmentDetailOrder)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointmentDetails(rows)
}

func (r *PgRepository) ListAppointmentsByPet(ctx context.Context, petID uuid.UUID) ([]AppointmentDetail, error) {
	rows, err := r.pool.Query(ctx,
		appointmentDetailQuery+` WHERE va.pet_id = $1`+appointmentDetailOrder, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointmentDetails(rows)
}

func (r *PgRepository) ListAppointmentsByClinic(ctx context.Context, clinicID uuid.UUID) ([]AppointmentDetail, error) {
	rows, err := r.pool.Query(ctx,
		appointmentDetailQuery+` WHERE va.clinic_id = $1`+appointmentDetailOrder, clinicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointmentDetails(rows)
}

func (r *PgRepository) ListAppointmentsByOwner(ctx context.Context, userID uuid.UUID) ([]AppointmentDetail, error) {
	rows, err := r.pool.Query(ctx,
		appointmentDetailQuery+` WHERE p.owner_id = $1`+appointmentDetailOrder, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointmentDetails(rows)
}

func collectAppointmentDetails(rows pgx.Rows) ([]AppointmentDetail, error) {
	result := []AppointmentDetail{}
	for rows.Next() {
		var d AppointmentDetail
		err := rows.Scan(
			&d.ID,
			&d.PetID,
			&d.ClinicID,
			&d.Date,
			&d.Time,
			&d.Reason,
			&d.Notes,
			&d.Status,
			&d.CreatedAt,
			&d.PetName,
			&d.ClinicName,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (r *PgRepository) GetAppointmentServices(ctx context.Context, appointmentID uuid.UUID) ([]ClinicService, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT cs.id, cs.clinic_id, cs.name, cs.description, cs.price
		FROM vet_appointment_services vas
		JOIN clinic_services cs ON vas.service_id = cs.id
		WHERE vas.appointment_id = $1
		ORDER BY cs.name
	`, appointmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectServices(rows)
}

func (r *PgRepository) UpdateAppointment(ctx context.Context, a Appointment, serviceIDs *[]uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin appointment update: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE vet_appointments
		SET pet_id = $2, clinic_id = $3, appointment_date = $4::date,
			appointment_time = $5::time, reason = $6, notes = $7, status = $8
		WHERE id = $1
	`, a.ID, a.PetID, a.ClinicID, a.Date, a.Time, a.Reason, a.Notes, a.Status)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}

	if serviceIDs != nil {
		if _, err := tx.Exec(ctx, `
			DELETE FROM vet_appointment_services WHERE appointment_id = $1
		`, a.ID); err != nil {
			return fmt.Errorf("delete appointment services: %w", err)
		}

		for _, serviceID := range *serviceIDs {
			_, err := tx.Exec(ctx, `
				INSERT INTO vet_appointment_services (appointment_id, service_id)
				VALUES ($1, $2)
			`, a.ID, serviceID)
			if err != nil {
				return fmt.Errorf("insert appointment service: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit appointment update: %w", err)
	}

	return nil
}

func (r *PgRepository) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin appointment delete: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM vet_appointment_services WHERE appointment_id = $1
	`, id); err != nil {
		return fmt.Errorf("delete appointment services: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM vet_appointments WHERE id = $1
	`, id); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit appointment delete: %w", err)
	}

	return nil
}

func (r *PgRepository) PetExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM pets WHERE id = $1)
	`, id).Scan(&exists)
	return exists, err
}
