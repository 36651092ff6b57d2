package shelter

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

func scanCategory(row pgx.Row) (*Category, error) {
	var c Category

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	return &c, nil
}

const petColumns = `id, name, category_id, breed, age, gender, size, color,
		description, medical_history, is_available, image_url, owner_id, created_at`

func scanPet(row pgx.Row) (*Pet, error) {
	var p Pet

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.CategoryID,
		&p.Breed,
		&p.Age,
		&p.Gender,
		&p.Size,
		&p.Color,
		&p.Description,
		&p.MedicalHistory,
		&p.IsAvailable,
		&p.ImageURL,
		&p.OwnerID,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}

	return &p, nil
}

func scanPetDetail(row pgx.Row) (*PetDetail, error) {
	var d PetDetail

	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.CategoryID,
		&d.Breed,
		&d.Age,
		&d.Gender,
		&d.Size,
		&d.Color,
		&d.Description,
		&d.MedicalHistory,
		&d.IsAvailable,
		&d.ImageURL,
		&d.OwnerID,
		&d.CreatedAt,
		&d.CategoryName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}

	return &d, nil
}

func scanRequest(row pgx.Row) (*AdoptionRequest, error) {
	var a AdoptionRequest

	err := row.Scan(
		&a.ID,
		&a.PetID,
		&a.UserID,
		&a.Reason,
		&a.Status,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	return &a, nil
}

func scanRequestDetail(row pgx.Row) (*AdoptionRequestDetail, error) {
	var d AdoptionRequestDetail

	err := row.Scan(
		&d.ID,
		&d.PetID,
		&d.UserID,
		&d.Reason,
		&d.Status,
		&d.CreatedAt,
		&d.PetName,
		&d.PetImageURL,
		&d.UserName,
		&d.UserEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	return &d, nil
}

// Categories

func (r *PgRepository) CreateCategory(ctx context.Context, name string, description *string) (*Category, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO pet_categories (id, name, description, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, name, description, created_at
	`, uuid.New(), name, description)
	return scanCategory(row)
}

func (r *PgRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, created_at
		FROM pet_categories
		WHERE id = $1
	`, id)
	return scanCategory(row)
}

func (r *PgRepository) GetCategoryByName(ctx context.Context, name string) (*Category, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, created_at
		FROM pet_categories
		WHERE name = $1
	`, name)
	return scanCategory(row)
}

func (r *PgRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, created_at
		FROM pet_categories
		ORDER BY created_at, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}

	return result, rows.Err()
}

func (r *PgRepository) UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*Category, error) {
	sets := make([]string, 0, 2)
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}

	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE pet_categories
		SET %s
		WHERE id = $1
		RETURNING id, name, description, created_at
	`, strings.Join(sets, ", ")), args...)
	return scanCategory(row)
}

func (r *PgRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pet_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *PgRepository) CountPetsInCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM pets WHERE category_id = $1
	`, categoryID).Scan(&count)
	return count, err
}

// Pets

func (r *PgRepository) CreatePet(ctx context.Context, p NewPet) (*Pet, error) {
	available := true
	if p.IsAvailable != nil {
		available = *p.IsAvailable
	}

	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO pets (id, name, category_id, breed, age, gender, size, color,
			description, medical_history, is_available, image_url, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now())
		RETURNING %s
	`, petColumns), uuid.New(), p.Name, p.CategoryID, p.Breed, p.Age, p.Gender,
		p.Size, p.Color, p.Description, p.MedicalHistory, available, p.ImageURL, p.OwnerID)
	return scanPet(row)
}

func (r *PgRepository) GetPetByID(ctx context.Context, id uuid.UUID) (*Pet, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM pets WHERE id = $1
	`, petColumns), id)
	return scanPet(row)
}

const petDetailQuery = `
	SELECT p.id, p.name, p.category_id, p.breed, p.age, p.gender, p.size, p.color,
		p.description, p.medical_history, p.is_available, p.image_url, p.owner_id,
		p.created_at, c.name AS category_name
	FROM pets p
	JOIN pet_categories c ON p.category_id = c.id`

func (r *PgRepository) ListPets(ctx context.Context) ([]PetDetail, error) {
	rows, err := r.pool.Query(ctx, petDetailQuery+` ORDER BY p.created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPetDetails(rows)
}

func (r *PgRepository) ListPetsByCategoryName(ctx context.Context, category string) ([]PetDetail, error) {
	rows, err := r.pool.Query(ctx, petDetailQuery+`
		WHERE c.name = $1
		ORDER BY p.created_at
	`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPetDetails(rows)
}

func collectPetDetails(rows pgx.Rows) ([]PetDetail, error) {
	result := []PetDetail{}
	for rows.Next() {
		d, err := scanPetDetail(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	return result, rows.Err()
}

func (r *PgRepository) UpdatePet(ctx context.Context, id uuid.UUID, patch PetPatch) (*Pet, error) {
	sets := make([]string, 0, 12)
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.CategoryID != nil {
		add("category_id", *patch.CategoryID)
	}
	if patch.Breed != nil {
		add("breed", *patch.Breed)
	}
	if patch.Age != nil {
		add("age", *patch.Age)
	}
	if patch.Gender != nil {
		add("gender", *patch.Gender)
	}
	if patch.Size != nil {
		add("size", *patch.Size)
	}
	if patch.Color != nil {
		add("color", *patch.Color)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.MedicalHistory != nil {
		add("medical_history", *patch.MedicalHistory)
	}
	if patch.IsAvailable != nil {
		add("is_available", *patch.IsAvailable)
	}
	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}
	if patch.OwnerID != nil {
		add("owner_id", *patch.OwnerID)
	}

	row := r.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE pets
		SET %s
		WHERE id = $1
		RETURNING %s
	`, strings.Join(sets, ", "), petColumns), args...)
	return scanPet(row)
}

func (r *PgRepository) DeletePet(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPetNotFound
	}
	return nil
}

// Adoption requests

func (r *PgRepository) CreateAdoptionRequest(ctx context.Context, petID, userID uuid.UUID, reason string) (*AdoptionRequest, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO adoption_requests (id, pet_id, user_id, reason, status, created_at)
		VALUES ($1, $2, $3, $4, 'pending', now())
		RETURNING id, pet_id, user_id, reason, status, created_at
	`, uuid.New(), petID, userID, reason)
	return scanRequest(row)
}

func (r *PgRepository) GetAdoptionRequestByID(ctx context.Context, id uuid.UUID) (*AdoptionRequest, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, pet_id, user_id, reason, status, created_at
		FROM adoption_requests
		WHERE id = $1
	`, id)
	return scanRequest(row)
}

const requestDetailQuery = `
	SELECT ar.id, ar.pet_id, ar.user_id, ar.reason, ar.status, ar.created_at,
		p.name AS pet_name, p.image_url AS pet_image_url,
		u.name AS user_name, u.email AS user_email
	FROM adoption_requests ar
	JOIN pets p ON ar.pet_id = p.id
	JOIN users u ON ar.user_id = u.id`

func (r *PgRepository) ListAdoptionRequests(ctx context.Context) ([]AdoptionRequestDetail, error) {
	rows, err := r.pool.Query(ctx, requestDetailQuery+` ORDER BY ar.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequestDetails(rows)
}

func (r *PgRepository) ListAdoptionRequestsByUser(ctx context.Context, userID uuid.UUID) ([]AdoptionRequestDetail, error) {
	rows, err := r.pool.Query(ctx, requestDetailQuery+`
		WHERE ar.user_id = $1
		ORDER BY ar.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequestDetails(rows)
}

func (r *PgRepository) ListAdoptionRequestsByPet(ctx context.Context, petID uuid.UUID) ([]AdoptionRequestDetail, error) {
	rows, err := r.pool.Query(ctx, requestDetailQuery+`
		WHERE ar.pet_id = $1
		ORDER BY ar.created_at DESC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectRequestDetails(rows)
}

func collectRequestDetails(rows pgx.Rows) ([]AdoptionRequestDetail, error) {
	result := []AdoptionRequestDetail{}
	for rows.Next() {
		d, err := scanRequestDetail(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	return result, rows.Err()
}

func (r *PgRepository) HasPendingRequest(ctx context.Context, petID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM adoption_requests
			WHERE pet_id = $1 AND user_id = $2 AND status = 'pending'
		)
	`, petID, userID).Scan(&exists)
	return exists, err
}

func (r *PgRepository) UpdateAdoptionRequestStatus(ctx context.Context, id uuid.UUID, status RequestStatus) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE adoption_requests SET status = $2 WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *PgRepository) ApproveAdoptionRequest(ctx context.Context, id, petID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin approval: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE adoption_requests SET status = 'approved' WHERE id = $1
	`, id); err != nil {
		return fmt.Errorf("approve request: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE pets SET is_available = false WHERE id = $1
	`, petID); err != nil {
		return fmt.Errorf("mark pet unavailable: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE adoption_requests
		SET status = 'rejected'
		WHERE pet_id = $1 AND id <> $2 AND status = 'pending'
	`, petID, id); err != nil {
		return fmt.Errorf("reject sibling requests: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit approval: %w", err)
	}

	return nil
}

func (r *PgRepository) DeleteAdoptionRequest(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM adoption_requests WHERE id = $1`, id)
	return err
}

func (r *PgRepository) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)
	`, id).Scan(&exists)
	return exists, err
}
