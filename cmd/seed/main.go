package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/pawhub/pet-adoption-platform/internal/config"
	"github.com/pawhub/pet-adoption-platform/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedAdmin(context.Background(), pool, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := seedUsers(context.Background(), pool, 50); err != nil {
		log.Fatalf("seed users: %v", err)
	}
	categoryIDs, err := seedCategories(context.Background(), pool)
	if err != nil {
		log.Fatalf("seed categories: %v", err)
	}
	if err := seedPets(context.Background(), pool, categoryIDs, 200); err != nil {
		log.Fatalf("seed pets: %v", err)
	}
	if err := seedClinics(context.Background(), pool, 10); err != nil {
		log.Fatalf("seed clinics: %v", err)
	}

	log.Println("seed complete")
}

// seedAdmin upserts the bootstrap admin account, keyed by email.
func seedAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, 'Administrator', $2, $3, 'admin')
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, role = 'admin'
	`, uuid.New(), email, string(hash))
	if err != nil {
		return err
	}

	log.Printf("admin account ready: %s", email)
	return nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d users", count)

	// One shared hash keeps the run fast; demo accounts all use "password".
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		phone := gofakeit.Phone()
		_, err := tx.Exec(ctx, `
			INSERT INTO users (id, name, email, password_hash, phone, role)
			VALUES ($1, $2, $3, $4, $5, 'user')
			ON CONFLICT (email) DO NOTHING
		`, uuid.New(), gofakeit.Name(), gofakeit.Email(), string(hash), phone)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("users seeded")
	return nil
}

func seedCategories(ctx context.Context, pool *pgxpool.Pool) ([]uuid.UUID, error) {
	categories := map[string]string{
		"Dogs":    "Dogs of all breeds and sizes",
		"Cats":    "Cats and kittens",
		"Birds":   "Parrots, canaries and other birds",
		"Rabbits": "Rabbits and other small mammals",
	}

	ids := make([]uuid.UUID, 0, len(categories))
	for name, desc := range categories {
		var id uuid.UUID
		err := pool.QueryRow(ctx, `
			INSERT INTO pet_categories (id, name, description)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
			RETURNING id
		`, uuid.New(), name, desc).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	log.Println("categories seeded")
	return ids, nil
}

func seedPets(ctx context.Context, pool *pgxpool.Pool, categoryIDs []uuid.UUID, count int) error {
	log.Printf("seeding %d pets", count)

	genders := []string{"male", "female"}
	sizes := []string{"small", "medium", "large"}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		categoryID := categoryIDs[gofakeit.Number(0, len(categoryIDs)-1)]
		name := gofakeit.PetName()
		breed := gofakeit.Dog()
		age := gofakeit.Number(0, 15)
		gender := genders[gofakeit.Number(0, 1)]
		size := sizes[gofakeit.Number(0, 2)]
		color := gofakeit.Color()
		desc := gofakeit.Sentence(10)

		_, err := tx.Exec(ctx, `
			INSERT INTO pets (id, name, category_id, breed, age, gender, size, color, description, is_available)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true)
		`, uuid.New(), name, categoryID, breed, age, gender, size, color, desc)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("pets seeded")
	return nil
}

func seedClinics(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d clinics", count)

	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	services := []struct {
		name  string
		price float64
	}{
		{"General Checkup", 45},
		{"Vaccination", 30},
		{"Dental Cleaning", 120},
		{"Grooming", 55},
		{"Surgery Consultation", 90},
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		name := fmt.Sprintf("%s Veterinary Clinic", gofakeit.City())

		var clinicID uuid.UUID
		err := tx.QueryRow(ctx, `
			INSERT INTO vet_clinics (id, name, address, phone, email, description)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (name) DO UPDATE SET address = EXCLUDED.address
			RETURNING id
		`, uuid.New(), name, gofakeit.Address().Address, gofakeit.Phone(), gofakeit.Email(), gofakeit.Sentence(8)).Scan(&clinicID)
		if err != nil {
			return err
		}

		for _, day := range days {
			_, err := tx.Exec(ctx, `
				INSERT INTO clinic_hours (id, clinic_id, day, open_time, close_time)
				VALUES ($1, $2, $3, '09:00', '18:00')
			`, uuid.New(), clinicID, day)
			if err != nil {
				return err
			}
		}

		for _, s := range services {
			_, err := tx.Exec(ctx, `
				INSERT INTO clinic_services (id, clinic_id, name, price)
				VALUES ($1, $2, $3, $4)
			`, uuid.New(), clinicID, s.name, s.price)
			if err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("clinics seeded")
	return nil
}
