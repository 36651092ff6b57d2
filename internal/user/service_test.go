package user

import (
	"context"
	"encoding/json"
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
	byID map[uuid.UUID]User
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[uuid.UUID]User{}}
}

func (r *testRepo) CreateUser(ctx context.Context, u User) (*User, error) {
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	r.byID[u.ID] = u
	return &u, nil
}

func (r *testRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (r *testRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *testRepo) ListUsers(ctx context.Context) ([]User, error) {
	out := make([]User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

func (r *testRepo) UpdateUser(ctx context.Context, u User) (*User, error) {
	if _, ok := r.byID[u.ID]; !ok {
		return nil, ErrUserNotFound
	}
	r.byID[u.ID] = u
	return &u, nil
}

func (r *testRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Register_HashesPassword(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	created, err := svc.Register(context.Background(), NewUser{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if created.Role != RoleUser {
		t.Fatalf("expected default role user, got %s", created.Role)
	}
	if created.PasswordHash == "hunter2" || created.PasswordHash == "" {
		t.Fatalf("expected password to be stored hashed")
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, NewUser{Name: "Ana", Email: "ana@example.com", Password: "x1"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register(ctx, NewUser{Name: "Other", Email: "ana@example.com", Password: "x2"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestService_Authenticate(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, NewUser{Name: "Ana", Email: "ana@example.com", Password: "hunter2"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	u, err := svc.Authenticate(ctx, "ana@example.com", "hunter2")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if u.Email != "ana@example.com" {
		t.Fatalf("unexpected user %s", u.Email)
	}

	if _, err := svc.Authenticate(ctx, "ana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	// Unknown email reports the same error as a bad password.
	if _, err := svc.Authenticate(ctx, "ghost@example.com", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestUser_JSON_NeverCarriesHash(t *testing.T) {
	u := User{ID: uuid.New(), Name: "Ana", Email: "ana@example.com", PasswordHash: "secret-hash", Role: RoleUser}

	raw, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "secret-hash") || strings.Contains(string(raw), "password") {
		t.Fatalf("hash leaked into JSON: %s", raw)
	}
}

func TestService_UpdateUser_RehashesPasswordAndChecksEmail(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	ana, err := svc.Register(ctx, NewUser{Name: "Ana", Email: "ana@example.com", Password: "one"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, NewUser{Name: "Ben", Email: "ben@example.com", Password: "two"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	taken := "ben@example.com"
	if _, err := svc.UpdateUser(ctx, ana.ID, Patch{Email: &taken}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	newPw := "three"
	updated, err := svc.UpdateUser(ctx, ana.ID, Patch{Password: &newPw})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PasswordHash == ana.PasswordHash {
		t.Fatalf("expected password hash to change")
	}
	if _, err := svc.Authenticate(ctx, "ana@example.com", "three"); err != nil {
		t.Fatalf("authenticate with new password: %v", err)
	}
}

func TestService_UpdateUser_EmptyPatch(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	_, err := svc.UpdateUser(context.Background(), uuid.New(), Patch{})
	if !errors.Is(err, ErrNoFieldsToUpdate) {
		t.Fatalf("expected ErrNoFieldsToUpdate, got %v", err)
	}
}
