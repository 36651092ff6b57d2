package api

import (
	"net/http"

	"github.com/pawhub/pet-adoption-platform/internal/user"
)

type createUserRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone"`
	Role     string  `json:"role"`
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
}

func createUserHandler(svc *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if !decodeBody(w, r, &req) {
			return
		}

		created, err := svc.Register(r.Context(), user.NewUser{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Phone:    req.Phone,
			Role:     req.Role,
		})
		if err != nil {
			respondUserError(w, err)
			return
		}

		writeSuccess(w, http.StatusCreated, created)
	}
}

func listUsersHandler(svc *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListUsers(r.Context())
		if err != nil {
			respondUserError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, users)
	}
}

func getUserHandler(svc *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		u, err := svc.GetUser(r.Context(), id)
		if err != nil {
			respondUserError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, u)
	}
}

func updateUserHandler(svc *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		var req updateUserRequest
		if !decodeBody(w, r, &req) {
			return
		}

		updated, err := svc.UpdateUser(r.Context(), id, user.Patch{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Phone:    req.Phone,
			Role:     req.Role,
		})
		if err != nil {
			respondUserError(w, err)
			return
		}
		writeSuccess(w, http.StatusOK, updated)
	}
}

func deleteUserHandler(svc *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(w, r)
		if !ok {
			return
		}

		if err := svc.DeleteUser(r.Context(), id); err != nil {
			respondUserError(w, err)
			return
		}
		writeMessage(w, http.StatusOK, "user deleted")
	}
}
