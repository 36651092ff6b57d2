package api

import (
	"errors"
	"net/http"

	redisclient "github.com/pawhub/pet-adoption-platform/internal/redis"
	"github.com/pawhub/pet-adoption-platform/internal/user"
)

type registerRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

func registerHandler(svc *user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !decodeBody(w, r, &req) {
			return
		}

		created, err := svc.Register(r.Context(), user.NewUser{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Phone:    req.Phone,
		})
		if err != nil {
			respondUserError(w, err)
			return
		}

		writeSuccess(w, http.StatusCreated, created)
	}
}

func loginHandler(svc *user.Service, sessions redisclient.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		u, err := svc.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			respondUserError(w, err)
			return
		}

		token, err := sessions.Create(r.Context(), u.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeSuccess(w, http.StatusOK, loginResponse{Token: token, User: u})
	}
}

func logoutHandler(sessions redisclient.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing or malformed Authorization header")
			return
		}

		if err := sessions.Revoke(r.Context(), token); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		writeMessage(w, http.StatusOK, "logged out")
	}
}

func respondUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrMissingFields),
		errors.Is(err, user.ErrNoFieldsToUpdate):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, user.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
