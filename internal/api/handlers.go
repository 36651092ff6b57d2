package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// idParam parses the {id} route parameter. A false return means the error
// response has already been written.
func idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "could not parse JSON body")
		return false
	}
	return true
}

// queryUUID parses an optional ?key= filter. ok is false only when the
// parameter is present but malformed.
func queryUUID(w http.ResponseWriter, r *http.Request, key string) (id uuid.UUID, present, ok bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return uuid.Nil, false, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, key+" must be a valid UUID")
		return uuid.Nil, true, false
	}
	return id, true, true
}
