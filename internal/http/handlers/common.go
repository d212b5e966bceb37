package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"backoffice/internal/auth"
	"backoffice/internal/domain/listing"
	middlewarex "backoffice/internal/http/middleware"
	"backoffice/internal/store/repositories"
	"backoffice/internal/validate"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the service error kinds onto status codes. Validation
// failures name the field and value; denials stay generic.
func writeError(w http.ResponseWriter, err error) {
	var fe *validate.FieldError
	var nf *repositories.NotFoundError

	switch {
	case errors.As(err, &fe):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fe.Error()})
	case errors.Is(err, auth.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "operation not permitted"})
	case errors.As(err, &nf):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": nf.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func actorFrom(w http.ResponseWriter, r *http.Request) (auth.Actor, bool) {
	a, ok := middlewarex.ActorFrom(r.Context())
	if !ok {
		http.Error(w, "actor not found", http.StatusUnauthorized)
		return auth.Actor{}, false
	}
	return a, true
}

// parseListQuery reads the coalesced list query parameters. Defaults and
// bounds are applied by Query.Normalize downstream.
func parseListQuery(r *http.Request) listing.Query {
	q := listing.Query{SortDir: listing.Asc}

	vals := r.URL.Query()
	if v := vals.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Limit = n
		}
	}
	if v := vals.Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Skip = n
		}
	}
	if v := vals.Get("sortField"); v != "" {
		q.SortField = v
	}
	if v := vals.Get("sortDir"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && listing.SortDir(n) == listing.Desc {
			q.SortDir = listing.Desc
		}
	}
	q.Search = vals.Get("search")
	return q
}
