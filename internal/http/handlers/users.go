package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"backoffice/internal/domain/user"
	usersvc "backoffice/internal/services/user"

	"github.com/go-chi/chi/v5"
)

// parseUserCriteria reads the typed criteria fragment. Absent parameters
// never restrict.
func parseUserCriteria(r *http.Request) user.Criteria {
	var c user.Criteria
	vals := r.URL.Query()
	c.Role = vals.Get("role")
	if v := vals.Get("active"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Active = &b
		}
	}
	return c
}

func ListUsers(users *usersvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		res, err := users.Find(r.Context(), actor, parseListQuery(r), parseUserCriteria(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func CountUsers(users *usersvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		n, err := users.Count(r.Context(), actor, parseUserCriteria(r), r.URL.Query().Get("search"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"count": n})
	}
}

func GetUser(users *usersvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		u, err := users.FindOne(r.Context(), actor, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

type createUserRequest struct {
	usersvc.InsertRequest
	Roles []string `json:"roles,omitempty"`
}

// CreateUser is the admin-side insert; explicit roles require super-admin.
func CreateUser(users *usersvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}

		id, err := users.Insert(r.Context(), actor, req.InsertRequest, req.Roles)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	}
}

func UpdateUser(users *usersvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		var upd user.Update
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}

		if err := users.Update(r.Context(), actor, chi.URLParam(r, "id"), upd); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func DeleteUser(users *usersvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		if err := users.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func ActivateUser(users *usersvc.Service, active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		var err error
		if active {
			err = users.Activate(r.Context(), actor, chi.URLParam(r, "id"))
		} else {
			err = users.Deactivate(r.Context(), actor, chi.URLParam(r, "id"))
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

func ResetUserPassword(users *usersvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		var req resetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}

		if err := users.ResetPassword(r.Context(), actor, chi.URLParam(r, "id"), req.Password); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// DeleteOwnImage detaches the calling user's profile image. Returns the
// bare true the old clients expect.
func DeleteOwnImage(users *usersvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		if err := users.DeleteImage(r.Context(), actor); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, true)
	}
}
