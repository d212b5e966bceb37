package handlers

import (
	"encoding/json"
	"net/http"

	"backoffice/internal/auth"
	"backoffice/internal/config"
	usersvc "backoffice/internal/services/user"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a session token plus the user
// payload. Wrong email and wrong password answer identically.
func Login(users *usersvc.Service, cfg config.Cfg) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}

		u, err := users.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
			return
		}

		token, err := auth.MintToken(cfg.Sec.JWTSecret, u.ID, u.Roles, cfg.Sec.TokenTTL)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": u})
	}
}

// Register is the public signup path: it always creates a standard-role
// account, whatever the caller might wish for.
func Register(users *usersvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req usersvc.InsertRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}

		id, err := users.Insert(r.Context(), auth.Actor{}, req, nil)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	}
}
