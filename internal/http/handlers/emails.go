package handlers

import (
	"encoding/json"
	"net/http"

	"backoffice/internal/domain/email"
	emailsvc "backoffice/internal/services/email"

	"github.com/go-chi/chi/v5"
)

func GetEmail(emails *emailsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		e, err := emails.FindOne(r.Context(), actor, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

type createEmailRequest struct {
	Title    string `json:"title"`
	Heading  string `json:"heading"`
	Summary  string `json:"summary"`
	Contents string `json:"contents"`
}

func CreateEmail(emails *emailsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		var req createEmailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}

		id, err := emails.Insert(r.Context(), actor, req.Title, req.Heading, req.Summary, req.Contents)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	}
}

// UpdateEmail applies a partial template mutation; absent fields stay as
// they are.
func UpdateEmail(emails *emailsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		var upd email.Update
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}

		if err := emails.Update(r.Context(), actor, chi.URLParam(r, "id"), upd); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}
