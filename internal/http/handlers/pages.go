package handlers

import (
	"encoding/json"
	"net/http"

	pagesvc "backoffice/internal/services/page"

	"github.com/go-chi/chi/v5"
)

// ListPages handles the coalesced page list query and returns the
// {count, data} envelope.
func ListPages(pages *pagesvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		res, err := pages.Find(r.Context(), actor, parseListQuery(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func GetPage(pages *pagesvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		p, err := pages.FindOne(r.Context(), actor, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

type createPageRequest struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Summary  string `json:"summary"`
	Contents string `json:"contents"`
}

func CreatePage(pages *pagesvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		var req createPageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}

		id, err := pages.Insert(r.Context(), actor, req.Title, req.Slug, req.Summary, req.Contents)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	}
}

// DeletePage soft-deletes; the row greys out client-side, no refetch.
func DeletePage(pages *pagesvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		if err := pages.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}
