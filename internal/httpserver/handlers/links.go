package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/linkshelf/linkshelf/internal/domain"
	"github.com/linkshelf/linkshelf/internal/httpserver/deps"
	"github.com/linkshelf/linkshelf/internal/links"
	"github.com/linkshelf/linkshelf/internal/logger"
)

type createLinkRequest struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

type linkListResponse struct {
	Links []*domain.Link `json:"links"`
	Count int            `json:"count"`
}

// ListLinks returns all links, newest first. Optional query filters:
// ?group= narrows to one category group, ?category= to one effective
// category, ?favorite=true to favorites only.
func ListLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var list []*domain.Link
		if group := q.Get("group"); group != "" {
			list = d.Links.ListGroup(domain.CategoryGroup(group))
		} else {
			list = d.Links.List()
		}

		if category := q.Get("category"); category != "" {
			want := domain.ParseCategory(category)
			list = filterLinks(list, func(l *domain.Link) bool {
				return l.EffectiveCategory() == want
			})
		}
		if q.Get("favorite") == "true" {
			list = filterLinks(list, func(l *domain.Link) bool { return l.IsFavorite })
		}

		writeJSON(w, http.StatusOK, linkListResponse{Links: list, Count: len(list)})
	}
}

func filterLinks(list []*domain.Link, keep func(*domain.Link) bool) []*domain.Link {
	out := make([]*domain.Link, 0, len(list))
	for _, l := range list {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

// CreateLink saves a URL. Saving an already-known URL returns the
// existing link with 200 instead of creating a second record.
func CreateLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createLinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}

		link, created, err := d.Links.Create(r.Context(), req.URL, req.Title)
		if err != nil {
			if errors.Is(err, links.ErrEmptyURL) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			d.Logger.Error("failed to create link", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save link")
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, status, link)
	}
}

// GetLink returns a single link by id.
func GetLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		link, err := d.Links.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, link)
	}
}

// DeleteLink removes a link.
func DeleteLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Links.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type favoriteRequest struct {
	Favorite bool `json:"favorite"`
}

// SetFavorite toggles the favorite flag.
func SetFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req favoriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}

		link, err := d.Links.SetFavorite(r.Context(), chi.URLParam(r, "id"), req.Favorite)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, link)
	}
}

type categoryRequest struct {
	Category string `json:"category"`
}

// SetCategory sets or clears (empty string) the user's category
// override. The automatic category keeps updating underneath.
func SetCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}

		var category domain.Category
		if req.Category != "" {
			category = domain.ParseCategory(req.Category)
		}

		link, err := d.Links.SetCategoryOverride(r.Context(), chi.URLParam(r, "id"), category)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, link)
	}
}

type noteRequest struct {
	Note string `json:"note"`
}

// SetNote sets or clears (empty string) the link's free-form note.
func SetNote(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req noteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}

		link, err := d.Links.SetNote(r.Context(), chi.URLParam(r, "id"), req.Note)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, link)
	}
}

type reminderRequest struct {
	RemindAt *time.Time `json:"remindAt"`
}

// SetReminder sets or clears (null) the link's reminder.
func SetReminder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reminderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}

		var fireAt time.Time
		if req.RemindAt != nil {
			fireAt = *req.RemindAt
			if fireAt.Before(time.Now()) {
				writeError(w, http.StatusBadRequest, "remindAt must be in the future")
				return
			}
		}

		link, err := d.Links.SetReminder(r.Context(), chi.URLParam(r, "id"), fireAt)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, link)
	}
}

// EnrichLink re-submits a link to the enrichment pipeline. The pass
// runs in the background; filled fields stay as they are.
func EnrichLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		link, err := d.Links.Enrich(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, link)
	}
}
