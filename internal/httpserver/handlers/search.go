package handlers

import (
	"net/http"
	"strings"

	"github.com/linkshelf/linkshelf/internal/httpserver/deps"
)

// Search ranks saved links against a free-text query. Matches titles,
// host names and user notes; best match first.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			writeError(w, http.StatusBadRequest, "missing q query parameter")
			return
		}

		results := d.Links.Search(query)
		writeJSON(w, http.StatusOK, linkListResponse{Links: results, Count: len(results)})
	}
}
