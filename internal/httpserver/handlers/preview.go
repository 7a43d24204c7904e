package handlers

import (
	"net/http"
	"strings"

	"github.com/linkshelf/linkshelf/internal/httpserver/deps"
	"github.com/linkshelf/linkshelf/internal/logger"
)

type previewResponse struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// Preview fetches title and category for a URL without saving it.
// Backs the add-form preview while the user is still typing.
func Preview(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawURL := strings.TrimSpace(r.URL.Query().Get("url"))
		if rawURL == "" {
			writeError(w, http.StatusBadRequest, "url query parameter is required")
			return
		}

		md := d.Metadata.FetchMetadata(r.Context(), rawURL)
		d.Logger.Debug("preview fetched",
			logger.String("url", rawURL),
			logger.String("category", string(md.Category)))

		writeJSON(w, http.StatusOK, previewResponse{
			URL:      rawURL,
			Title:    md.Title,
			Category: string(md.Category),
		})
	}
}
