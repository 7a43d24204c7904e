package handlers

import (
	"net/http"

	"github.com/linkshelf/linkshelf/internal/httpserver/deps"
	"github.com/linkshelf/linkshelf/internal/logger"
)

type resyncResponse struct {
	Resynced int `json:"resynced"`
}

// Resync rebuilds the memory index and the widget projection from the
// store.
func Resync(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := d.Links.Resync(r.Context())
		if err != nil {
			d.Logger.Error("resync failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "resync failed")
			return
		}
		writeJSON(w, http.StatusOK, resyncResponse{Resynced: count})
	}
}

// Drain triggers an immediate drain of the share inbox.
func Drain(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.DrainTrigger <- struct{}{}:
			d.Logger.Info("manual drain triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusAccepted)
		default:
			d.Logger.Warn("drain already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusTooManyRequests)
		}
	}
}
