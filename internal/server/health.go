package server

import (
	"log"
	"net/http"
	"time"

	"github.com/cwkr/peopledir/internal/directory"
	"github.com/cwkr/peopledir/internal/httputil"
	"github.com/cwkr/peopledir/internal/people"
	"github.com/cwkr/peopledir/internal/server/session"
)

type healthHandler struct {
	mode   string
	remote people.Store
	local  people.Store
}

func (h *healthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Printf("%s %s", r.Method, r.URL)

	httputil.NoCache(w)
	var store, err = directory.SelectStore(h.mode, r.Host, h.remote, h.local)
	if err == nil {
		err = store.Ping()
	}
	if err != nil {
		log.Printf("!!! Health check failed: %v", err)
		httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "DOWN", "error": err.Error()})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"status": "UP"})
}

// HealthHandler pings the store a request from the same host would be
// served from. Stores the mode never selects are not checked.
func HealthHandler(mode string, remote, local people.Store) http.Handler {
	return &healthHandler{mode: mode, remote: remote, local: local}
}

func InfoHandler(version, goVersion string, sessionManager session.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL)

		var info = map[string]any{
			"version":    version,
			"go_version": goVersion,
			"views":      sessionManager.Len(),
		}
		var viewInfo session.ViewInfo
		if sessionManager.GetViewInfo(&viewInfo, r) {
			info["view"] = map[string]any{
				"id":         viewInfo.ViewID,
				"created_at": viewInfo.CreatedAt.Format(time.RFC3339),
				"last_used":  viewInfo.LastUsed.Format(time.RFC3339),
			}
		}
		httputil.NoCache(w)
		httputil.WriteJSON(w, http.StatusOK, info)
	})
}
