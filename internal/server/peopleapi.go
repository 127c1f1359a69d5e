package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/cwkr/peopledir/internal/directory"
	"github.com/cwkr/peopledir/internal/httputil"
	"github.com/cwkr/peopledir/internal/odata"
	"github.com/cwkr/peopledir/internal/people"
)

type peopleAPIHandler struct {
	mode     string
	remote   people.Store
	local    people.Store
	settings directory.Settings
}

func (p *peopleAPIHandler) query(r *http.Request) (odata.Query, error) {
	var (
		params  = r.URL.Query()
		options = []odata.Option{odata.EscapeLiterals(p.settings.EscapeFilterLiterals)}
	)
	if params.Has("search") {
		return odata.BySearch(params.Get("search"), p.settings.SearchMinLength, options...)
	}
	return odata.ByInitial(strings.TrimSpace(params.Get("initial")), options...)
}

func (p *peopleAPIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Printf("%s %s", r.Method, r.URL)

	httputil.AllowCORS(w, r, []string{http.MethodGet, http.MethodOptions}, true)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var store, err = directory.SelectStore(p.mode, r.Host, p.remote, p.local)
	if err != nil {
		log.Printf("!!! %v", err)
		httputil.Error(w, httputil.ErrorInternal, err.Error(), http.StatusInternalServerError)
		return
	}

	query, err := p.query(r)
	if err != nil {
		httputil.Error(w, httputil.ErrorInvalidRequest, err.Error(), http.StatusBadRequest)
		return
	}

	if result, err := store.Query(r.Context(), query); err != nil {
		log.Printf("!!! %v", err)
		httputil.Error(w, httputil.ErrorBadGateway, err.Error(), http.StatusBadGateway)
	} else {
		httputil.NoCache(w)
		httputil.WriteJSON(w, http.StatusOK, people.NewEnvelope(result))
	}
}

func PeopleHandler(mode string, remote, local people.Store, settings directory.Settings) http.Handler {
	return &peopleAPIHandler{
		mode:     mode,
		remote:   remote,
		local:    local,
		settings: settings,
	}
}
