package server

import (
	_ "embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/cwkr/peopledir/internal/htmlutil"
	"github.com/cwkr/peopledir/internal/httputil"
	"github.com/cwkr/peopledir/internal/people"
	"github.com/cwkr/peopledir/internal/server/session"
	"github.com/cwkr/peopledir/internal/stringutil"
)

//go:embed templates/index.gohtml
var indexTpl string

//go:embed templates/style.css
var styleCSS []byte

func LoadIndexTemplate(filename string) error {
	if bytes, err := os.ReadFile(filename); err == nil {
		indexTpl = string(bytes)
		return nil
	} else {
		return err
	}
}

type indexHandler struct {
	basePath        string
	title           string
	searchMinLength int
	sessionManager  session.Manager
	tpl             *template.Template
	version         string
}

func (i *indexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Printf("%s %s", r.Method, r.URL)

	var d, err = i.sessionManager.Directory(r, w)
	if err != nil {
		htmlutil.Error(w, i.basePath, err.Error(), http.StatusInternalServerError)
		return
	}

	var (
		ctx    = r.Context()
		params = r.URL.Query()
		search = strings.TrimSpace(params.Get("search"))
	)

	switch {
	case params.Has("initial"):
		d.SetInitial(ctx, strings.TrimSpace(params.Get("initial")))
	case params.Has("search"):
		d.Search(ctx, search)
	case params.Has("person"):
		var id, err = strconv.Atoi(params.Get("person"))
		if err == nil {
			err = d.ShowDetailByID(id)
		}
		if err != nil {
			if errors.Is(err, people.ErrPersonNotFound) {
				htmlutil.Error(w, i.basePath, err.Error(), http.StatusNotFound)
			} else {
				htmlutil.Error(w, i.basePath, "person must be a numeric id", http.StatusBadRequest)
			}
			return
		}
	case params.Has("list"):
		d.ShowList()
	}

	httputil.NoCache(w)
	w.Header().Set("Content-Type", "text/html;charset=UTF-8")
	err = i.tpl.ExecuteTemplate(w, "index", map[string]any{
		"base_path":         i.basePath,
		"title":             i.title,
		"search":            search,
		"search_min_length": i.searchMinLength,
		"state":             d.Snapshot(),
		"version":           i.version,
	})
	if err != nil {
		log.Printf("!!! %v", err)
	}
}

func IndexHandler(basePath, title string, searchMinLength int, sessionManager session.Manager, version string) http.Handler {
	return &indexHandler{
		basePath:        basePath,
		title:           title,
		searchMinLength: searchMinLength,
		sessionManager:  sessionManager,
		tpl:             template.Must(template.New("index").Funcs(stringutil.TemplateFuncs).Parse(indexTpl)),
		version:         version,
	}
}

func StyleHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css;charset=UTF-8")
		w.Header().Set("Cache-Control", "max-age=3600")
		w.Write(styleCSS)
	})
}
