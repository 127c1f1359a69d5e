package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime"

	"github.com/cwkr/peopledir/internal/directory"
	"github.com/cwkr/peopledir/internal/htmlutil"
	"github.com/cwkr/peopledir/internal/people"
	"github.com/cwkr/peopledir/internal/server"
	"github.com/cwkr/peopledir/internal/server/session"
	"github.com/cwkr/peopledir/middleware"
	"github.com/cwkr/peopledir/settings"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

var version = "v0.1.x"

func main() {
	var (
		serverSettings   *settings.Server
		remoteStore      people.Store
		localStore       people.Store
		err              error
		configFilename   string
		settingsFilename string
		saveSettings     bool
		printVersion     bool
		setPort          int
	)

	log.SetOutput(os.Stdout)

	flag.StringVar(&configFilename, "config", "", "config file name")
	flag.BoolVar(&saveSettings, "save", false, "save config and exit")
	flag.BoolVar(&printVersion, "version", false, "print version and exit")
	flag.IntVar(&setPort, "port", 6080, "http server port")
	flag.Parse()

	if printVersion {
		fmt.Println(version)
		os.Exit(0)
	} else {
		log.Printf("Starting Directory Server %s built with %s", version, runtime.Version())
	}

	// Set defaults
	serverSettings = settings.NewDefault(setPort)

	settingsFilename = settings.ProbeSettingsFilename(configFilename)

	if settings.FileExists(settingsFilename) {
		log.Printf("Loading settings from %s", settingsFilename)
		if err := serverSettings.Load(settingsFilename); err != nil {
			log.Fatalf("!!! %s", err)
		}
	}

	if serverSettings.IndexTemplate != "" {
		var filename = serverSettings.ResolvePath(settingsFilename, serverSettings.IndexTemplate)
		log.Printf("Loading index template from %s", filename)
		if err := server.LoadIndexTemplate(filename); err != nil {
			log.Fatalf("!!! %s", err)
		}
	}

	if setPort != serverSettings.Port {
		serverSettings.Port = setPort
	}

	if saveSettings {
		log.Printf("Saving settings to %s", settingsFilename)
		if err := serverSettings.Save(settingsFilename); err != nil {
			log.Fatalf("!!! %s", err)
		}
		os.Exit(0)
	}

	var dbs = make(map[string]*sql.DB)

	remoteStore, localStore, err = serverSettings.NewStores(settingsFilename, dbs, http.DefaultClient)
	if err != nil {
		log.Fatalf("!!! %s", err)
	}

	var (
		basePath          = serverSettings.CleanBasePath()
		directorySettings = serverSettings.DirectorySettings()
		sessionStore      = sessions.NewCookieStore([]byte(serverSettings.CookieSecret))
	)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.MaxAge = 0
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	if basePath != "" {
		sessionStore.Options.Path = basePath
	}

	var sessionManager = session.NewManager(sessionStore, serverSettings.SessionTTL, func(r *http.Request) (*directory.Directory, error) {
		var store, err = directory.SelectStore(serverSettings.Mode, r.Host, remoteStore, localStore)
		if err != nil {
			return nil, err
		}
		var d = directory.New(store, directorySettings)
		d.GetPeopleAlpha(r.Context())
		return d, nil
	})

	var router = mux.NewRouter()
	router.Use(middleware.ForwardSession)

	router.NotFoundHandler = htmlutil.NotFoundHandler(basePath)
	router.Handle(basePath+"/", server.IndexHandler(basePath, serverSettings.TitleOrDefault(), directorySettings.SearchMinLength, sessionManager, version)).
		Methods(http.MethodGet)
	router.Handle(basePath+"/style.css", server.StyleHandler()).
		Methods(http.MethodGet)
	router.Handle(basePath+"/health", server.HealthHandler(serverSettings.Mode, remoteStore, localStore)).
		Methods(http.MethodGet)
	router.Handle(basePath+"/info", server.InfoHandler(version, runtime.Version(), sessionManager)).
		Methods(http.MethodGet)

	if !serverSettings.DisableAPI {
		router.Handle(basePath+"/api/v1/people", server.PeopleHandler(serverSettings.Mode, remoteStore, localStore, directorySettings)).
			Methods(http.MethodGet, http.MethodOptions)
	}

	log.Printf("Listening on http://localhost:%d%s/", serverSettings.Port, basePath)
	err = http.ListenAndServe(fmt.Sprintf(":%d", serverSettings.Port), router)
	if err != nil {
		log.Fatalf("!!! %s", err)
	}
}
