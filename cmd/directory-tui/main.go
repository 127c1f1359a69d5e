package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwkr/peopledir/internal/directory"
	"github.com/cwkr/peopledir/internal/tui"
	"github.com/cwkr/peopledir/settings"
	"github.com/spf13/cobra"
)

var version = "v0.1.x"

var (
	configFilename string
	mode           string
	siteURL        string
	fixture        string
	logFilename    string
)

var rootCmd = &cobra.Command{
	Use:     "directory-tui",
	Short:   "Browse the employee directory in a terminal",
	Version: version,
	Long: `Browse the employee directory by last-name initial or free-text search.

The remote store is the SharePoint site user list (or the configured
people_store); the local store is the JSON fixture used for development.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&configFilename, "config", "", "config file name")
	rootCmd.Flags().StringVar(&mode, "mode", "", "store selection: auto, local or remote")
	rootCmd.Flags().StringVar(&siteURL, "site-url", "", "SharePoint site URL")
	rootCmd.Flags().StringVar(&fixture, "fixture", "", "local JSON fixture")
	rootCmd.Flags().StringVar(&logFilename, "log", "", "write log output to file")
}

// hostOf returns the host the directory is served for. Without a site URL
// the directory runs locally.
func hostOf(siteURL string) string {
	if u, err := url.Parse(strings.TrimSpace(siteURL)); err == nil && u.Host != "" {
		return u.Host
	}
	return "localhost"
}

func run(cmd *cobra.Command, args []string) error {
	if logFilename != "" {
		if f, err := tea.LogToFile(logFilename, "directory-tui"); err != nil {
			return err
		} else {
			defer f.Close()
		}
	} else {
		log.SetOutput(io.Discard)
	}

	var serverSettings = settings.NewDefault(0)
	var settingsFilename = settings.ProbeSettingsFilename(configFilename)
	if settings.FileExists(settingsFilename) {
		log.Printf("Loading settings from %s", settingsFilename)
		if err := serverSettings.Load(settingsFilename); err != nil {
			return fmt.Errorf("%s: %w", settingsFilename, err)
		}
	}
	if cmd.Flags().Changed("mode") {
		serverSettings.Mode = mode
	}
	if cmd.Flags().Changed("site-url") {
		serverSettings.SiteURL = siteURL
	}
	if cmd.Flags().Changed("fixture") {
		serverSettings.Fixture = fixture
		serverSettings.People = nil
	}

	var dbs = make(map[string]*sql.DB)
	remoteStore, localStore, err := serverSettings.NewStores(settingsFilename, dbs, http.DefaultClient)
	if err != nil {
		return err
	}
	defer func() {
		for _, db := range dbs {
			db.Close()
		}
	}()

	store, err := directory.SelectStore(serverSettings.Mode, hostOf(serverSettings.SiteURL), remoteStore, localStore)
	if err != nil {
		return err
	}

	var d = directory.New(store, serverSettings.DirectorySettings())
	var program = tea.NewProgram(tui.New(context.Background(), d, serverSettings.TitleOrDefault()), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
