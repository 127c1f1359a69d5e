package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cwkr/peopledir/internal/directory"
	"github.com/cwkr/peopledir/internal/numutil"
	"github.com/cwkr/peopledir/internal/odata"
	"github.com/cwkr/peopledir/internal/people"
	"github.com/cwkr/peopledir/internal/stringutil"
	"github.com/hjson/hjson-go/v4"
)

const DefaultFixture = "assets/mockdata/users.json"

var probeFilenames = []string{"directory.hjson", "directory.json", "directory.toml"}

type Server struct {
	Port                 int                   `json:"port" toml:"port"`
	BasePath             string                `json:"base_path,omitempty" toml:"base_path,omitempty"`
	Title                string                `json:"title,omitempty" toml:"title,omitempty"`
	IndexTemplate        string                `json:"index_template,omitempty" toml:"index_template,omitempty"`
	SiteURL              string                `json:"site_url,omitempty" toml:"site_url,omitempty"`
	Mode                 string                `json:"mode,omitempty" toml:"mode,omitempty"`
	Fixture              string                `json:"fixture,omitempty" toml:"fixture,omitempty"`
	SearchMinLength      int                   `json:"search_min_length,omitempty" toml:"search_min_length,omitempty"`
	EscapeFilterLiterals bool                  `json:"escape_filter_literals,omitempty" toml:"escape_filter_literals,omitempty"`
	CookieSecret         string                `json:"cookie_secret" toml:"cookie_secret"`
	SessionTTL           int                   `json:"session_ttl,omitempty" toml:"session_ttl,omitempty"`
	People               []people.Person       `json:"people,omitempty" toml:"-"`
	PeopleStore          *people.StoreSettings `json:"people_store,omitempty" toml:"people_store,omitempty"`
	DisableAPI           bool                  `json:"disable_api,omitempty" toml:"disable_api,omitempty"`
}

func NewDefault(port int) *Server {
	return &Server{
		Port:            port,
		Mode:            directory.ModeAuto,
		Fixture:         DefaultFixture,
		SearchMinLength: odata.DefaultSearchMinLength,
		CookieSecret:    stringutil.RandomAlphanumericString(32),
		SessionTTL:      28_800,
	}
}

// ProbeSettingsFilename returns filename when given, otherwise the first
// existing default settings file in the working directory.
func ProbeSettingsFilename(filename string) string {
	if strings.TrimSpace(filename) != "" {
		return filename
	}
	for _, name := range probeFilenames {
		if FileExists(name) {
			return name
		}
	}
	return probeFilenames[0]
}

func FileExists(filename string) bool {
	var info, err = os.Stat(filename)
	return err == nil && !info.IsDir()
}

// Load decodes HJSON (and therefore JSON) or TOML depending on the file
// extension. Unknown keys are rejected.
func (s *Server) Load(filename string) error {
	var bytes, err = os.ReadFile(filename)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(filename), ".toml") {
		var meta, err = toml.Decode(string(bytes), s)
		if err != nil {
			return err
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("%s: unknown keys %v", filename, undecoded)
		}
		return nil
	}
	options := hjson.DefaultDecoderOptions()
	options.DisallowUnknownFields = true
	options.DisallowDuplicateKeys = true
	return hjson.UnmarshalWithOptions(bytes, s, options)
}

func (s *Server) Save(filename string) error {
	var configBytes []byte
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hjson":
		options := hjson.DefaultOptions()
		options.QuoteAlways = true
		options.EmitRootBraces = false
		options.IndentBy = "  "
		configBytes, err = hjson.MarshalWithOptions(s, options)
	case ".toml":
		var sb strings.Builder
		err = toml.NewEncoder(&sb).Encode(s)
		configBytes = []byte(sb.String())
	default:
		configBytes, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filename, configBytes, 0644)
}

// ResolvePath makes relative file references relative to the settings file.
func (s *Server) ResolvePath(settingsFilename, filename string) string {
	if filename == "" || filepath.IsAbs(filename) {
		return filename
	}
	var dir = filepath.Dir(settingsFilename)
	if candidate := filepath.Join(dir, filename); FileExists(candidate) {
		return candidate
	}
	return filename
}

func (s Server) DirectorySettings() directory.Settings {
	return directory.Settings{
		SearchMinLength:      numutil.FirstAboveZero(s.SearchMinLength, odata.DefaultSearchMinLength),
		EscapeFilterLiterals: s.EscapeFilterLiterals,
	}
}

// CleanBasePath returns the base path with a leading and without a trailing
// slash, or an empty string when served from the root.
func (s Server) CleanBasePath() string {
	var basePath = strings.Trim(strings.TrimSpace(s.BasePath), "/")
	if basePath == "" {
		return ""
	}
	return "/" + basePath
}

func (s Server) TitleOrDefault() string {
	return stringutil.FirstNonEmpty(strings.TrimSpace(s.Title), "Employee Directory")
}
