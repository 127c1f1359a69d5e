package settings

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/cwkr/peopledir/internal/people"
	"github.com/cwkr/peopledir/internal/sqlutil"
)

// NewStores builds the remote and local people stores. Either may be nil
// when not configured.
func (s *Server) NewStores(settingsFilename string, dbs map[string]*sql.DB, client *http.Client) (people.Store, people.Store, error) {
	var remote, local people.Store
	var err error

	if s.PeopleStore != nil {
		var uri = strings.TrimSpace(s.PeopleStore.URI)
		if sqlutil.IsDatabaseURI(uri) {
			log.Printf("Using SQL people store")
			if remote, err = people.NewSqlStore(dbs, s.PeopleStore); err != nil {
				return nil, nil, err
			}
		} else if strings.HasPrefix(uri, "ldap:") || strings.HasPrefix(uri, "ldaps:") {
			log.Printf("Using LDAP people store")
			if remote, err = people.NewLdapStore(s.PeopleStore); err != nil {
				return nil, nil, err
			}
		} else if strings.HasPrefix(uri, "http:") || strings.HasPrefix(uri, "https:") {
			log.Printf("Using SharePoint people store at %s", uri)
			if remote, err = people.NewSharePointStore(uri, client); err != nil {
				return nil, nil, err
			}
		} else {
			return nil, nil, fmt.Errorf("%w: %s", people.ErrUnsupportedStore, s.PeopleStore.URI)
		}
	} else if strings.TrimSpace(s.SiteURL) != "" {
		log.Printf("Using SharePoint people store at %s", s.SiteURL)
		if remote, err = people.NewSharePointStore(s.SiteURL, client); err != nil {
			return nil, nil, err
		}
	}

	if len(s.People) > 0 {
		log.Printf("Using %d people from settings for local development", len(s.People))
		local = people.NewInMemoryStore(s.People)
	} else if s.Fixture != "" {
		var fixture = s.ResolvePath(settingsFilename, s.Fixture)
		log.Printf("Using fixture %s for local development", fixture)
		local = people.NewFixtureStore(fixture)
	}

	return remote, local, nil
}
