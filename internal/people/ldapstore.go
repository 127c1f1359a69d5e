package people

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/cwkr/peopledir/internal/odata"
	"github.com/go-ldap/ldap/v3"
)

type ldapStore struct {
	ldapURL        string
	baseDN         string
	bindUser       string
	bindPassword   string
	attributes     []string
	idAttr         string
	lastNameAttr   string
	firstNameAttr  string
	emailAttr      string
	pictureAttr    string
	departmentAttr string
	jobTitleAttr   string
	workPhoneAttr  string
	officeAttr     string
	settings       *StoreSettings
}

func NewLdapStore(settings *StoreSettings) (Store, error) {
	var ldapURL, baseDN, bindUsername, bindPassword string
	if uri, err := url.Parse(settings.URI); err == nil {
		if uri.User != nil {
			bindUsername = strings.ReplaceAll(uri.User.Username(), "+", " ")
			bindPassword, _ = uri.User.Password()
		}
		baseDN = strings.Trim(uri.Path, " \t\r\n/")
		ldapURL = fmt.Sprintf("%s://%s", uri.Scheme, uri.Host)
	} else {
		return nil, err
	}

	for name, template := range map[string]string{"initial_query": settings.InitialQuery, "search_query": settings.SearchQuery} {
		if template != "" && !strings.Contains(template, "%[1]s") && !strings.Contains(template, "%s") {
			return nil, fmt.Errorf("ldap %s must reference the search term as %%[1]s: %q", name, template)
		}
	}

	var attributes []string
	for name, value := range settings.Parameters {
		if strings.HasSuffix(name, "_attribute") && value != "" {
			attributes = append(attributes, value)
		}
	}
	slices.Sort(attributes)

	return &ldapStore{
		ldapURL:        ldapURL,
		baseDN:         baseDN,
		bindUser:       bindUsername,
		bindPassword:   bindPassword,
		attributes:     attributes,
		idAttr:         settings.Parameters["id_attribute"],
		lastNameAttr:   settings.Parameters["last_name_attribute"],
		firstNameAttr:  settings.Parameters["first_name_attribute"],
		emailAttr:      settings.Parameters["email_attribute"],
		pictureAttr:    settings.Parameters["picture_attribute"],
		departmentAttr: settings.Parameters["department_attribute"],
		jobTitleAttr:   settings.Parameters["job_title_attribute"],
		workPhoneAttr:  settings.Parameters["work_phone_attribute"],
		officeAttr:     settings.Parameters["office_attribute"],
		settings:       settings,
	}, nil
}

func (p ldapStore) filterTemplate(query odata.Query) string {
	if query.Mode == odata.ModeInitial {
		return p.settings.InitialQuery
	}
	return p.settings.SearchQuery
}

// searchFilter fills the configured filter template. The template refers to
// the escaped term as %[1]s, e.g. (&(objectClass=person)(sn=%[1]s*)).
func (p ldapStore) searchFilter(query odata.Query) string {
	return fmt.Sprintf(p.filterTemplate(query), ldap.EscapeFilter(query.Term))
}

func (p ldapStore) attr(entry *ldap.Entry, name string) string {
	if name == "" {
		return ""
	}
	return entry.GetEqualFoldAttributeValue(name)
}

func (p ldapStore) person(entry *ldap.Entry, index int) Person {
	var person = Person{
		Metadata:   &Metadata{ID: entry.DN, Type: "LDAP.Entry"},
		ID:         index + 1,
		LastName:   p.attr(entry, p.lastNameAttr),
		FirstName:  p.attr(entry, p.firstNameAttr),
		EMail:      p.attr(entry, p.emailAttr),
		Picture:    Picture{URL: p.attr(entry, p.pictureAttr)},
		Department: p.attr(entry, p.departmentAttr),
		JobTitle:   p.attr(entry, p.jobTitleAttr),
		WorkPhone:  p.attr(entry, p.workPhoneAttr),
		Office:     p.attr(entry, p.officeAttr),
	}
	if id, err := strconv.Atoi(p.attr(entry, p.idAttr)); err == nil {
		person.ID = id
	}
	return person
}

func (p ldapStore) dial() (*ldap.Conn, error) {
	var conn, err = ldap.DialURL(p.ldapURL)
	if err != nil {
		log.Printf("!!! ldap connection error: %v", err)
		return nil, err
	}

	if p.bindUser != "" && p.bindPassword != "" {
		if err = conn.Bind(p.bindUser, p.bindPassword); err != nil {
			log.Printf("!!! ldap bind error: %v", err)
			conn.Close()
			return nil, err
		}
	}
	return conn, nil
}

func (p ldapStore) Query(ctx context.Context, query odata.Query) ([]Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(p.filterTemplate(query)) == "" {
		log.Printf("!!! LDAP query for %s empty", query.Mode)
		return []Person{}, nil
	}

	var conn, err = p.dial()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var filter = p.searchFilter(query)
	log.Printf("LDAP: %s; # %s", filter, query.Term)
	var ldapSearch = ldap.NewSearchRequest(
		p.baseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0,
		0,
		false,
		filter,
		p.attributes,
		nil,
	)
	results, err := conn.Search(ldapSearch)
	if err != nil {
		log.Printf("!!! Query for people failed: %v", err)
		return nil, err
	}

	return p.people(results.Entries), nil
}

func (p ldapStore) people(entries []*ldap.Entry) []Person {
	var people = make([]Person, 0, len(entries))
	for i, entry := range entries {
		people = append(people, p.person(entry, i))
	}
	slices.SortStableFunc(people, func(a, b Person) int {
		return strings.Compare(a.LastName, b.LastName)
	})
	return people
}

func (p ldapStore) Ping() error {
	var conn, err = p.dial()
	if err != nil {
		return err
	}
	conn.Close()
	return nil
}
