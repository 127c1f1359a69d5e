package people

import (
	"regexp"

	"github.com/cwkr/peopledir/internal/odata"
)

// Matcher re-derives a query's filter in process for stores that cannot
// evaluate the OData filter themselves.
type Matcher func(p Person) bool

// NewMatcher compiles the query into a Matcher. An initial is matched
// case-sensitively at the start of LastName; a search term matches
// case-insensitively anywhere in the display name or one of the contact and
// organisation fields.
func NewMatcher(query odata.Query) (Matcher, error) {
	if query.Mode == odata.ModeInitial {
		rx, err := regexp.Compile("^" + regexp.QuoteMeta(query.Term))
		if err != nil {
			return nil, err
		}
		return func(p Person) bool {
			return rx.MatchString(p.LastName)
		}, nil
	}

	rx, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query.Term))
	if err != nil {
		return nil, err
	}
	return func(p Person) bool {
		return rx.MatchString(p.FirstName+" "+p.LastName) ||
			rx.MatchString(p.Department) ||
			rx.MatchString(p.EMail) ||
			rx.MatchString(p.JobTitle) ||
			rx.MatchString(p.Office) ||
			rx.MatchString(p.WorkPhone)
	}, nil
}

func Filter(people []Person, query odata.Query) ([]Person, error) {
	var match, err = NewMatcher(query)
	if err != nil {
		return nil, err
	}
	var filtered = make([]Person, 0, len(people))
	for _, p := range people {
		if match(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}
