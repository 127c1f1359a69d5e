package odata

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cwkr/peopledir/internal/stringutil"
)

const (
	Endpoint = "/_api/web/SiteUserInfoList/items"
	Select   = "Id,LastName,FirstName,EMail,Picture,Department,JobTitle,WorkPhone,Office"
	OrderBy  = "LastName"

	DefaultInitial         = "A"
	DefaultSearchMinLength = 3

	initialFilter = "startswith(LastName, '%s') and ContentType eq 'Person' and LastName ne null"
	personFilter  = "(ContentType eq 'Person' and LastName ne null)"
)

// SearchFields are the list columns matched by a free-text search.
var SearchFields = []string{"Title", "JobTitle", "WorkPhone", "EMail", "Office", "Department"}

var (
	ErrTermTooShort   = errors.New("search term too short")
	ErrInvalidInitial = errors.New("initial must be a single letter")
)

type Mode int

const (
	ModeInitial Mode = iota
	ModeSearch
)

func (m Mode) String() string {
	if m == ModeSearch {
		return "search"
	}
	return "initial"
}

type Query struct {
	Mode Mode
	// Initial or search term, interpolated into the filter as is
	Term           string
	escapeLiterals bool
}

type Option func(*Query)

// EscapeLiterals doubles single quotes in the term before it is placed
// inside a filter string literal.
func EscapeLiterals(enabled bool) Option {
	return func(q *Query) {
		q.escapeLiterals = enabled
	}
}

func ByInitial(initial string, opts ...Option) (Query, error) {
	initial = strings.TrimSpace(initial)
	if initial == "" {
		initial = DefaultInitial
	}
	if r, size := utf8.DecodeRuneInString(initial); size != len(initial) || !unicode.IsLetter(r) {
		return Query{}, fmt.Errorf("%q: %w", initial, ErrInvalidInitial)
	}
	var q = Query{Mode: ModeInitial, Term: initial}
	for _, opt := range opts {
		opt(&q)
	}
	return q, nil
}

// BySearch returns ErrTermTooShort when term holds fewer than minLength
// non-whitespace characters.
func BySearch(term string, minLength int, opts ...Option) (Query, error) {
	if minLength <= 0 {
		minLength = DefaultSearchMinLength
	}
	if utf8.RuneCountInString(stringutil.StripSpaces(term)) < minLength {
		return Query{}, ErrTermTooShort
	}
	var q = Query{Mode: ModeSearch, Term: term}
	for _, opt := range opts {
		opt(&q)
	}
	return q, nil
}

// Unsafe reports whether the term would break out of the filter's string
// literal when interpolated unescaped.
func (q Query) Unsafe() bool {
	return !q.escapeLiterals && strings.Contains(q.Term, "'")
}

func (q Query) literal() string {
	if q.escapeLiterals {
		return strings.ReplaceAll(q.Term, "'", "''")
	}
	return q.Term
}

func (q Query) Filter() string {
	var term = q.literal()
	if q.Mode == ModeInitial {
		return fmt.Sprintf(initialFilter, term)
	}
	var predicates = make([]string, 0, len(SearchFields))
	for _, field := range SearchFields {
		predicates = append(predicates, fmt.Sprintf("substringof('%s', %s)", term, field))
	}
	return "(" + strings.Join(predicates, " or ") + ") and " + personFilter
}

// Encode renders $select, $filter and $orderby. Reserved OData characters
// stay readable, everything else is percent-encoded.
func (q Query) Encode() string {
	return fmt.Sprintf("$select=%s&$filter=%s&$orderby=%s",
		escape(Select), escape(q.Filter()), escape(OrderBy))
}

func (q Query) URL(siteURL string) string {
	return strings.TrimRight(siteURL, "/") + Endpoint + "?" + q.Encode()
}

func (q Query) String() string {
	return q.Mode.String() + ":" + q.Term
}

func escape(s string) string {
	var sb strings.Builder
	for _, b := range []byte(s) {
		if shouldKeep(b) {
			sb.WriteByte(b)
		} else {
			sb.WriteString(url.QueryEscape(string([]byte{b})))
		}
	}
	return strings.ReplaceAll(sb.String(), "+", "%20")
}

func shouldKeep(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'(),$:@/", b) >= 0
}
