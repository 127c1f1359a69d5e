package directory

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/cwkr/peopledir/internal/odata"
	"github.com/cwkr/peopledir/internal/people"
	"github.com/cwkr/peopledir/internal/stringutil"
)

type Settings struct {
	SearchMinLength      int
	EscapeFilterLiterals bool
}

// State is a copy of the directory view at one point in time.
type State struct {
	Alpha   []string
	Initial string
	People  []people.Person
	Person  *people.Person
	Error   string
}

// ListMode reports whether the list is shown rather than a person's details.
func (s State) ListMode() bool {
	return s.Person == nil
}

// Directory holds the view state of one directory widget. Each operation
// issues at most one store query; results are applied in the order they
// arrive.
type Directory struct {
	mu       sync.Mutex
	store    people.Store
	settings Settings
	alpha    []string
	initial  string
	people   []people.Person
	person   *people.Person
	err      string
}

func New(store people.Store, settings Settings) *Directory {
	return &Directory{
		store:    store,
		settings: settings,
		alpha:    stringutil.Alphabet(),
	}
}

func (d *Directory) options() []odata.Option {
	return []odata.Option{odata.EscapeLiterals(d.settings.EscapeFilterLiterals)}
}

func (d *Directory) setError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err == nil {
		d.err = ""
	} else {
		d.err = err.Error()
	}
}

// SetInitial selects a last-name initial, clears any selected person and
// loads the people for that initial.
func (d *Directory) SetInitial(ctx context.Context, initial string) {
	d.mu.Lock()
	d.initial = initial
	d.person = nil
	d.mu.Unlock()

	d.GetPeopleAlpha(ctx)
}

func (d *Directory) ShowDetail(person people.Person) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.person = &person
}

// ShowDetailByID selects a person from the current list.
func (d *Directory) ShowDetailByID(id int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var i = slices.IndexFunc(d.people, func(p people.Person) bool { return p.ID == id })
	if i < 0 {
		return fmt.Errorf("%d: %w", id, people.ErrPersonNotFound)
	}
	var person = d.people[i]
	d.person = &person
	return nil
}

func (d *Directory) ShowList() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.person = nil
}

// Search queries by free text. Terms shorter than the minimum length leave
// the current results untouched.
func (d *Directory) Search(ctx context.Context, term string) {
	d.setError(nil)

	var query, err = odata.BySearch(term, d.settings.SearchMinLength, d.options()...)
	if errors.Is(err, odata.ErrTermTooShort) {
		return
	} else if err != nil {
		log.Printf("!!! %v", err)
		d.setError(err)
		return
	}
	d.ExecuteQuery(ctx, query)
}

// GetPeopleAlpha loads the people for the current initial, A if none is set.
func (d *Directory) GetPeopleAlpha(ctx context.Context) {
	d.setError(nil)

	d.mu.Lock()
	var initial = d.initial
	d.mu.Unlock()

	var query, err = odata.ByInitial(initial, d.options()...)
	if err != nil {
		log.Printf("!!! %v", err)
		d.setError(err)
		return
	}
	d.ExecuteQuery(ctx, query)
}

// ExecuteQuery replaces the list on success. On failure the list is kept and
// the error message is set.
func (d *Directory) ExecuteQuery(ctx context.Context, query odata.Query) {
	d.setError(nil)

	var result, err = d.store.Query(ctx, query)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.err = err.Error()
		return
	}
	if result == nil {
		result = []people.Person{}
	}
	d.people = result
	d.err = ""
}

func (d *Directory) Snapshot() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	var state = State{
		Alpha:   slices.Clone(d.alpha),
		Initial: d.initial,
		People:  slices.Clone(d.people),
		Error:   d.err,
	}
	if d.person != nil {
		var person = *d.person
		state.Person = &person
	}
	return state
}

func (d *Directory) Ping() error {
	return d.store.Ping()
}
