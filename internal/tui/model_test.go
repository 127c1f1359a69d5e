package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cwkr/peopledir/internal/directory"
	"github.com/cwkr/peopledir/internal/odata"
	"github.com/cwkr/peopledir/internal/people"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testPeople = []people.Person{
	{ID: 1, FirstName: "Ada", LastName: "Albers", JobTitle: "Engineer", Department: "Research"},
	{ID: 2, FirstName: "Anton", LastName: "Arndt", JobTitle: "Accountant", Department: "Finance", EMail: "anton.arndt@example.com"},
	{ID: 3, FirstName: "Berta", LastName: "Brandt", JobTitle: "Sales Manager", Department: "Sales"},
}

type failingStore struct{}

func (failingStore) Query(ctx context.Context, query odata.Query) ([]people.Person, error) {
	return nil, &people.StatusError{Code: 500, Text: "Internal Server Error"}
}

func (failingStore) Ping() error {
	return errors.New("unavailable")
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// drain runs cmd synchronously and feeds a resulting state back to the model.
func drain(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	if msg, ok := cmd().(stateMsg); ok {
		m, _ = m.Update(msg)
	}
	return m
}

func press(t *testing.T, m tea.Model, keys ...tea.KeyMsg) tea.Model {
	t.Helper()
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = m.Update(k)
		m = drain(t, m, cmd)
	}
	return m
}

func started(t *testing.T, store people.Store) tea.Model {
	t.Helper()
	var m = New(context.Background(), directory.New(store, directory.Settings{SearchMinLength: 3}), "Employee Directory")
	assert.Contains(t, m.View(), "Loading...")
	return drain(t, m, m.Init())
}

func state(m tea.Model) directory.State {
	return m.(Model).state
}

func TestInit_LoadsA(t *testing.T) {
	var m = started(t, people.NewInMemoryStore(testPeople))

	assert.Len(t, state(m).People, 2)
	var view = m.View()
	assert.Contains(t, view, "Albers, Ada")
	assert.Contains(t, view, "Arndt, Anton")
	assert.NotContains(t, view, "Brandt")
}

func TestLetters_SelectInitial(t *testing.T) {
	var m = started(t, people.NewInMemoryStore(testPeople))

	m = press(t, m, key(tea.KeyRight), key(tea.KeyEnter))

	assert.Equal(t, "B", state(m).Initial)
	require.Len(t, state(m).People, 1)
	assert.Equal(t, "Brandt", state(m).People[0].LastName)
}

func TestLetters_Clamped(t *testing.T) {
	var m = started(t, people.NewInMemoryStore(testPeople))

	m = press(t, m, key(tea.KeyLeft), key(tea.KeyLeft))
	assert.Equal(t, 0, m.(Model).letter)

	for i := 0; i < 30; i++ {
		m = press(t, m, key(tea.KeyRight))
	}
	assert.Equal(t, 25, m.(Model).letter)
}

func TestList_DetailAndBack(t *testing.T) {
	var m = started(t, people.NewInMemoryStore(testPeople))

	m = press(t, m, key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyDown), key(tea.KeyEnter))

	require.False(t, state(m).ListMode())
	assert.Equal(t, "Anton", state(m).Person.FirstName)
	assert.Contains(t, m.View(), "anton.arndt@example.com")

	m = press(t, m, key(tea.KeyEsc))
	assert.True(t, state(m).ListMode())
	assert.Contains(t, m.View(), "Albers, Ada")
}

func TestSearch_FiresOnlyFromMinLength(t *testing.T) {
	var m = started(t, people.NewInMemoryStore(testPeople))

	m = press(t, m, runes("/"), runes("b"), runes("r"))
	assert.Equal(t, focusSearch, m.(Model).focus)
	assert.Len(t, state(m).People, 2)

	m = press(t, m, runes("a"))
	require.Len(t, state(m).People, 1)
	assert.Equal(t, "Brandt", state(m).People[0].LastName)

	m = press(t, m, key(tea.KeyEnter))
	assert.Equal(t, focusList, m.(Model).focus)

	// q is a quit key only outside the search input
	m = press(t, m, runes("/"), runes("q"))
	assert.Equal(t, "braq", m.(Model).search.Value())
}

func TestError_KeepsList(t *testing.T) {
	var m = started(t, failingStore{})

	assert.Equal(t, "An error occurred. Status: 500, Internal Server Error", state(m).Error)
	assert.Contains(t, m.View(), "An error occurred. Status: 500")
	assert.Contains(t, m.View(), "No people to show.")
}

func TestQuit(t *testing.T) {
	var m = started(t, people.NewInMemoryStore(testPeople))

	for _, k := range []tea.KeyMsg{runes("q"), key(tea.KeyCtrlC)} {
		var _, cmd = m.Update(k)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}
