// Package tui renders the directory component in a terminal.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cwkr/peopledir/internal/directory"
	"github.com/cwkr/peopledir/internal/numutil"
	"github.com/cwkr/peopledir/internal/people"
)

type focus int

const (
	focusLetters focus = iota
	focusList
	focusSearch
)

// stateMsg carries the directory state after a query has completed.
type stateMsg struct {
	state directory.State
}

type Model struct {
	ctx       context.Context
	directory *directory.Directory
	title     string
	state     directory.State
	focus     focus
	letter    int
	cursor    int
	pending   int
	search    textinput.Model
	styles    styles
}

func New(ctx context.Context, d *directory.Directory, title string) Model {
	var search = textinput.New()
	search.Placeholder = "name, title, phone, email, office or department"
	search.Prompt = "/ "
	search.CharLimit = 100
	search.Width = 50
	search.Cursor.SetMode(cursor.CursorStatic)

	return Model{
		ctx:       ctx,
		directory: d,
		title:     title,
		state:     d.Snapshot(),
		pending:   1,
		search:    search,
		styles:    defaultStyles(),
	}
}

// fetch runs action against the directory outside the update loop and
// reports the resulting state.
func (m Model) fetch(action func(ctx context.Context)) tea.Cmd {
	var ctx, d = m.ctx, m.directory
	return func() tea.Msg {
		action(ctx)
		return stateMsg{state: d.Snapshot()}
	}
}

// Init loads the people for the default initial.
func (m Model) Init() tea.Cmd {
	return m.fetch(m.directory.GetPeopleAlpha)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.search.Width = numutil.Clamp(msg.Width-len(m.search.Prompt)-1, 10, 80)
		return m, nil

	case stateMsg:
		m.state = msg.state
		if m.pending > 0 {
			m.pending--
		}
		m.cursor = numutil.Clamp(m.cursor, 0, len(m.state.People)-1)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.focus == focusSearch {
			return m.updateSearch(msg)
		}
		if !m.state.ListMode() {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.Blur()
		m.focus = focusLetters
		return m, nil
	case tea.KeyEnter, tea.KeyDown:
		m.search.Blur()
		m.focus = focusList
		return m, nil
	}

	var before = m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if term := m.search.Value(); term != before {
		m.pending++
		m.cursor = 0
		return m, m.fetch(func(ctx context.Context) {
			m.directory.Search(ctx, term)
		})
	}
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace", "left", "h":
		m.directory.ShowList()
		m.state = m.directory.Snapshot()
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.focus = focusSearch
		return m, m.search.Focus()
	case "tab":
		if m.focus == focusLetters {
			m.focus = focusList
		} else {
			m.focus = focusLetters
		}
	case "left", "h":
		m.focus = focusLetters
		m.letter = numutil.Clamp(m.letter-1, 0, len(m.state.Alpha)-1)
	case "right", "l":
		m.focus = focusLetters
		m.letter = numutil.Clamp(m.letter+1, 0, len(m.state.Alpha)-1)
	case "up", "k":
		m.focus = focusList
		m.cursor = numutil.Clamp(m.cursor-1, 0, len(m.state.People)-1)
	case "down", "j":
		m.focus = focusList
		m.cursor = numutil.Clamp(m.cursor+1, 0, len(m.state.People)-1)
	case "enter":
		if m.focus == focusLetters {
			var initial = m.state.Alpha[m.letter]
			m.pending++
			m.cursor = 0
			return m, m.fetch(func(ctx context.Context) {
				m.directory.SetInitial(ctx, initial)
			})
		}
		if len(m.state.People) > 0 {
			m.directory.ShowDetail(m.state.People[m.cursor])
			m.state = m.directory.Snapshot()
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render(m.title))
	sb.WriteString("\n")
	sb.WriteString(m.viewLetters())
	sb.WriteString("\n\n")
	sb.WriteString(m.search.View())
	sb.WriteString("\n")
	if m.state.Error != "" {
		sb.WriteString(m.styles.Error.Render(m.state.Error))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if person := m.state.Person; person != nil {
		sb.WriteString(m.viewPerson(*person))
	} else {
		sb.WriteString(m.viewList())
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(m.help()))
	return sb.String()
}

func (m Model) viewLetters() string {
	var letters = make([]string, 0, len(m.state.Alpha))
	for i, letter := range m.state.Alpha {
		switch {
		case i == m.letter && m.focus == focusLetters:
			letters = append(letters, m.styles.Cursor.Render(letter))
		case letter == m.state.Initial:
			letters = append(letters, m.styles.Active.Render(letter))
		default:
			letters = append(letters, m.styles.Letter.Render(letter))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, letters...)
}

func (m Model) viewList() string {
	if m.pending > 0 && len(m.state.People) == 0 {
		return m.styles.Muted.Render("Loading...") + "\n"
	}
	if len(m.state.People) == 0 {
		return m.styles.Muted.Render("No people to show.") + "\n"
	}
	var sb strings.Builder
	for i, p := range m.state.People {
		var line = fmt.Sprintf("%-28s %-28s %s", p.LastName+", "+p.FirstName, p.JobTitle, p.Department)
		if i == m.cursor && m.focus == focusList {
			sb.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) viewPerson(p people.Person) string {
	var rows = []string{m.styles.Name.Render(p.DisplayName()), ""}
	for _, field := range [][2]string{
		{"Job Title", p.JobTitle},
		{"Department", p.Department},
		{"Email", p.EMail},
		{"Phone", p.WorkPhone},
		{"Office", p.Office},
		{"Picture", p.Picture.URL},
	} {
		if field[1] == "" {
			continue
		}
		rows = append(rows, m.styles.Label.Render(field[0])+" "+field[1])
	}
	return m.styles.Detail.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)) + "\n"
}

func (m Model) help() string {
	switch {
	case m.focus == focusSearch:
		return "type to search • enter: results • esc: letters"
	case !m.state.ListMode():
		return "esc: back to list • q: quit"
	default:
		return "←/→ letter • enter: select • ↑/↓ people • /: search • q: quit"
	}
}
