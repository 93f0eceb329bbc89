// Package tui implements the interactive terminal interface for browsing
// and searching the documentation corpus.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docquery/docquery/internal/core/domain"
	"github.com/docquery/docquery/internal/core/ports/driving"
)

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("tui: query service is required")

// Ports aggregates the driving ports required by the TUI.
type Ports struct {
	Query driving.QueryService
}

// searchDoneMsg carries results of an asynchronous search.
type searchDoneMsg struct {
	query   string
	results []domain.SearchResult
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	scoreStyle    = lipgloss.NewStyle().Faint(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// App is the root bubbletea model.
type App struct {
	ports *Ports
	ctx   context.Context

	input    textinput.Model
	preview  viewport.Model
	results  []domain.SearchResult
	selected int
	width    int
	height   int
	searched bool
}

// NewApp creates the TUI application.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil || ports.Query == nil {
		return nil, ErrMissingQueryService
	}

	input := textinput.New()
	input.Placeholder = "search the documentation..."
	input.Focus()

	return &App{
		ports:   ports,
		ctx:     context.Background(),
		input:   input,
		preview: viewport.New(0, 0),
	}, nil
}

// WithContext sets the context used for query operations.
func (a *App) WithContext(ctx context.Context) {
	if ctx != nil {
		a.ctx = ctx
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.preview.Width = msg.Width - 4
		a.preview.Height = msg.Height / 2
		return a, nil

	case searchDoneMsg:
		a.results = msg.results
		a.selected = 0
		a.searched = true
		a.updatePreview()
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit
		case "enter":
			return a, a.search()
		case "up", "ctrl+k":
			if a.selected > 0 {
				a.selected--
				a.updatePreview()
			}
			return a, nil
		case "down", "ctrl+j":
			if a.selected < len(a.results)-1 {
				a.selected++
				a.updatePreview()
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// search runs the query off the update loop.
func (a *App) search() tea.Cmd {
	query := a.input.Value()
	return func() tea.Msg {
		results := a.ports.Query.Search(a.ctx, query, "", domain.DefaultSearchResults)
		return searchDoneMsg{query: query, results: results}
	}
}

// updatePreview loads the selected result's content into the viewport.
func (a *App) updatePreview() {
	if a.selected >= 0 && a.selected < len(a.results) {
		a.preview.SetContent(a.results[a.selected].Content)
		a.preview.GotoTop()
	} else {
		a.preview.SetContent("")
	}
}

// View implements tea.Model.
func (a *App) View() string {
	s := titleStyle.Render("docquery") + "\n\n"
	s += a.input.View() + "\n\n"

	switch {
	case !a.searched:
		docs := a.ports.Query.ListDocuments(a.ctx)
		s += helpStyle.Render(fmt.Sprintf("%d documents indexed", len(docs))) + "\n"
	case len(a.results) == 0:
		s += "No results found.\n"
	default:
		for i := range a.results {
			line := fmt.Sprintf("%s > %s %s",
				a.results[i].Filename,
				a.results[i].Heading,
				scoreStyle.Render(fmt.Sprintf("(%.4f)", a.results[i].Score)))
			if i == a.selected {
				s += selectedStyle.Render("> "+line) + "\n"
			} else {
				s += "  " + line + "\n"
			}
		}
		s += "\n" + a.preview.View() + "\n"
	}

	s += "\n" + helpStyle.Render("enter: search  ↑/↓: select  esc: quit")
	return s
}
