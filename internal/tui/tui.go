package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cappy/internal/core"
)

// FetchFunc produces a fresh batch of ideas.
type FetchFunc func(ctx context.Context) (core.Response, error)

// ideasMsg carries the result of a fetch back into Update.
type ideasMsg struct {
	resp core.Response
	err  error
}

// model represents the state of the idea browser.
type model struct {
	ctx         context.Context
	fetch       FetchFunc
	resp        core.Response
	err         error
	selectedIdx int // Index of the selected idea
	width       int // Terminal width
	height      int // Terminal height
	loading     bool
	quitting    bool
}

// NewModel returns the initial state of the browser. Ideas are loaded by Init.
func NewModel(ctx context.Context, fetch FetchFunc) model {
	return model{
		ctx:     ctx,
		fetch:   fetch,
		loading: true,
		width:   80,
	}
}

func (m model) load() tea.Cmd {
	return func() tea.Msg {
		resp, err := m.fetch(m.ctx)
		return ideasMsg{resp: resp, err: err}
	}
}

// Init starts loading the first batch.
func (m model) Init() tea.Cmd {
	return m.load()
}

// Update handles messages and updates the model accordingly.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ideasMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.resp = msg.resp
			m.selectedIdx = 0
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}
		case "down", "j":
			if m.selectedIdx < len(m.resp.Ideas)-1 {
				m.selectedIdx++
			}
		case "r":
			if !m.loading {
				m.loading = true
				return m, m.load()
			}
		}
	}

	return m, nil
}

// View renders the browser.
func (m model) View() string {
	if m.quitting {
		return "Have a great conversation!\n"
	}

	docStyle := lipgloss.NewStyle().Margin(1, 2)
	paneWidth := max(m.width/2-5, 20)
	listStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(1).Width(paneWidth)
	detailStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(1).Width(paneWidth)
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	var header string
	switch {
	case m.loading:
		header = "Looking for ideas..."
	case m.err != nil:
		header = "Could not load ideas: " + m.err.Error()
	default:
		header = headerStyle.Render(m.resp.MotivationalMsg) + "\n" +
			mutedStyle.Render(fmt.Sprintf("%s · source: %s", m.resp.ContextUsed, m.resp.Source))
	}

	var list strings.Builder
	list.WriteString("Ideas\n\n")
	if len(m.resp.Ideas) == 0 {
		list.WriteString("No ideas loaded.")
	}
	for i, idea := range m.resp.Ideas {
		cursor := " "
		if i == m.selectedIdx {
			cursor = ">"
		}
		fmt.Fprintf(&list, "%s %s\n", cursor, idea.Title)
	}

	detail := "Select an idea to see the details."
	if m.selectedIdx < len(m.resp.Ideas) {
		detail = ideaDetail(m.resp.Ideas[m.selectedIdx])
	}

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top,
		listStyle.Render(list.String()),
		detailStyle.Render(detail),
	)

	help := "\n\n[↑/k] Up | [↓/j] Down | [r] New ideas | [q] Quit"

	return docStyle.Render(header + "\n\n" + mainContent + help)
}

func ideaDetail(idea core.Idea) string {
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(idea.Title),
		string(idea.Category),
		"",
		idea.Description,
		"",
		fmt.Sprintf("Difficulty: %d/3", idea.Difficulty),
		fmt.Sprintf("Time: %d min", idea.EstimatedMinutes),
	}
	if len(idea.Tags) > 0 {
		lines = append(lines, "Tags: "+strings.Join(idea.Tags, ", "))
	}
	return strings.Join(lines, "\n")
}

// Run starts the browser and blocks until the user quits.
func Run(ctx context.Context, fetch FetchFunc) error {
	p := tea.NewProgram(NewModel(ctx, fetch), tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
