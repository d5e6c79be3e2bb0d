// Package tui renders the raw JSON inspector in a terminal.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/panoptes/pkg/domain/interfaces"
	"github.com/secmon-lab/panoptes/pkg/service/clipboard"
	"github.com/secmon-lab/panoptes/pkg/service/inspector"
)

const (
	// DefaultMaxRows caps the expanded scroll region
	DefaultMaxRows = 20

	defaultWidth = 80
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	copiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// copyResultMsg reports the outcome of a background clipboard write
type copyResultMsg struct {
	seq int
	err error
}

// copiedExpiredMsg turns the copied indicator back off
type copiedExpiredMsg struct {
	seq int
}

// Model is the Bubble Tea model for the inspector widget
type Model struct {
	text     string
	expanded bool
	copied   bool
	copySeq  int

	clip       interfaces.Clipboard
	resetAfter time.Duration
	maxRows    int

	viewport viewport.Model
	width    int
}

// Option configures the TUI model
type Option func(*Model)

// WithDefaultExpanded sets the initial expanded state
func WithDefaultExpanded(expanded bool) Option {
	return func(m *Model) {
		m.expanded = expanded
	}
}

// WithMaxRows caps the expanded scroll region height
func WithMaxRows(rows int) Option {
	return func(m *Model) {
		if rows > 0 {
			m.maxRows = rows
		}
	}
}

// WithClipboard sets the clipboard backend
func WithClipboard(clip interfaces.Clipboard) Option {
	return func(m *Model) {
		if clip != nil {
			m.clip = clip
		}
	}
}

// WithResetAfter sets how long the copied indicator stays on
func WithResetAfter(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.resetAfter = d
		}
	}
}

// New creates an inspector model for the given value
func New(value any, opts ...Option) (Model, error) {
	text, err := inspector.Serialize(value)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		text:       text,
		clip:       clipboard.NewSystem(),
		resetAfter: inspector.DefaultResetAfter,
		maxRows:    DefaultMaxRows,
		width:      defaultWidth,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.viewport = viewport.New(m.width-4, m.maxRows)
	m.viewport.SetContent(m.text)
	return m, nil
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "enter", " ":
			m.expanded = !m.expanded
			return m, nil
		case "c":
			return m.startCopy()
		}

	case copyResultMsg:
		// A newer copy action supersedes this result
		if msg.seq != m.copySeq || msg.err != nil {
			return m, nil
		}
		m.copied = true
		seq := msg.seq
		return m, tea.Tick(m.resetAfter, func(time.Time) tea.Msg {
			return copiedExpiredMsg{seq: seq}
		})

	case copiedExpiredMsg:
		if msg.seq == m.copySeq {
			m.copied = false
		}
		return m, nil
	}

	if m.expanded {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// startCopy launches the clipboard write in the background. The copied
// indicator only turns on when the matching result reports success.
func (m Model) startCopy() (tea.Model, tea.Cmd) {
	m.copySeq++
	seq := m.copySeq
	text := m.text
	clip := m.clip

	return m, func() tea.Msg {
		return copyResultMsg{seq: seq, err: clip.Write(context.Background(), text)}
	}
}

// View implements tea.Model
func (m Model) View() string {
	chevron := "▸"
	if m.expanded {
		chevron = "▾"
	}

	copyGlyph := mutedStyle.Render("⧉ copy")
	if m.copied {
		copyGlyph = copiedStyle.Render("✓ copied")
	}

	gap := m.width - 6 - lipgloss.Width("Raw JSON") - lipgloss.Width(copyGlyph) - 2
	if gap < 1 {
		gap = 1
	}
	header := headerStyle.Render(chevron+" Raw JSON") +
		lipgloss.NewStyle().Width(gap).Render("") +
		copyGlyph

	body := header
	if m.expanded {
		body += "\n" + m.viewport.View()
	}

	help := mutedStyle.Render("enter: toggle · c: copy · q: quit")
	return panelStyle.Width(m.width - 2).Render(body) + "\n" + help
}

// Run opens the inspector TUI and blocks until the user quits
func Run(ctx context.Context, value any, opts ...Option) error {
	m, err := New(value, opts...)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return goerr.Wrap(err, "inspector TUI failed")
	}
	return nil
}
