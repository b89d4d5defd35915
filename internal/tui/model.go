package tui

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/PeterLuschny/FigurativePartitions/internal/calculator"
	"github.com/PeterLuschny/FigurativePartitions/internal/config"
	"github.com/PeterLuschny/FigurativePartitions/internal/puzzle"
)

// Model is the bubbletea model of one puzzle round in the terminal.
type Model struct {
	collection *puzzle.Collection
	keys       keyMap
	help       help.Model
	styles     Styles
	logger     *zap.Logger
	bell       io.Writer

	prompt    textinput.Model
	prompting bool
	status    string
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for game events.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithBell redirects the win sound. The default writes to stderr.
func WithBell(w io.Writer) Option {
	return func(m *Model) {
		if w != nil {
			m.bell = w
		}
	}
}

// New creates a model for a fresh round. A non-positive target falls back to
// puzzle.DefaultTarget.
func New(target int, opts ...Option) Model {
	prompt := textinput.New()
	prompt.Placeholder = "positive integer"
	prompt.Prompt = "New target: "
	prompt.CharLimit = 9
	prompt.Width = 12

	m := Model{
		collection: puzzle.New(target),
		keys:       defaultKeyMap(),
		help:       help.New(),
		styles:     DefaultStyles(),
		logger:     zap.NewNop(),
		bell:       os.Stderr,
		prompt:     prompt,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Snapshot returns the current puzzle state.
func (m Model) Snapshot() puzzle.Snapshot {
	return m.collection.Snapshot()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Add):
		kind := calculator.Kind(msg.Runes[0] - '0')
		return m, m.apply("add", func(c *puzzle.Collection) puzzle.Outcome {
			_, outcome := c.Add(kind)
			return outcome
		})
	case key.Matches(msg, m.keys.Prev):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Next):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Increment):
		return m, m.applyActive("increment", (*puzzle.Collection).Increment)
	case key.Matches(msg, m.keys.Decrement):
		return m, m.applyActive("decrement", (*puzzle.Collection).Decrement)
	case key.Matches(msg, m.keys.Remove):
		return m, m.applyActive("remove", (*puzzle.Collection).Remove)
	case key.Matches(msg, m.keys.Target):
		m.prompting = true
		m.status = ""
		m.prompt.Reset()
		return m, m.prompt.Focus()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		raw := m.prompt.Value()
		m.closePrompt()
		// Anything but a positive integer leaves the round untouched.
		target, err := config.ParseTarget(raw)
		if err != nil {
			m.logger.Debug("target rejected", zap.String("input", raw), zap.Error(err))
			return m, nil
		}
		return m, m.apply("reset", func(c *puzzle.Collection) puzzle.Outcome {
			return c.Reset(target)
		})
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.prompt.Blur()
}

// applyActive runs op against the active figure.
func (m *Model) applyActive(name string, op func(*puzzle.Collection, int) puzzle.Outcome) tea.Cmd {
	fig, ok := m.collection.Active()
	if !ok {
		m.status = "Select a figure first"
		return nil
	}
	return m.apply(name, func(c *puzzle.Collection) puzzle.Outcome {
		return op(c, fig.ID)
	})
}

// apply runs op and returns the bell command when it completes the target.
func (m *Model) apply(name string, op func(*puzzle.Collection) puzzle.Outcome) tea.Cmd {
	wasWon := m.collection.Won()
	outcome := op(m.collection)

	m.logger.Debug("operation",
		zap.String("operation", name),
		zap.Stringer("outcome", outcome),
		zap.Int("total", m.collection.Total()),
		zap.Int("target", m.collection.Target()),
	)

	if !outcome.Applied() {
		m.status = describe(outcome)
		return nil
	}
	m.status = ""

	if m.collection.Won() && !wasWon {
		m.logger.Info("target reached",
			zap.Int("target", m.collection.Target()),
			zap.Int("clicks", m.collection.Operations()),
		)
		return ringBell(m.bell)
	}
	return nil
}

func (m *Model) moveSelection(step int) {
	figures := m.collection.Figures()
	if len(figures) == 0 {
		return
	}

	idx := -1
	if active, ok := m.collection.Active(); ok {
		idx = slices.IndexFunc(figures, func(f puzzle.Figure) bool {
			return f.ID == active.ID
		})
	}

	switch {
	case idx < 0 && step > 0:
		idx = 0
	case idx < 0:
		idx = len(figures) - 1
	default:
		idx = min(max(idx+step, 0), len(figures)-1)
	}
	m.collection.Select(figures[idx].ID)
}

func describe(outcome puzzle.Outcome) string {
	switch outcome {
	case puzzle.KindInUse:
		return "That shape is already on the board"
	case puzzle.NotAdjustable:
		return "A pebble is always worth 1"
	case puzzle.AtMinimum:
		return "Size 1 is the smallest figure"
	case puzzle.UnknownFigure:
		return "Select a figure first"
	default:
		return ""
	}
}

func ringBell(w io.Writer) tea.Cmd {
	return func() tea.Msg {
		_, _ = io.WriteString(w, "\a")
		return nil
	}
}

// View implements tea.Model.
func (m Model) View() string {
	snap := m.collection.Snapshot()
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Figurative Partitions"))
	b.WriteString("  ")
	b.WriteString(m.styles.Target.Render(fmt.Sprintf("target %d", snap.Target)))
	b.WriteString("\n\n")

	b.WriteString(m.renderPalette(snap))
	b.WriteString("\n\n")

	if board := m.renderBoard(snap); board != "" {
		b.WriteString(board)
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.Sum.Render(fmt.Sprintf("Sum: %d / %d", snap.Total, snap.Target)))
	b.WriteString(m.styles.Status.Render(fmt.Sprintf("   clicks: %d", snap.Operations)))
	b.WriteString("\n")

	switch {
	case snap.Won:
		b.WriteString(m.styles.Win.Render(fmt.Sprintf("You got it in %d clicks!", snap.Operations)))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}

	if m.prompting {
		b.WriteString("\n")
		b.WriteString(m.styles.Prompt.Render(m.prompt.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderPalette(snap puzzle.Snapshot) string {
	cells := make([]string, 0, len(calculator.Kinds()))
	for _, kind := range calculator.Kinds() {
		label := fmt.Sprintf("%d %s", int(kind), kind)
		if slices.Contains(snap.UsedKinds, kind) {
			cells = append(cells, m.styles.ShapeDisabled.Render(label))
			continue
		}
		cells = append(cells, m.styles.Shape.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) renderBoard(snap puzzle.Snapshot) string {
	if len(snap.Figures) == 0 {
		return ""
	}

	boxes := make([]string, 0, len(snap.Figures))
	for _, fig := range snap.Figures {
		body := fmt.Sprintf("%s\nS=%d n=%d\n= %d", fig.Kind, fig.Kind.Sides(), fig.Size, fig.Value)
		style := m.styles.Figure
		if snap.ActiveID != nil && *snap.ActiveID == fig.ID {
			style = m.styles.FigureActive
		}
		boxes = append(boxes, style.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}
