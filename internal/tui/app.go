package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/baitlens/internal/analysis"
	"github.com/f3rmion/baitlens/internal/client"
	"github.com/f3rmion/baitlens/internal/clipboard"
	"github.com/f3rmion/baitlens/internal/page"
	"github.com/f3rmion/baitlens/internal/samples"
)

const inputHeight = 6

// Message types
type analyzeDoneMsg struct {
	out client.Outcome
}

type healthMsg struct {
	health *analysis.Health
	err    error
}

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// AppModel is the main TUI model. Update is the only writer of the page
// state; the analyze request itself runs in a tea.Cmd.
type AppModel struct {
	// Core dependencies
	client *client.Client
	page   *page.State
	ctrl   *page.Controller
	logger *slog.Logger

	// Widgets
	input   textarea.Model
	spinner spinner.Model
	results viewport.Model

	// Service health, fetched once at startup
	health    *analysis.Health
	healthErr error

	// File picker overlay
	picker  textPicker
	picking bool
	loadErr error

	// The textarea rewrites tabs, so a loaded file is kept verbatim and
	// submitted as-is until the input is edited.
	loaded     string
	loadedView string

	// Display toggles
	editing  bool
	showRaw  bool
	showHelp bool
	copied   bool
	copyErr  error

	width  int
	height int
	ready  bool
}

// NewApp creates the TUI bound to c. embeddings is the initial toggle state.
func NewApp(c *client.Client, embeddings bool, logger *slog.Logger) AppModel {
	if logger == nil {
		logger = slog.Default()
	}

	state := page.NewState(embeddings)

	ta := textarea.New()
	ta.Placeholder = "Paste text to analyze, or load a sample with F1-F3..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetHeight(inputHeight)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = LoadingStyle

	return AppModel{
		client:  c,
		page:    state,
		ctrl:    page.NewController(state, c, logger),
		logger:  logger,
		input:   ta,
		spinner: sp,
		results: viewport.New(0, 0),
		editing: true,
	}
}

// Init starts the cursor blink and the health check.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.checkHealth())
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if m.picking {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.picker, cmd = m.picker.update(msg)
			return m, cmd
		}

		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}

		if !m.editing {
			if cmd, handled := m.handleControlKey(msg); handled {
				return m, cmd
			}
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.input.SetWidth(m.contentWidth() - 2)
		m.results.Width = m.contentWidth()
		m.picker.setSize(m.contentWidth(), m.height)
		m.syncResults()
		return m, nil

	case fileLoadedMsg:
		m.picking = false
		if msg.err != nil {
			m.loadErr = msg.err
			m.logger.Warn("loading file failed", "path", msg.path, "error", msg.err)
			return m, nil
		}
		m.loadErr = nil
		m.input.SetValue(msg.text)
		m.loaded = msg.text
		m.loadedView = m.input.Value()
		m.page.SetText(m.inputText())
		m.logger.Info("loaded file", "path", msg.path, "length", len(msg.text))
		return m, nil

	case pickerClosedMsg:
		m.picking = false
		return m, nil

	case analyzeDoneMsg:
		m.ctrl.Finish(msg.out)
		m.results.GotoTop()
		m.syncResults()
		return m, nil

	case healthMsg:
		m.health = msg.health
		m.healthErr = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearCopiedMsg:
		m.copied = false
		m.copyErr = nil
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleGlobalKey handles keys that work in both modes.
func (m *AppModel) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit, true
	case "ctrl+r":
		return m.analyze(), true
	case "ctrl+t":
		m.page.ToggleEmbeddings()
		return nil, true
	case "ctrl+o":
		m.toggleRaw()
		return nil, true
	case "ctrl+y":
		return m.copyRaw(), true
	case "ctrl+l":
		m.openPicker()
		return nil, true
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return cmd, true
	case "esc":
		if m.editing {
			m.editing = false
			m.input.Blur()
			return nil, true
		}
		return tea.Quit, true
	}

	for i, key := range samples.Keys() {
		if msg.String() == fmt.Sprintf("f%d", i+1) {
			m.loadSample(key)
			return nil, true
		}
	}

	return nil, false
}

// handleControlKey handles single-key shortcuts while the input is blurred.
func (m *AppModel) handleControlKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return tea.Quit, true
	case "?":
		m.showHelp = true
		return nil, true
	case "enter", "a":
		return m.analyze(), true
	case "e":
		m.page.ToggleEmbeddings()
		return nil, true
	case "r":
		m.toggleRaw()
		return nil, true
	case "y":
		return m.copyRaw(), true
	case "f":
		m.openPicker()
		return nil, true
	case "i", "tab":
		m.editing = true
		return m.input.Focus(), true
	}

	for i, key := range samples.Keys() {
		if msg.String() == fmt.Sprintf("%d", i+1) {
			m.loadSample(key)
			return nil, true
		}
	}

	return nil, false
}

// analyze starts a request unless one is already in flight; the trigger
// is disabled until the outcome arrives.
func (m *AppModel) analyze() tea.Cmd {
	if m.ctrl.Busy() {
		return nil
	}

	m.page.SetText(m.inputText())
	sub, ok := m.ctrl.Begin()
	if !ok {
		return nil
	}

	ctrl := m.ctrl
	fetch := func() tea.Msg {
		return analyzeDoneMsg{out: ctrl.Fetch(context.Background(), sub)}
	}
	return tea.Batch(m.spinner.Tick, fetch)
}

func (m *AppModel) loadSample(key samples.Key) {
	m.ctrl.LoadSample(key)
	m.input.SetValue(m.page.Text())
	m.loadErr = nil
	m.loaded, m.loadedView = "", ""
}

// inputText is the text to submit: the loaded file while the input still
// shows it unedited, otherwise whatever the textarea holds.
func (m AppModel) inputText() string {
	value := m.input.Value()
	if m.loaded != "" && value == m.loadedView {
		return m.loaded
	}
	return value
}

func (m *AppModel) openPicker() {
	dir := m.picker.dir
	m.picker = newTextPicker(dir)
	m.picker.setSize(m.contentWidth(), m.height)
	m.picking = true
}

func (m *AppModel) toggleRaw() {
	m.showRaw = !m.showRaw
	m.syncResults()
}

func (m *AppModel) copyRaw() tea.Cmd {
	raw := m.page.Raw()
	if raw == "" {
		return nil
	}
	if err := clipboard.Write(raw); err != nil {
		m.copyErr = err
		m.logger.Warn("copy failed", "error", err)
	} else {
		m.copied = true
	}
	return clearCopiedAfter(2 * time.Second)
}

// checkHealth queries GET /health in the background.
func (m AppModel) checkHealth() tea.Cmd {
	c := m.client
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		h, err := c.Health(ctx)
		return healthMsg{health: h, err: err}
	}
}

func (m *AppModel) syncResults() {
	content := renderGrid(m.page.Cards(), m.contentWidth())
	if m.showRaw {
		if raw := renderRaw(m.page.Raw(), m.contentWidth()); raw != "" {
			content = strings.TrimPrefix(content+"\n"+raw, "\n")
		}
	}
	m.results.SetContent(content)
}

func (m AppModel) contentWidth() int {
	w := m.width - 2
	if w < 20 {
		w = 20
	}
	return w
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.picking {
		return ContentStyle.Render(m.picker.view())
	}

	top := m.renderTop()
	help := m.renderHelpLine()

	vp := m.results
	vp.Height = m.height - lipgloss.Height(top) - lipgloss.Height(help) - 1
	if vp.Height < 3 {
		vp.Height = 3
	}

	body := lipgloss.JoinVertical(lipgloss.Left, top, vp.View(), help)
	return ContentStyle.Render(body)
}

// renderTop draws everything above the results area.
func (m AppModel) renderTop() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("baitlens"))
	b.WriteString(" ")
	if m.client != nil {
		b.WriteString(ServerStyle.Render(m.client.Server()))
		b.WriteString(" ")
	}
	b.WriteString(m.renderHealth())
	b.WriteString("\n")

	box := InputBoxStyle
	if m.editing {
		box = InputBoxFocusedStyle
	}
	b.WriteString(box.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.renderCounter())
	b.WriteString("\n")

	b.WriteString(m.renderControls())
	b.WriteString("\n")

	if m.loadErr != nil {
		b.WriteString(UnhealthyStyle.Render("Could not load file: " + m.loadErr.Error()))
		b.WriteString("\n")
	}

	if msg, visible := m.page.Error(); visible {
		b.WriteString(ErrorBannerStyle.Render(msg))
		b.WriteString("\n")
	}

	if summary := m.page.MetaSummary(); summary != "" {
		b.WriteString(MetaSummaryStyle.Render(summary))
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (m AppModel) renderHealth() string {
	switch {
	case m.healthErr != nil:
		return UnhealthyStyle.Render("● service unreachable")
	case m.health == nil:
		return HelpStyle.Render("○ checking service...")
	default:
		return HealthyStyle.Render(fmt.Sprintf("● %s", m.health.Status)) +
			HelpStyle.Render(fmt.Sprintf("  openai: %t  actian: %t", m.health.OpenAIEnabled, m.health.ActianEnabled))
	}
}

func (m AppModel) renderCounter() string {
	n := len([]rune(m.inputText()))
	text := fmt.Sprintf("%d chars (service accepts %d-%d)", n, analysis.MinTextLen, analysis.MaxTextLen)
	if n > 0 && (n < analysis.MinTextLen || n > analysis.MaxTextLen) {
		return CounterWarnStyle.Render(text)
	}
	return CounterStyle.Render(text)
}

// renderControls draws the trigger, the embeddings toggle and the sample buttons.
func (m AppModel) renderControls() string {
	var parts []string

	if m.page.Busy() {
		parts = append(parts, ButtonDisabledStyle.Render(m.spinner.View()+" "+m.page.TriggerLabel()))
	} else {
		parts = append(parts, ButtonStyle.Render(m.page.TriggerLabel()))
	}

	check := "[ ]"
	if m.page.EmbeddingsEnabled() {
		check = "[x]"
	}
	parts = append(parts, ToggleStyle.Render(check+" embeddings"))

	for i, key := range samples.Keys() {
		parts = append(parts, SampleButtonStyle.Render(fmt.Sprintf("F%d %s", i+1, key)))
	}

	if m.copied {
		parts = append(parts, CopiedStyle.Render("Copied!"))
	} else if m.copyErr != nil {
		parts = append(parts, UnhealthyStyle.Render(m.copyErr.Error()))
	}

	return strings.Join(parts, "  ")
}

func (m AppModel) renderHelpLine() string {
	if m.editing {
		return HelpStyle.Render("ctrl+r: analyze • ctrl+t: embeddings • F1-F3: samples • ctrl+l: open file • ctrl+o: raw • esc: controls")
	}
	return HelpStyle.Render("enter: analyze • e: embeddings • 1-3: samples • f: open file • r: raw • y: copy • i: edit • ?: help • q: quit")
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(ColorText)

	helpText := titleStyle.Render("baitlens - rhetorical signal analysis") + "\n\n"

	helpText += sectionStyle.Render("Anywhere") + "\n"
	helpText += keyStyle.Render("ctrl+r") + descStyle.Render("Analyze input") + "\n"
	helpText += keyStyle.Render("ctrl+t") + descStyle.Render("Toggle embeddings") + "\n"
	helpText += keyStyle.Render("F1-F3") + descStyle.Render("Load sample text") + "\n"
	helpText += keyStyle.Render("ctrl+l") + descStyle.Render("Open a text file") + "\n"
	helpText += keyStyle.Render("ctrl+o") + descStyle.Render("Show raw response") + "\n"
	helpText += keyStyle.Render("ctrl+y") + descStyle.Render("Copy raw response") + "\n"
	helpText += keyStyle.Render("pgup/pgdn") + descStyle.Render("Scroll results") + "\n"

	helpText += sectionStyle.Render("Controls mode (esc)") + "\n"
	helpText += keyStyle.Render("enter") + descStyle.Render("Analyze input") + "\n"
	helpText += keyStyle.Render("1-3") + descStyle.Render("Load sample text") + "\n"
	helpText += keyStyle.Render("f") + descStyle.Render("Open a text file") + "\n"
	helpText += keyStyle.Render("j/k ↑/↓") + descStyle.Render("Scroll results") + "\n"
	helpText += keyStyle.Render("i") + descStyle.Render("Edit input") + "\n"
	helpText += keyStyle.Render("q") + descStyle.Render("Quit") + "\n"

	helpText += "\n" + lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Render("Press any key to close")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(1, 2).
		Width(50)

	// Center the help box
	helpBox := boxStyle.Render(helpText)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpBox)
}
