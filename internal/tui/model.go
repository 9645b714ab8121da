package tui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/posechat/internal/render"
	"github.com/diogo/posechat/internal/widget"
)

// cellWidth approximates the pixel width of one terminal cell, so image
// sizes from markup can be compared against the bubble width.
const cellWidth = 8

const sendButtonLabel = "[ Send ]"

// Layout heights of the fixed panels.
const (
	headerHeight  = 4 // border, title, margin
	panelOverhead = 4 // messages border and padding
	inputHeight   = 4 // margin, border, input row
	statusHeight  = 2 // margin, shortcuts
)

// replyMsg delivers a finished round trip to the event loop.
type replyMsg struct {
	reply widget.Reply
}

// ChatOptions configures the chat model.
type ChatOptions struct {
	ServerURL string
	Render    render.Options
	Sanitizer widget.Sanitizer
	Logger    *slog.Logger
	Context   context.Context
}

// Model represents the TUI state
type Model struct {
	ctx       context.Context
	widget    *widget.Widget
	list      *messageList
	input     *textinput.Model
	serverURL string

	ready bool

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a chat model that sends through sender.
func NewChatModel(sender widget.Sender, opts ChatOptions) Model {
	ti := textinput.New()
	ti.Placeholder = "Describe how you feel..."
	ti.CharLimit = 0
	ti.Prompt = ""
	ti.Focus()
	ti.TextStyle = lipgloss.NewStyle().Foreground(colors.Text)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(colors.TextDim)

	list := newMessageList(opts.Render)
	input := &ti

	var wopts []widget.Option
	if opts.Sanitizer != nil {
		wopts = append(wopts, widget.WithSanitizer(opts.Sanitizer))
	}
	if opts.Logger != nil {
		wopts = append(wopts, widget.WithLogger(opts.Logger))
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	return Model{
		ctx:       ctx,
		widget:    widget.New(list, input, sender, wopts...),
		list:      list,
		input:     input,
		serverURL: opts.ServerURL,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			m, cmd = m.submit()
			m.list.sync()
			return m, cmd
		case "up", "down", "pgup", "pgdown":
			m.list.viewport, cmd = m.list.viewport.Update(msg)
			return m, cmd
		}
		*m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.onSendButton(msg.X, msg.Y) {
			m, cmd = m.submit()
			m.list.sync()
			return m, cmd
		}
		m.list.viewport, cmd = m.list.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case replyMsg:
		m.widget.Receive(msg.reply)

	default:
		*m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.list.sync()
	return m, tea.Batch(cmds...)
}

// submit hands the typed text to the widget and starts the round trip.
// The input stays enabled and nothing marks the request as in flight, so
// several requests may be outstanding at once.
func (m Model) submit() (Model, tea.Cmd) {
	sub := m.widget.Submit()
	if sub == nil {
		return m, nil
	}

	ctx := m.ctx
	return m, func() tea.Msg {
		return replyMsg{reply: sub.Send(ctx)}
	}
}

func (m *Model) resize() {
	contentWidth := m.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}
	vpHeight := m.height - headerHeight - panelOverhead - inputHeight - statusHeight
	if vpHeight < 3 {
		vpHeight = 3
	}

	m.list.resize(contentWidth-2, vpHeight)
	m.input.Width = m.inputWidth()
	m.ready = true
}

// innerWidth is the usable width inside the input panel border and padding.
func (m Model) innerWidth() int {
	return m.width - 4 - 2
}

func (m Model) inputWidth() int {
	w := m.innerWidth() - lipgloss.Width(sendButtonLabel) - lipgloss.Width("You ") - 3
	if w < 1 {
		w = 1
	}
	return w
}

// onSendButton reports whether the cell at x, y is part of the send button.
func (m Model) onSendButton(x, y int) bool {
	if !m.ready {
		return false
	}
	row := headerHeight + m.list.viewport.Height + panelOverhead + 2
	if y < row-1 || y > row+1 {
		return false
	}
	start := 2 + m.innerWidth() - lipgloss.Width(sendButtonLabel)
	return x >= start && x < start+lipgloss.Width(sendButtonLabel)
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	var sections []string

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("✿ posechat"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.serverURL),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(header))

	messages := m.list.viewport.View()
	if len(m.list.elements) == 0 {
		messages = m.renderWelcome()
	}
	sections = append(sections, messagesAreaStyle.Width(contentWidth).Render(messages))

	left := lipgloss.NewStyle().
		Width(m.innerWidth() - lipgloss.Width(sendButtonLabel)).
		Render(inputLabelStyle.Render("You") + m.input.View())
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, sendButtonStyle.Render(sendButtonLabel))
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(row))

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the welcome screen when no messages exist
func (m Model) renderWelcome() string {
	width := m.list.viewport.Width
	height := m.list.viewport.Height

	content := lipgloss.JoinVertical(lipgloss.Center,
		welcomeTitleStyle.Width(width).Render("Welcome to posechat"),
		"",
		welcomeStyle.Width(width).Render("Tell me what troubles you, for example \"back pain\" or \"stress\""),
	)

	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	lines := strings.Repeat("\n", topPadding) + content
	return lipgloss.NewStyle().Height(height).Render(lines)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Esc", "Quit"},
		{"↑↓", "Scroll"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// messageList is the widget's view onto the viewport. Mutations only mark
// it dirty; sync applies them once per update.
type messageList struct {
	viewport viewport.Model
	elements []*widget.Element
	render   render.Options

	dirty      bool
	wantBottom bool
}

func newMessageList(opts render.Options) *messageList {
	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Up:       key.NewBinding(key.WithKeys("up")),
		Down:     key.NewBinding(key.WithKeys("down")),
	}
	return &messageList{viewport: vp, render: opts}
}

func (l *messageList) Append(msg widget.Message) *widget.Element {
	el := widget.NewElement(msg)
	l.elements = append(l.elements, el)
	l.dirty = true
	return el
}

// Width reports the bubble content width in approximate pixels.
func (l *messageList) Width() int {
	return l.bubbleWidth() * cellWidth
}

func (l *messageList) ScrollToBottom() {
	l.wantBottom = true
}

func (l *messageList) resize(width, height int) {
	l.viewport.Width = width
	l.viewport.Height = height
	l.dirty = true
}

func (l *messageList) bubbleWidth() int {
	w := l.viewport.Width - 10
	if w < 10 {
		w = 10
	}
	return w
}

func (l *messageList) sync() {
	if l.dirty {
		l.viewport.SetContent(l.content())
		l.dirty = false
	}
	if l.wantBottom {
		l.viewport.GotoBottom()
		l.wantBottom = false
	}
}

func (l *messageList) content() string {
	var content strings.Builder
	bubbleWidth := l.bubbleWidth()
	opts := l.render.WithWidth(bubbleWidth - 2)

	for i, el := range l.elements {
		if i > 0 {
			content.WriteString("\n")
		}
		rendered := render.Document(el.Doc, opts)

		if el.Message.Role == widget.RoleUser {
			content.WriteString(userLabelStyle.Render("● You") + "\n")
			content.WriteString(userBubbleStyle.Width(bubbleWidth).Render(rendered))
		} else {
			content.WriteString(botLabelStyle.Render("✿ Coach") + "\n")
			content.WriteString(botBubbleStyle.Width(bubbleWidth).Render(rendered))
		}
		content.WriteString("\n")
	}
	return content.String()
}

// RunChat starts the chat TUI
func RunChat(sender widget.Sender, opts ChatOptions) error {
	m := NewChatModel(sender, opts)

	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}

	p := tea.NewProgram(m, progOpts...)
	_, err := p.Run()
	return err
}
