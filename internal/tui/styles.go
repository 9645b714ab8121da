// Package tui provides the terminal chat client for posechat.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	apierrors "github.com/diogo/posechat/internal/errors"
)

// palette is the set of colors a theme provides.
type palette struct {
	Border    lipgloss.Color
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Error     lipgloss.Color
	Text      lipgloss.Color
	TextDim   lipgloss.Color
	TextMute  lipgloss.Color
}

var palettes = map[string]palette{
	"dark": {
		Border:    lipgloss.Color("#3b4261"),
		Primary:   lipgloss.Color("#9ece6a"),
		Secondary: lipgloss.Color("#7aa2f7"),
		Accent:    lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),
		Text:      lipgloss.Color("#c0caf5"),
		TextDim:   lipgloss.Color("#a9b1d6"),
		TextMute:  lipgloss.Color("#565f89"),
	},
	"light": {
		Border:    lipgloss.Color("#c8c8c8"),
		Primary:   lipgloss.Color("#4f7a28"),
		Secondary: lipgloss.Color("#2e5aac"),
		Accent:    lipgloss.Color("#b35900"),
		Error:     lipgloss.Color("#c4314b"),
		Text:      lipgloss.Color("#24292f"),
		TextDim:   lipgloss.Color("#57606a"),
		TextMute:  lipgloss.Color("#8c959f"),
	},
}

var colors palette

// Style variables (rebuilt when theme changes)
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	// Messages area panel
	messagesAreaStyle lipgloss.Style

	userBubbleStyle lipgloss.Style
	userLabelStyle  lipgloss.Style
	botBubbleStyle  lipgloss.Style
	botLabelStyle   lipgloss.Style

	// Input area panel
	inputPanelStyle lipgloss.Style
	inputLabelStyle lipgloss.Style
	sendButtonStyle lipgloss.Style

	loadingStyle lipgloss.Style

	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style

	welcomeStyle      lipgloss.Style
	welcomeTitleStyle lipgloss.Style
)

func init() {
	SetTheme("dark")
}

// SetTheme switches the palette. Unknown names fall back to dark.
func SetTheme(name string) {
	p, ok := palettes[strings.ToLower(name)]
	if !ok {
		p = palettes["dark"]
	}
	colors = p
	rebuildStyles()
}

// rebuildStyles creates all lipgloss styles with current color values
func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colors.Border).
		Padding(0, 2).
		MarginBottom(1)

	titleStyle = lipgloss.NewStyle().
		Foreground(colors.Primary).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colors.TextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(colors.TextMute).
		Italic(true)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colors.Border).
		Padding(1)

	userBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colors.Secondary).
		Padding(0, 1).
		MarginLeft(4)

	userLabelStyle = lipgloss.NewStyle().
		Foreground(colors.Secondary).
		Bold(true).
		MarginLeft(4)

	botBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colors.Primary).
		Foreground(colors.Text).
		Padding(0, 1).
		MarginRight(4)

	botLabelStyle = lipgloss.NewStyle().
		Foreground(colors.Primary).
		Bold(true)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colors.Border).
		Padding(0, 1).
		MarginTop(1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colors.Primary).
		Bold(true).
		MarginRight(1)

	sendButtonStyle = lipgloss.NewStyle().
		Foreground(colors.Accent).
		Bold(true)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colors.Accent).
		Bold(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colors.TextMute).
		MarginTop(1)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colors.TextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colors.TextMute)

	welcomeStyle = lipgloss.NewStyle().
		Foreground(colors.TextDim).
		Align(lipgloss.Center)

	welcomeTitleStyle = lipgloss.NewStyle().
		Foreground(colors.Primary).
		Bold(true).
		Align(lipgloss.Center)
}

// FormatError returns a styled error message with additional context.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	errStyle := lipgloss.NewStyle().Foreground(colors.Error)
	dimStyle := lipgloss.NewStyle().Foreground(colors.TextDim)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", err)))

	if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	switch {
	case apierrors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Is the server running? Start one with 'posechat serve'"))
	case errors.Is(err, apierrors.ErrInvalidValue):
		sb.WriteString(dimStyle.Render("\n  Hint: Run 'posechat config show' to see the settable keys"))
	case errors.Is(err, apierrors.ErrEmptyInput):
		sb.WriteString(dimStyle.Render("\n  Hint: Describe a complaint, for example \"back pain\""))
	}

	return sb.String()
}

// PrintError writes the styled error message to w.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, FormatError(err))
}
