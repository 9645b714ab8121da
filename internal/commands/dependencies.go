package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/diogo/posechat/internal/api"
	"github.com/diogo/posechat/internal/config"
	"github.com/diogo/posechat/internal/tui"
	"github.com/diogo/posechat/internal/widget"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(sender widget.Sender, opts tui.ChatOptions) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewSender builds the transport for a configuration.
	NewSender func(cfg config.Config, logger *slog.Logger) (widget.Sender, error)

	// TUI is the terminal user interface.
	TUI TUIInterface

	Stdout io.Writer
	Stderr io.Writer

	// IsTTY reports whether stdout is a terminal.
	IsTTY func() bool
	// TermWidth returns the terminal width in cells.
	TermWidth func() int
	// CopyToClipboard writes text to the system clipboard.
	CopyToClipboard func(text string) error
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(sender widget.Sender, opts tui.ChatOptions) error {
	return tui.RunChat(sender, opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewSender:       newClientSender,
		TUI:             &DefaultTUI{},
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
		IsTTY:           isStdoutTTY,
		TermWidth:       getTerminalWidth,
		CopyToClipboard: clipboard.WriteAll,
	}
}

func newClientSender(cfg config.Config, logger *slog.Logger) (widget.Sender, error) {
	return api.NewClient(cfg.ServerURL,
		api.WithTimeout(cfg.Timeout()),
		api.WithLogger(logger),
	)
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
