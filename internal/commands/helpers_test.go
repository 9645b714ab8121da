package commands

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/diogo/posechat/internal/api"
	"github.com/diogo/posechat/internal/config"
	"github.com/diogo/posechat/internal/tui"
	"github.com/diogo/posechat/internal/widget"
)

type fakeTUI struct {
	calls  int
	sender widget.Sender
	opts   tui.ChatOptions
	err    error
}

func (f *fakeTUI) RunChat(sender widget.Sender, opts tui.ChatOptions) error {
	f.calls++
	f.sender = sender
	f.opts = opts
	return f.err
}

type testDeps struct {
	*Dependencies
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	sender  *api.MockSender
	tui     *fakeTUI
	copied  []string
	lastCfg config.Config
}

// newTestDeps isolates HOME and wires fakes for every external dependency.
func newTestDeps(t *testing.T, tty bool) *testDeps {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	td := &testDeps{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		sender: &api.MockSender{},
		tui:    &fakeTUI{},
	}
	td.Dependencies = &Dependencies{
		NewSender: func(cfg config.Config, logger *slog.Logger) (widget.Sender, error) {
			td.lastCfg = cfg
			return td.sender, nil
		},
		TUI:       td.tui,
		Stdout:    td.stdout,
		Stderr:    td.stderr,
		IsTTY:     func() bool { return tty },
		TermWidth: func() int { return 100 },
		CopyToClipboard: func(text string) error {
			td.copied = append(td.copied, text)
			return nil
		},
	}
	return td
}
