package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/posechat/internal/config"
	"github.com/diogo/posechat/internal/markup"
	"github.com/diogo/posechat/internal/render"
	"github.com/diogo/posechat/internal/tui"
)

// NewChatCmd creates the interactive chat command
func NewChatCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with the recommendation server.

Press Enter or click Send to send a message. Replies appear in the order
they arrive. Press Esc or Ctrl+C to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runChat(cmd.Context(), deps, cfg)
		},
	}
}

func runChat(ctx context.Context, deps *Dependencies, cfg config.Config) error {
	logger := setupLogging(cfg, deps.Stderr)

	sender, err := deps.NewSender(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	tui.SetTheme(cfg.Theme)
	opts := tui.ChatOptions{
		ServerURL: cfg.ServerURL,
		Render:    render.OptionsFromConfig(cfg),
		Logger:    logger,
		Context:   ctx,
	}
	if cfg.Sanitize {
		opts.Sanitizer = markup.NewSanitizer()
	}

	logger.Info("chat started", "server", cfg.ServerURL)
	if err := deps.TUI.RunChat(sender, opts); err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}
	return nil
}
