package render

import (
	"os"

	"github.com/diogo/posechat/internal/config"
)

// OptionsFromConfig builds render options from user configuration.
// GLAMOUR_STYLE takes precedence over the configured theme.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions()
	if cfg.Theme != "" {
		opts.Style = cfg.Theme
	}
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}
	return opts
}
