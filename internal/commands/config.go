package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/posechat/internal/config"
)

// NewConfigCmd creates a new config command
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		Long: fmt.Sprintf(`Show or change posechat settings.

Settable keys: %s`, strings.Join(config.Keys(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(deps)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(deps)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change a setting",
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfig(deps, args[0], args[1])
		},
	})

	return cmd
}

func showConfig(deps *Dependencies) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	values, err := configValues(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "# %s\n", path)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(deps.Stdout, "%s = %v\n", k, values[k])
	}
	return nil
}

func setConfig(deps *Dependencies, key, value string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := config.SaveConfig(cfg); err != nil {
		return err
	}

	values, err := configValues(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "✓ %s = %v\n", key, values[key])
	return nil
}

// configValues returns every settable key with its current value.
func configValues(cfg config.Config) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	values := make(map[string]any, len(config.Keys()))
	for _, k := range config.Keys() {
		if v, ok := raw[k]; ok {
			values[k] = v
		} else {
			values[k] = ""
		}
	}
	return values, nil
}
