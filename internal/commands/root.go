// Package commands provides CLI commands for posechat.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/posechat/internal/config"
	"github.com/diogo/posechat/internal/logging"
	"github.com/diogo/posechat/internal/tui"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// NewRootCmd builds the command tree around deps.
func NewRootCmd(deps *Dependencies) *cobra.Command {
	var fileFlag string
	var opts askOptions

	cmd := &cobra.Command{
		Use:   "posechat [message]",
		Short: "Chat with the yoga pose recommendation server",
		Long: `posechat is a chat client for a yoga pose recommendation server, and the
server itself. Describe a complaint and the server answers with poses,
steps, videos and pictures.

Examples:
  posechat serve                       Start the recommendation server
  posechat chat                        Start interactive chat
  posechat "I have back pain"          Send a single message
  echo "stress" | posechat             Read the message from stdin
  posechat config set server_url http://poses.local:5000`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "posechat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			if fileFlag != "" {
				data, err := os.ReadFile(fileFlag)
				if err != nil {
					return fmt.Errorf("failed to read file: %w", err)
				}
				return askFromCommand(cmd, deps, string(data), opts)
			}

			if len(args) > 0 {
				return askFromCommand(cmd, deps, args[0], opts)
			}

			if hasStdin() {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				return askFromCommand(cmd, deps, string(data), opts)
			}

			return cmd.Help()
		},
	}

	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	cmd.PersistentFlags().String("server", "", "Recommendation server URL (overrides server_url)")
	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read the message from file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save the reply markup to file")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print the reply markup without decoration")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps))
	cmd.AddCommand(NewAskCmd(deps))
	cmd.AddCommand(NewServeCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps))

	return cmd
}

var rootCmd = NewRootCmd(NewDependencies())

// Execute runs the root command
func Execute() {
	os.Exit(execute(rootCmd, os.Stderr))
}

// execute runs cmd and reports any error of any subcommand through the
// terminal error formatter. It returns the process exit code.
func execute(cmd *cobra.Command, stderr io.Writer) int {
	if err := cmd.Execute(); err != nil {
		tui.PrintError(stderr, err)
		return 1
	}
	return 0
}

func hasStdin() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// loadConfig reads the config file and applies the --server override.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return cfg, err
	}
	if server, _ := cmd.Flags().GetString("server"); strings.TrimSpace(server) != "" {
		if err := cfg.Set("server_url", server); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// setupLogging routes client logs to the rotating log file. Failing to open
// it is not fatal: logs are discarded and the command continues.
func setupLogging(cfg config.Config, stderr io.Writer) *slog.Logger {
	logger, err := logging.Init(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: logging disabled: %v\n", err)
	}
	return logger
}
