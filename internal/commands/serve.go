package commands

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/diogo/posechat/internal/config"
	"github.com/diogo/posechat/internal/logging"
	"github.com/diogo/posechat/internal/recommend"
	"github.com/diogo/posechat/internal/server"
)

// NewServeCmd creates the recommendation server command
func NewServeCmd(deps *Dependencies) *cobra.Command {
	var (
		addr, catalog, images string
		envFile               string
		logLevel, logFormat   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the recommendation server",
		Long: `Run the pose recommendation server and the browser chat page.

Settings come from the environment (POSECHAT_ADDR, POSECHAT_CATALOG,
POSECHAT_IMAGE_DIR), optionally loaded from a .env file. Flags override
the environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewServerLogger(logLevel, logFormat, deps.Stderr)

			if err := godotenv.Load(envFile); err != nil {
				if cmd.Flags().Changed("env-file") || !os.IsNotExist(err) {
					return fmt.Errorf("failed to load %s: %w", envFile, err)
				}
				logger.Debug("no env file, using process environment", "path", envFile)
			}

			scfg, err := config.LoadServerConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				scfg.Addr = addr
			}
			if cmd.Flags().Changed("catalog") {
				scfg.CatalogPath = catalog
			}
			if cmd.Flags().Changed("images") {
				scfg.ImageDir = images
			}

			handler, err := newServerHandler(scfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx, server.NewHTTPServer(scfg.Addr, handler), logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":5000", "Listen address")
	cmd.Flags().StringVar(&catalog, "catalog", "posestepvideo.csv", "Pose catalog CSV file")
	cmd.Flags().StringVar(&images, "images", "Pose", "Directory with one picture folder per pose")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Environment file to load")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&logFormat, "log-format", "text", "Log format (text or json)")
	return cmd
}

// newServerHandler loads the catalog and wires the recommendation engine.
func newServerHandler(scfg config.ServerConfig, logger *slog.Logger) (http.Handler, error) {
	catalog, err := recommend.LoadCatalog(scfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded", "path", scfg.CatalogPath, "poses", len(catalog))

	engine := recommend.NewEngine(catalog,
		recommend.WithImageDir(scfg.ImageDir),
		recommend.WithLogger(logger),
	)
	return server.New(engine, logger), nil
}
