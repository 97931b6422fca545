package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/icco/cinevault/lib/config"
	"github.com/icco/cinevault/lib/logging"
	"github.com/icco/cinevault/lib/metrics"
	"github.com/icco/cinevault/lib/tmdb"
)

var (
	envFile string
	cfg     *config.Config
	logger  *slog.Logger
	mtr     *metrics.Metrics
	client  *tmdb.Client
)

// rootCmd runs the web server when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "cinevault",
	Short: "Browse movies by category and keep a wishlist",
	Long: `cinevault serves a small web app over The Movie Database: three
category shelves, film detail pages and a per-session wishlist.`,
	PersistentPreRunE: initializeApp,
	RunE:              runServe,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default is ./.env when present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
}

// initializeApp loads configuration and builds the shared clients.
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = logging.New(cfg.Logging)
	slog.SetDefault(logger)

	mtr = metrics.New()

	client, err = tmdb.NewClient(tmdb.Config{
		BaseURL:      cfg.TMDB.BaseURL,
		ImageBaseURL: cfg.TMDB.ImageBaseURL,
		APIKey:       cfg.TMDB.APIKey,
		AccessToken:  cfg.TMDB.AccessToken,
		Timeout:      cfg.TMDB.Timeout,
	}, logger, tmdb.WithMetrics(mtr))
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	return nil
}
