package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fakenft/internal/auth"
	"fakenft/internal/catalog"
	"fakenft/internal/config"
	"fakenft/internal/logging"
	"fakenft/internal/network"
	"fakenft/internal/order"
	"fakenft/internal/profile"
	"fakenft/internal/settings"
)

const tokenSubject = "catalog-cli"

var (
	configPath      string
	catalogURL      string
	profileURL      string
	settingsBackend string
	logLevel        string

	appEnv *environment
)

// environment holds the dependencies shared by every subcommand.
type environment struct {
	cfg     config.Config
	logger  *zap.Logger
	prefs   settings.Store
	catalog *catalog.DataProvider
	profile *profile.DataProvider
	orders  *order.DataProvider
}

func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "catalog",
		Short:        "Browse the NFT marketplace from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.LoadDotEnv(".env"); err != nil {
				return err
			}
			cfg, err := config.LoadFile(configPath)
			if err != nil {
				return err
			}
			if catalogURL != "" {
				cfg.CatalogBaseURL = catalogURL
			}
			if profileURL != "" {
				cfg.ProfileBaseURL = profileURL
			}
			if settingsBackend != "" {
				cfg.SettingsBackend = settingsBackend
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}

			logger, err := logging.NewConsole(cfg.LogLevel)
			if err != nil {
				return err
			}
			prefs, err := settings.Open(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("open settings: %w", err)
			}

			env := &environment{cfg: cfg, logger: logger, prefs: prefs}
			token, err := env.resolveToken(cmd.Context())
			if err != nil {
				logger.Warn("no api token, writes will be rejected", zap.Error(err))
			}
			client := network.NewClient(cfg.HTTPTimeout,
				network.WithToken(token),
				network.WithRetries(cfg.HTTPMaxRetries, cfg.HTTPRetryBase, cfg.HTTPRetryMax),
				network.WithLogger(logger),
			)
			env.catalog = catalog.NewDataProvider(client, cfg.CatalogBaseURL)
			env.profile = profile.NewDataProvider(client, cfg.ProfileBaseURL, cfg.FetchParallel)
			env.orders = order.NewDataProvider(client, cfg.ProfileBaseURL)
			appEnv = env
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appEnv == nil {
				return nil
			}
			_ = appEnv.logger.Sync()
			if c, ok := appEnv.prefs.(io.Closer); ok {
				return c.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "fakenft.yaml", "YAML config file")
	root.PersistentFlags().StringVar(&catalogURL, "catalog-url", "", "catalog API base URL (overrides CATALOG_BASE_URL)")
	root.PersistentFlags().StringVar(&profileURL, "profile-url", "", "profile/order API base URL (overrides PROFILE_BASE_URL)")
	root.PersistentFlags().StringVar(&settingsBackend, "settings", "", "settings backend: file, memory, sqlite or postgres")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	root.AddCommand(
		collectionsCmd(),
		refreshCmd(),
		collectionCmd(),
		authorCmd(),
		nftCmd(),
		profileCmd(),
		likeCmd(),
		myNFTsCmd(),
		orderCmd(),
		currenciesCmd(),
		payCmd(),
		tokenCmd(),
	)
	return root
}

// resolveToken prefers an explicit API_TOKEN, then a stored token, then signs
// a fresh one with the configured secret.
func (e *environment) resolveToken(ctx context.Context) (string, error) {
	if e.cfg.APIToken != "" {
		return e.cfg.APIToken, nil
	}
	stored, ok, err := e.prefs.Get(ctx, settings.APITokenKey)
	if err != nil {
		e.logger.Warn("stored token unreadable", zap.Error(err))
	} else if ok && stored != "" {
		return stored, nil
	}
	token, _, err := auth.Sign(e.cfg.JWTSecret, tokenSubject, e.tokenTTL())
	return token, err
}

func (e *environment) tokenTTL() time.Duration {
	if e.cfg.TokenTTL <= 0 {
		return time.Hour
	}
	return e.cfg.TokenTTL
}
