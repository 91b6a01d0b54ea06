// Package cli implements the marketplace command-line interface.
//
// The root command opens the interactive browser; list streams a tab's
// catalog to stdout. Both share one service graph built from the YAML config.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Mythicsoul/spicetify-marketplace/internal/blacklist"
	"github.com/Mythicsoul/spicetify-marketplace/internal/config"
	"github.com/Mythicsoul/spicetify-marketplace/internal/domain"
	"github.com/Mythicsoul/spicetify-marketplace/internal/engine"
	"github.com/Mythicsoul/spicetify-marketplace/internal/logger"
	"github.com/Mythicsoul/spicetify-marketplace/internal/manifest"
	"github.com/Mythicsoul/spicetify-marketplace/internal/provider/github"
	"github.com/Mythicsoul/spicetify-marketplace/internal/provider/local"
	"github.com/Mythicsoul/spicetify-marketplace/internal/provider/raw"
	"github.com/Mythicsoul/spicetify-marketplace/internal/storage"
)

const appName = "marketplace"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// homeRepo hosts the snippet list and is credited as the snippets' repository.
var homeRepo = domain.RepoRef{User: "CharlieS1103", Repo: "spicetify-marketplace", Branch: "main"}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Browse community extensions, themes and snippets",
		Long:         `marketplace browses community add-ons for Spicetify, loading the catalog page by page as you scroll.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowser(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to marketplace.yaml (default ~/.spicetify-marketplace/marketplace.yaml)")

	root.AddCommand(c.listCommand())

	return root
}

// services is everything a catalog coordinator needs except its listener.
type services struct {
	cfg     *config.Config
	repo    *storage.LocalRepository
	raw     *raw.Client
	deny    *blacklist.Blacklist
	sources []domain.Source
}

func (c *CLI) loadServices(ctx context.Context) (*services, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("config loaded", "page_size", cfg.PageSize, "concurrency", cfg.Concurrency)

	if err := logger.Init(cfg.LogPath); err != nil {
		c.Logger.Warn("file logging disabled", "err", err)
	}

	repo, err := storage.NewLocalRepository()
	if err != nil {
		return nil, fmt.Errorf("open state: %w", err)
	}

	rawClient := raw.NewClient(cfg.RawBaseURL, cfg.Timeout)

	deny := blacklist.New(cfg.Blacklist...)
	deny.Load(ctx, rawClient, cfg.BlacklistURL)
	c.Logger.Debug("blacklist loaded", "repos", deny.Len())

	search, err := github.NewClient(cfg.Token, cfg.SearchBaseURL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("github client: %w", err)
	}
	if cfg.Token == "" {
		c.Logger.Debug("no " + config.EnvToken + " set, searching anonymously")
	}

	resolver := manifest.NewResolver(rawClient)

	return &services{
		cfg:  cfg,
		repo: repo,
		raw:  rawClient,
		deny: deny,
		sources: []domain.Source{
			github.NewExtensionProvider(search, resolver, deny, cfg.Topics.Extensions, cfg.PageSize),
			github.NewThemeProvider(search, resolver, deny, cfg.Topics.Themes, cfg.PageSize),
			raw.NewSnippetSource(rawClient, cfg.SnippetsURL, homeRepo),
			local.NewInstalledSource(repo),
		},
	}, nil
}

func (s *services) coordinator(ctx context.Context, listener engine.Listener) *engine.Coordinator {
	return engine.NewCoordinator(ctx, s.sources, listener, engine.Options{
		PageSize:      s.cfg.PageSize,
		Concurrency:   s.cfg.Concurrency,
		Denylist:      s.deny,
		Installed:     s.repo,
		HideInstalled: s.repo.GetVisual().HideInstalled,
	})
}
