package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/bizfeed/app"
	"github.com/CrestNiraj12/bizfeed/domain"
	"github.com/CrestNiraj12/bizfeed/infra/auth"
	"github.com/CrestNiraj12/bizfeed/infra/config"
	"github.com/CrestNiraj12/bizfeed/infra/directory"
	"github.com/CrestNiraj12/bizfeed/infra/editor"
	"github.com/CrestNiraj12/bizfeed/infra/logging"
	"github.com/CrestNiraj12/bizfeed/infra/media"
	"github.com/CrestNiraj12/bizfeed/infra/memory"
	"github.com/CrestNiraj12/bizfeed/infra/sqlite"
	"github.com/CrestNiraj12/bizfeed/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// runOptions are the command-line overrides of the environment config.
type runOptions struct {
	source   string
	dbPath   string
	apiURL   string
	token    string
	pageSize int
	debug    bool
}

func newRootCmd() *cobra.Command {
	var opts runOptions
	v, c, d := resolvedRuntimeVersionInfo(version, commit, date)

	root := &cobra.Command{
		Use:   "bizfeed",
		Short: "A terminal feed of local business updates",
		Long: `bizfeed shows a windowed feed of business posts in the terminal.

Posts come from an in-memory sample catalogue, a SQLite database or the
directory API. Settings are read from BIZFEED_* environment variables and
can be overridden with flags.`,
		Version:       fmt.Sprintf("%s\ncommit: %s\nbuilt: %s", v, c, d),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	root.SetVersionTemplate("bizfeed {{.Version}}\n")

	flags := root.Flags()
	flags.StringVar(&opts.source, "source", "", "post source: memory, sqlite or http")
	flags.StringVar(&opts.dbPath, "db", "", "SQLite database path")
	flags.StringVar(&opts.apiURL, "api", "", "directory API base URL (https)")
	flags.StringVar(&opts.token, "token", "", "bearer token file for the directory API")
	flags.IntVar(&opts.pageSize, "page-size", 0, "posts revealed per page")
	flags.BoolVar(&opts.debug, "debug", false, "write debug logs")

	root.AddCommand(newSeedCmd())
	return root
}

func newSeedCmd() *cobra.Command {
	var (
		dbPath string
		count  int
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill a SQLite database with sample posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 0 {
				return fmt.Errorf("--count must not be negative")
			}
			if dbPath == "" {
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("config: %w", err)
				}
				dbPath = cfg.DBPath
			}
			n, err := seed(cmd.Context(), dbPath, count, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d posts into %s (%d total)\n", count, dbPath, n)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default: $BIZFEED_DB or <config dir>/bizfeed.db)")
	cmd.Flags().IntVar(&count, "count", 50, "number of sample posts")
	return cmd
}

// loadConfig reads the environment config and applies flags the user set.
func loadConfig(cmd *cobra.Command, opts runOptions) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source = opts.source
	} else if _, set := os.LookupEnv("BIZFEED_SOURCE"); !set {
		// The last used source applies unless it needs an API URL we lack.
		st, err := config.LoadUIState(cfg.UIStatePath())
		if err == nil && st.Source != "" && (st.Source != config.SourceHTTP || cfg.APIURL != "") {
			cfg.Source = st.Source
		}
	}
	if flags.Changed("db") {
		cfg.DBPath = opts.dbPath
	}
	if flags.Changed("api") {
		cfg.APIURL = opts.apiURL
	}
	if flags.Changed("token") {
		cfg.TokenPath = opts.token
	}
	if flags.Changed("page-size") {
		cfg.PageSize = opts.pageSize
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}
	if err := cfg.Normalize(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// buildSource opens the configured post source. The returned close func
// releases it and is never nil.
func buildSource(cfg config.Config, now time.Time) (app.PostSource, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Source {
	case config.SourceSQLite:
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.SourceHTTP:
		client := directory.NewClient(cfg.APIURL, auth.NewOptionalFileTokenProvider(cfg.TokenPath))
		return directory.NewFeedService(client), noop, nil
	default:
		return memory.NewSample(cfg.MockPosts, now), noop, nil
	}
}

func sourceLabel(cfg config.Config) string {
	switch cfg.Source {
	case config.SourceSQLite:
		return "sqlite"
	case config.SourceHTTP:
		return strings.TrimPrefix(cfg.APIURL, "https://")
	default:
		return "sample"
	}
}

func seed(ctx context.Context, path string, count int, now time.Time) (int, error) {
	store, err := sqlite.Open(path)
	if err != nil {
		return 0, err
	}
	defer store.Close()
	if err := store.Seed(ctx, domain.SamplePosts(count, now)); err != nil {
		return 0, err
	}
	return store.Count(ctx)
}

func run(ctx context.Context, cfg config.Config) error {
	logger, err := logging.New(cfg.LogPath(), cfg.Debug)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	source, closeSource, err := buildSource(cfg, time.Now())
	if err != nil {
		return fmt.Errorf("opening %s source: %w", cfg.Source, err)
	}
	defer func() { _ = closeSource() }()

	uiState, err := config.LoadUIState(cfg.UIStatePath())
	if err != nil {
		logger.Warn("ui state unreadable, using defaults", zap.Error(err))
	}
	uiState.Source = cfg.Source
	if err := config.SaveUIState(cfg.UIStatePath(), uiState); err != nil {
		logger.Warn("saving ui state failed", zap.Error(err))
	}

	logger.Info("starting",
		zap.String("source", cfg.Source),
		zap.Int("page_size", cfg.PageSize))

	rootModel := tui.NewApp(tui.Deps{
		Source:      source,
		Images:      media.NewHTTPLoader(),
		Editor:      editor.NewEnvEditor(),
		Logger:      logger,
		PageSize:    cfg.PageSize,
		ShowImages:  !uiState.HideImages,
		StatePath:   cfg.UIStatePath(),
		SourceLabel: sourceLabel(cfg),
	})

	p := tea.NewProgram(rootModel, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("bizfeed: %w", err)
	}
	return nil
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "bizfeed: %v\n", err)
		os.Exit(1)
	}
}
