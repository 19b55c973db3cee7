// Package cli wires the routing engine behind its command-line
// surface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clinidocs/docrouter/internal/adapters/driven/config/file"
	"github.com/clinidocs/docrouter/internal/adapters/driven/fixture"
	"github.com/clinidocs/docrouter/internal/adapters/driven/storage/sqlite"
	"github.com/clinidocs/docrouter/internal/core/ports/driven"
	"github.com/clinidocs/docrouter/internal/core/ports/driving"
	"github.com/clinidocs/docrouter/internal/core/services"
	"github.com/clinidocs/docrouter/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	configPath  string
	fixturePath string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "docrouter",
	Short: "Route submitted documents to their destination libraries",
	Long: `docrouter places submitted documents according to routing rules and
library eligibility, and carries their metadata across schema
boundaries on the way.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.docrouter/config.toml)")
	rootCmd.PersistentFlags().StringVar(&fixturePath, "fixture", "", "site fixture file (overrides the configured path)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable trace logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// app bundles one fully wired engine instance.
type app struct {
	cfg    file.Config
	site   *fixture.Site
	stores *fixture.Stores
	router driving.Router
	rules  driving.RuleManager
	log    logger.Logger
	closer func() error
}

func (a *app) close() {
	if a.closer != nil {
		_ = a.closer()
	}
}

// loadConfig resolves the config file path and reads it.
func loadConfig() (file.Config, error) {
	path := configPath
	if path == "" {
		var err error
		if path, err = file.DefaultPath(); err != nil {
			return file.Config{}, err
		}
	}
	return file.Load(path)
}

// buildApp loads the configuration and fixture and wires the engine.
func buildApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	path := fixturePath
	if path == "" {
		path = cfg.FixturePath
	}
	if path == "" {
		return nil, fmt.Errorf("no site fixture: set fixture_path in the config or pass --fixture")
	}
	site, err := fixture.Load(path)
	if err != nil {
		return nil, err
	}
	stores := site.Build()

	threshold := logger.Medium
	if verbose || cfg.Verbose {
		threshold = logger.Low
	}
	log := logger.New(os.Stderr, threshold)

	var ruleStore driven.RuleStore = stores.Rules
	var closer func() error
	if cfg.RulesDataDir != "" {
		db, err := sqlite.NewStore(cfg.RulesDataDir)
		if err != nil {
			return nil, err
		}
		ruleStore = db.RuleStore()
		closer = db.Close
	}

	transformer := services.NewTransformer(
		stores.Terms,
		services.NewLookupResolver(stores.Content, log),
		services.NewPrincipalResolver(stores.Directory, log),
		log,
	)
	copier := services.NewCopyEngine(stores.Content, transformer, services.CopyOptions{
		OmitTitles: cfg.OmitFields,
		Versioned:  cfg.VersionedUpdates,
	}, log)
	engine := services.NewEngine(
		stores.Content,
		services.NewRuleTable(ruleStore, log),
		services.NewHierarchy(stores.Content, log),
		services.NewEligibility(stores.Content, log),
		services.NewFolderPath(stores.Content, log),
		copier,
		services.NewPropertyReader(log),
		log,
	)

	return &app{
		cfg:    cfg,
		site:   site,
		stores: stores,
		router: engine,
		rules:  services.NewRuleService(ruleStore, log),
		log:    log,
		closer: closer,
	}, nil
}
