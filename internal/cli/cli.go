// Package cli implements the boxscope command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxscope/pkg/buildinfo"
	"github.com/matzehuels/boxscope/pkg/cache"
	"github.com/matzehuels/boxscope/pkg/config"
	"github.com/matzehuels/boxscope/pkg/errors"
	"github.com/matzehuels/boxscope/pkg/observability"
	"github.com/matzehuels/boxscope/pkg/scene"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "boxscope"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config *config.Config

	configPath string
	verbose    bool
	anomalies  *anomalyCounter
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:    newLogger(w, level),
		Config:    config.Default(),
		anomalies: &anomalyCounter{},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.verbose = level <= log.DebugLevel
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "boxscope",
		Short: "Boxscope inspects captured UI hierarchies",
		Long: `Boxscope loads a captured hierarchy of nested bounding boxes and lets you
inspect it: print the tree, hit test points, compute overlay offsets, render
diagrams, explore it interactively or serve it over HTTP.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.Path()+")")

	// Register all subcommands
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.hitCommand())
	root.AddCommand(c.offsetCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and installs the anomaly counter. The config's
// log level applies unless --verbose already raised it.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	if !c.verbose && cfg.Log.Level != "" {
		level, err := log.ParseLevel(cfg.Log.Level)
		if err != nil {
			c.Logger.Warn("ignoring log level from config", "level", cfg.Log.Level)
		} else {
			c.Logger.SetLevel(level)
		}
	}

	observability.SetSceneHooks(c.anomalies)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// projector returns a projector logging through the CLI logger.
func (c *CLI) projector() *scene.Projector {
	return scene.NewProjector(c.Logger)
}

// =============================================================================
// Cache Factory
// =============================================================================

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/boxscope/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// ReportError prints err for the user. Coded errors show their message with
// the code as a detail line.
func (c *CLI) ReportError(err error) {
	code := errors.GetCode(err)
	printError("%s", errors.UserMessage(err))
	if code != "" {
		printDetail("code: %s", code)
	}
	c.Logger.Debug("command failed", "err", err)
}
