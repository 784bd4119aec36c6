package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/allenday/mtf/internal/config"
	"github.com/allenday/mtf/internal/log"
	"github.com/allenday/mtf/internal/ux"
)

var rootCmd = &cobra.Command{
	Use:   "mtf",
	Short: "Plan dependency toolkit",
	Long: `mtf turns XML work breakdowns into dependency graphs and answers
questions about them: which tasks are unblocked, how the hierarchy nests,
and what the graph looks like as a diagram.

Use 'mtf plan validate' to check a plan document against the schema.
Use 'mtf plan ready' to list tasks whose dependencies are complete.
Use 'mtf plan outline' to print the epic/story/task hierarchy.
Use 'mtf registry new' to register a reusable component.`,
	PersistentPreRunE: initRuntime,
	SilenceUsage:      true,
}

// cfg holds the loaded project configuration. It is set by initRuntime
// before any subcommand runs and defaults to the built-in values so
// helpers stay usable in tests.
var cfg = config.Default()

var (
	rootConfigPath string
	rootLogLevel   string
	rootLogFormat  string
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a cancellable context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// initRuntime loads the project configuration and wires the default
// logger. An explicitly passed --config file must exist; the discovered
// one may be missing, in which case defaults apply.
func initRuntime(cmd *cobra.Command, args []string) error {
	path := rootConfigPath
	if path == "" {
		discovered, err := ux.DiscoverConfigFile(config.DefaultFileName)
		if err != nil {
			return ux.FormatError(err, "discovering config file")
		}
		path = discovered
	} else if _, err := os.Stat(path); err != nil {
		return ux.EnhanceError(fmt.Errorf("read config file %s: %w", path, err))
	}

	loaded, err := config.Load(path)
	if err != nil {
		return ux.EnhanceError(err)
	}
	cfg = loaded

	// Flags override the file
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = rootLogLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = rootLogFormat
	}
	if err := cfg.Validate(); err != nil {
		return ux.EnhanceError(fmt.Errorf("invalid config: %w", err))
	}

	logger := log.New(log.Config{
		Level:  log.ParseLevel(cfg.Log.Level),
		Format: log.ParseFormat(cfg.Log.Format),
		Output: os.Stderr,
	})
	log.SetDefaultLogger(logger)

	logger.Debug("runtime initialized",
		"config", path,
		"log_level", cfg.Log.Level,
		"log_format", cfg.Log.Format,
	)

	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "config file (default is the nearest .mtf.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&rootLogFormat, "log-format", "text", "log format (text, json)")
}
