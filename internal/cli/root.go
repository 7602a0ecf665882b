// Package cli implements numeralctl, the command-line front end for the
// converter. Commands load the same layered configuration as the service and
// convert either in-process or through a running service.
package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/numeral-service/internal/platform/config"
	"github.com/jsamuelsen11/numeral-service/internal/platform/logging"
)

const defaultProfile = "local"

// Execute runs numeralctl with the process arguments and exits non-zero on
// failure.
func Execute(version string) {
	cmd := NewRootCmd(version)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	version   string
	profile   string
	configDir string
	verbose   bool
}

// NewRootCmd builds the numeralctl command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{version: version}

	cmd := &cobra.Command{
		Use:          "numeralctl",
		Short:        "Convert integers to Roman numerals",
		Version:      version,
		SilenceUsage: true,
	}

	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		profile = defaultProfile
	}

	cmd.PersistentFlags().StringVar(&opts.profile, "profile", profile, "config profile (local, dev, qa, prod); defaults to $APP_PROFILE")
	cmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", config.DefaultDir, "directory holding base.yaml and the profile files")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at the configured level instead of errors only")

	cmd.AddCommand(convertCmd(opts))
	cmd.AddCommand(mcpCmd(opts))
	return cmd
}

// load reads the configuration selected by the persistent flags.
func (o *rootOptions) load() (*config.Config, error) {
	return config.Load(o.profile, config.WithConfigDir(o.configDir))
}

// logger writes to w, which is always stderr-like so stdout stays clean for
// results and protocol traffic.
func (o *rootOptions) logger(cfg *config.Config, w io.Writer) *slog.Logger {
	level := "error"
	if o.verbose {
		level = cfg.Log.Level
	}
	return logging.New(level, "text", w)
}
