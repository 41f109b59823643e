package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-lumio/internal/config"
	"github.com/goliatone/go-lumio/internal/server"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configFile string
	envFile    string
	logLevel   string
	logFormat  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "lumio",
		Short: "Render email signatures and price signature packages",
		Long: `lumio renders branded email signatures from employee and company data,
quotes signature packages against a live or fallback catalog, and serves both
over HTTP.

Examples:
  lumio render --employee jdoe --variant template-2
  lumio price premium --users 12
  lumio serve --config lumio.yaml`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file loaded before the configuration")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "log format (console or json)")

	root.AddCommand(newRenderCmd(flags))
	root.AddCommand(newPriceCmd(flags))
	root.AddCommand(newVariantsCmd())
	root.AddCommand(newServeCmd(flags))
	return root
}

// load reads the dotenv file and configuration, then applies log flags.
func (f *globalFlags) load() (*config.Config, error) {
	if err := config.LoadDotEnv(f.envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}
	return cfg, cfg.Validate()
}

// deps builds the shared collaborators with logging on stderr.
func deps(cmd *cobra.Command, cfg *config.Config) (server.Deps, error) {
	return server.BuildDeps(*cfg, logger(cmd.ErrOrStderr(), cfg))
}

func logger(out io.Writer, cfg *config.Config) zerolog.Logger {
	return cfg.Log.Logger(out)
}

func writeOutput(cmd *cobra.Command, path string, body []byte) error {
	if strings.TrimSpace(path) == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(body)
		return err
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	_, err := fmt.Fprintf(cmd.ErrOrStderr(), "Signature written to %s\n", path)
	return err
}
