package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"operadoras/internal/app"
	"operadoras/internal/domain"
	"operadoras/internal/infra/config"
)

type cliIO struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func defaultIO() cliIO {
	return cliIO{in: os.Stdin, out: os.Stdout, err: os.Stderr}
}

type cliOptions struct {
	configPath string
	apiURL     string
	output     string
	logLevel   string
	io         cliIO
}

func newRootCommand(streams cliIO) *cobra.Command {
	opts := cliOptions{
		output: outputText,
		io:     streams,
	}

	root := &cobra.Command{
		Use:           "operadorasctl",
		Short:         "Browse health plan operators and their expense history",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			applyRootFlagBindings(cmd, &opts)
			return validateOutputFlag(opts.output)
		},
	}
	root.SetIn(streams.in)
	root.SetOut(streams.out)
	root.SetErr(streams.err)

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file (optional)")
	root.PersistentFlags().StringVar(&opts.apiURL, "api", "", "API base URL (overrides api.baseURL)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", opts.output, "output format: text, json or yaml")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (overrides log.level)")

	root.AddCommand(
		newListCmd(&opts),
		newShowCmd(&opts),
		newBrowseCmd(&opts),
	)

	return root
}

func applyRootFlagBindings(cmd *cobra.Command, opts *cliOptions) {
	flags := cmd.Flags()
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "config":
			opts.configPath, _ = flags.GetString("config")
		case "api":
			opts.apiURL, _ = flags.GetString("api")
		case "output":
			opts.output, _ = flags.GetString("output")
		case "log-level":
			opts.logLevel, _ = flags.GetString("log-level")
		}
	})
	opts.output = strings.ToLower(strings.TrimSpace(opts.output))
}

func validateOutputFlag(output string) error {
	switch output {
	case outputText, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("--output must be one of text, json, yaml (got %q)", output)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(ctx context.Context, opts *cliOptions) (domain.Config, error) {
	cfg, err := config.NewLoader(nil).Load(ctx, opts.configPath)
	if err != nil {
		return domain.Config{}, err
	}
	if value := strings.TrimSpace(opts.apiURL); value != "" {
		cfg.API.BaseURL = strings.TrimRight(value, "/")
	}
	if value := strings.ToLower(strings.TrimSpace(opts.logLevel)); value != "" {
		cfg.Log.Level = value
	}
	if err := config.Validate(cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func openSession(cmd *cobra.Command, opts *cliOptions) (*app.Session, error) {
	cfg, err := loadConfig(cmd.Context(), opts)
	if err != nil {
		return nil, err
	}
	return app.InitializeSession(cfg, app.LoggingConfig{Output: opts.io.err})
}
