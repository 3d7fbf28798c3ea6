package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	confreg "github.com/MKhiriev/go-conf-registry"
	"github.com/MKhiriev/go-conf-registry/internal/logger"
)

// bootstrap holds the tool's own settings, read from the environment before
// flag parsing so flags can override them.
type bootstrap struct {
	// Schema is the path to the schema file declaring keys and specs.
	// Env: CONFCHECK_SCHEMA
	Schema string `env:"SCHEMA"`

	// Files is a colon-separated list of local config file paths.
	// Env: CONFCHECK_FILES
	Files []string `env:"FILES" envSeparator:":"`

	// LogLevel controls diagnostic verbosity ("debug", "info", ...).
	// Env: CONFCHECK_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// appFlags holds the resolved command-line flags shared by all subcommands.
type appFlags struct {
	schemaPath string
	files      []string
	props      []string
	logLevel   string
}

// newRootCommand builds the confcheck command tree. Flag defaults come from
// the CONFCHECK_* environment, so `CONFCHECK_SCHEMA=schema.json confcheck
// validate` and `confcheck validate --schema schema.json` are equivalent.
func newRootCommand() (*cobra.Command, error) {
	var bs bootstrap
	if err := env.ParseWithOptions(&bs, env.Options{Prefix: "CONFCHECK_"}); err != nil {
		return nil, fmt.Errorf("error reading CONFCHECK_* environment: %w", err)
	}

	flags := &appFlags{}

	cmd := &cobra.Command{
		Use:   "confcheck",
		Short: "Validate and inspect layered configuration against a key schema",
		Long: `confcheck loads configuration the way an application using
go-conf-registry would: local config files, then the main file named by
CONF___FILE, then environment variables, then --set properties — later
sources overriding earlier ones key-by-key — and validates every declared
key against the schema.

The schema is a flat JSON object mapping keys to spec descriptors:

  {
    "app.server/http-port": "int",
    "app.server/domain": "non-empty",
    "app/mode": {"one-of": ["dev", "prod"]},
    "app/owner": null
  }

A null descriptor marks the key required but unconstrained.`,
		SilenceUsage: true,
		// attach the role logger to the command context so subcommands
		// and helpers recover it via logger.FromContext
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			log := logger.NewLogger("confcheck", flags.logLevel)
			cmd.SetContext(log.WithContext(ctx))
		},
	}

	cmd.PersistentFlags().StringVar(&flags.schemaPath, "schema", bs.Schema, "Schema file path (flat JSON: key -> spec)")
	cmd.PersistentFlags().StringArrayVar(&flags.files, "file", bs.Files, "Local config file, repeatable, loaded in order")
	cmd.PersistentFlags().StringArrayVar(&flags.props, "set", nil, "Property in NAME=VALUE form (external name syntax), repeatable")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", bs.LogLevel, "Log level (debug, info, warn, error)")

	cmd.AddCommand(newValidateCommand(flags))
	cmd.AddCommand(newShowCommand(flags))

	return cmd, nil
}

// buildConf declares the schema into a fresh registry and assembles the load
// options shared by the validate and show commands. The registry logs
// through a child of the command's context logger, so enriching one never
// affects the other.
func buildConf(cmd *cobra.Command, flags *appFlags) (*confreg.Conf, []confreg.LoadOption, error) {
	if flags.schemaPath == "" {
		return nil, nil, fmt.Errorf("no schema given: use --schema or CONFCHECK_SCHEMA")
	}

	log := logger.FromContext(cmd.Context()).GetChildLogger()

	pairs, err := schemaPairs(flags.schemaPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading schema: %w", err)
	}

	c := confreg.New(confreg.WithLogger(log.Logger))
	if err := c.Declare(pairs...); err != nil {
		return nil, nil, fmt.Errorf("error declaring schema keys: %w", err)
	}

	var opts []confreg.LoadOption
	if len(flags.files) > 0 {
		opts = append(opts, confreg.WithFiles(flags.files...))
	}

	props, err := parseProps(flags.props)
	if err != nil {
		return nil, nil, err
	}

	if len(props) > 0 {
		opts = append(opts, confreg.WithProperties(props))
	}

	return c, opts, nil
}

// parseProps turns repeated --set NAME=VALUE flags into a properties table.
func parseProps(entries []string) (map[string]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	props := make(map[string]string, len(entries))
	for _, entry := range entries {
		name, value, found := strings.Cut(entry, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid --set %q: need NAME=VALUE", entry)
		}

		props[name] = value
	}

	return props, nil
}
