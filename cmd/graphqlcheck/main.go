// Command graphqlcheck parses and validates a GraphQL schema, and
// optionally an operation document against it, printing any errors
// found and exiting non-zero if there were any.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/wundergraph/graphql-core-engine/graphql"
	"github.com/wundergraph/graphql-core-engine/internal/source"
	"github.com/wundergraph/graphql-core-engine/internal/xlog"
)

type config struct {
	schemaPath string
	queryPath  string
	verbose    bool
}

// RegisterFlags adds this command's flags to the given flag set.
func (c *config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.schemaPath, "schema", "", "path to an SDL schema file (required)")
	flags.StringVar(&c.queryPath, "query", "", "path to a GraphQL operation document to validate against the schema")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log each check stage to stderr")
}

func main() {
	cfg := &config{}

	rootCmd := &cobra.Command{
		Use:           "graphqlcheck --schema schema.graphql [--query query.graphql]",
		Short:         "Parse and validate a GraphQL schema and optional operation document",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(cfg)
		},
	}

	cfg.RegisterFlags(rootCmd.Flags())
	_ = rootCmd.MarkFlagRequired("schema")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config) error {
	logger := xlog.Noop
	if cfg.verbose {
		zl, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("graphqlcheck: build logger: %w", err)
		}
		defer zl.Sync() //nolint:errcheck
		logger = xlog.NewZap(zl)
	}

	schemaSrc, err := os.ReadFile(cfg.schemaPath)
	if err != nil {
		return fmt.Errorf("graphqlcheck: read schema: %w", err)
	}

	schema, err := graphql.BuildSchemaWithLogger(string(schemaSrc), logger)
	if err != nil {
		return fmt.Errorf("graphqlcheck: schema: %w", err)
	}
	if errs := graphql.ValidateSchema(schema); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "schema error: %v\n", e)
		}
		return fmt.Errorf("graphqlcheck: schema has %d error(s)", len(errs))
	}
	fmt.Fprintln(os.Stdout, "schema: OK")

	if cfg.queryPath == "" {
		return nil
	}

	querySrc, err := os.ReadFile(cfg.queryPath)
	if err != nil {
		return fmt.Errorf("graphqlcheck: read query: %w", err)
	}

	doc, report := graphql.Parse(source.New(string(querySrc), source.WithName(cfg.queryPath)))
	if report.HasErrors() {
		return fmt.Errorf("graphqlcheck: query parse: %w", &report)
	}

	if errs := graphql.Validate(schema, doc); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "validation error: %v\n", e)
		}
		return fmt.Errorf("graphqlcheck: query has %d validation error(s)", len(errs))
	}
	fmt.Fprintln(os.Stdout, "query: OK")
	return nil
}
