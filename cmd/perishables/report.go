package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"perishables/internal/config"
	"perishables/internal/core/apperror"
	appctx "perishables/internal/core/context"
	"perishables/internal/domain/reports"
	"perishables/internal/domain/stock"
	"perishables/internal/infrastructure/archive"
	"perishables/internal/infrastructure/report"
	"perishables/internal/infrastructure/textfile"
	"perishables/pkg/logger"
)

const defaultConfigFile = "config.yaml"

type reportOptions struct {
	configFile  string
	input       string
	output      string
	xlsx        string
	archiveDir  string
	stores      []string
	logLevel    string
	development bool
}

func newReportCmd() *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Filter, prune and report the inventory",
		Long: `report loads the inventory, writes it as the first list and then runs every
configured query: the records of one store before removal, the same records
after removal of the ones matching the query criterion, and the stock value
sums before and after.

Stores not given with --store or in the config file are asked for on stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configFile, "config", defaultConfigFile, "Path to the YAML configuration file")
	f.StringVarP(&opts.input, "input", "i", "", "Inventory file (overrides config)")
	f.StringVarP(&opts.output, "output", "o", "", "Text report file (overrides config)")
	f.StringVar(&opts.xlsx, "xlsx", "", "Also write the report as an XLSX workbook")
	f.StringVar(&opts.archiveDir, "archive-dir", "", "Keep a zstd copy of the input in this directory")
	f.StringArrayVarP(&opts.stores, "store", "s", nil, "Store for the next query, in order (repeatable)")
	f.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.BoolVar(&opts.development, "dev", false, "Human readable console logs")

	return cmd
}

func runReport(ctx context.Context, cmd *cobra.Command, opts *reportOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts.configFile, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, opts); err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		Output:      cmd.ErrOrStderr(),
	})
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("create logger: %w", err))
	}
	defer log.Sync()

	ctx = appctx.WithTrace(ctx, appctx.NewTraceContext(cfg.Input))
	ctx = logger.WithLogger(ctx, log)

	source, err := textfile.ReadFile(ctx, cfg.Input)
	if err != nil {
		return err
	}

	if !source.IsEmpty() {
		if err := promptStores(cfg, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	queries, err := buildQueries(cfg)
	if err != nil {
		return err
	}

	out, closeAll, err := openWriters(cfg)
	if err != nil {
		return err
	}

	result, runErr := reports.NewService(out).Run(ctx, reports.Request{
		Source:  source,
		Queries: queries,
	})
	if err := errors.Join(runErr, closeAll()); err != nil {
		return err
	}

	if _, err := archive.New(cfg.ArchiveDir).Archive(ctx, cfg.Input); err != nil {
		logger.Warn(ctx, "failed to archive input", "error", err)
	}

	logger.Info(ctx, "report written",
		"output", cfg.Output,
		"records", result.Records,
		"queries", len(result.Queries),
	)
	return nil
}

func applyFlags(cfg *config.Config, opts *reportOptions) error {
	if opts.input != "" {
		cfg.Input = opts.input
	}
	if opts.output != "" {
		cfg.Output = opts.output
	}
	if opts.xlsx != "" {
		cfg.XLSX = opts.xlsx
	}
	if opts.archiveDir != "" {
		cfg.ArchiveDir = opts.archiveDir
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.development {
		cfg.Log.Development = true
	}

	if len(opts.stores) > len(cfg.Queries) {
		return apperror.NewInvalidInput("more --store flags than configured queries").
			WithDetail("stores", len(opts.stores)).
			WithDetail("queries", len(cfg.Queries))
	}
	for i, s := range opts.stores {
		cfg.Queries[i].Store = s
	}
	return cfg.Validate()
}

var ordinals = []string{"first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth", "ninth", "tenth"}

// promptStores asks for every query store still unset, one line each.
func promptStores(cfg *config.Config, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for i := range cfg.Queries {
		if cfg.Queries[i].Store != "" {
			continue
		}

		name := fmt.Sprintf("#%d", i+1)
		if i < len(ordinals) {
			name = ordinals[i]
		}
		fmt.Fprintf(out, "Input %s store: ", name)

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return apperror.NewIO("read", "stdin", err)
			}
			return apperror.NewInvalidInput("no store name given").
				WithDetail("query", cfg.Queries[i].Label)
		}
		cfg.Queries[i].Store = strings.TrimSpace(scanner.Text())
	}
	return nil
}

func buildQueries(cfg *config.Config) ([]reports.Query, error) {
	queries := make([]reports.Query, 0, len(cfg.Queries))
	for _, q := range cfg.Queries {
		criterion, err := stock.NewCriterion(q.Criterion.Begin.Time, q.Criterion.End.Time, q.Criterion.Remaining)
		if err != nil {
			return nil, err
		}
		queries = append(queries, reports.Query{
			Label:     q.Label,
			Store:     q.Store,
			Criterion: criterion,
		})
	}
	return queries, nil
}

// openWriters returns the report writer and a func that flushes and closes
// every file behind it.
func openWriters(cfg *config.Config) (reports.Writer, func() error, error) {
	text, err := report.CreateTableFile(cfg.Output)
	if err != nil {
		return nil, nil, err
	}
	if cfg.XLSX == "" {
		return text, text.Close, nil
	}

	book := report.NewXLSXWriter(cfg.XLSX)
	closeAll := func() error {
		return errors.Join(text.Close(), book.Close())
	}
	return report.Multi(text, book), closeAll, nil
}
