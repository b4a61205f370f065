package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/maude/pkg/maude"
	"github.com/cognicore/maude/pkg/maude/analytics"
	"github.com/cognicore/maude/pkg/maude/config"
	"github.com/cognicore/maude/pkg/maude/report"
	"github.com/cognicore/maude/pkg/maude/store"
	"github.com/cognicore/maude/pkg/maude/store/sqlite"
	"github.com/cognicore/maude/pkg/maude/table"
)

type runOptions struct {
	input   string
	output  string
	config  string
	lexicon string
	summary bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Select and annotate reports from a MAUDE export",
		Long: `Reads a MAUDE export (.xlsx, .csv, .tsv, .jsonl or .html), keeps the reports
that concern a catalogued instrument, and writes them with their cause labels
and root cause to the output file (.xlsx, .csv, .tsv, .jsonl, or .db/.sqlite).

Missing --input or --output values are prompted for on stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			var err error
			if opts.input == "" {
				if opts.input, err = p.inputPath(); err != nil {
					return err
				}
			}
			if opts.output == "" {
				if opts.output, err = p.outputPath(); err != nil {
					return err
				}
			}
			return runAnalysis(cmd.Context(), opts, logger, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "MAUDE export to read")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "File to write the annotated reports to")
	cmd.Flags().StringVar(&opts.config, "config", "", "YAML configuration file (defaults built in)")
	cmd.Flags().StringVar(&opts.lexicon, "lexicon", "", "Sentiment lexicon YAML (overrides the configuration)")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Print a JSON run summary")
	return cmd
}

func runAnalysis(ctx context.Context, opts runOptions, log *zap.Logger, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = zap.NewNop()
	}

	loader := config.Loader{ConfigPath: opts.config, LexiconPath: opts.lexicon}
	comp, err := loader.Load()
	if err != nil {
		return err
	}

	reports, err := table.ReadReports(opts.input)
	if err != nil {
		return err
	}

	started := time.Now()
	runID := store.NewIDGenerator().New(started)
	log = log.With(zap.String("run_id", runID))
	log.Info("loaded reports", zap.String("input", opts.input), zap.Int("reports", len(reports)))

	records, err := maude.FromComponents(comp, log).Run(reports)
	if err != nil {
		return err
	}

	run := store.Run{
		ID:           runID,
		StartedAt:    started,
		Input:        opts.input,
		TotalReports: len(reports),
		Selected:     len(records),
	}
	if err := writeOutput(ctx, opts.output, run, records); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}

	an := analytics.NewAnalyzer(comp.Taxonomy)
	an.SetTotal(len(reports))
	for _, rec := range records {
		an.Process(rec)
	}
	sum := an.Snapshot()
	sum.RunID = runID

	log.Info("run complete",
		zap.String("output", opts.output),
		zap.Int("selected", sum.Selected),
		zap.Int("dictionary_hits", sum.DictionaryHits),
		zap.Int("unclassified", sum.Unclassified),
		zap.Duration("elapsed", time.Since(started)))

	if opts.summary {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}
	return nil
}

func writeOutput(ctx context.Context, path string, run store.Run, records []report.Record) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite":
		st, err := sqlite.Open(ctx, path)
		if err != nil {
			return err
		}
		defer st.Close()
		return st.SaveRun(ctx, run, records)
	default:
		return table.WriteRecords(path, records)
	}
}
