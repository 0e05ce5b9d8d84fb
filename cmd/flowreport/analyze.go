package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/flowreport/analyzer"
	apperrors "github.com/kbukum/flowreport/errors"
	"github.com/kbukum/flowreport/export"
	"github.com/kbukum/flowreport/logger"
	"github.com/kbukum/flowreport/validation"
)

type analyzeFlags struct {
	format      string
	output      string
	trace       bool
	summary     bool
	fromStorage string
	upload      string
}

func newAnalyzeCmd(g *globalFlags) *cobra.Command {
	f := &analyzeFlags{}
	cmd := &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Report the activities of one process definition",
		Long: `Analyze reads a definition from a file, from stdin ("-" or no argument)
or from storage (--from-storage) and writes the report to stdout or --output.

Exit status is 0 on success, 2 when the definition has no activities and 1 on
any other failure.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			if f.format != "" {
				cfg.Export.Format = f.format
			}
			if f.summary {
				cfg.Export.Summary = true
			}
			if f.trace {
				cfg.Analyzer.KeepVisits = true
			}
			rt, err := newRunner(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return rt.app.RunTask(cmd.Context(), func(ctx context.Context) error {
				return rt.analyze(ctx, cmd, f, args)
			})
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.format, "format", "f", "", "Output format (csv, json, table, yaml); overrides export.format")
	fl.StringVarP(&f.output, "output", "o", "", "Write the report to this file instead of stdout")
	fl.BoolVar(&f.trace, "trace", false, "Include every visited element in json and yaml output")
	fl.BoolVar(&f.summary, "summary", false, "Append the summary to table output")
	fl.StringVar(&f.fromStorage, "from-storage", "", "Read the definition from this storage key")
	fl.StringVar(&f.upload, "upload", "", "Also store the report under this storage key")
	return cmd
}

func (rt *runner) analyze(ctx context.Context, cmd *cobra.Command, f *analyzeFlags, args []string) error {
	log := rt.app.Logger.WithComponent("analyze")

	if err := rt.checkFlags(f, args); err != nil {
		return err
	}
	exp, err := export.New(rt.app.Cfg.Export)
	if err != nil {
		return err
	}
	body, source, err := rt.readInput(ctx, cmd.InOrStdin(), f, args)
	if err != nil {
		return err
	}

	a := analyzer.New(rt.app.Cfg.Analyzer,
		analyzer.WithLogger(log),
		analyzer.WithMetrics(rt.telemetry.Metrics()),
	)
	// EMPTY_RESULT still renders the empty report before it is returned
	rep, analyzeErr := a.AnalyzeBytes(ctx, body)
	if analyzeErr != nil && !apperrors.IsEmptyResult(analyzeErr) {
		return analyzeErr
	}

	var buf bytes.Buffer
	if err := exp.Export(ctx, &buf, rep); err != nil {
		return fmt.Errorf("render %s report: %w", exp.Format(), err)
	}
	if err := writeOutput(cmd.OutOrStdout(), f.output, buf.Bytes()); err != nil {
		return err
	}

	if f.upload != "" {
		if err := rt.byteStore().Upload(ctx, f.upload, buf.Bytes()); err != nil {
			return err
		}
		log.Info("report stored", logger.Fields("key", f.upload))
	}

	log.Debug("report written", logger.Fields(
		"source", source,
		"format", string(exp.Format()),
		logger.FieldRows, len(rep.Rows),
	))
	return analyzeErr
}

// checkFlags rejects flag combinations before any input is read.
func (rt *runner) checkFlags(f *analyzeFlags, args []string) error {
	storageOn := rt.storage != nil
	v := validation.New().
		Custom(f.fromStorage == "" || len(args) == 0, "from-storage", "cannot be combined with a file argument").
		Custom(f.fromStorage == "" || storageOn, "from-storage", "storage is not enabled").
		Custom(f.upload == "" || storageOn, "upload", "storage is not enabled")
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// readInput returns the definition and a label for logs.
func (rt *runner) readInput(ctx context.Context, stdin io.Reader, f *analyzeFlags, args []string) ([]byte, string, error) {
	if f.fromStorage != "" {
		body, err := rt.byteStore().Download(ctx, f.fromStorage)
		return body, "storage:" + f.fromStorage, err
	}

	if len(args) == 0 || args[0] == "-" {
		body, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return body, "stdin", nil
	}

	body, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("read definition: %w", err)
	}
	return body, args[0], nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
