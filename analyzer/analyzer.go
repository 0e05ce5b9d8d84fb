package analyzer

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/flowreport/bpmn"
	apperrors "github.com/kbukum/flowreport/errors"
	"github.com/kbukum/flowreport/flow"
	"github.com/kbukum/flowreport/logger"
	"github.com/kbukum/flowreport/observability"
	"github.com/kbukum/flowreport/report"
)

const componentName = "analyzer"

// Analysis outcomes recorded on metrics and spans.
const (
	StatusOK       = "ok"
	StatusEmpty    = "empty"
	StatusParse    = "parse_error"
	StatusCanceled = "canceled"
)

// Analyzer produces reports from process definitions.
type Analyzer struct {
	cfg     Config
	log     *logger.Logger
	metrics *observability.Metrics
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger. The default is the registered "analyzer" logger.
func WithLogger(l *logger.Logger) Option {
	return func(a *Analyzer) { a.log = l }
}

// WithMetrics records every analysis on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Analyzer) { a.metrics = m }
}

// New creates an Analyzer. Empty config fields take their defaults.
func New(cfg Config, opts ...Option) *Analyzer {
	cfg.ApplyDefaults()
	a := &Analyzer{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logger.Get(componentName)
	}
	return a
}

// Config returns the effective configuration.
func (a *Analyzer) Config() Config { return a.cfg }

// Analyze parses a definition from r and reports it. A definition that is not
// well-formed yields a PARSE_ERROR. A readable definition without tasks yields
// an empty report together with an EMPTY_RESULT error.
func (a *Analyzer) Analyze(ctx context.Context, r io.Reader) (*report.Report, error) {
	start := time.Now()
	ctx, span := a.begin(ctx)
	defer span.End()

	doc, err := a.parse(ctx, r)
	if err != nil {
		a.finish(ctx, StatusParse, 0, 0, start, err)
		return nil, err
	}
	return a.analyze(ctx, doc, start)
}

// AnalyzeBytes is Analyze over an in-memory definition.
func (a *Analyzer) AnalyzeBytes(ctx context.Context, b []byte) (*report.Report, error) {
	return a.Analyze(ctx, bytes.NewReader(b))
}

// AnalyzeDocument reports an already parsed definition.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, doc *bpmn.Document) (*report.Report, error) {
	start := time.Now()
	ctx, span := a.begin(ctx)
	defer span.End()
	return a.analyze(ctx, doc, start)
}

// begin tags ctx with a run id unless the caller already did.
func (a *Analyzer) begin(ctx context.Context) (context.Context, trace.Span) {
	runID := logger.RunIDFromContext(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = logger.ContextWithRunID(ctx, runID)
	}
	ctx, span := observability.StartSpan(ctx, observability.SpanAnalyze)
	observability.SetSpanAttribute(ctx, observability.AttrRunID, runID)
	return ctx, span
}

func (a *Analyzer) parse(ctx context.Context, r io.Reader) (*bpmn.Document, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanParse)
	defer span.End()

	doc, err := bpmn.ParseWithOptions(r, bpmn.Options{UnnamedProcess: a.cfg.UnnamedProcess})
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}
	observability.SetSpanAttribute(ctx, observability.AttrProcesses, len(doc.Processes))
	return doc, nil
}

func (a *Analyzer) analyze(ctx context.Context, doc *bpmn.Document, start time.Time) (*report.Report, error) {
	perProcess := make([][]flow.Visit, 0, len(doc.Processes))
	for _, m := range doc.Processes {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err := apperrors.Timeout("analyze", ctxErr)
			a.finish(ctx, StatusCanceled, len(perProcess), 0, start, err)
			return nil, err
		}
		perProcess = append(perProcess, a.process(ctx, m))
	}

	rep, err := a.assemble(ctx, perProcess)
	if err != nil {
		err = apperrors.Timeout("assemble", err)
		a.finish(ctx, StatusCanceled, len(perProcess), 0, start, err)
		return nil, err
	}

	if rep.Empty() {
		a.finish(ctx, StatusEmpty, len(perProcess), 0, start, nil)
		return rep, apperrors.EmptyResult()
	}
	a.finish(ctx, StatusOK, len(perProcess), len(rep.Rows), start, nil)
	return rep, nil
}

// process traverses one process with fresh per-process state.
func (a *Analyzer) process(ctx context.Context, m *bpmn.Model) []flow.Visit {
	ctx, span := observability.StartSpan(ctx, observability.SpanProcess)
	defer span.End()

	g := flow.NewGraph(m.Edges())
	sev := flow.Normalize(m, g)
	t := flow.NewTraverser(m, g, bpmn.NewRoleResolver(m, a.cfg.DefaultRole), a.cfg.labels())
	visits := t.Run(sev)

	observability.SetSpanAttribute(ctx, observability.AttrProcess, m.Name)
	observability.SetSpanAttribute(ctx, observability.AttrNodes, len(m.Nodes()))
	observability.SetSpanAttribute(ctx, observability.AttrEdges, len(m.Edges()))
	observability.SetSpanAttribute(ctx, observability.AttrSevered, sev.Gateways)
	observability.SetSpanAttribute(ctx, observability.AttrVisits, len(visits))

	a.log.WithContext(ctx).Debug("process traversed", logger.Fields(
		logger.FieldProcess, m.Name,
		logger.FieldNodeCount, len(m.Nodes()),
		logger.FieldEdgeCount, len(m.Edges()),
		logger.FieldVisits, len(visits),
		"severed", len(sev.Gateways),
	))
	return visits
}

func (a *Analyzer) assemble(ctx context.Context, perProcess [][]flow.Visit) (*report.Report, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanAssemble)
	defer span.End()

	rep, err := report.New(ctx, a.cfg.KeepVisits, perProcess...)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}
	observability.SetSpanAttribute(ctx, observability.AttrRows, len(rep.Rows))
	return rep, nil
}

func (a *Analyzer) finish(ctx context.Context, status string, processes, rows int, start time.Time, err error) {
	elapsed := time.Since(start)
	observability.SetSpanAttribute(ctx, observability.AttrStatus, status)
	a.metrics.RecordAnalysis(ctx, status, processes, rows, elapsed)

	log := a.log.WithContext(ctx)
	if err != nil {
		observability.SetSpanError(ctx, err)
		a.metrics.RecordError(ctx, status, componentName)
		log.WithError(err).Warn("analysis failed", logger.DurationFields("analyze", elapsed))
		return
	}
	fields := logger.DurationFields("analyze", elapsed)
	fields[logger.FieldRows] = rows
	fields["processes"] = processes
	fields["status"] = status
	log.Info("analysis finished", fields)
}
