package endpoint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/kbukum/flowreport/errors"
	"github.com/kbukum/flowreport/export"
	"github.com/kbukum/flowreport/logger"
	"github.com/kbukum/flowreport/observability"
	"github.com/kbukum/flowreport/report"
	"github.com/kbukum/flowreport/resilience"
	"github.com/kbukum/flowreport/storage"
)

// Response headers set by Reports.Create.
const (
	HeaderRunID     = "X-Run-Id"
	HeaderResult    = "X-Report-Result"
	HeaderReportKey = "X-Report-Key"
)

// DefaultReportPrefix is the storage prefix of stored reports.
const DefaultReportPrefix = "reports"

// Analyzer turns a process definition into a report.
type Analyzer interface {
	Analyze(ctx context.Context, r io.Reader) (*report.Report, error)
}

// Reports serves POST /v1/reports.
type Reports struct {
	analyzer Analyzer
	export   export.Config
	store    storage.ByteClient
	prefix   string
	limit    *resilience.Bulkhead
	metrics  *observability.Metrics
	service  string
	log      *logger.Logger
}

// ReportsOption configures Reports.
type ReportsOption func(*Reports)

// WithExportConfig sets the exporter settings; the format is chosen per request.
func WithExportConfig(cfg export.Config) ReportsOption {
	return func(r *Reports) { r.export = cfg }
}

// WithStore enables ?store=true, which saves the rendered report under prefix.
func WithStore(store storage.ByteClient, prefix string) ReportsOption {
	return func(r *Reports) {
		r.store = store
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// WithConcurrencyLimit bounds the analyses running at once. Requests that
// find no slot answer 503 UNAVAILABLE.
func WithConcurrencyLimit(b *resilience.Bulkhead) ReportsOption {
	return func(r *Reports) { r.limit = b }
}

// WithReportMetrics records request metrics.
func WithReportMetrics(service string, m *observability.Metrics) ReportsOption {
	return func(r *Reports) {
		r.service = service
		r.metrics = m
	}
}

// WithReportLogger sets the logger.
func WithReportLogger(l *logger.Logger) ReportsOption {
	return func(r *Reports) { r.log = l }
}

// NewReports creates the handler.
func NewReports(a Analyzer, opts ...ReportsOption) *Reports {
	r := &Reports{
		analyzer: a,
		prefix:   DefaultReportPrefix,
		service:  "flowreport",
		log:      logger.WithComponent("reports"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register mounts the handler on g.
func (h *Reports) Register(g gin.IRoutes) {
	g.POST("/v1/reports", h.Create)
}

// Create analyzes the definition in the request body, or in the multipart
// field "file", and answers with the report in the requested format
// (?format=json by default). A definition without activities answers 200
// with an empty report and X-Report-Result: empty.
func (h *Reports) Create(c *gin.Context) {
	runID := uuid.NewString()
	ctx := logger.ContextWithRunID(c.Request.Context(), runID)
	c.Header(HeaderRunID, runID)

	oc := observability.NewOperationContext(h.service, "reports.create", c.GetHeader("X-Request-Id"), h.metrics)
	ctx, span := oc.StartSpanForOperation(ctx, observability.SpanHTTPRequest)

	status, err := h.limited(ctx, c, runID)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			status = strings.ToLower(string(appErr.Code))
		}
		h.metrics.RecordError(ctx, status, "reports")
		h.log.WithContext(ctx).WithError(err).Warn("report request failed")
		RespondWithError(c, err)
	}
	oc.EndOperation(ctx, span, status, err)
}

func (h *Reports) limited(ctx context.Context, c *gin.Context, runID string) (string, error) {
	if h.limit == nil {
		return h.create(ctx, c, runID)
	}
	var status string
	err := h.limit.Execute(ctx, func() error {
		var err error
		status, err = h.create(ctx, c, runID)
		return err
	})
	if errors.Is(err, resilience.ErrBulkheadFull) || errors.Is(err, resilience.ErrBulkheadTimeout) {
		return "rejected", apperrors.Unavailable("too many reports in progress")
	}
	return status, err
}

func (h *Reports) create(ctx context.Context, c *gin.Context, runID string) (string, error) {
	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatJSON)))
	if err != nil {
		return "error", err
	}
	store, err := h.wantsStore(c)
	if err != nil {
		return "error", err
	}

	body, err := readUpload(c)
	if err != nil {
		return "error", err
	}

	status := "ok"
	rep, err := h.analyzer.Analyze(ctx, bytes.NewReader(body))
	switch {
	case apperrors.IsEmptyResult(err):
		status = "empty"
		c.Header(HeaderResult, "empty")
	case err != nil:
		return "error", err
	default:
		c.Header(HeaderResult, "ok")
	}

	cfg := h.export
	cfg.Format = string(format)
	exp, err := export.New(cfg)
	if err != nil {
		return "error", err
	}
	var buf bytes.Buffer
	if err := exp.Export(ctx, &buf, rep); err != nil {
		return "error", apperrors.Internal(fmt.Errorf("render %s: %w", format, err))
	}

	if store {
		key := path.Join(h.prefix, runID+"."+format.Extension())
		if err := h.store.Upload(ctx, key, buf.Bytes()); err != nil {
			return "error", err
		}
		c.Header(HeaderReportKey, key)
	}

	c.Data(http.StatusOK, exp.ContentType(), buf.Bytes())
	return status, nil
}

func (h *Reports) wantsStore(c *gin.Context) (bool, error) {
	raw := c.Query("store")
	if raw == "" {
		return false, nil
	}
	store, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperrors.InvalidInput("store", "must be true or false")
	}
	if store && h.store == nil {
		return false, apperrors.InvalidInput("store", "storage is not enabled")
	}
	return store, nil
}

// readUpload returns the uploaded definition. Bodies over the server limit
// answer 413.
func readUpload(c *gin.Context) ([]byte, error) {
	var src io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		fh, err := c.FormFile("file")
		if err != nil {
			if tooLarge(err) {
				return nil, bodyTooLarge()
			}
			return nil, apperrors.MissingField("file")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		defer f.Close()
		src = f
	}

	body, err := io.ReadAll(src)
	if err != nil {
		if tooLarge(err) {
			return nil, bodyTooLarge()
		}
		return nil, apperrors.InvalidInput("body", "could not read request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, apperrors.InvalidInput("body", "request body is empty")
	}
	return body, nil
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func bodyTooLarge() *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeInvalidInput, "The request body exceeds the size limit.", http.StatusRequestEntityTooLarge)
}
