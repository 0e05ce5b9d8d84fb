package storage

import (
	"bytes"
	"context"
	"io"

	"github.com/kbukum/flowreport/resilience"
)

// ByteClient is a []byte-oriented view of a Storage, used for small objects
// such as rendered reports that are produced fully in memory.
type ByteClient interface {
	Upload(ctx context.Context, path string, data []byte) error
	Download(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
}

// ByteOption configures a ByteClient.
type ByteOption func(*byteAdapter)

// WithRetry retries failed calls per cfg. Uploads can be replayed because
// the payload is held in memory.
func WithRetry(cfg resilience.RetryConfig) ByteOption {
	return func(a *byteAdapter) { a.retry = &cfg }
}

type byteAdapter struct {
	storage Storage
	retry   *resilience.RetryConfig
}

// NewByteClient wraps a streaming Storage with []byte convenience methods.
func NewByteClient(s Storage, opts ...ByteOption) ByteClient {
	a := &byteAdapter{storage: s}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *byteAdapter) Upload(ctx context.Context, path string, data []byte) error {
	return do(ctx, a.retry, func() (struct{}, error) {
		return struct{}{}, a.storage.Upload(ctx, path, bytes.NewReader(data))
	})
}

func (a *byteAdapter) Download(ctx context.Context, path string) ([]byte, error) {
	return doValue(ctx, a.retry, func() ([]byte, error) {
		rc, err := a.storage.Download(ctx, path)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	})
}

func (a *byteAdapter) Exists(ctx context.Context, path string) (bool, error) {
	return doValue(ctx, a.retry, func() (bool, error) {
		return a.storage.Exists(ctx, path)
	})
}

func do(ctx context.Context, cfg *resilience.RetryConfig, fn func() (struct{}, error)) error {
	_, err := doValue(ctx, cfg, fn)
	return err
}

func doValue[T any](ctx context.Context, cfg *resilience.RetryConfig, fn func() (T, error)) (T, error) {
	if cfg == nil {
		return fn()
	}
	return resilience.Retry(ctx, *cfg, fn)
}
