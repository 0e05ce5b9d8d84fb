// Package resilience holds the retry and bulkhead helpers flowreport puts
// around storage calls and report requests.
//
//	body, err := resilience.Retry(ctx, resilience.DefaultRetryConfig(), func() ([]byte, error) {
//	    return store.Download(ctx, key)
//	})
//
//	bh := resilience.NewBulkhead(resilience.BulkheadConfig{MaxConcurrent: 8})
//	err := bh.Execute(ctx, func() error { return analyze(ctx) })
package resilience
