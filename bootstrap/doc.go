// Package bootstrap runs the lifecycle of a flowreport process.
//
// An App owns the typed configuration, the component registry and the
// startup and shutdown hooks. Long-running commands such as the HTTP server
// use Run, which blocks until a signal arrives. One-shot commands such as
// analyze use RunTask, which cancels the task on SIGINT or SIGTERM and stops
// every component when it returns.
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	_ = app.RegisterComponent(storageComponent)
//	return app.RunTask(ctx, func(ctx context.Context) error {
//	    return analyze(ctx)
//	})
package bootstrap
