package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/flowreport/analyzer"
	"github.com/kbukum/flowreport/bootstrap"
	"github.com/kbukum/flowreport/resilience"
	"github.com/kbukum/flowreport/server"
	"github.com/kbukum/flowreport/server/endpoint"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve POST /v1/reports over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			rt, err := newRunner(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := rt.registerServer(); err != nil {
				return err
			}
			return rt.app.Run(cmd.Context())
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port; overrides server.port")
	return cmd
}

// registerServer adds the HTTP server. Routes are mounted once storage is
// started, because the report handler needs the live backend.
func (rt *runner) registerServer() error {
	cfg := rt.app.Cfg
	srv := server.New(cfg.Server, rt.app.Logger)
	srv.ApplyMiddleware()
	srv.RegisterDefaultEndpoints(cfg.Name, rt.app.Components.HealthAll)
	if err := rt.app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return err
	}

	rt.app.OnConfigure(func(_ context.Context, app *bootstrap.App[*AppConfig]) error {
		a := analyzer.New(app.Cfg.Analyzer,
			analyzer.WithLogger(app.Logger.WithComponent("analyzer")),
			analyzer.WithMetrics(rt.telemetry.Metrics()),
		)
		opts := []endpoint.ReportsOption{
			endpoint.WithExportConfig(app.Cfg.Export),
			endpoint.WithReportMetrics(app.Name, rt.telemetry.Metrics()),
			endpoint.WithReportLogger(app.Logger.WithComponent("reports")),
			endpoint.WithConcurrencyLimit(resilience.NewBulkhead(resilience.BulkheadConfig{
				MaxConcurrent: app.Cfg.Server.MaxConcurrentReports,
				MaxWait:       time.Second,
			})),
		}
		if store := rt.byteStore(); store != nil {
			opts = append(opts, endpoint.WithStore(store, endpoint.DefaultReportPrefix))
		}
		endpoint.NewReports(a, opts...).Register(srv.GinEngine())
		return nil
	})
	return nil
}
