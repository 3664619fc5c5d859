package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vbonduro/ecoexchange/internal/config"
	"github.com/vbonduro/ecoexchange/internal/impact"
	"github.com/vbonduro/ecoexchange/internal/store"
	"github.com/vbonduro/ecoexchange/internal/web"
	"github.com/vbonduro/ecoexchange/internal/web/templates"
)

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the marketplace web UI and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := c.newApp(ctx)
			if err != nil {
				return err
			}

			var metrics http.Handler
			if c.cfg.MetricsEnabled {
				metrics = newMetricsHandler(a.docs)
			}

			server := web.NewServer(a.service, templates.FS, metrics, c.logger)
			return server.ListenAndServe(ctx, c.cfg.ListenAddr)
		},
	}

	cmd.Flags().String("listen", ":8080", "address to listen on")
	cmd.Flags().Bool("metrics", true, "expose Prometheus metrics on /metrics")
	c.bind(cmd, map[string]string{
		"listen":  config.KeyListenAddr,
		"metrics": config.KeyMetricsEnabled,
	}, false)
	return cmd
}

// newMetricsHandler serves the marketplace gauges next to the Go runtime and
// process collectors from a private registry.
func newMetricsHandler(docs *store.DocumentStore) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		impact.NewCollector(docs),
	)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
