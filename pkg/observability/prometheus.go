// Package observability exposes Prometheus metrics for runs, classifications
// and watch-mode activity. Metrics are only served when watch mode is given a
// metrics address; one-shot runs record nothing over the wire.
package observability

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

//nolint:gochecknoglobals // Singleton pattern for metrics server
var (
	metricsServer *http.Server
	startOnce     sync.Once
)

// StartMetricsServer starts the Prometheus metrics endpoint if it hasn't been
// started already. Serve failures are logged and counted but do not stop the
// watch loop.
func StartMetricsServer(log logrus.FieldLogger, addr string) {
	startOnce.Do(func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		metricsServer = &http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 15 * time.Second,
			Handler:           mux,
		}

		go func() {
			log.WithField("addr", addr).Info("Starting metrics server")

			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				RecordError("observability", "metrics_server")
				log.WithError(err).Error("Metrics server stopped")
			}
		}()
	})
}
