// Package server exposes health and Prometheus endpoints.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-adstudio/internal/config"
)

// Module starts the HTTP listener with the application lifecycle.
var Module = fx.Module("server",
	fx.Provide(NewHandler),
	fx.Invoke(Start),
)

// HealthFunc reports readiness; a non-nil error means unhealthy.
type HealthFunc func(ctx context.Context) error

// HandlerParams holds dependencies for NewHandler.
type HandlerParams struct {
	fx.In

	Registry *prometheus.Registry
	Checks   []HealthFunc `group:"health"`
}

// NewHandler routes /healthz and /metrics.
func NewHandler(params HandlerParams) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(params.Registry, promhttp.HandlerOpts{
		Registry: params.Registry,
	}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		for _, check := range params.Checks {
			if err := check(r.Context()); err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)

				return
			}
		}
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}

// StartParams holds dependencies for Start.
type StartParams struct {
	fx.In

	Config  *config.Config
	Handler http.Handler
	Logger  *zap.Logger
	LC      fx.Lifecycle
}

// Start registers the listener on the lifecycle.
func Start(params StartParams) {
	srv := &http.Server{
		Addr:              params.Config.Server.Addr,
		Handler:           params.Handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	params.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			params.Logger.Info("Serving health and metrics", zap.String("addr", ln.Addr().String()))

			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					params.Logger.Error("Metrics server stopped", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
