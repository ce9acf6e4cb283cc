package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/bft-labs/plog/internal/follow"
	"github.com/bft-labs/plog/internal/metrics"
	"github.com/bft-labs/plog/pkg/client"
	"github.com/bft-labs/plog/pkg/log"
)

func newFollowCommand(a *app) *cobra.Command {
	var (
		files     []string
		fromStart bool
	)

	cmd := &cobra.Command{
		Use:   "follow --file PATH [--file PATH...]",
		Short: "Send every line appended to the given files",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			obs := metrics.New(metrics.Config{Registry: reg})

			c, err := client.New(a.cfg.ClientConfig(),
				client.WithLogger(a.logger),
				client.WithObserver(obs),
			)
			if err != nil {
				return err
			}
			shared := client.NewSyncClient(c)
			defer shared.Close()

			if a.cfg.MetricsAddr != "" {
				shutdown := serveMetrics(a.cfg.MetricsAddr, reg, a.logger)
				defer shutdown()
			}

			errs := make(chan error, len(files))
			var wg sync.WaitGroup
			for _, path := range files {
				f := follow.New(follow.Config{
					Path:         path,
					FromStart:    fromStart,
					PollInterval: a.cfg.FollowPoll,
				}, shared, a.logger)

				wg.Add(1)
				go func(path string) {
					defer wg.Done()
					if err := f.Run(ctx); err != nil {
						errs <- fmt.Errorf("follow %s: %w", path, err)
					}
				}(path)
			}
			wg.Wait()
			close(errs)

			var all []error
			for err := range errs {
				all = append(all, err)
			}
			return errors.Join(all...)
		},
	}

	cmd.Flags().StringArrayVar(&files, "file", nil, "file to follow (repeatable)")
	cmd.Flags().BoolVar(&fromStart, "from-start", false, "send existing lines before following")
	cmd.Flags().DurationVar(&a.cfg.FollowPoll, "poll", a.cfg.FollowPoll, "file poll interval")
	cmd.Flags().StringVar(&a.cfg.MetricsAddr, "metrics-addr", a.cfg.MetricsAddr, "serve Prometheus metrics on this address while following")
	if err := cmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}
	return cmd
}

// serveMetrics exposes reg on addr until the returned function is called.
func serveMetrics(addr string, reg *prometheus.Registry, logger log.Logger) func() {
	r := chi.NewRouter()
	r.Get("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("serving metrics", log.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", log.Err(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("metrics server shutdown", log.Err(err))
		}
	}
}
