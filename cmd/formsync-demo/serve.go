package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/formsync-dev/formsync/pkg/codec"
	"github.com/formsync-dev/formsync/pkg/formstate"
	"github.com/formsync-dev/formsync/pkg/formsync"
	"github.com/formsync-dev/formsync/pkg/live"
)

func serveCmd() *cobra.Command {
	var (
		addr        string
		debounce    time.Duration
		diagnostics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			store := formstate.New(map[string]any{
				"name":     "",
				"category": "all",
				"inStock":  false,
				"page":     float64(1),
				"password": "",
			})

			bridge := live.NewBridge(logger)
			metrics := formsync.NewMetrics(prometheus.DefaultRegisterer)

			syncer := formsync.New(bridge, store,
				formsync.Debounce(debounce),
				formsync.Diagnostics(diagnostics),
				formsync.Logger(logger),
				formsync.WithMetrics(metrics),
				formsync.ExcludeFields("password"),
			)
			defer syncer.Close()

			bridge.OnURLChange(syncer.HydrateFromURL)

			r := chi.NewRouter()
			r.Use(chimw.Recoverer)
			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.Write([]byte(demoPage))
			})
			r.Get("/values", func(w http.ResponseWriter, req *http.Request) {
				writeJSON(w, store.Values())
			})
			r.Post("/set", func(w http.ResponseWriter, req *http.Request) {
				field := req.URL.Query().Get("field")
				if field == "" {
					http.Error(w, "missing field", http.StatusBadRequest)
					return
				}
				store.Set(field, codec.Decode(req.URL.Query().Get("value")))
				w.WriteHeader(http.StatusNoContent)
			})
			r.Handle("/ws", bridge.Handler())
			r.Handle("/metrics", promhttp.Handler())

			logger.Info("demo server listening", "addr", addr, "debounce", debounce)
			return http.ListenAndServe(addr, r)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&debounce, "debounce", formsync.DefaultDebounce, "URL publish debounce")
	cmd.Flags().BoolVar(&diagnostics, "diagnostics", true, "enable development-mode diagnostics")

	return cmd
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	encoded, err := codec.Encode(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Write([]byte(encoded))
}
