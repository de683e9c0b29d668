package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
)

const mockShutdownTimeout = 10 * time.Second

// mockCounters is the simulated traffic state behind the mock /status route.
type mockCounters struct {
	mu           sync.Mutex
	started      time.Time
	requestCount uint64
	errorCount   uint64
	successCount uint64
}

// advance simulates a burst of traffic since the last observation and
// returns the current totals.
func (m *mockCounters) advance() (requests, errs, successes uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	burst := uint64(1 + rand.Intn(20))
	failed := uint64(rand.Intn(int(burst) + 1))
	m.requestCount += burst
	m.errorCount += failed
	m.successCount += burst - failed

	return m.requestCount, m.errorCount, m.successCount
}

func (m *mockCounters) uptime() float64 {
	return time.Since(m.started).Seconds()
}

// newMockRouter builds the mock endpoint's routes.
func newMockRouter(app, appVersion string, counters *mockCounters) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/status", func(w http.ResponseWriter, req *http.Request) {
		requests, errs, successes := counters.advance()

		// numeric fields are deliberately mixed between string and number
		// encodings, matching what the real fleet emits
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"Application":   app,
			"Version":       appVersion,
			"Uptime":        strconv.FormatFloat(counters.uptime(), 'f', 2, 64),
			"Request_Count": requests,
			"Error_Count":   errs,
			"Success_Count": strconv.FormatUint(successes, 10),
		})
	})

	r.Get("/apps/{application}/{version}/info", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "application") != app || chi.URLParam(req, "version") != appVersion {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"application": app,
			"version":     appVersion,
			"uptime":      counters.uptime(),
		})
	})

	return r
}

// mockCmd runs a single mock fleet endpoint for local testing.
var mockCmd = &cobra.Command{
	Use:   "serve-mock",
	Short: "Run a mock fleet endpoint",
	Long: `Run a mock fleet endpoint that serves /status payloads with live,
randomly advancing counters. Useful for exercising the report run locally:

  statusreport serve-mock --addr :9100 &
  echo "localhost:9100" > servers.txt
  statusreport servers.txt

The server also exposes /apps/{application}/{version}/info, the route the
report artifact's self links point at. It runs until interrupted.`,
	RunE: runMock,
}

func init() {
	rootCmd.AddCommand(mockCmd)

	mockCmd.Flags().String("addr", ":9100", "listen address")
	mockCmd.Flags().String("app", "App1", "application name to report")
	mockCmd.Flags().String("app-version", "1.0", "application version to report")
}

func runMock(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	addr, _ := cmd.Flags().GetString("addr")
	app, _ := cmd.Flags().GetString("app")
	appVersion, _ := cmd.Flags().GetString("app-version")

	srv := &http.Server{
		Addr:              addr,
		Handler:           newMockRouter(app, appVersion, &mockCounters{started: time.Now()}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// cancel on SIGINT/SIGTERM, then drain with a bounded shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		logger.Info("mock fleet endpoint listening",
			"addr", addr,
			"application", app,
			"version", appVersion,
		)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("mock server error: %w", err)

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), mockShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("mock server shutdown: %w", err)
		}
		if err := <-errChan; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("mock server error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil
	}
}
