package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Summary is the list entry of /api/reports.
type Summary struct {
	ID     string `json:"id"`
	Number int    `json:"number,omitempty"`
	Title  string `json:"title"`
	Points int    `json:"points"`
	Error  string `json:"error,omitempty"`
}

// Router returns a router with every dashboard route.
func (d *Dashboard) Router() *mux.Router {
	router := mux.NewRouter()
	d.SetupRoutes(router)
	return router
}

// SetupRoutes registers the dashboard routes on router.
func (d *Dashboard) SetupRoutes(router *mux.Router) {
	router.Use(d.requestLogger)

	// Page
	router.HandleFunc("/", d.handleIndex).Methods(http.MethodGet)

	// Charts
	router.HandleFunc("/charts/{id}.svg", d.handleChart).Methods(http.MethodGet)

	// API
	router.HandleFunc("/api/reports", d.handleReports).Methods(http.MethodGet)
	router.HandleFunc("/api/reports/{id}", d.handleReport).Methods(http.MethodGet)
}

func (d *Dashboard) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(d.page)
}

func (d *Dashboard) handleChart(w http.ResponseWriter, r *http.Request) {
	i, ok := d.byID[mux.Vars(r)["id"]]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(d.charts[i])
}

func (d *Dashboard) handleReports(w http.ResponseWriter, r *http.Request) {
	summaries := make([]Summary, len(d.reports))
	for i, rep := range d.reports {
		summaries[i] = Summary{
			ID:     rep.QuestionID,
			Number: rep.Number,
			Title:  rep.Title,
			Points: len(rep.Series),
			Error:  rep.Error,
		}
	}
	d.writeJSON(w, summaries)
}

func (d *Dashboard) handleReport(w http.ResponseWriter, r *http.Request) {
	report, ok := d.Report(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "unknown question", http.StatusNotFound)
		return
	}
	d.writeJSON(w, report)
}

func (d *Dashboard) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		d.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (d *Dashboard) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		d.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("took", time.Since(start)).
			Msg("request served")
	})
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (d *Dashboard) Serve(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      d.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		d.logger.Info().Str("addr", addr).Msg("dashboard listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	d.logger.Info().Msg("shutting down dashboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
