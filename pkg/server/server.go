package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	handlers "github.com/drillops/corecost/pkg/handlers/costing"
	corecostmiddleware "github.com/drillops/corecost/pkg/server/middleware"
	"github.com/drillops/corecost/pkg/services/analytics"
	"github.com/drillops/corecost/pkg/services/costing"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	ReportBuilder       costing.ReportBuilder
	Profitability       analytics.ProfitabilityAnalyzer
	Trends              analytics.CostTrendAnalyzer
	Comparison          analytics.JobComparisonEngine
	ClientProfitability analytics.ClientProfitabilityAnalyzer
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	handler := handlers.NewHandler(
		config.Dependencies.ReportBuilder,
		config.Dependencies.Profitability,
		config.Dependencies.Trends,
		config.Dependencies.Comparison,
		config.Dependencies.ClientProfitability,
	)

	router := chi.NewRouter()

	router.Use(corecostmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/jobs/{jobID}/costing", handler.GetJobCostingReport)
		r.Get("/analytics/profitability", handler.GetProfitability)
		r.Get("/analytics/trends", handler.GetCostTrends)
		r.Get("/analytics/compare", handler.CompareJobs)
		r.Get("/clients/{clientID}/profitability", handler.GetClientProfitability)
	})

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
