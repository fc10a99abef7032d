package costing

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/drillops/corecost/pkg/adapters"
	"github.com/drillops/corecost/pkg/models/domain"
	"github.com/drillops/corecost/pkg/services/analytics"
	"github.com/drillops/corecost/pkg/services/costing"
	"github.com/drillops/corecost/pkg/store/ledger"
)

const (
	dateParamLayout = "02-01-2006"
	defaultRange    = 30 * 24 * time.Hour
)

type Handler struct {
	builder       costing.ReportBuilder
	profitability analytics.ProfitabilityAnalyzer
	trends        analytics.CostTrendAnalyzer
	comparison    analytics.JobComparisonEngine
	clients       analytics.ClientProfitabilityAnalyzer
}

func NewHandler(
	builder costing.ReportBuilder,
	profitability analytics.ProfitabilityAnalyzer,
	trends analytics.CostTrendAnalyzer,
	comparison analytics.JobComparisonEngine,
	clients analytics.ClientProfitabilityAnalyzer,
) *Handler {
	return &Handler{
		builder:       builder,
		profitability: profitability,
		trends:        trends,
		comparison:    comparison,
		clients:       clients,
	}
}

func (h *Handler) GetJobCostingReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	jobID := chi.URLParam(r, "jobID")

	report, err := h.builder.Build(ctx, jobID)
	if errors.Is(err, ledger.ErrJobNotFound) {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error().Err(err).Str("job_id", jobID).Msg("failed to build job costing report")
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, adapters.MapJobCostingReportDomainToApi(report))
}

func (h *Handler) GetProfitability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	from, err := parseOptionalDateParam(r, "from")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	to, err := parseOptionalDateParam(r, "to")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.profitability.Analyze(ctx, domain.JobFilter{
		From:     from,
		To:       to,
		ClientID: r.URL.Query().Get("client_id"),
		Status:   r.URL.Query().Get("status"),
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to analyze profitability")
		http.Error(w, "failed to analyze profitability", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, adapters.MapProfitabilityReportDomainToApi(report))
}

func (h *Handler) GetCostTrends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	period, err := analytics.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	to, err := parseDateParam(r, "to", time.Now().UTC())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	from, err := parseDateParam(r, "from", to.Add(-defaultRange))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	buckets, err := h.trends.Analyze(ctx, period, from, to)
	if err != nil {
		logger.Error().Err(err).Msg("failed to analyze cost trends")
		http.Error(w, "failed to analyze cost trends", http.StatusInternalServerError)
		return
	}

	response := make([]any, 0, len(buckets))
	for _, b := range buckets {
		response = append(response, adapters.MapTrendBucketDomainToApi(b))
	}
	writeJSON(w, logger, response)
}

func (h *Handler) CompareJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var jobIDs []string
	if raw := r.URL.Query().Get("job_ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				jobIDs = append(jobIDs, id)
			}
		}
	}

	report, err := h.comparison.Compare(ctx, jobIDs)
	if err != nil {
		logger.Error().Err(err).Msg("failed to compare jobs")
		http.Error(w, "failed to compare jobs", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, adapters.MapComparisonReportDomainToApi(report))
}

func (h *Handler) GetClientProfitability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	clientID := chi.URLParam(r, "clientID")

	from, err := parseOptionalDateParam(r, "from")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	to, err := parseOptionalDateParam(r, "to")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.clients.Analyze(ctx, clientID, from, to)
	if err != nil {
		logger.Error().Err(err).Str("client_id", clientID).Msg("failed to analyze client profitability")
		http.Error(w, "failed to analyze client profitability", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, adapters.MapClientProfitabilityDomainToApi(report))
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func parseDateParam(r *http.Request, name string, defaultDate time.Time) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return defaultDate, nil
	}
	parsed, err := time.Parse(dateParamLayout, value)
	if err != nil {
		return time.Time{}, errors.New("invalid " + name + " date, want DD-MM-YYYY")
	}
	return parsed, nil
}

func parseOptionalDateParam(r *http.Request, name string) (*time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateParamLayout, value)
	if err != nil {
		return nil, errors.New("invalid " + name + " date, want DD-MM-YYYY")
	}
	return &parsed, nil
}
