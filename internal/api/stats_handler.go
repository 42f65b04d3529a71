package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Skarbonka1/serwerfinal/internal/api/shared"
	"github.com/Skarbonka1/serwerfinal/internal/domain"
	"github.com/Skarbonka1/serwerfinal/internal/service"
	"github.com/Skarbonka1/serwerfinal/internal/store"
	"github.com/go-chi/chi/v5"
)

// StatisticHandler handles sales statistic HTTP requests.
type StatisticHandler struct {
	statService service.StatisticService
	logger      *slog.Logger
}

// NewStatisticHandler creates a new StatisticHandler.
func NewStatisticHandler(
	statService service.StatisticService,
	logger *slog.Logger,
) *StatisticHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StatisticHandler")
	}

	return &StatisticHandler{
		statService: statService,
		logger:      logger.With(slog.String("component", "statistic_handler")),
	}
}

func statisticIDFromURL(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// CreateStatistic handles POST /statistics requests.
func (h *StatisticHandler) CreateStatistic(w http.ResponseWriter, r *http.Request) {
	var req CreateStatisticRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	stat, err := h.statService.Create(
		r.Context(),
		domain.StatisticPeriod(req.PeriodType),
		req.Year,
		req.Period,
		req.Quantity,
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, statisticToResponse(stat))
}

// ListStatistics handles GET /statistics requests.
func (h *StatisticHandler) ListStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statService.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	response := make([]StatisticResponse, 0, len(stats))
	for _, stat := range stats {
		response = append(response, statisticToResponse(stat))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// UpdateStatistic handles PATCH /statistics/{id} requests. Absent fields
// keep their stored values.
func (h *StatisticHandler) UpdateStatistic(w http.ResponseWriter, r *http.Request) {
	id, ok := statisticIDFromURL(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid statistic ID")
		return
	}

	var req UpdateStatisticRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	update := store.StatisticUpdate{
		Year:     req.Year,
		Period:   req.Period,
		Quantity: req.Quantity,
	}
	if req.PeriodType != nil {
		periodType := domain.StatisticPeriod(*req.PeriodType)
		update.PeriodType = &periodType
	}

	stat, err := h.statService.Update(r.Context(), id, update)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, statisticToResponse(stat))
}

// DeleteStatistic handles DELETE /statistics/{id} requests.
func (h *StatisticHandler) DeleteStatistic(w http.ResponseWriter, r *http.Request) {
	id, ok := statisticIDFromURL(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid statistic ID")
		return
	}

	if err := h.statService.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
