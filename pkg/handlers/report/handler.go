package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/advisordesk/report-engine/pkg/adapters"
	"github.com/advisordesk/report-engine/pkg/models/api"
	"github.com/advisordesk/report-engine/pkg/projections/export"
	"github.com/advisordesk/report-engine/pkg/projections/view"
	"github.com/advisordesk/report-engine/pkg/services/session"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// SessionService is the seam the handler depends on; the session manager
// implements it in production, tests mock it.
type SessionService interface {
	GetReport(ctx context.Context, clientID string, refresh bool) (*session.Session, error)
}

type Handler struct {
	sessions SessionService
	exporter *export.Reporter
}

func NewHandler(sessions SessionService) *Handler {
	return &Handler{
		sessions: sessions,
		exporter: export.NewReporter(),
	}
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	clientID := chi.URLParam(r, "clientID")
	started := time.Now()

	if err := ValidateClientID(clientID); err != nil {
		writeError(w, http.StatusBadRequest, "REQUEST_INVALID", err.Error())
		return
	}

	sess, err := h.sessions.GetReport(ctx, clientID, r.URL.Query().Get("refresh") == "1")
	if err != nil {
		if errors.Is(err, session.ErrIdentityUnavailable) {
			writeError(w, http.StatusBadGateway, "AGGREGATION_INCOMPLETE", err.Error())
			return
		}
		logger.Error().Err(err).Str("client_id", clientID).Msg("failed to build report")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to build report")
		return
	}

	response := api.ReportResponse{
		Success:          true,
		Data:             adapters.MapReportDomainToApi(sess.Model, sess.Metrics),
		ProcessingTimeMs: time.Since(started).Milliseconds(),
		DataIntegrity:    adapters.MapCompletenessDomainToApi(sess.Metrics.Completeness),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Str("client_id", clientID).Msg("failed to encode report")
	}
}

func (h *Handler) GetTab(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	clientID := chi.URLParam(r, "clientID")
	tabID := chi.URLParam(r, "tabID")

	if err := ValidateClientID(clientID); err != nil {
		writeError(w, http.StatusBadRequest, "REQUEST_INVALID", err.Error())
		return
	}

	sess, err := h.sessions.GetReport(ctx, clientID, false)
	if err != nil {
		if errors.Is(err, session.ErrIdentityUnavailable) {
			writeError(w, http.StatusBadGateway, "AGGREGATION_INCOMPLETE", err.Error())
			return
		}
		logger.Error().Err(err).Str("client_id", clientID).Msg("failed to build report")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to build report")
		return
	}

	tab, err := view.Project(sess, view.TabID(tabID))
	if err != nil {
		writeError(w, http.StatusNotFound, "UNKNOWN_TAB", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(tab); err != nil {
		logger.Error().Err(err).Str("tab", tabID).Msg("failed to encode tab view")
	}
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	clientID := chi.URLParam(r, "clientID")

	if err := ValidateClientID(clientID); err != nil {
		writeError(w, http.StatusBadRequest, "REQUEST_INVALID", err.Error())
		return
	}

	sess, err := h.sessions.GetReport(ctx, clientID, false)
	if err != nil {
		if errors.Is(err, session.ErrIdentityUnavailable) {
			writeError(w, http.StatusBadGateway, "AGGREGATION_INCOMPLETE", err.Error())
			return
		}
		logger.Error().Err(err).Str("client_id", clientID).Msg("failed to build report")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "failed to build report")
		return
	}

	// Render into a buffer first: a failed export must not emit a partial
	// document.
	var buf bytes.Buffer
	if err := h.exporter.Render(&buf, sess); err != nil {
		logger.Error().Err(err).Str("client_id", clientID).Msg("export failed")
		writeError(w, http.StatusBadGateway, "AGGREGATION_INCOMPLETE", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.exporter.Filename(sess)))
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error().Err(err).Str("client_id", clientID).Msg("failed to write export")
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ReportResponse{
		Success: false,
		Error:   &api.Error{Code: code, Message: message},
	})
}
