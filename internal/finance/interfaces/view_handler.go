package interfaces

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/jkaczmarek/FinFlow/internal/auth"
	"github.com/jkaczmarek/FinFlow/internal/finance/application"
	"github.com/jkaczmarek/FinFlow/internal/finance/view"
)

type ViewServiceInterface interface {
	GetView(ctx context.Context, userID string, query application.ViewQuery) (view.View, error)
	ExportCSV(ctx context.Context, userID string, query application.ViewQuery) (string, error)
	ExportHTML(ctx context.Context, userID string, query application.ViewQuery) (string, error)
}

// ViewHandler serves the derived dashboard state and its exports. All query
// parameters are optional; omitted ones fall back to the neutral defaults.
type ViewHandler struct {
	service      ViewServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewViewHandler(
	service ViewServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *ViewHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &ViewHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func parseViewQuery(r *http.Request) application.ViewQuery {
	values := r.URL.Query()
	query := application.ViewQuery{
		Filter: view.FilterState{
			AccountID:    values.Get("account"),
			CategoryName: values.Get("category"),
			Type:         values.Get("type"),
			DatePreset:   view.DatePreset(values.Get("datePreset")),
			Search:       values.Get("search"),
		},
		Sort: view.SortOption(values.Get("sort")),
	}

	if start, err := time.Parse("2006-01-02", values.Get("startDate")); err == nil {
		query.Filter.CustomStart = &start
	}
	if end, err := time.Parse("2006-01-02", values.Get("endDate")); err == nil {
		endOfDay := end.Add(24*time.Hour - time.Nanosecond)
		query.Filter.CustomEnd = &endOfDay
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil {
		query.Page = page
	}
	if size, err := strconv.Atoi(values.Get("pageSize")); err == nil {
		query.PageSize = size
	}
	return query
}

func (h *ViewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.service.GetView(r.Context(), userID, parseViewQuery(r))
	if err != nil {
		log.Println("View handler error:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to load transactions view")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

func (h *ViewHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	payload, err := h.service.ExportCSV(r.Context(), userID, parseViewQuery(r))
	if err != nil {
		h.handleExportError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(payload))
}

func (h *ViewHandler) ExportHTML(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	payload, err := h.service.ExportHTML(r.Context(), userID, parseViewQuery(r))
	if err != nil {
		h.handleExportError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(payload))
}

func (h *ViewHandler) handleExportError(w http.ResponseWriter, err error) {
	if errors.Is(err, view.ErrNoRowsToExport) {
		h.respondError(w, http.StatusUnprocessableEntity, "No transactions match the current filters")
		return
	}
	log.Println("Export error:", err.Error())
	h.respondError(w, http.StatusInternalServerError, "Failed to export transactions")
}
