package presentation

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/RaikyD/tailor-calendar/internal/application"
	"github.com/RaikyD/tailor-calendar/internal/domain"
	"github.com/RaikyD/tailor-calendar/internal/logger"
	"github.com/RaikyD/tailor-calendar/internal/presentation/helpers"
	"github.com/RaikyD/tailor-calendar/internal/schedule"
	"github.com/go-chi/chi/v5"
)

type CalendarHandler struct {
	svc *application.CalendarService
}

func NewCalendarHandler(svc *application.CalendarService) *CalendarHandler {
	return &CalendarHandler{svc: svc}
}

func (h *CalendarHandler) Register(r chi.Router) {
	r.Route("/api/calendar", func(r chi.Router) {
		r.Get("/", h.Fetch)
		r.Get("/state", h.State)
		r.Post("/appointments", h.AddAppointment)
		r.Get("/journal", h.Journal)
	})
}

// Fetch loads the requested period and returns the resulting state. A failed
// fetch is still 200: the error is part of the state, as the list is.
func (h *CalendarHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelector(r)
	if err != nil {
		helpers.HttpError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.svc.FetchForPeriod(r.Context(), sel)
	helpers.WriteJSON(w, http.StatusOK, h.svc.Snapshot())
}

func (h *CalendarHandler) State(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, h.svc.Snapshot())
}

func (h *CalendarHandler) AddAppointment(w http.ResponseWriter, r *http.Request) {
	var req domain.CalendarDateRequest
	if err := helpers.DecodeJSON(http.MaxBytesReader(w, r.Body, 1<<20), &req); err != nil {
		helpers.HttpError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	for field, v := range map[string]string{
		"order_id":            req.OrderID,
		"collection_date":     req.CollectionDate,
		"first_fitting_date":  req.FirstFittingDate,
		"second_fitting_date": req.SecondFittingDate,
	} {
		if strings.TrimSpace(v) == "" {
			helpers.HttpError(w, http.StatusBadRequest, field+" is required")
			return
		}
	}

	appt, err := h.svc.AddAppointment(r.Context(), req)
	if err != nil {
		helpers.HttpError(w, statusFor(err), err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, appt)
}

func (h *CalendarHandler) Journal(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v <= 0 {
			helpers.HttpError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = v
	}

	entries, err := h.svc.RecentOutcomes(r.Context(), limit)
	if err != nil {
		if errors.Is(err, application.ErrJournalDisabled) {
			helpers.HttpError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		logger.Warn("journal list failed", "err", err)
		helpers.HttpError(w, http.StatusInternalServerError, "failed to load journal")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func parseSelector(r *http.Request) (domain.PeriodSelector, error) {
	var sel domain.PeriodSelector
	q := r.URL.Query()

	for _, f := range []struct {
		name     string
		dst      **int
		min, max int
	}{
		{"year", &sel.Year, 1900, 9999},
		{"month", &sel.Month, 1, 12},
		{"week", &sel.Week, 1, 53},
	} {
		raw := strings.TrimSpace(q.Get(f.name))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < f.min || v > f.max {
			return sel, errors.New("invalid " + f.name)
		}
		*f.dst = &v
	}
	return sel, nil
}

// statusFor maps schedule failures onto the status this API answers with.
func statusFor(err error) int {
	switch {
	case errors.Is(err, schedule.ErrMissingCredential), errors.Is(err, schedule.ErrAuthFailure):
		return http.StatusUnauthorized
	case errors.Is(err, schedule.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, schedule.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, schedule.ErrRejected):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
