package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/RaikyD/tailor-calendar/internal/domain"
	"github.com/RaikyD/tailor-calendar/internal/logger"
	"github.com/RaikyD/tailor-calendar/internal/repository"
	"github.com/google/uuid"
)

var ErrJournalDisabled = errors.New("appointment journal is not configured")

const (
	fetchFailedMessage = "failed to fetch calendar data"
	addFailedMessage   = "failed to add appointment"
)

type ScheduleClient interface {
	GetFittingDates(ctx context.Context, sel domain.PeriodSelector) (*domain.FittingDates, error)
	AddCalendarDate(ctx context.Context, req domain.CalendarDateRequest) (*domain.OrderData, error)
}

type OutcomePublisher interface {
	PublishOutcome(ctx context.Context, e domain.JournalEntry) error
}

// slot is one row of the calendar. token is set only on an optimistic
// placeholder and identifies it for reconcile or rollback.
type slot struct {
	appt  domain.Appointment
	token uuid.UUID
}

// Snapshot is a consistent copy of the calendar state.
type Snapshot struct {
	Appointments []domain.Appointment    `json:"appointments"`
	Summaries    []domain.MonthAggregate `json:"summaries"`
	IsLoading    bool                    `json:"is_loading"`
	LastError    string                  `json:"last_error,omitempty"`
}

// CalendarService owns the appointment list shown on the calendar. All
// mutation goes through it; readers get copies.
type CalendarService struct {
	client  ScheduleClient
	journal repository.JournalRepo
	events  OutcomePublisher

	mu        sync.RWMutex
	slots     []slot
	summaries []domain.MonthAggregate
	inflight  int
	lastError string
	seq       uint64
	lastSel   *domain.PeriodSelector
}

// NewCalendarService wires the view-model. journal and events may be nil.
func NewCalendarService(c ScheduleClient, journal repository.JournalRepo, events OutcomePublisher) *CalendarService {
	return &CalendarService{
		client:    c,
		journal:   journal,
		events:    events,
		slots:     []slot{},
		summaries: []domain.MonthAggregate{},
	}
}

// FetchForPeriod loads the period and replaces the appointment list with it.
// Failures are recorded in LastError and never returned. When fetches
// overlap, only the most recently issued one is applied.
func (s *CalendarService) FetchForPeriod(ctx context.Context, sel domain.PeriodSelector) {
	s.mu.Lock()
	s.inflight++
	s.lastError = ""
	s.seq++
	token := s.seq
	s.lastSel = &sel
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inflight--
		s.mu.Unlock()
	}()

	fd, err := s.client.GetFittingDates(ctx, sel)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.seq {
		logger.Debug("discarding stale calendar fetch", "token", token, "latest", s.seq)
		return
	}
	if err != nil {
		s.lastError = displayMessage(err, fetchFailedMessage)
		logger.Warn("calendar fetch failed", "err", err)
		return
	}

	switch fd.Kind {
	case domain.KindMonthly:
		s.summaries = append([]domain.MonthAggregate{}, fd.Months...)
		logger.Info("calendar summaries loaded", "months", len(fd.Months))
	default:
		s.slots = flatten(fd.Days)
		logger.Info("calendar appointments loaded", "days", len(fd.Days), "appointments", len(s.slots))
	}
}

// Refresh re-runs the last fetch. It reports false when nothing was fetched yet.
func (s *CalendarService) Refresh(ctx context.Context) bool {
	s.mu.RLock()
	sel := s.lastSel
	s.mu.RUnlock()
	if sel == nil {
		return false
	}
	s.FetchForPeriod(ctx, *sel)
	return true
}

// AddAppointment shows a placeholder immediately, then either replaces it
// with the server's order or removes it and returns the error.
func (s *CalendarService) AddAppointment(ctx context.Context, req domain.CalendarDateRequest) (domain.Appointment, error) {
	token := uuid.New()
	placeholder := domain.PlaceholderAppointment(req)

	s.mu.Lock()
	s.slots = append(s.slots, slot{appt: placeholder, token: token})
	s.mu.Unlock()

	order, err := s.client.AddCalendarDate(ctx, req)
	if err != nil {
		s.mu.Lock()
		s.remove(token)
		s.lastError = displayMessage(err, addFailedMessage)
		s.mu.Unlock()

		logger.Warn("appointment rolled back", "order_id", req.OrderID, "err", err)
		s.record(ctx, req, domain.OutcomeRolledBack, err)
		return domain.Appointment{}, err
	}

	if order == nil {
		s.mu.Lock()
		appt := s.markUnverified(token, placeholder)
		s.mu.Unlock()

		logger.Info("appointment accepted without order payload", "order_id", req.OrderID)
		s.record(ctx, req, domain.OutcomeUnverified, nil)
		return appt, nil
	}

	reconciled := domain.AppointmentFromOrder(*order)
	s.mu.Lock()
	s.reconcile(token, reconciled)
	s.mu.Unlock()

	logger.Info("appointment reconciled", "order_id", reconciled.ID)
	s.record(ctx, req, domain.OutcomeReconciled, nil)
	return reconciled.Clone(), nil
}

func (s *CalendarService) Appointments() []domain.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appointmentsLocked()
}

func (s *CalendarService) Summaries() []domain.MonthAggregate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.MonthAggregate{}, s.summaries...)
}

func (s *CalendarService) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

func (s *CalendarService) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

func (s *CalendarService) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Appointments: s.appointmentsLocked(),
		Summaries:    append([]domain.MonthAggregate{}, s.summaries...),
		IsLoading:    s.inflight > 0,
		LastError:    s.lastError,
	}
}

func (s *CalendarService) RecentOutcomes(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	return s.journal.ListRecent(ctx, limit)
}

func (s *CalendarService) appointmentsLocked() []domain.Appointment {
	out := make([]domain.Appointment, 0, len(s.slots))
	for _, sl := range s.slots {
		out = append(out, sl.appt.Clone())
	}
	return out
}

func (s *CalendarService) indexOf(token uuid.UUID) int {
	for i, sl := range s.slots {
		if sl.token == token {
			return i
		}
	}
	return -1
}

func (s *CalendarService) remove(token uuid.UUID) {
	if i := s.indexOf(token); i >= 0 {
		s.slots = append(s.slots[:i:i], s.slots[i+1:]...)
	}
}

// reconcile swaps the placeholder for the server version in place and drops
// any other row of the same order, which carries the dates before the write.
// If a fetch already replaced the list, the server version takes the place
// of the fetched row, or is appended when the order is not shown.
func (s *CalendarService) reconcile(token uuid.UUID, appt domain.Appointment) {
	i := s.indexOf(token)
	if i < 0 {
		i = s.indexOfOrder(appt.ID)
	}
	if i < 0 {
		s.slots = append(s.slots, slot{appt: appt})
		return
	}
	s.slots[i] = slot{appt: appt}
	s.dropDuplicates(i)
}

// markUnverified keeps the placeholder where it is. A stale row of the same
// order still lends it the fields the request cannot carry, then goes away.
func (s *CalendarService) markUnverified(token uuid.UUID, placeholder domain.Appointment) domain.Appointment {
	i := s.indexOf(token)
	if i < 0 {
		placeholder.Sync = domain.SyncUnverified
		return placeholder
	}

	sl := &s.slots[i]
	sl.appt.Sync = domain.SyncUnverified
	sl.token = uuid.Nil
	for j, other := range s.slots {
		if j == i || other.token != uuid.Nil || other.appt.ID != sl.appt.ID {
			continue
		}
		sl.appt.Customer = other.appt.Customer
		sl.appt.Items = append([]string(nil), other.appt.Items...)
		sl.appt.Status = other.appt.Status
		sl.appt.TotalAmount = other.appt.TotalAmount
		break
	}
	return s.slots[s.dropDuplicates(i)].appt.Clone()
}

func (s *CalendarService) indexOfOrder(id string) int {
	for i, sl := range s.slots {
		if sl.token == uuid.Nil && sl.appt.ID == id {
			return i
		}
	}
	return -1
}

// dropDuplicates removes every settled row sharing the order id of slots[keep]
// and returns keep's new index. Rows of other in-flight writes stay.
func (s *CalendarService) dropDuplicates(keep int) int {
	id := s.slots[keep].appt.ID
	out := s.slots[:0]
	newKeep := keep
	for i, sl := range s.slots {
		if i != keep && sl.token == uuid.Nil && sl.appt.ID == id {
			continue
		}
		if i == keep {
			newKeep = len(out)
		}
		out = append(out, sl)
	}
	s.slots = out
	return newKeep
}

// record journals and publishes an outcome. Neither failure reaches the caller.
func (s *CalendarService) record(ctx context.Context, req domain.CalendarDateRequest, outcome domain.Outcome, cause error) {
	if s.journal == nil && s.events == nil {
		return
	}
	e := domain.JournalEntry{
		ID:         uuid.New(),
		OrderID:    req.OrderID,
		Outcome:    outcome,
		Request:    req,
		RecordedAt: time.Now().UTC(),
	}
	if cause != nil {
		e.Error = cause.Error()
	}

	if s.journal != nil {
		if err := s.journal.Record(ctx, e); err != nil {
			logger.Warn("journal record failed", "order_id", req.OrderID, "outcome", outcome, "err", err)
		}
	}
	if s.events != nil {
		if err := s.events.PublishOutcome(ctx, e); err != nil {
			logger.Warn("outcome publish failed", "order_id", req.OrderID, "outcome", outcome, "err", err)
		}
	}
}

// flatten concatenates day buckets in day order, then per-day order.
func flatten(days []domain.DayAggregate) []slot {
	out := []slot{}
	for _, d := range days {
		for _, o := range d.Orders {
			out = append(out, slot{appt: domain.AppointmentFromOrder(o)})
		}
	}
	return out
}

func displayMessage(err error, fallback string) string {
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}
