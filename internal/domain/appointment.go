package domain

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Status string

const (
	StatusUnknown   Status = "unknown"
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus maps an API status label onto Status. Anything unrecognised is unknown.
func ParseStatus(s string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending
	case StatusConfirmed:
		return StatusConfirmed
	case StatusCompleted:
		return StatusCompleted
	case StatusCancelled:
		return StatusCancelled
	default:
		return StatusUnknown
	}
}

// SyncState tells how far an appointment is backed by server data.
type SyncState string

const (
	// SyncPending marks an optimistic placeholder whose write is still in flight.
	SyncPending SyncState = "pending"
	// SyncConfirmed marks data derived from a server payload.
	SyncConfirmed SyncState = "confirmed"
	// SyncUnverified marks a placeholder the server accepted without echoing the order back.
	SyncUnverified SyncState = "unverified"
)

const (
	PlaceholderCustomer = "New Customer"
	PlaceholderItem     = "New Order"
)

type Appointment struct {
	ID            string    `json:"id"`
	Customer      string    `json:"customer"`
	FirstFitting  time.Time `json:"first_fitting_date"`
	SecondFitting time.Time `json:"second_fitting_date"`
	Collection    time.Time `json:"collection_date"`
	Status        Status    `json:"status"`
	Items         []string  `json:"items"`
	// TotalAmount is empty when the API did not report one.
	TotalAmount string    `json:"total_amount,omitempty"`
	Sync        SyncState `json:"sync"`
}

func (a Appointment) Clone() Appointment {
	if a.Items != nil {
		a.Items = append([]string(nil), a.Items...)
	}
	return a
}

// AppointmentFromOrder derives a confirmed appointment from a server order record.
func AppointmentFromOrder(o OrderData) Appointment {
	a := Appointment{
		ID:            o.OrderID,
		Customer:      o.CustomerName,
		FirstFitting:  ParseDate(o.FirstFittingDate),
		SecondFitting: ParseDate(o.SecondFittingDate),
		Collection:    ParseDate(o.CollectionDate),
		Status:        ParseStatus(o.Status),
		Items:         []string{},
		Sync:          SyncConfirmed,
	}
	if name := strings.TrimSpace(o.ClothingName); name != "" {
		a.Items = append(a.Items, name)
	}
	if o.TotalAmount != nil {
		a.TotalAmount = FormatNaira(*o.TotalAmount)
	}
	return a
}

// PlaceholderAppointment builds the optimistic row shown while a calendar-date
// update is in flight. The request carries no customer or garment data.
func PlaceholderAppointment(req CalendarDateRequest) Appointment {
	return Appointment{
		ID:            req.OrderID,
		Customer:      PlaceholderCustomer,
		FirstFitting:  ParseDate(req.FirstFittingDate),
		SecondFitting: ParseDate(req.SecondFittingDate),
		Collection:    ParseDate(req.CollectionDate),
		Status:        StatusPending,
		Items:         []string{PlaceholderItem},
		Sync:          SyncPending,
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseDate accepts the date shapes the orders API emits. It returns the zero
// time for empty or unparseable input.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

var amountPrinter = message.NewPrinter(language.English)

// FormatNaira renders an amount as ₦1,234.50. The sign goes before the symbol.
func FormatNaira(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + amountPrinter.Sprintf("₦%.2f", amount)
}
