package domain

import (
	"net/url"
	"strconv"
)

// OrderData is an order record as the orders API reports it inside a day bucket
// or as the payload of a calendar-date update.
type OrderData struct {
	OrderID           string `json:"order_id"`
	CustomerName      string `json:"customer_name"`
	ClothingName      string `json:"clothing_name"`
	FirstFittingDate  string `json:"first_fitting_date"`
	SecondFittingDate string `json:"second_fitting_date"`
	CollectionDate    string `json:"collection_date"`

	// Optional fields of the extended contract. Older API versions omit them.
	Status      string   `json:"status,omitempty"`
	TotalAmount *float64 `json:"total_amount,omitempty"`
}

// DayAggregate is one day bucket of a daily or weekly query. Orders keep the
// API order; Total is the count the API reports for the day.
type DayAggregate struct {
	Date   string      `json:"date"`
	Orders []OrderData `json:"orders"`
	Total  int         `json:"total"`
}

// MonthAggregate counts the fittings and collections falling in one month.
type MonthAggregate struct {
	Month              string `json:"month"`
	FirstFittingCount  int    `json:"first_fitting_count"`
	SecondFittingCount int    `json:"second_fitting_count"`
	CollectionCount    int    `json:"collection_count"`
}

// AggregateKind tells which payload shape a fitting-dates query returned.
type AggregateKind string

const (
	KindDaily   AggregateKind = "daily"
	KindMonthly AggregateKind = "monthly"
)

// FittingDates is the discriminated result of a fitting-dates query.
// Exactly one of Days and Months is meaningful, selected by Kind.
type FittingDates struct {
	Kind   AggregateKind
	Days   []DayAggregate
	Months []MonthAggregate
}

// PeriodSelector picks the period to query. Nil fields are left out of the request.
type PeriodSelector struct {
	Year  *int `json:"year,omitempty"`
	Month *int `json:"month,omitempty"`
	Week  *int `json:"week,omitempty"`
}

func (s PeriodSelector) Query() url.Values {
	q := url.Values{}
	if s.Year != nil {
		q.Set("year", strconv.Itoa(*s.Year))
	}
	if s.Month != nil {
		q.Set("month", strconv.Itoa(*s.Month))
	}
	if s.Week != nil {
		q.Set("week", strconv.Itoa(*s.Week))
	}
	return q
}

// CalendarDateRequest sets the fitting and collection dates of an existing order.
// Dates are passed through verbatim; the orders API validates them.
type CalendarDateRequest struct {
	OrderID           string `json:"order_id"`
	CollectionDate    string `json:"collection_date"`
	FirstFittingDate  string `json:"first_fitting_date"`
	SecondFittingDate string `json:"second_fitting_date"`
}
