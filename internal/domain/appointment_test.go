package domain

import (
	"testing"
	"time"
)

func TestAppointmentFromOrder(t *testing.T) {
	amount := 15000.0
	a := AppointmentFromOrder(OrderData{
		OrderID:           "O1",
		CustomerName:      "Jane Doe",
		ClothingName:      "Agbada",
		FirstFittingDate:  "2024-02-01",
		SecondFittingDate: "2024-02-15T10:30:00Z",
		CollectionDate:    "2024-03-01",
		TotalAmount:       &amount,
	})

	if a.ID != "O1" || a.Customer != "Jane Doe" {
		t.Fatalf("unexpected identity: %+v", a)
	}
	if len(a.Items) != 1 || a.Items[0] != "Agbada" {
		t.Fatalf("items = %v, want [Agbada]", a.Items)
	}
	if !a.FirstFitting.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("first fitting = %s", a.FirstFitting)
	}
	if !a.SecondFitting.Equal(time.Date(2024, 2, 15, 10, 30, 0, 0, time.UTC)) {
		t.Fatalf("second fitting = %s", a.SecondFitting)
	}
	if a.Status != StatusUnknown {
		t.Fatalf("status = %q, want unknown when the API sends none", a.Status)
	}
	if a.TotalAmount != "₦15,000.00" {
		t.Fatalf("total = %q", a.TotalAmount)
	}
	if a.Sync != SyncConfirmed {
		t.Fatalf("sync = %q, want confirmed", a.Sync)
	}
}

func TestAppointmentFromOrder_MissingOptionalFields(t *testing.T) {
	a := AppointmentFromOrder(OrderData{OrderID: "O2", CollectionDate: "not a date"})
	if a.TotalAmount != "" {
		t.Fatalf("total = %q, want empty", a.TotalAmount)
	}
	if len(a.Items) != 0 {
		t.Fatalf("items = %v, want empty", a.Items)
	}
	if !a.Collection.IsZero() {
		t.Fatalf("collection = %s, want zero", a.Collection)
	}
}

func TestPlaceholderAppointment(t *testing.T) {
	p := PlaceholderAppointment(CalendarDateRequest{
		OrderID:           "O1",
		CollectionDate:    "2024-03-01",
		FirstFittingDate:  "2024-02-01",
		SecondFittingDate: "2024-02-15",
	})
	if p.Customer != PlaceholderCustomer || p.Sync != SyncPending || p.Status != StatusPending {
		t.Fatalf("unexpected placeholder: %+v", p)
	}
	if len(p.Items) != 1 || p.Items[0] != PlaceholderItem {
		t.Fatalf("items = %v", p.Items)
	}
	if p.Collection.Format(time.DateOnly) != "2024-03-01" {
		t.Fatalf("collection = %s", p.Collection)
	}
}

func TestFormatNaira(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "₦0.00"},
		{999.5, "₦999.50"},
		{1000, "₦1,000.00"},
		{1234567.891, "₦1,234,567.89"},
		{-2500, "-₦2,500.00"},
	}
	for _, c := range cases {
		if got := FormatNaira(c.in); got != c.want {
			t.Fatalf("FormatNaira(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if ParseStatus(" Confirmed ") != StatusConfirmed {
		t.Fatal("expected confirmed")
	}
	if ParseStatus("") != StatusUnknown || ParseStatus("in-progress") != StatusUnknown {
		t.Fatal("expected unknown for empty or unrecognised labels")
	}
}

func TestPeriodSelectorQuery(t *testing.T) {
	year, week := 2024, 9
	q := PeriodSelector{Year: &year, Week: &week}.Query()
	if q.Encode() != "week=9&year=2024" {
		t.Fatalf("query = %q", q.Encode())
	}
	if len(PeriodSelector{}.Query()) != 0 {
		t.Fatal("empty selector should produce an empty query")
	}
}

func TestCloneDetachesItems(t *testing.T) {
	a := Appointment{ID: "O1", Items: []string{"Kaftan"}}
	c := a.Clone()
	c.Items[0] = "Changed"
	if a.Items[0] != "Kaftan" {
		t.Fatal("clone shares the items slice")
	}
}
