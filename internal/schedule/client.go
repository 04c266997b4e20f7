package schedule

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/RaikyD/tailor-calendar/internal/domain"
	"github.com/RaikyD/tailor-calendar/internal/logger"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	fittingDatesPath = "/orders/get-fitting-dates"
	calendarDatePath = "/orders/add-calendar-date"

	maxBodyBytes = 10 << 20
)

// CredentialProvider returns the bearer token for the current session.
// An empty token means no credential is available.
type CredentialProvider func(ctx context.Context) (string, error)

func StaticToken(token string) CredentialProvider {
	return func(context.Context) (string, error) {
		return strings.TrimSpace(token), nil
	}
}

type Options struct {
	BaseURL     string
	Credentials CredentialProvider
	// HTTPClient defaults to an otelhttp-instrumented client using Timeout.
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client talks to the orders API's fitting-schedule endpoints. It never
// caches or retries; every failure comes back as *Error.
type Client struct {
	base  *url.URL
	creds CredentialProvider
	http  *http.Client
}

func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("schedule: invalid base url %q", opts.BaseURL)
	}
	if opts.Credentials == nil {
		return nil, errors.New("schedule: credential provider is required")
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		hc = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &Client{base: base, creds: opts.Credentials, http: hc}, nil
}

type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Type    string          `json:"type,omitempty"`
	Year    string          `json:"year,omitempty"`
	Month   string          `json:"month,omitempty"`
	Week    string          `json:"week,omitempty"`
}

func (c *Client) GetFittingDates(ctx context.Context, sel domain.PeriodSelector) (*domain.FittingDates, error) {
	env, err := c.do(ctx, http.MethodGet, fittingDatesPath, sel.Query(), nil)
	if err != nil {
		return nil, err
	}
	fd, err := decodeFittingDates(env)
	if err != nil {
		return nil, malformed(http.StatusOK, err)
	}
	return fd, nil
}

// AddCalendarDate returns the updated order, or nil when the API accepted
// the change without echoing the order back.
func (c *Client) AddCalendarDate(ctx context.Context, req domain.CalendarDateRequest) (*domain.OrderData, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	env, err := c.do(ctx, http.MethodPut, calendarDatePath, nil, body)
	if err != nil {
		return nil, err
	}

	if isNull(env.Data) {
		return nil, nil
	}
	var order domain.OrderData
	if err := json.Unmarshal(env.Data, &order); err != nil {
		return nil, malformed(http.StatusOK, err)
	}
	if strings.TrimSpace(order.OrderID) == "" {
		return nil, nil
	}
	return &order, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) (*envelope, error) {
	token, err := c.creds(ctx)
	if err != nil || token == "" {
		return nil, missingCredential(err)
	}

	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("schedule api transport error", "method", method, "path", path, "err", err)
		return nil, networkFailure(err)
	}
	defer resp.Body.Close()

	logger.Debug("schedule api call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, statusError(resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, networkFailure(err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, malformed(resp.StatusCode, err)
	}
	if env.Success != nil && !*env.Success {
		msg := env.Message
		if msg == "" {
			msg = "The server rejected the request."
		}
		return nil, &Error{Kind: ErrRejected, Status: resp.StatusCode, Message: msg}
	}
	return &env, nil
}

// decodeFittingDates tells day buckets from month summaries by the keys of
// the first element, falling back to the envelope's type for empty data.
func decodeFittingDates(env *envelope) (*domain.FittingDates, error) {
	if isNull(env.Data) {
		return emptyFittingDates(env.Type), nil
	}

	var heads []map[string]json.RawMessage
	if err := json.Unmarshal(env.Data, &heads); err != nil {
		return nil, fmt.Errorf("fitting dates: %w", err)
	}
	if len(heads) == 0 {
		return emptyFittingDates(env.Type), nil
	}

	first := heads[0]
	_, hasDate := first["date"]
	_, hasOrders := first["orders"]
	_, hasMonth := first["month"]

	switch {
	case hasDate || hasOrders:
		var days []domain.DayAggregate
		if err := json.Unmarshal(env.Data, &days); err != nil {
			return nil, fmt.Errorf("day aggregates: %w", err)
		}
		return &domain.FittingDates{Kind: domain.KindDaily, Days: days}, nil
	case hasMonth:
		var months []domain.MonthAggregate
		if err := json.Unmarshal(env.Data, &months); err != nil {
			return nil, fmt.Errorf("month aggregates: %w", err)
		}
		return &domain.FittingDates{Kind: domain.KindMonthly, Months: months}, nil
	default:
		return nil, errors.New("fitting dates: unrecognised aggregate shape")
	}
}

func emptyFittingDates(typ string) *domain.FittingDates {
	if strings.EqualFold(typ, "month") || strings.EqualFold(typ, "monthly") {
		return &domain.FittingDates{Kind: domain.KindMonthly, Months: []domain.MonthAggregate{}}
	}
	return &domain.FittingDates{Kind: domain.KindDaily, Days: []domain.DayAggregate{}}
}

func isNull(raw json.RawMessage) bool {
	s := bytes.TrimSpace(raw)
	return len(s) == 0 || bytes.Equal(s, []byte("null"))
}
