package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RaikyD/tailor-calendar/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultListLimit = 50

type JournalRepo interface {
	Record(ctx context.Context, e domain.JournalEntry) error
	ListRecent(ctx context.Context, limit int) ([]domain.JournalEntry, error)
}

// JournalRepository keeps the outcome of every optimistic appointment write.
type JournalRepository struct {
	pool *pgxpool.Pool
}

func NewJournalRepository(p *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{pool: p}
}

func (r *JournalRepository) Record(ctx context.Context, e domain.JournalEntry) error {
	payload, err := json.Marshal(e.Request)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO calendar.appointment_journal
			(id, order_id, outcome, request, error, recorded_at)
		 VALUES
			($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO NOTHING`,
		e.ID,
		e.OrderID,
		string(e.Outcome),
		payload,
		e.Error,
		e.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

func (r *JournalRepository) ListRecent(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	limit = clampLimit(limit)

	rows, err := r.pool.Query(ctx,
		`SELECT id, order_id, outcome, request, error, recorded_at
		   FROM calendar.appointment_journal
		  ORDER BY recorded_at DESC
		  LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.JournalEntry, error) {
		var (
			e       domain.JournalEntry
			outcome string
			payload []byte
		)
		if err := row.Scan(&e.ID, &e.OrderID, &outcome, &payload, &e.Error, &e.RecordedAt); err != nil {
			return e, err
		}
		e.Outcome = domain.Outcome(outcome)
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &e.Request); err != nil {
				return e, fmt.Errorf("decode request of %s: %w", e.ID, err)
			}
		}
		return e, nil
	})
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultListLimit
	case limit > 1000:
		return 1000
	default:
		return limit
	}
}
