// README: Expense ledger backed by PostgreSQL; (plan_id, content, amount) is unique.
package expense

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"voyage/internal/types"
)

// Ledger is the persistence collaborator of the importer.
type Ledger interface {
	ListByPlan(ctx context.Context, planID string) ([]Record, error)
	// Create reports false when an equal (plan, content, amount) record already exists.
	Create(ctx context.Context, r *Record) (bool, error)
}

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// ListByPlan returns newest expense date first, then newest insert first.
func (s *Store) ListByPlan(ctx context.Context, planID string) ([]Record, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, plan_id, content, amount, category, expense_date, created_at
		FROM expenses
		WHERE plan_id = $1
		ORDER BY expense_date DESC, created_at DESC`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var r Record
		var date time.Time
		if err := rows.Scan(&r.ID, &r.PlanID, &r.Content, &r.Amount, &r.Category, &date, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Date = types.DateOf(date)
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) Create(ctx context.Context, r *Record) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO expenses (id, plan_id, content, amount, category, expense_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (plan_id, content, amount) DO NOTHING`,
		r.ID, r.PlanID, r.Content, r.Amount, string(r.Category), r.Date.Time(), r.CreatedAt,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
