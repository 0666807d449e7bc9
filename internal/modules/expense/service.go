// README: Expense service; snapshot, plan and write imports, plus listing and statistics.
package expense

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"voyage/internal/metrics"
	"voyage/internal/types"
)

type Service struct {
	ledger  Ledger
	metrics *metrics.Metrics
	log     zerolog.Logger
	now     func() time.Time
}

func NewService(ledger Ledger, m *metrics.Metrics, log zerolog.Logger) *Service {
	return &Service{ledger: ledger, metrics: m, log: log, now: time.Now}
}

type ImportResult struct {
	Imported []Record `json:"imported"`
	Skipped  int      `json:"skipped"`
}

// ImportFromItinerary reads the plan's records once, then writes every record
// PlanImport accepts. A record that loses a race with a concurrent writer is
// dropped by the ledger's unique key and counted as skipped.
func (s *Service) ImportFromItinerary(ctx context.Context, planID string, activities []ActivityCost) (ImportResult, error) {
	planID = strings.TrimSpace(planID)
	if planID == "" {
		return ImportResult{}, ErrInvalidPlan
	}

	existing, err := s.ledger.ListByPlan(ctx, planID)
	if err != nil {
		return ImportResult{}, fmt.Errorf("list expenses: %w", err)
	}

	now := s.now()
	planned := PlanImport(existing, activities, planID, types.DateOf(now))

	res := ImportResult{Imported: []Record{}}
	for _, r := range planned {
		r.ID = uuid.New()
		r.CreatedAt = now.UTC()
		created, err := s.ledger.Create(ctx, &r)
		if err != nil {
			res.Skipped = len(activities) - len(res.Imported)
			return res, fmt.Errorf("create expense %q: %w", r.Content, err)
		}
		if created {
			res.Imported = append(res.Imported, r)
		}
	}
	res.Skipped = len(activities) - len(res.Imported)

	s.metrics.ObserveImport(len(res.Imported), res.Skipped)
	s.log.Info().
		Str("plan_id", planID).
		Int("activities", len(activities)).
		Int("imported", len(res.Imported)).
		Int("skipped", res.Skipped).
		Msg("expenses imported")
	return res, nil
}

func (s *Service) List(ctx context.Context, planID string) ([]Record, error) {
	planID = strings.TrimSpace(planID)
	if planID == "" {
		return nil, ErrInvalidPlan
	}
	return s.ledger.ListByPlan(ctx, planID)
}

func (s *Service) Stats(ctx context.Context, planID string) (Stats, error) {
	records, err := s.List(ctx, planID)
	if err != nil {
		return Stats{}, err
	}
	return Summarize(records), nil
}
