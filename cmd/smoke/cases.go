// README: Smoke cases; itinerary generation, requirement analysis, expense import and dependency checks.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"voyage/internal/modules/itinerary"
)

const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
	StatusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client

	// generated is shared by later cases that import its costs.
	generated json.RawMessage
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: cfg.CallTimeout},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
			defer db.Close()
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
		defer r.redis.Close()
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency.Round(time.Millisecond))
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}
	return results
}

var smokeRequest = map[string]any{
	"destination": "Kyoto",
	"startDate":   "2025-05-01",
	"endDate":     "2025-05-03",
	"budget":      8000,
	"travelers":   2,
	"preferences": []string{"美食", "文化"},
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	plan := base + "/api/plans/" + r.cfg.PlanID + "/expenses"
	return []TestCase{
		{Name: "Env: Postgres connect", Run: pingPostgres},
		{Name: "Env: Redis connect", Run: pingRedis},
		{Name: "Env: expenses table exists", Run: expensesTable},

		statusCase("API: health", http.MethodGet, base+"/health", nil, http.StatusOK),
		{Name: "API: llm status", Run: func(ctx context.Context, r *Runner) Result {
			var status struct {
				Configured bool   `json:"configured"`
				Provider   string `json:"provider"`
			}
			res := r.call(ctx, http.MethodGet, base+"/api/llm/status", nil, http.StatusOK, &status)
			if res.Status == StatusPass {
				res.Note = fmt.Sprintf("configured=%t provider=%q", status.Configured, status.Provider)
			}
			return res
		}},

		{Name: "Itinerary: generate returns a valid itinerary", Run: func(ctx context.Context, r *Runner) Result {
			var body struct {
				Itinerary json.RawMessage `json:"itinerary"`
				Source    string          `json:"source"`
				Fallback  *struct {
					Kind string `json:"kind"`
				} `json:"fallback"`
			}
			res := r.call(ctx, http.MethodPost, base+"/api/itineraries/generate", smokeRequest, http.StatusOK, &body)
			if res.Status != StatusPass {
				return res
			}
			if _, err := itinerary.Validate(string(body.Itinerary)); err != nil {
				return Result{Status: StatusFail, Latency: res.Latency, Note: err.Error()}
			}
			r.generated = body.Itinerary
			res.Note = "source=" + body.Source
			if body.Fallback != nil {
				res.Note += " fallback=" + body.Fallback.Kind
			}
			return res
		}},
		statusCase("Itinerary: end before start -> 400", http.MethodPost, base+"/api/itineraries/generate", map[string]any{
			"destination": "Kyoto", "startDate": "2025-05-03", "endDate": "2025-05-01", "budget": 100, "travelers": 1,
		}, http.StatusBadRequest),
		statusCase("Itinerary: missing destination -> 400", http.MethodPost, base+"/api/itineraries/generate", map[string]any{
			"startDate": "2025-05-01", "endDate": "2025-05-01", "budget": 100, "travelers": 1,
		}, http.StatusBadRequest),

		statusCase("Requirements: analyze", http.MethodPost, base+"/api/requirements/analyze", map[string]any{
			"text": "我想和家人3人去日本东京玩5天，预算2万元，喜欢美食和文化",
		}, http.StatusOK),
		statusCase("Requirements: empty text -> 400", http.MethodPost, base+"/api/requirements/analyze", map[string]any{"text": ""}, http.StatusBadRequest),

		{Name: "Expenses: import generated itinerary", Run: func(ctx context.Context, r *Runner) Result {
			if r.generated == nil {
				return Result{Status: StatusSkip, Note: "no itinerary generated"}
			}
			var body struct {
				Imported []json.RawMessage `json:"imported"`
				Skipped  int               `json:"skipped"`
			}
			res := r.call(ctx, http.MethodPost, plan+"/import", map[string]any{"itinerary": r.generated}, http.StatusOK, &body)
			if res.Status == StatusPass {
				res.Note = fmt.Sprintf("imported=%d skipped=%d", len(body.Imported), body.Skipped)
			}
			return res
		}},
		{Name: "Expenses: re-import is a no-op", Run: func(ctx context.Context, r *Runner) Result {
			if r.generated == nil {
				return Result{Status: StatusSkip, Note: "no itinerary generated"}
			}
			var body struct {
				Imported []json.RawMessage `json:"imported"`
			}
			res := r.call(ctx, http.MethodPost, plan+"/import", map[string]any{"itinerary": r.generated}, http.StatusOK, &body)
			if res.Status == StatusPass && len(body.Imported) != 0 {
				return Result{Status: StatusFail, Latency: res.Latency, Note: fmt.Sprintf("imported %d duplicates", len(body.Imported))}
			}
			return res
		}},
		statusCase("Expenses: list", http.MethodGet, plan, nil, http.StatusOK),
		statusCase("Expenses: stats", http.MethodGet, plan+"/stats", nil, http.StatusOK),

		{Name: "Metrics: generation counter exported", Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/metrics", nil)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			defer resp.Body.Close()
			if resp.StatusCode == http.StatusNotFound {
				return Result{Status: StatusSkip, Note: "metrics not mounted"}
			}
			raw, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(raw), "voyage_itinerary_generations_total") {
				return Result{Status: StatusFail, Latency: time.Since(start), Note: "counter missing"}
			}
			return Result{Status: StatusPass, Latency: time.Since(start)}
		}},
	}
}

func statusCase(name, method, url string, body any, want int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			return r.call(ctx, method, url, body, want, nil)
		},
	}
}

// call sends body as JSON and decodes the response into out when the status
// matches. A 404 on an expense route means the server runs without a database.
func (r *Runner) call(ctx context.Context, method, url string, body any, want int, out any) Result {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return Result{Status: StatusFail, Note: err.Error()}
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rdr)
	if err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	defer resp.Body.Close()
	latency := time.Since(start)
	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusNotFound && strings.Contains(url, "/expenses") {
		return Result{Status: StatusSkip, Latency: latency, Note: "expense routes not mounted"}
	}
	if resp.StatusCode != want {
		return Result{Status: StatusFail, Latency: latency, Note: fmt.Sprintf("status=%d body=%s", resp.StatusCode, truncate(string(raw), 200))}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return Result{Status: StatusFail, Latency: latency, Note: "decode: " + err.Error()}
		}
	}
	return Result{Status: StatusPass, Latency: latency}
}

func pingPostgres(ctx context.Context, r *Runner) Result {
	if r.db == nil {
		return Result{Status: StatusSkip, Note: "dsn not set"}
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.db.Ping(ctx); err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	return Result{Status: StatusPass}
}

func pingRedis(ctx context.Context, r *Runner) Result {
	if r.redis == nil {
		return Result{Status: StatusSkip, Note: "redis not set"}
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.redis.Ping(ctx).Err(); err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	return Result{Status: StatusPass}
}

func expensesTable(ctx context.Context, r *Runner) Result {
	if r.db == nil {
		return Result{Status: StatusSkip, Note: "dsn not set"}
	}
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
		"expenses",
	).Scan(&exists)
	if err != nil {
		return Result{Status: StatusFail, Note: err.Error()}
	}
	if !exists {
		return Result{Status: StatusFail, Note: "missing table: expenses (start voyage-api once to migrate)"}
	}
	return Result{Status: StatusPass}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
