// README: Mock generator tests: determinism, day counting and schema validity over generated requests.
package itinerary

import (
	"encoding/json"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"voyage/internal/types"
)

func kyotoRequest() TravelRequest {
	return TravelRequest{
		Destination: "Kyoto",
		StartDate:   types.MustParseDate("2025-05-01"),
		EndDate:     types.MustParseDate("2025-05-03"),
		Budget:      8000,
		Travelers:   2,
		Preferences: []string{"美食", "历史文化"},
		TravelStyle: "舒适体验",
	}
}

func TestMockItinerary_Kyoto(t *testing.T) {
	it := MockItinerary(kyotoRequest())

	if it.Duration != 3 {
		t.Fatalf("expected duration 3, got %d", it.Duration)
	}
	if len(it.DayPlans) != 3 {
		t.Fatalf("expected 3 day plans, got %d", len(it.DayPlans))
	}
	wantDates := []string{"2025-05-01", "2025-05-02", "2025-05-03"}
	for i, d := range it.DayPlans {
		if d.Day != i+1 {
			t.Errorf("day %d: expected number %d, got %d", i, i+1, d.Day)
		}
		if d.Date != wantDates[i] {
			t.Errorf("day %d: expected date %s, got %s", i, wantDates[i], d.Date)
		}
		if len(d.Activities) != 3 {
			t.Fatalf("day %d: expected 3 activities, got %d", i, len(d.Activities))
		}
	}

	first := it.DayPlans[0].Activities[0]
	if first.Type != ActivitySightseeing || first.Title != "第1天景点游览" {
		t.Errorf("unexpected first activity: %+v", first)
	}
	if first.Location == nil || *first.Location != "Kyoto市中心" {
		t.Errorf("expected location Kyoto市中心, got %v", first.Location)
	}
	if got := it.DayPlans[2].Activities[0].Title; got != "第3天景点游览" {
		t.Errorf("expected day 3 title, got %q", got)
	}
	lunch := it.DayPlans[1].Activities[1]
	if lunch.Type != ActivityDining || lunch.Cost == nil || *lunch.Cost != 100 {
		t.Errorf("unexpected lunch: %+v", lunch)
	}
	if lunch.Location != nil {
		t.Errorf("lunch should carry no location")
	}

	wantSummary := "这是一份Kyoto3天2人游的行程规划，专注于美食和历史文化。"
	if it.Summary != wantSummary {
		t.Errorf("summary mismatch:\n got %q\nwant %q", it.Summary, wantSummary)
	}
	if len(it.Recommendations) != 2 || it.Recommendations[0].Category != "美食推荐" {
		t.Errorf("unexpected recommendations: %+v", it.Recommendations)
	}
}

func TestMockItinerary_SingleDay(t *testing.T) {
	req := kyotoRequest()
	req.EndDate = req.StartDate
	it := MockItinerary(req)
	if it.Duration != 1 || len(it.DayPlans) != 1 {
		t.Fatalf("same-day trip should have one day, got duration=%d plans=%d", it.Duration, len(it.DayPlans))
	}
}

func TestMockItinerary_NoPreferences(t *testing.T) {
	req := kyotoRequest()
	req.Preferences = nil
	it := MockItinerary(req)
	if !strings.HasSuffix(it.Summary, "专注于综合体验。") {
		t.Errorf("unexpected summary %q", it.Summary)
	}
}

func TestMockItinerary_Deterministic(t *testing.T) {
	a := MockItinerary(kyotoRequest())
	b := MockItinerary(kyotoRequest())
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("mock output differs for equal requests")
	}
}

func TestMockItinerary_CrossesMonthAndLeapDay(t *testing.T) {
	req := kyotoRequest()
	req.StartDate = types.MustParseDate("2024-02-28")
	req.EndDate = types.MustParseDate("2024-03-01")
	it := MockItinerary(req)
	if it.Duration != 3 {
		t.Fatalf("expected 3 days, got %d", it.Duration)
	}
	if it.DayPlans[1].Date != "2024-02-29" || it.DayPlans[2].Date != "2024-03-01" {
		t.Errorf("unexpected dates: %s, %s", it.DayPlans[1].Date, it.DayPlans[2].Date)
	}
}

// Every request that passes Validate must yield a mock that survives the schema validator.
func TestMockItinerary_AlwaysValid(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	destinations := []string{"Kyoto", "北京", "泰国普吉岛", "Reykjavík", "x"}
	prefs := []string{"美食", "购物", "自然风光", "历史文化"}
	base := types.MustParseDate("2024-01-01")

	for i := 0; i < 300; i++ {
		start := base.AddDays(rng.Intn(800))
		req := TravelRequest{
			Destination: destinations[rng.Intn(len(destinations))],
			StartDate:   start,
			EndDate:     start.AddDays(rng.Intn(30)),
			Budget:      float64(1 + rng.Intn(100000)),
			Travelers:   1 + rng.Intn(12),
			Preferences: prefs[:rng.Intn(len(prefs)+1)],
		}
		if err := req.Validate(); err != nil {
			t.Fatalf("generated invalid request: %v", err)
		}

		it := MockItinerary(req)
		if it.Duration != req.DayCount() || len(it.DayPlans) != it.Duration {
			t.Fatalf("request %d: duration %d, plans %d, want %d", i, it.Duration, len(it.DayPlans), req.DayCount())
		}

		raw, err := json.Marshal(it)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		got, err := Validate(string(raw))
		if err != nil {
			t.Fatalf("request %d: mock failed validation: %v", i, err)
		}
		if !reflect.DeepEqual(got, it) {
			t.Fatalf("request %d: round trip changed itinerary", i)
		}
	}
}
