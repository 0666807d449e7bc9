// README: Mock generator; deterministic schema-valid itinerary used whenever the model path fails.
package itinerary

import (
	"fmt"
	"strings"
)

const defaultFocus = "综合体验"

// MockItinerary builds a placeholder itinerary from req alone. It is total for any
// request that passes Validate, and equal requests give equal itineraries.
func MockItinerary(req TravelRequest) Itinerary {
	days := req.DayCount()
	if days < 1 {
		days = 1
	}

	plans := make([]DayPlan, days)
	for i := range plans {
		plans[i] = DayPlan{
			Day:        i + 1,
			Date:       req.StartDate.AddDays(i).String(),
			Activities: mockActivities(req.Destination, i+1),
		}
	}

	focus := defaultFocus
	if len(req.Preferences) > 0 {
		focus = strings.Join(req.Preferences, "和")
	}

	return Itinerary{
		Destination: req.Destination,
		Duration:    days,
		Budget:      req.Budget,
		Travelers:   req.Travelers,
		Summary:     fmt.Sprintf("这是一份%s%d天%d人游的行程规划，专注于%s。", req.Destination, days, req.Travelers, focus),
		DayPlans:    plans,
		Recommendations: []Recommendation{
			{Category: "美食推荐", Items: []string{"当地特色餐厅", "网红打卡小吃", "传统美食体验"}},
			{Category: "住宿建议", Items: []string{"市中心酒店", "特色民宿", "经济型住宿"}},
		},
	}
}

func mockActivities(destination string, day int) []Activity {
	return []Activity{
		{
			Time:        "09:00-12:00",
			Type:        ActivitySightseeing,
			Title:       fmt.Sprintf("第%d天景点游览", day),
			Description: fmt.Sprintf("探索%s的著名景点", destination),
			Location:    strPtr(destination + "市中心"),
			Cost:        floatPtr(200),
			Duration:    strPtr("3小时"),
		},
		{
			Time:        "12:00-13:30",
			Type:        ActivityDining,
			Title:       "当地特色午餐",
			Description: fmt.Sprintf("品尝%s的特色美食", destination),
			Cost:        floatPtr(100),
			Duration:    strPtr("1.5小时"),
		},
		{
			Time:        "14:00-17:00",
			Type:        ActivitySightseeing,
			Title:       "文化体验",
			Description: "参观当地博物馆或文化遗址",
			Cost:        floatPtr(150),
			Duration:    strPtr("3小时"),
		},
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
