// README: Itinerary aggregate, travel request and activity type definitions.
package itinerary

import (
	"errors"
	"fmt"
	"strings"

	"voyage/internal/types"
)

// ErrInvalidRequest is returned when a TravelRequest cannot be planned.
var ErrInvalidRequest = errors.New("invalid travel request")

// MaxTripDays caps the inclusive day count of a request.
const MaxTripDays = 366

// TravelRequest is the structured input of a generation call.
type TravelRequest struct {
	Destination         string     `json:"destination"`
	StartDate           types.Date `json:"startDate"`
	EndDate             types.Date `json:"endDate"`
	Budget              float64    `json:"budget"`
	Travelers           int        `json:"travelers"`
	Preferences         []string   `json:"preferences"`
	TravelStyle         string     `json:"travelStyle"`
	SpecialRequirements string     `json:"specialRequirements"`
}

// Validate reports the first field that makes the request unplannable.
func (r TravelRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.Destination) == "":
		return fmt.Errorf("%w: destination is required", ErrInvalidRequest)
	case r.StartDate.IsZero() || r.EndDate.IsZero():
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidRequest)
	case r.EndDate.Before(r.StartDate):
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidRequest)
	case r.DayCount() > MaxTripDays:
		return fmt.Errorf("%w: trip spans more than %d days", ErrInvalidRequest, MaxTripDays)
	case r.Budget <= 0:
		return fmt.Errorf("%w: budget must be positive", ErrInvalidRequest)
	case r.Travelers <= 0:
		return fmt.Errorf("%w: travelers must be positive", ErrInvalidRequest)
	}
	return nil
}

// DayCount is the inclusive number of calendar days covered by the request.
func (r TravelRequest) DayCount() int {
	return r.StartDate.DaysUntil(r.EndDate) + 1
}

type ActivityType string

// Wire values match the Chinese labels the prompt asks the model to use.
const (
	ActivityTransport     ActivityType = "交通"
	ActivityLodging       ActivityType = "住宿"
	ActivitySightseeing   ActivityType = "景点"
	ActivityDining        ActivityType = "餐饮"
	ActivityShopping      ActivityType = "购物"
	ActivityEntertainment ActivityType = "娱乐"
)

// ActivityTypes is the closed enumeration, in prompt order.
var ActivityTypes = []ActivityType{
	ActivityTransport,
	ActivityLodging,
	ActivitySightseeing,
	ActivityDining,
	ActivityShopping,
	ActivityEntertainment,
}

func (t ActivityType) Valid() bool {
	for _, v := range ActivityTypes {
		if v == t {
			return true
		}
	}
	return false
}

type Activity struct {
	Time        string       `json:"time"`
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Location    *string      `json:"location,omitempty"`
	Cost        *float64     `json:"cost,omitempty"`
	Duration    *string      `json:"duration,omitempty"`
}

// DayPlan keeps activities in authored order; they are never re-sorted.
type DayPlan struct {
	Day        int        `json:"day"`
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
}

type Recommendation struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// Itinerary is a value object. It is only ever built by Validate or MockItinerary,
// and callers copy it before changing anything.
type Itinerary struct {
	Destination     string           `json:"destination"`
	Duration        int              `json:"duration"`
	Budget          float64          `json:"budget"`
	Travelers       int              `json:"travelers"`
	Summary         string           `json:"summary"`
	DayPlans        []DayPlan        `json:"dayPlans"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Activities returns every activity across all days in itinerary order.
func (it Itinerary) Activities() []Activity {
	var out []Activity
	for _, d := range it.DayPlans {
		out = append(out, d.Activities...)
	}
	return out
}
