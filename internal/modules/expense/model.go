// README: Expense ledger records, categories and the activity cost view used by the importer.
package expense

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"voyage/internal/modules/itinerary"
	"voyage/internal/types"
)

var ErrInvalidPlan = errors.New("plan id is required")

type Category string

const (
	CategoryTransport     Category = "交通"
	CategoryLodging       Category = "住宿"
	CategoryDining        Category = "餐饮"
	CategoryTickets       Category = "景点门票"
	CategoryShopping      Category = "购物"
	CategoryEntertainment Category = "娱乐"
	CategoryOther         Category = "其他"
)

// CategoryFor is total: any type outside the known set maps to CategoryOther.
func CategoryFor(t itinerary.ActivityType) Category {
	switch t {
	case itinerary.ActivityTransport:
		return CategoryTransport
	case itinerary.ActivityLodging:
		return CategoryLodging
	case itinerary.ActivityDining:
		return CategoryDining
	case itinerary.ActivitySightseeing:
		return CategoryTickets
	case itinerary.ActivityShopping:
		return CategoryShopping
	case itinerary.ActivityEntertainment:
		return CategoryEntertainment
	default:
		return CategoryOther
	}
}

type Record struct {
	ID        uuid.UUID  `json:"id"`
	PlanID    string     `json:"planId"`
	Content   string     `json:"content"`
	Amount    float64    `json:"amount"`
	Category  Category   `json:"category"`
	Date      types.Date `json:"date"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ActivityCost is the slice of an activity the importer cares about. Type is kept
// as a plain ActivityType so unknown strings from callers still map to Other.
type ActivityCost struct {
	Title string                 `json:"title"`
	Type  itinerary.ActivityType `json:"type"`
	Cost  *float64               `json:"cost,omitempty"`
	Date  types.Date             `json:"date"`
}

// FromItinerary flattens day plans into activity costs, in itinerary order.
// A day whose date does not parse leaves Date zero so the importer uses today.
func FromItinerary(it itinerary.Itinerary) []ActivityCost {
	var out []ActivityCost
	for _, d := range it.DayPlans {
		date, err := types.ParseDate(d.Date)
		if err != nil {
			date = types.Date{}
		}
		for _, a := range d.Activities {
			out = append(out, ActivityCost{Title: a.Title, Type: a.Type, Cost: a.Cost, Date: date})
		}
	}
	return out
}
