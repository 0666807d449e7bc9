// README: Schema validator; turns candidate JSON text into an Itinerary or reports the first violating field.
package itinerary

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

var (
	// ErrMalformedJSON means the candidate text is not a single JSON value.
	ErrMalformedJSON = errors.New("malformed json")
	// ErrFieldViolation is wrapped by every *FieldError.
	ErrFieldViolation = errors.New("field violation")
)

// FieldError names the first field that broke the schema, e.g. "dayPlans[1].activities[0].type".
type FieldError struct {
	Path   string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Path, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrFieldViolation }

// schemaFields is every key Validate inspects. It must match the keys of outputSchema.
var schemaFields = []string{
	"destination", "duration", "budget", "travelers", "summary", "dayPlans",
	"day", "date", "activities",
	"time", "type", "title", "description", "location", "cost",
	"recommendations", "category", "items",
}

// Validate parses candidate and checks it field by field in a fixed order, stopping
// at the first violation. Nothing is coerced: "3" is not a number and 2.5 is not a
// day count. The Itinerary is only returned once every check has passed.
func Validate(candidate string) (Itinerary, error) {
	dec := json.NewDecoder(strings.NewReader(candidate))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return Itinerary{}, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Itinerary{}, fmt.Errorf("%w: trailing data after JSON value", ErrMalformedJSON)
	}

	obj, err := asObject(root, "$")
	if err != nil {
		return Itinerary{}, err
	}
	return validateItinerary(obj)
}

func validateItinerary(obj map[string]any) (Itinerary, error) {
	var it Itinerary
	var err error

	if it.Destination, err = requireString(obj, "destination", "destination"); err != nil {
		return Itinerary{}, err
	}
	if it.Duration, err = requirePositiveInt(obj, "duration", "duration"); err != nil {
		return Itinerary{}, err
	}
	if it.Budget, err = requirePositiveNumber(obj, "budget", "budget"); err != nil {
		return Itinerary{}, err
	}
	if it.Travelers, err = requirePositiveInt(obj, "travelers", "travelers"); err != nil {
		return Itinerary{}, err
	}
	if it.Summary, err = requireString(obj, "summary", "summary"); err != nil {
		return Itinerary{}, err
	}

	days, err := requireArray(obj, "dayPlans", "dayPlans")
	if err != nil {
		return Itinerary{}, err
	}
	if len(days) == 0 {
		return Itinerary{}, violation("dayPlans", "must contain at least one day")
	}
	it.DayPlans = make([]DayPlan, len(days))
	for i, raw := range days {
		path := fmt.Sprintf("dayPlans[%d]", i)
		if it.DayPlans[i], err = validateDay(raw, path, i+1); err != nil {
			return Itinerary{}, err
		}
	}

	if it.Recommendations, err = validateRecommendations(obj); err != nil {
		return Itinerary{}, err
	}
	return it, nil
}

func validateDay(raw any, path string, wantDay int) (DayPlan, error) {
	obj, err := asObject(raw, path)
	if err != nil {
		return DayPlan{}, err
	}

	var d DayPlan
	if d.Day, err = requirePositiveInt(obj, "day", path+".day"); err != nil {
		return DayPlan{}, err
	}
	if d.Day != wantDay {
		return DayPlan{}, violation(path+".day", fmt.Sprintf("expected %d, days must be numbered 1..N without gaps", wantDay))
	}
	if d.Date, err = requireString(obj, "date", path+".date"); err != nil {
		return DayPlan{}, err
	}

	acts, err := requireArray(obj, "activities", path+".activities")
	if err != nil {
		return DayPlan{}, err
	}
	d.Activities = make([]Activity, len(acts))
	for j, a := range acts {
		if d.Activities[j], err = validateActivity(a, fmt.Sprintf("%s.activities[%d]", path, j)); err != nil {
			return DayPlan{}, err
		}
	}
	return d, nil
}

func validateActivity(raw any, path string) (Activity, error) {
	obj, err := asObject(raw, path)
	if err != nil {
		return Activity{}, err
	}

	var a Activity
	if a.Time, err = requireString(obj, "time", path+".time"); err != nil {
		return Activity{}, err
	}
	typ, err := requireString(obj, "type", path+".type")
	if err != nil {
		return Activity{}, err
	}
	a.Type = ActivityType(typ)
	if !a.Type.Valid() {
		return Activity{}, violation(path+".type", fmt.Sprintf("%q is not one of %s", typ, activityTypeList("/")))
	}
	if a.Title, err = requireString(obj, "title", path+".title"); err != nil {
		return Activity{}, err
	}
	if a.Description, err = requireString(obj, "description", path+".description"); err != nil {
		return Activity{}, err
	}

	if a.Location, err = optionalString(obj, "location", path+".location"); err != nil {
		return Activity{}, err
	}
	if v, ok := present(obj, "cost"); ok {
		cost, err := asNumber(v, path+".cost")
		if err != nil {
			return Activity{}, err
		}
		if cost < 0 {
			return Activity{}, violation(path+".cost", "must not be negative")
		}
		a.Cost = &cost
	}
	if a.Duration, err = optionalString(obj, "duration", path+".duration"); err != nil {
		return Activity{}, err
	}
	return a, nil
}

// validateRecommendations treats a missing or null list as empty.
func validateRecommendations(obj map[string]any) ([]Recommendation, error) {
	v, ok := present(obj, "recommendations")
	if !ok {
		return []Recommendation{}, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, violation("recommendations", "must be an array")
	}

	recs := make([]Recommendation, len(list))
	for i, raw := range list {
		path := fmt.Sprintf("recommendations[%d]", i)
		rec, err := asObject(raw, path)
		if err != nil {
			return nil, err
		}
		if recs[i].Category, err = requireString(rec, "category", path+".category"); err != nil {
			return nil, err
		}
		items, err := requireArray(rec, "items", path+".items")
		if err != nil {
			return nil, err
		}
		recs[i].Items = make([]string, len(items))
		for j, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, violation(fmt.Sprintf("%s.items[%d]", path, j), "must be a string")
			}
			recs[i].Items[j] = s
		}
	}
	return recs, nil
}

func violation(path, reason string) error {
	return &FieldError{Path: path, Reason: reason}
}

// present returns the value under key unless it is missing or JSON null.
func present(obj map[string]any, key string) (any, bool) {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func asObject(v any, path string) (map[string]any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, violation(path, "must be an object")
	}
	return obj, nil
}

func requireString(obj map[string]any, key, path string) (string, error) {
	v, ok := present(obj, key)
	if !ok {
		return "", violation(path, "is required")
	}
	s, ok := v.(string)
	if !ok {
		return "", violation(path, "must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return "", violation(path, "must not be empty")
	}
	return s, nil
}

func optionalString(obj map[string]any, key, path string) (*string, error) {
	v, ok := present(obj, key)
	if !ok {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, violation(path, "must be a string")
	}
	return &s, nil
}

func requireArray(obj map[string]any, key, path string) ([]any, error) {
	v, ok := present(obj, key)
	if !ok {
		return nil, violation(path, "is required")
	}
	list, ok := v.([]any)
	if !ok {
		return nil, violation(path, "must be an array")
	}
	return list, nil
}

func asNumber(v any, path string) (float64, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, violation(path, "must be a number")
	}
	f, err := n.Float64()
	if err != nil {
		return 0, violation(path, "must be a finite number")
	}
	return f, nil
}

func requirePositiveNumber(obj map[string]any, key, path string) (float64, error) {
	v, ok := present(obj, key)
	if !ok {
		return 0, violation(path, "is required")
	}
	f, err := asNumber(v, path)
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, violation(path, "must be greater than 0")
	}
	return f, nil
}

func requirePositiveInt(obj map[string]any, key, path string) (int, error) {
	f, err := requirePositiveNumber(obj, key, path)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, violation(path, "must be a whole number")
	}
	return int(f), nil
}
