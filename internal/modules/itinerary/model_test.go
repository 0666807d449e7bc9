package itinerary

import (
	"errors"
	"strings"
	"testing"

	"voyage/internal/types"
)

func TestTravelRequest_DayCountOverLongSpans(t *testing.T) {
	req := TravelRequest{
		StartDate: types.MustParseDate("1700-01-01"),
		EndDate:   types.MustParseDate("2100-01-01"),
	}
	if got := req.DayCount(); got != 146098 {
		t.Fatalf("DayCount = %d, want 146098", got)
	}
}

func TestTravelRequest_ValidateTripLength(t *testing.T) {
	base := kyotoRequest()

	cases := []struct {
		name    string
		end     types.Date
		wantErr bool
	}{
		{"one day", base.StartDate, false},
		{"exactly the maximum", base.StartDate.AddDays(MaxTripDays - 1), false},
		{"one day over", base.StartDate.AddDays(MaxTripDays), true},
		{"whole calendar range", types.MustParseDate("9999-12-31"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			req.EndDate = tc.end
			err := req.Validate()
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
			if !strings.Contains(err.Error(), "more than 366 days") {
				t.Fatalf("unexpected message: %v", err)
			}
		})
	}

	req := base
	req.StartDate = types.MustParseDate("0001-01-01")
	req.EndDate = types.MustParseDate("9999-12-31")
	if err := req.Validate(); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected the widest range to be rejected, got %v", err)
	}
}
