// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/modules/expense"
	"voyage/internal/modules/itinerary"
	"voyage/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
	Path  string `json:"path,omitempty"`
}

// isValidPlanID accepts up to 64 letters, digits, '-' or '_'.
func isValidPlanID(v string) bool {
	if v == "" || len(v) > 64 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' || c == '_' {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeServiceError(c *gin.Context, err error) {
	var fieldErr *itinerary.FieldError
	switch {
	case errors.As(err, &fieldErr):
		writeJSON(c, http.StatusBadRequest, errorResponse{Error: fieldErr.Error(), Path: fieldErr.Path})
	case errors.Is(err, itinerary.ErrInvalidRequest),
		errors.Is(err, itinerary.ErrMalformedJSON),
		errors.Is(err, expense.ErrInvalidPlan),
		errors.Is(err, service.ErrEmptySpeech):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
