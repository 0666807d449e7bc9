// README: Expense import, listing and statistics handlers.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"voyage/internal/modules/expense"
	"voyage/internal/modules/itinerary"
)

type ExpenseHandler struct {
	expenses *expense.Service
}

func NewExpenseHandler(svc *expense.Service) *ExpenseHandler {
	return &ExpenseHandler{expenses: svc}
}

// importReq carries either a whole itinerary or a bare activity list.
// The itinerary is kept raw so it goes through the schema validator.
type importReq struct {
	Itinerary  json.RawMessage        `json:"itinerary"`
	Activities []expense.ActivityCost `json:"activities"`
}

// Import handles POST /api/plans/:id/expenses/import.
func (h *ExpenseHandler) Import(c *gin.Context) {
	planID, ok := h.planID(c)
	if !ok {
		return
	}

	var req importReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	activities := req.Activities
	if raw := strings.TrimSpace(string(req.Itinerary)); raw != "" && raw != "null" {
		it, err := itinerary.Validate(raw)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		activities = expense.FromItinerary(it)
	}

	res, err := h.expenses.ImportFromItinerary(c.Request.Context(), planID, activities)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

// List handles GET /api/plans/:id/expenses.
func (h *ExpenseHandler) List(c *gin.Context) {
	planID, ok := h.planID(c)
	if !ok {
		return
	}
	records, err := h.expenses.List(c.Request.Context(), planID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"expenses": records})
}

// Stats handles GET /api/plans/:id/expenses/stats.
func (h *ExpenseHandler) Stats(c *gin.Context) {
	planID, ok := h.planID(c)
	if !ok {
		return
	}
	stats, err := h.expenses.Stats(c.Request.Context(), planID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, stats)
}

func (h *ExpenseHandler) planID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !isValidPlanID(id) {
		writeError(c, http.StatusBadRequest, "invalid plan id")
		return "", false
	}
	return id, true
}
