// README: Itinerary generation, requirement analysis and LLM status handlers.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voyage/internal/modules/itinerary"
	"voyage/internal/service"
)

type ItineraryHandler struct {
	planner  *service.ItineraryPlanner
	analyzer *service.RequirementAnalyzer
	timeout  time.Duration
}

// NewItineraryHandler bounds every model call by timeout. A non-positive timeout
// leaves the request context as the only deadline.
func NewItineraryHandler(planner *service.ItineraryPlanner, analyzer *service.RequirementAnalyzer, timeout time.Duration) *ItineraryHandler {
	return &ItineraryHandler{planner: planner, analyzer: analyzer, timeout: timeout}
}

// Generate handles POST /api/itineraries/generate.
func (h *ItineraryHandler) Generate(c *gin.Context) {
	var req itinerary.TravelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := h.callContext(c)
	defer cancel()

	res, err := h.planner.Generate(ctx, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

type analyzeReq struct {
	Text string `json:"text"`
}

// Analyze handles POST /api/requirements/analyze.
func (h *ItineraryHandler) Analyze(c *gin.Context) {
	var req analyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := h.callContext(c)
	defer cancel()

	res, err := h.analyzer.Analyze(ctx, req.Text)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

// Status handles GET /api/llm/status.
func (h *ItineraryHandler) Status(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{
		"configured": h.planner.Configured(),
		"provider":   h.planner.Provider(),
	})
}

func (h *ItineraryHandler) callContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}
