// README: HTTP router registration.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"voyage/internal/http/handlers"
	"voyage/internal/http/middleware"
	"voyage/internal/modules/expense"
	"voyage/internal/service"
)

type RouterDeps struct {
	Planner  *service.ItineraryPlanner
	Analyzer *service.RequirementAnalyzer
	// Expenses is nil when no database is configured; the expense routes are then not mounted.
	Expenses        *expense.Service
	GenerateTimeout time.Duration
	Gatherer        prometheus.Gatherer
	Log             zerolog.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.TraceID(), middleware.Logging(deps.Log), middleware.Recovery(deps.Log))

	itineraryHandler := handlers.NewItineraryHandler(deps.Planner, deps.Analyzer, deps.GenerateTimeout)
	r.POST("/api/itineraries/generate", itineraryHandler.Generate)
	r.POST("/api/requirements/analyze", itineraryHandler.Analyze)
	r.GET("/api/llm/status", itineraryHandler.Status)

	if deps.Expenses != nil {
		expenseHandler := handlers.NewExpenseHandler(deps.Expenses)
		r.POST("/api/plans/:id/expenses/import", expenseHandler.Import)
		r.GET("/api/plans/:id/expenses", expenseHandler.List)
		r.GET("/api/plans/:id/expenses/stats", expenseHandler.Stats)
	}

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	return r
}
