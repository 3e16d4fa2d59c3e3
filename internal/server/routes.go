package server

import (
	"github.com/labstack/echo/v4"

	"github.com/meridian-research/triad/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Ingestion routes
	apiRoutes.POST("/ingest", routes.IngestFileHandler)
	apiRoutes.POST("/ingest/text", routes.IngestTextHandler)

	// Retrieval routes
	apiRoutes.POST("/chat", routes.ChatHandler)
	apiRoutes.POST("/cypher", routes.CypherHandler)

	// Analysis routes
	apiRoutes.POST("/experiment", routes.ExperimentHandler)
	apiRoutes.POST("/report", routes.ReportHandler)
}
