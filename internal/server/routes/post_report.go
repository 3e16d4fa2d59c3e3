package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meridian-research/triad/internal/server/middleware"
	"github.com/meridian-research/triad/pkg/loader"
	"github.com/meridian-research/triad/pkg/report"
)

// ReportHandler builds a knowledge graph from posted text and renders it
// as a standalone interactive HTML page.
func ReportHandler(c echo.Context) error {
	type reportBody struct {
		Text string `json:"text" validate:"required"`
	}

	type reportErrorResponse struct {
		Message string `json:"message"`
	}

	app := c.(*middleware.AppContext).App

	data := new(reportBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, reportErrorResponse{Message: "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, reportErrorResponse{Message: "Invalid request body"})
	}

	docGraph, insight, err := app.GraphClient.ProcessDocument(
		c.Request().Context(), app.AiClient, loader.CleanText(data.Text))
	if err != nil {
		return ingestError(c, err)
	}

	html, err := report.Render(docGraph, insight, report.DefaultOptions())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, reportErrorResponse{Message: "Failed to render report"})
	}
	return c.HTML(http.StatusOK, html)
}
