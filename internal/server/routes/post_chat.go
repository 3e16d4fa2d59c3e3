package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meridian-research/triad/internal/server/middleware"
	"github.com/meridian-research/triad/pkg/logger"
)

// ChatHandler answers a user query with the triple retrieval fan-out.
func ChatHandler(c echo.Context) error {
	type chatBody struct {
		Query string `json:"query" validate:"required"`
	}

	type chatErrorResponse struct {
		Message string `json:"message"`
	}

	app := c.(*middleware.AppContext).App

	data := new(chatBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, chatErrorResponse{Message: "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, chatErrorResponse{Message: "Invalid request body"})
	}

	result, err := app.Orchestrator.Answer(c.Request().Context(), data.Query)
	if err != nil {
		logger.Error("Chat synthesis failed", "error", err)
		return c.JSON(http.StatusBadGateway, chatErrorResponse{Message: "Failed to generate an answer"})
	}
	return c.JSON(http.StatusOK, result)
}
