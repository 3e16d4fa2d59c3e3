package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meridian-research/triad/internal/server/middleware"
	"github.com/meridian-research/triad/pkg/cypher"
	"github.com/meridian-research/triad/pkg/store/graphdb"
)

// CypherHandler translates natural language to Cypher and, when a graph
// database is configured, executes it.
func CypherHandler(c echo.Context) error {
	type cypherBody struct {
		Text   string `json:"text" validate:"required"`
		UseLLM bool   `json:"use_llm"`
	}

	type cypherResponse struct {
		Message string           `json:"message,omitempty"`
		Cypher  string           `json:"cypher"`
		Results []map[string]any `json:"results"`
	}

	app := c.(*middleware.AppContext).App

	data := new(cypherBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, cypherResponse{Message: "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, cypherResponse{Message: "Invalid request body"})
	}

	var query string
	if data.UseLLM {
		query = app.Translator.TranslateOrFallback(c.Request().Context(), data.Text)
	} else {
		query = cypher.Generate(data.Text)
	}

	if app.GraphDB == nil {
		return c.JSON(http.StatusOK, cypherResponse{
			Message: "Graph database not configured, returning query only",
			Cypher:  query,
			Results: []map[string]any{},
		})
	}

	rows, err := app.GraphDB.Run(c.Request().Context(), query, nil)
	if err != nil {
		var execErr *graphdb.ExecutionError
		if errors.As(err, &execErr) {
			return c.JSON(http.StatusBadRequest, cypherResponse{
				Message: execErr.Error(),
				Cypher:  query,
				Results: []map[string]any{},
			})
		}
		return c.JSON(http.StatusInternalServerError, cypherResponse{
			Message: err.Error(),
			Cypher:  query,
			Results: []map[string]any{},
		})
	}
	if rows == nil {
		rows = []map[string]any{}
	}

	return c.JSON(http.StatusOK, cypherResponse{Cypher: query, Results: rows})
}
