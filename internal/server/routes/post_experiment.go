package routes

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meridian-research/triad/internal/server/middleware"
	"github.com/meridian-research/triad/pkg/experiment"
	"github.com/meridian-research/triad/pkg/logger"
	"github.com/meridian-research/triad/pkg/store/cache"
)

// ExperimentHandler designs a follow-up experiment for a discovered path,
// grounded in the cached source document and related indexed snippets.
func ExperimentHandler(c echo.Context) error {
	type experimentBody struct {
		PathString string `json:"path_string" validate:"required"`
		DocumentID string `json:"document_id" validate:"required"`
	}

	type experimentResponse struct {
		Message     string             `json:"message,omitempty"`
		PathString  string             `json:"path_string,omitempty"`
		Design      *experiment.Design `json:"design,omitempty"`
		LLMResponse string             `json:"llm_response,omitempty"`
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	data := new(experimentBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, experimentResponse{Message: "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, experimentResponse{Message: "Invalid request body"})
	}

	docText, found, err := app.Cache.Get(ctx, cache.DocTextKey(data.DocumentID))
	if err != nil {
		logger.Warn("Document text lookup failed", "documentId", data.DocumentID, "error", err)
	}
	if !found {
		return c.JSON(http.StatusNotFound, experimentResponse{
			Message: "Document text not found, re-ingest the document first",
		})
	}

	ragContext := ""
	if hits, err := app.VectorIndex.Search(ctx, data.PathString, 3); err == nil {
		for _, hit := range hits {
			ragContext += hit.Text + "\n\n"
		}
	}

	grounding := fmt.Sprintf("SOURCE DOCUMENT:\n%s\n\nRAG CONTEXT:\n%s", docText, ragContext)
	design, raw, err := experiment.DesignExperiment(ctx, app.AiClient, data.PathString, grounding)
	if err != nil {
		logger.Error("Experiment design failed", "error", err)
		return c.JSON(http.StatusBadGateway, experimentResponse{
			Message:     "Failed to design an experiment",
			LLMResponse: raw,
		})
	}

	return c.JSON(http.StatusOK, experimentResponse{
		PathString:  data.PathString,
		Design:      &design,
		LLMResponse: raw,
	})
}
