package routes

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meridian-research/triad/internal/server/middleware"
	"github.com/meridian-research/triad/pkg/common"
	"github.com/meridian-research/triad/pkg/logger"
	"github.com/meridian-research/triad/pkg/store/cache"
)

type ingestResponse struct {
	Message    string               `json:"message"`
	DocumentID string               `json:"document_id,omitempty"`
	Filename   string               `json:"filename,omitempty"`
	Graph      *common.DocumentGraph `json:"graph,omitempty"`
	Insight    *common.Insight       `json:"insight,omitempty"`
}

// ingestDocument runs the full ingestion pipeline for one document: build
// the knowledge graph, cache the source text, index it for retrieval and
// persist the graph. Graph construction failures abort the request;
// persistence and indexing are best effort.
func ingestDocument(ctx context.Context, app *middleware.App, documentID, filename, text string) (ingestResponse, error) {
	docGraph, insight, err := app.GraphClient.ProcessDocument(ctx, app.AiClient, text)
	if err != nil {
		return ingestResponse{}, err
	}

	if err := app.Cache.Set(ctx, cache.DocTextKey(documentID), text, cache.DocTextTTL); err != nil {
		logger.Warn("Failed to cache document text", "documentId", documentID, "error", err)
	}
	if err := app.VectorIndex.AddDocument(ctx, text, map[string]string{"filename": filename}); err != nil {
		logger.Warn("Failed to index document", "documentId", documentID, "error", err)
	}
	if app.GraphDB != nil {
		if err := app.GraphDB.SaveGraph(ctx, docGraph); err != nil {
			logger.Warn("Failed to persist graph", "documentId", documentID, "error", err)
		}
	}

	return ingestResponse{
		Message:    "Document ingested",
		DocumentID: documentID,
		Filename:   filename,
		Graph:      &docGraph,
		Insight:    &insight,
	}, nil
}

func ingestError(c echo.Context, err error) error {
	logger.Error("Ingestion failed", "error", err)
	return c.JSON(http.StatusUnprocessableEntity, ingestResponse{
		Message: "Failed to build a knowledge graph: " + err.Error(),
	})
}
