package routes

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/meridian-research/triad/internal/server/middleware"
	"github.com/meridian-research/triad/pkg/loader"
)

const maxUploadBytes = 50 << 20

// IngestFileHandler ingests one uploaded document (multipart field "file").
func IngestFileHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ingestResponse{Message: "No file provided"})
	}
	if fileHeader.Size > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, ingestResponse{Message: "File too large"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ingestResponse{Message: "Failed to read upload"})
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ingestResponse{Message: "Failed to read upload"})
	}

	text, err := loader.ExtractText(c.Request().Context(), fileHeader.Filename, content)
	if err != nil {
		switch err {
		case loader.ErrUnsupportedType:
			return c.JSON(http.StatusUnsupportedMediaType, ingestResponse{Message: err.Error()})
		case loader.ErrNoText:
			return c.JSON(http.StatusBadRequest, ingestResponse{Message: err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, ingestResponse{Message: err.Error()})
		}
	}

	documentID, err := gonanoid.New()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ingestResponse{Message: "Failed to allocate document id"})
	}

	response, err := ingestDocument(c.Request().Context(), app, documentID, fileHeader.Filename, text)
	if err != nil {
		return ingestError(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// IngestTextHandler ingests raw text posted as JSON.
func IngestTextHandler(c echo.Context) error {
	type ingestTextBody struct {
		Text     string `json:"text" validate:"required"`
		Filename string `json:"filename"`
	}

	app := c.(*middleware.AppContext).App

	data := new(ingestTextBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, ingestResponse{Message: "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, ingestResponse{Message: "Invalid request body"})
	}

	filename := data.Filename
	if filename == "" {
		filename = "pasted-text"
	}

	documentID, err := gonanoid.New()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ingestResponse{Message: "Failed to allocate document id"})
	}

	response, err := ingestDocument(c.Request().Context(), app, documentID, filename, loader.CleanText(data.Text))
	if err != nil {
		return ingestError(c, err)
	}
	return c.JSON(http.StatusOK, response)
}
