package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-network/internal/repository"
)

// FileHandler serves stored avatar blobs.
type FileHandler struct {
	Files repository.FileStore
}

func NewFileHandler(files repository.FileStore) *FileHandler {
	return &FileHandler{Files: files}
}

// Get streams a stored file with its original content type.
func (h *FileHandler) Get(c echo.Context) error {
	id, err := pathID(c, "fileId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	f, err := h.Files.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	return c.Blob(http.StatusOK, ct, f.Content)
}
