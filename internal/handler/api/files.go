package api

import (
	"errors"
	"net/http"

	"flea-market/internal/handler/httperr"
	"flea-market/internal/infra/blobstore"
	"flea-market/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	blobs   *blobstore.Store
	metrics *metrics.ServerMetrics
}

func NewFileHandler(blobs *blobstore.Store, m *metrics.ServerMetrics) *FileHandler {
	return &FileHandler{
		blobs:   blobs,
		metrics: m,
	}
}

// Get serves a stored blob by its derived name. Stored names are flat; any
// path-shaped name is rejected by the store before touching the filesystem.
func (h *FileHandler) Get(c *gin.Context) {
	name := c.Param("name")

	content, err := h.blobs.Load(name)
	if err != nil {
		switch {
		case errors.Is(err, blobstore.ErrInvalidName):
			h.metrics.BlobOperations.WithLabelValues("load", "rejected").Inc()
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid file name", nil)
		case errors.Is(err, blobstore.ErrNotFound):
			h.metrics.BlobOperations.WithLabelValues("load", "missing").Inc()
			httperr.AbortWithError(c, http.StatusNotFound, err, "File not found", nil)
		default:
			h.metrics.BlobOperations.WithLabelValues("load", "error").Inc()
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	h.metrics.BlobOperations.WithLabelValues("load", "ok").Inc()
	c.Data(http.StatusOK, http.DetectContentType(content), content)
}
