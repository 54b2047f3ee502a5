package api

import (
	"errors"
	"net/http"

	reqdto "flea-market/internal/handler/dto/request"
	resdto "flea-market/internal/handler/dto/response"
	"flea-market/internal/handler/httperr"
	"flea-market/internal/handler/middleware"
	"flea-market/internal/pkg/metrics"
	"flea-market/internal/usecase/commands"
	"flea-market/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxImageBytes = 10 << 20

type ProductHandler struct {
	commands commands.ProductCommands
	queries  queries.ProductQueries
	metrics  *metrics.ServerMetrics
}

func NewProductHandler(cmd commands.ProductCommands, q queries.ProductQueries, m *metrics.ServerMetrics) *ProductHandler {
	return &ProductHandler{
		commands: cmd,
		queries:  q,
		metrics:  m,
	}
}

// List returns available products; the optional q parameter filters by name.
func (h *ProductHandler) List(c *gin.Context) {
	var (
		views []*queries.ProductView
		err   error
	)
	if q := c.Query("q"); q != "" {
		views, err = h.queries.SearchAvailable(c.Request.Context(), q)
	} else {
		views, err = h.queries.ListAvailable(c.Request.Context())
	}
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductViews(views))
}

func (h *ProductHandler) Mine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	views, err := h.queries.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductViews(views))
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product ID", nil)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrProductNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductView(view))
}

func (h *ProductHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req reqdto.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	image, err := readFormFile(c, "image", maxImageBytes)
	if err != nil {
		h.metrics.BlobOperations.WithLabelValues("save", "rejected").Inc()
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid image upload", nil)
		return
	}

	productID, err := h.commands.CreateProduct(c.Request.Context(), userID, req, image)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrProductValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product data", nil)
		default:
			if image != nil {
				h.metrics.BlobOperations.WithLabelValues("save", "error").Inc()
			}
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	if image != nil {
		h.metrics.BlobOperations.WithLabelValues("save", "ok").Inc()
	}
	c.JSON(http.StatusCreated, gin.H{"id": productID})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product ID", nil)
		return
	}

	if err := h.commands.DeleteProduct(c.Request.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, commands.ErrProductNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
		case errors.Is(err, commands.ErrProductNotYours):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Product belongs to another seller", nil)
		case errors.Is(err, commands.ErrProductSold):
			httperr.AbortWithError(c, http.StatusConflict, err, "Sold products cannot be deleted", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
