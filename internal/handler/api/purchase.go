package api

import (
	"errors"
	"net/http"

	resdto "flea-market/internal/handler/dto/response"
	"flea-market/internal/handler/httperr"
	"flea-market/internal/handler/middleware"
	"flea-market/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PurchaseHandler struct {
	queries queries.PurchaseQueries
}

func NewPurchaseHandler(q queries.PurchaseQueries) *PurchaseHandler {
	return &PurchaseHandler{queries: q}
}

func (h *PurchaseHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	views, err := h.queries.ListByBuyer(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPurchaseViews(views))
}

func (h *PurchaseHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid purchase ID", nil)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrPurchaseNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Purchase not found", nil)
		case errors.Is(err, queries.ErrNotPurchaseOwner):
			// 404 rather than 403 so purchase ids cannot be probed
			httperr.AbortWithError(c, http.StatusNotFound, err, "Purchase not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromPurchaseDetailView(view))
}
