package api

import (
	"errors"
	"net/http"

	reqdto "flea-market/internal/handler/dto/request"
	resdto "flea-market/internal/handler/dto/response"
	"flea-market/internal/handler/httperr"
	"flea-market/internal/pkg/config"
	"flea-market/internal/pkg/cookie"
	"flea-market/internal/usecase/commands"
	"flea-market/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct {
	commands commands.CartCommands
	queries  queries.CartQueries
	cfg      config.Config
}

func NewCartHandler(cmd commands.CartCommands, q queries.CartQueries, cfg config.Config) *CartHandler {
	return &CartHandler{
		commands: cmd,
		queries:  q,
		cfg:      cfg,
	}
}

func (h *CartHandler) Get(c *gin.Context) {
	sessionID := cookie.CartSessionID(c, h.cfg.Cookie)

	view, found, err := h.queries.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	if !found {
		c.JSON(http.StatusOK, resdto.CartResponse{
			SessionID:  sessionID,
			Items:      []*resdto.ProductResponse{},
			TotalCents: 0,
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID := cookie.CartSessionID(c, h.cfg.Cookie)

	var req reqdto.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	added, err := h.commands.AddItem(c.Request.Context(), sessionID, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrProductNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
		case errors.Is(err, commands.ErrProductUnavailable):
			httperr.AbortWithError(c, http.StatusConflict, err, "Product is no longer available", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"added": added})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID := cookie.CartSessionID(c, h.cfg.Cookie)

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product ID", nil)
		return
	}

	if err := h.commands.RemoveItem(c.Request.Context(), sessionID, productID); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
