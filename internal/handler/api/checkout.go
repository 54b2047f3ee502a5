package api

import (
	"errors"
	"net/http"

	resdto "flea-market/internal/handler/dto/response"
	"flea-market/internal/handler/httperr"
	"flea-market/internal/handler/middleware"
	"flea-market/internal/pkg/config"
	"flea-market/internal/pkg/cookie"
	"flea-market/internal/pkg/metrics"
	"flea-market/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	commands commands.CheckoutCommands
	metrics  *metrics.ServerMetrics
	cfg      config.Config
}

func NewCheckoutHandler(cmd commands.CheckoutCommands, m *metrics.ServerMetrics, cfg config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		commands: cmd,
		metrics:  m,
		cfg:      cfg,
	}
}

// Checkout converts the session's cart into a purchase. Products that lost
// the race to another buyer come back in the rejected list with status 200;
// rejection is an outcome, not an error.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	sessionID := cookie.CartSessionID(c, h.cfg.Cookie)

	result, err := h.commands.Checkout(c.Request.Context(), sessionID, userID)
	if result != nil {
		h.metrics.ClaimOutcomes.WithLabelValues("claimed").Add(float64(len(result.Claimed)))
		h.metrics.ClaimOutcomes.WithLabelValues("rejected").Add(float64(len(result.Rejected)))
	}
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmptyCart):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Cart is empty", nil)
		case errors.Is(err, commands.ErrCatalogUnavailable):
			// Partial result: committed claims survive the outage.
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Checkout interrupted", checkoutResponse(result))
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, checkoutResponse(result))
}

func checkoutResponse(result *commands.CheckoutResult) *resdto.CheckoutResponse {
	if result == nil {
		return nil
	}
	return &resdto.CheckoutResponse{
		Purchase: &resdto.PurchaseResponse{
			ID:        result.Purchase.ID(),
			BuyerID:   result.Purchase.BuyerID(),
			CreatedAt: result.Purchase.CreatedAt(),
		},
		Claimed:  result.Claimed,
		Rejected: result.Rejected,
	}
}
