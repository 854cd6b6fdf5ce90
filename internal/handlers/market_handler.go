package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tijori/internal/errors"
	"tijori/internal/services"
	"tijori/internal/validator"
)

// MarketHandler serves public quote and NAV lookups.
type MarketHandler struct {
	marketService services.MarketServicer
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketService services.MarketServicer) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

// GetQuote handles resolving a single ticker.
// @Summary     Resolve quote
// @Description Resolve a ticker through the exchange fallback chain. An unresolved ticker returns price 0 and exchange Unknown.
// @Tags        market
// @Produce     json
// @Param       ticker path string true "Ticker, optionally suffixed with .NS or .BO"
// @Success     200 {object} resolver.QuoteResult "Quote"
// @Failure     400 {object} ErrorResponse "Invalid ticker"
// @Router      /quotes/{ticker} [get]
func (h *MarketHandler) GetQuote(c *gin.Context) {
	raw := c.Param("ticker")
	if !validator.ValidTicker(raw) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid ticker"))
		return
	}

	quote, err := h.marketService.Quote(c.Request.Context(), raw)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// GetFund handles resolving a single scheme code.
// @Summary     Resolve fund NAV
// @Description Latest NAV for a scheme code. Provider failures are reported in the error field.
// @Tags        market
// @Produce     json
// @Param       code path string true "Scheme code"
// @Success     200 {object} resolver.FundResult "Fund"
// @Failure     400 {object} ErrorResponse "Invalid scheme code"
// @Router      /funds/{code} [get]
func (h *MarketHandler) GetFund(c *gin.Context) {
	code := c.Param("code")
	if !validator.ValidSchemeCode(code) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid scheme code"))
		return
	}

	fund, err := h.marketService.Fund(c.Request.Context(), code)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, fund)
}
