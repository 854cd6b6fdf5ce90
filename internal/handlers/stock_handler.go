package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "tijori/internal/errors"
	"tijori/internal/models"
	"tijori/internal/services"
)

// StockHandler handles equity holding requests.
type StockHandler struct {
	portfolioService services.PortfolioServicer
	auditService     services.AuditServicer
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(portfolioService services.PortfolioServicer, auditService services.AuditServicer) *StockHandler {
	return &StockHandler{portfolioService: portfolioService, auditService: auditService}
}

// AddStockRequest represents the request payload for adding a stock holding.
type AddStockRequest struct {
	Ticker string `json:"ticker" binding:"required,ticker"`
	// Symbol optionally overrides the symbol used for the price lookup.
	Symbol        string  `json:"symbol" binding:"omitempty,ticker"`
	Quantity      float64 `json:"quantity" binding:"required,gt=0"`
	PurchasePrice float64 `json:"purchase_price" binding:"required,gt=0"`
}

// StocksResponse wraps the reconciled stock views.
type StocksResponse struct {
	Stocks map[string]services.StockView `json:"stocks"`
}

// StockResponse wraps a stored stock holding.
type StockResponse struct {
	Stock *models.StockHolding `json:"stock"`
}

// GetStocks handles listing the user's stocks with live prices.
// @Summary     List stocks
// @Description Stored stock holdings merged with live prices. Holdings that cannot be priced carry an error and keep their stored details.
// @Tags        stocks
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} StocksResponse "Stock holdings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stocks [get]
func (h *StockHandler) GetStocks(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stocks, err := h.portfolioService.GetStocks(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, StocksResponse{Stocks: stocks})
}

// AddStock handles adding or replacing a stock holding.
// @Summary     Add stock
// @Description Resolve the ticker and store the holding under its base symbol, replacing any existing holding
// @Tags        stocks
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddStockRequest true "Stock details"
// @Success     201 {object} StockResponse "Stock stored"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No price found for ticker"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stocks [post]
func (h *StockHandler) AddStock(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	stock, err := h.portfolioService.AddStock(
		c.Request.Context(), userID, req.Ticker, req.Symbol,
		decimal.NewFromFloat(req.Quantity), decimal.NewFromFloat(req.PurchasePrice),
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditActionAddStock, "stock_holding", stock.Ticker, c.ClientIP(),
		map[string]any{"symbol": stock.Symbol, "quantity": req.Quantity, "purchase_price": req.PurchasePrice})

	c.JSON(http.StatusCreated, StockResponse{Stock: stock})
}
