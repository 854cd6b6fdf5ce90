package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "tijori/internal/errors"
	"tijori/internal/models"
	"tijori/internal/services"
)

// FundHandler handles mutual fund holding requests.
type FundHandler struct {
	portfolioService services.PortfolioServicer
	auditService     services.AuditServicer
}

// NewFundHandler creates a new FundHandler.
func NewFundHandler(portfolioService services.PortfolioServicer, auditService services.AuditServicer) *FundHandler {
	return &FundHandler{portfolioService: portfolioService, auditService: auditService}
}

// AddFundRequest represents the request payload for adding a fund holding.
type AddFundRequest struct {
	SchemeCode  string  `json:"scheme_code" binding:"required,scheme_code"`
	Units       float64 `json:"units" binding:"required,gt=0"`
	PurchaseNAV float64 `json:"purchase_nav" binding:"required,gt=0"`
}

// FundsResponse wraps the reconciled fund views.
type FundsResponse struct {
	Funds map[string]services.FundView `json:"funds"`
}

// FundResponse wraps a stored fund holding.
type FundResponse struct {
	Fund *models.FundHolding `json:"fund"`
}

// GetFunds handles listing the user's mutual funds with live NAVs.
// @Summary     List mutual funds
// @Description Stored fund holdings merged with the latest NAV
// @Tags        mutual-funds
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} FundsResponse "Fund holdings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /mutual-funds [get]
func (h *FundHandler) GetFunds(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	funds, err := h.portfolioService.GetFunds(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, FundsResponse{Funds: funds})
}

// AddFund handles adding or replacing a fund holding.
// @Summary     Add mutual fund
// @Description Verify the scheme code with the fund provider and store the holding
// @Tags        mutual-funds
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddFundRequest true "Fund details"
// @Success     201 {object} FundResponse "Fund stored"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Unknown scheme code"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /mutual-funds [post]
func (h *FundHandler) AddFund(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fund, err := h.portfolioService.AddFund(
		c.Request.Context(), userID, req.SchemeCode,
		decimal.NewFromFloat(req.Units), decimal.NewFromFloat(req.PurchaseNAV),
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditActionAddFund, "fund_holding", fund.SchemeCode, c.ClientIP(),
		map[string]any{"name": fund.Name, "units": req.Units, "purchase_nav": req.PurchaseNAV})

	c.JSON(http.StatusCreated, FundResponse{Fund: fund})
}
