package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockfolio/internal/services"
)

// PortfolioHandler handles portfolio requests.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
	auditService     services.AuditServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer, auditService services.AuditServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, auditService: auditService}
}

// CreatePortfolioRequest represents the request payload for creating a portfolio.
type CreatePortfolioRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// CreatePortfolioResponse is returned after a portfolio is created.
type CreatePortfolioResponse struct {
	Message   string        `json:"message"`
	Portfolio PortfolioInfo `json:"portfolio"`
}

// PortfolioDetailResponse is one portfolio with holdings ranked by value.
type PortfolioDetailResponse struct {
	Portfolio    PortfolioInfo         `json:"portfolio"`
	Holdings     []HoldingResponse     `json:"holdings"`
	Transactions []TransactionResponse `json:"transactions"`
	Summary      ValuationSummary      `json:"summary"`
	TopHoldings  []HoldingResponse     `json:"top_holdings"`
}

// PortfolioValueResponse is the current valuation of one portfolio.
type PortfolioValueResponse struct {
	PortfolioID   string  `json:"portfolio_id"`
	Value         float64 `json:"value"`
	HoldingsCount int     `json:"holdings_count"`
	ValuationSummary
}

// ListPortfolios handles listing portfolios.
// @Summary     List portfolios
// @Description List every portfolio with its holdings count and valuation
// @Tags        portfolios
// @Produce     json
// @Success     200 {array}  PortfolioResponse "Portfolios"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolios [get]
func (h *PortfolioHandler) ListPortfolios(c *gin.Context) {
	summaries, err := h.portfolioService.ListPortfolios(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	out := make([]PortfolioResponse, len(summaries))
	for i, s := range summaries {
		out[i] = newPortfolioResponse(s)
	}
	c.JSON(http.StatusOK, out)
}

// CreatePortfolio handles creating a portfolio.
// @Summary     Create portfolio
// @Description Create a portfolio with a unique name
// @Tags        portfolios
// @Accept      json
// @Produce     json
// @Param       request body CreatePortfolioRequest true "Portfolio details"
// @Success     201 {object} CreatePortfolioResponse "Portfolio created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolios [post]
func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	var req CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditCreatePortfolio, "portfolio", portfolio.ID, c.ClientIP(),
		map[string]any{"name": portfolio.Name})

	c.JSON(http.StatusCreated, CreatePortfolioResponse{
		Message:   "Portfolio created successfully",
		Portfolio: newPortfolioInfo(*portfolio),
	})
}

// GetPortfolio handles retrieving a portfolio with its holdings.
// @Summary     Get portfolio
// @Description Get a portfolio, its holdings ordered by current value, and its latest transactions
// @Tags        portfolios
// @Produce     json
// @Param       id path string true "Portfolio ID"
// @Success     200 {object} PortfolioDetailResponse "Portfolio detail"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolios/{id} [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	detail, err := h.portfolioService.GetPortfolio(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, PortfolioDetailResponse{
		Portfolio:    newPortfolioInfo(detail.Portfolio),
		Holdings:     newHoldingResponses(detail.Holdings),
		Transactions: newTransactionResponses(detail.Transactions),
		Summary:      newValuationSummary(detail.Summary),
		TopHoldings:  newHoldingResponses(detail.TopHoldings),
	})
}

// GetPortfolioValue handles retrieving the valuation of a portfolio.
// @Summary     Get portfolio value
// @Description Get the current market value and profit/loss of a portfolio
// @Tags        portfolios
// @Produce     json
// @Param       id path string true "Portfolio ID"
// @Success     200 {object} PortfolioValueResponse "Portfolio value"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolios/{id}/value [get]
func (h *PortfolioHandler) GetPortfolioValue(c *gin.Context) {
	summary, err := h.portfolioService.GetPortfolioValue(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, PortfolioValueResponse{
		PortfolioID:      summary.Portfolio.ID,
		Value:            money(summary.Value.TotalValue),
		HoldingsCount:    summary.HoldingsCount,
		ValuationSummary: newValuationSummary(summary.Value),
	})
}

// DeletePortfolio handles deleting a portfolio and its holdings.
// @Summary     Delete portfolio
// @Description Delete a portfolio and its holdings; its transactions are kept
// @Tags        portfolios
// @Produce     json
// @Param       id path string true "Portfolio ID"
// @Success     200 {object} MessageResponse "Portfolio deleted"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolios/{id} [delete]
func (h *PortfolioHandler) DeletePortfolio(c *gin.Context) {
	portfolio, err := h.portfolioService.DeletePortfolio(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditDeletePortfolio, "portfolio", portfolio.ID, c.ClientIP(),
		map[string]any{"name": portfolio.Name})

	c.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("Portfolio %q deleted successfully", portfolio.Name)})
}
