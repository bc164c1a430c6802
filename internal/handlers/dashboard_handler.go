package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockfolio/internal/services"
)

// DashboardHandler handles the dashboard request.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// DashboardResponse aggregates every portfolio and the cash account.
type DashboardResponse struct {
	Portfolios           []PortfolioResponse   `json:"portfolios"`
	TotalValue           float64               `json:"total_value"`
	TotalProfitLoss      float64               `json:"total_profit_loss"`
	ProfitLossPercentage float64               `json:"profit_loss_percentage"`
	TotalCostBasis       float64               `json:"total_cost_basis"`
	RealizedProfitLoss   float64               `json:"realized_profit_loss"`
	RealizedPLPercentage float64               `json:"realized_pl_percentage"`
	TotalPLAmount        float64               `json:"total_pl_amount"`
	TotalPLPercentage    float64               `json:"total_pl_percentage"`
	AccountBalance       float64               `json:"account_balance"`
	TotalNetWorth        float64               `json:"total_net_worth"`
	TotalInvested        float64               `json:"total_invested"`
	TotalHoldings        int64                 `json:"total_holdings"`
	RecentTransactions   []TransactionResponse `json:"recent_transactions"`
}

// GetDashboard handles retrieving the dashboard.
// @Summary     Dashboard
// @Description Portfolio totals, unrealized and realized profit/loss, cash and recent trades
// @Tags        dashboard
// @Produce     json
// @Success     200 {object} DashboardResponse "Dashboard"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	d, err := h.dashboardService.GetDashboard(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolios := make([]PortfolioResponse, len(d.Portfolios))
	for i, p := range d.Portfolios {
		portfolios[i] = newPortfolioResponse(p)
	}

	c.JSON(http.StatusOK, DashboardResponse{
		Portfolios:           portfolios,
		TotalValue:           money(d.Account.TotalPortfolioValue),
		TotalProfitLoss:      money(d.Account.TotalProfitLoss),
		ProfitLossPercentage: money(d.Account.ProfitLossPercentage),
		TotalCostBasis:       money(d.Account.TotalCostBasis),
		RealizedProfitLoss:   money(d.Realized.Amount),
		RealizedPLPercentage: money(d.Realized.Percentage),
		TotalPLAmount:        money(d.TotalPLAmount),
		TotalPLPercentage:    money(d.TotalPLPercentage),
		AccountBalance:       money(d.Account.Cash),
		TotalNetWorth:        money(d.Account.TotalNetWorth),
		TotalInvested:        money(d.TotalInvested),
		TotalHoldings:        d.TotalHoldings,
		RecentTransactions:   newTransactionResponses(d.RecentTransactions),
	})
}
