package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stockfolio/internal/services"
)

// AccountHandler handles cash account requests.
type AccountHandler struct {
	accountService services.AccountServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// BalanceResponse is the cash balance.
type BalanceResponse struct {
	Balance     float64   `json:"balance" example:"98250"`
	LastUpdated time.Time `json:"last_updated"`
}

// GetBalance handles retrieving the cash balance.
// @Summary     Account balance
// @Tags        account
// @Produce     json
// @Success     200 {object} BalanceResponse "Balance"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /account/balance [get]
func (h *AccountHandler) GetBalance(c *gin.Context) {
	account, err := h.accountService.GetBalance(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, BalanceResponse{Balance: money(account.Balance), LastUpdated: account.LastUpdated})
}
