// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// tickerRegex accepts exchange tickers such as AAPL, BRK-B or BF.B.
var tickerRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9.\-]{0,9}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ticker", validateTicker)
		_ = v.RegisterValidation("trade_type", validateTradeType)
	}
}

func validateTicker(fl validator.FieldLevel) bool {
	return tickerRegex.MatchString(fl.Field().String())
}

func validateTradeType(fl validator.FieldLevel) bool {
	switch strings.ToUpper(fl.Field().String()) {
	case "BUY", "SELL":
		return true
	}
	return false
}
