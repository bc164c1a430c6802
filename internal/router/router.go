// Package router assembles the HTTP surface of the server.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "stockfolio/internal/docs" // swagger docs
	"stockfolio/internal/handlers"
	"stockfolio/internal/middleware"
	"stockfolio/internal/realtime"
	"stockfolio/internal/services"
)

// Services are the business services the routes call into.
type Services struct {
	Portfolio   services.PortfolioServicer
	Stock       services.StockServicer
	Trade       services.TradeServicer
	NetWorth    services.NetWorthServicer
	Account     services.AccountServicer
	Dashboard   services.DashboardServicer
	Transaction services.TransactionServicer
	Audit       services.AuditServicer
}

// Options configures the engine. A nil Hub leaves /ws unrouted.
type Options struct {
	DB         handlers.Pinger
	Hub        *realtime.Hub
	CORSOrigin string
}

// New builds the gin engine with every route mounted.
func New(svc Services, opts Options) *gin.Engine {
	healthHandler := handlers.NewHealthHandler(opts.DB)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)
	portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio, svc.Audit)
	stockHandler := handlers.NewStockHandler(svc.Stock, svc.Audit)
	tradeHandler := handlers.NewTradeHandler(svc.Trade, svc.Audit)
	transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
	accountHandler := handlers.NewAccountHandler(svc.Account)
	netWorthHandler := handlers.NewNetWorthHandler(svc.NetWorth)

	r := gin.New()
	r.Use(middleware.RequestLogging())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS(opts.CORSOrigin))
	r.NoRoute(middleware.NotFound())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if opts.Hub != nil {
		r.GET("/ws", opts.Hub.ServeWS)
	}

	api := r.Group("/api")
	api.GET("/health", healthHandler.Health)
	api.GET("/dashboard", dashboardHandler.GetDashboard)

	portfolios := api.Group("/portfolios")
	portfolios.GET("", portfolioHandler.ListPortfolios)
	portfolios.POST("", portfolioHandler.CreatePortfolio)
	portfolios.GET("/:id", portfolioHandler.GetPortfolio)
	portfolios.DELETE("/:id", portfolioHandler.DeletePortfolio)
	portfolios.GET("/:id/value", portfolioHandler.GetPortfolioValue)
	// singular path kept for older clients
	api.GET("/portfolio/:id/value", portfolioHandler.GetPortfolioValue)

	stocks := api.Group("/stocks")
	stocks.GET("", stockHandler.ListStocks)
	stocks.GET("/prices", stockHandler.GetPrices)
	stocks.GET("/:symbol", stockHandler.GetStock)
	stocks.GET("/:symbol/market-data", stockHandler.GetMarketData)
	stocks.POST("/:symbol/buy", tradeHandler.Buy)
	stocks.POST("/:symbol/sell", tradeHandler.Sell)
	stocks.POST("/:symbol/watchlist", stockHandler.AddToWatchlist)
	stocks.DELETE("/:symbol/watchlist", stockHandler.RemoveFromWatchlist)

	api.GET("/watchlist", stockHandler.ListWatchlist)
	api.GET("/transactions", transactionHandler.ListTransactions)
	api.GET("/account/balance", accountHandler.GetBalance)
	api.GET("/net-worth/history", netWorthHandler.GetHistory)

	return r
}
