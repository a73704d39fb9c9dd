package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndewijer/investment-tracker-backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/investment-tracker-backend/internal/api/middleware"
	"github.com/ndewijer/investment-tracker-backend/internal/config"
	"github.com/ndewijer/investment-tracker-backend/internal/service"
)

// Services bundles the services the HTTP API is built on.
type Services struct {
	System       *service.SystemService
	Trade        *service.TradeService
	Funds        *service.FundsService
	Portfolio    *service.PortfolioService
	Transactions *service.TransactionService
	Snapshots    *service.SnapshotService
	Market       *service.MarketService
	Accounts     *service.AccountService
	Goals        *service.GoalService
	Sips         *service.SipService
}

// NewRouter creates and configures the HTTP router.
// Everything except /api/system requires an authenticated owner.
func NewRouter(svc Services, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	r.Use(custommiddleware.NewCORS(cfg.CORS))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.Auth(cfg.Auth.JWTSecret, cfg.Auth.DevUserID))

			tradeHandler := handlers.NewTradeHandler(svc.Trade)
			r.Post("/trade", tradeHandler.ExecuteTrade)

			r.Route("/funds", func(r chi.Router) {
				fundsHandler := handlers.NewFundsHandler(svc.Funds)
				r.Post("/deposit", fundsHandler.Deposit)
				r.Post("/withdraw", fundsHandler.Withdraw)
				r.Post("/dividend", fundsHandler.Dividend)
			})

			portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)
			r.Get("/portfolio", portfolioHandler.Portfolio)

			transactionHandler := handlers.NewTransactionHandler(svc.Transactions)
			r.Get("/transactions", transactionHandler.History)

			r.Route("/snapshots", func(r chi.Router) {
				snapshotHandler := handlers.NewSnapshotHandler(svc.Snapshots)
				r.Get("/", snapshotHandler.Snapshots)
				r.Post("/capture", snapshotHandler.Capture)
			})

			r.Route("/market", func(r chi.Router) {
				marketHandler := handlers.NewMarketHandler(svc.Market)
				r.Get("/quote/{symbol}", marketHandler.Quote)
				r.Get("/search/{query}", marketHandler.Search)
				r.Get("/overview", marketHandler.Overview)
			})

			r.Route("/accounts", func(r chi.Router) {
				accountHandler := handlers.NewAccountHandler(svc.Accounts)
				r.Get("/", accountHandler.Accounts)
				r.Post("/", accountHandler.CreateAccount)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUID("uuid"))
					r.Get("/", accountHandler.GetAccount)
					r.Delete("/", accountHandler.DeleteAccount)
				})
			})

			r.Route("/goals", func(r chi.Router) {
				goalHandler := handlers.NewGoalHandler(svc.Goals)
				r.Get("/", goalHandler.Goals)
				r.Post("/", goalHandler.CreateGoal)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUID("uuid"))
					r.Get("/", goalHandler.GetGoal)
					r.Delete("/", goalHandler.DeleteGoal)
				})
			})

			r.Route("/sips", func(r chi.Router) {
				sipHandler := handlers.NewSipHandler(svc.Sips)
				r.Get("/", sipHandler.Sips)
				r.Post("/", sipHandler.CreateSip)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUID("uuid"))
					r.Get("/", sipHandler.GetSip)
					r.Delete("/", sipHandler.DeleteSip)
				})
			})
		})
	})

	return r
}
