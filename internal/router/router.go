package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mwhitfield/pocketbook-backend/internal/handlers"
	"github.com/mwhitfield/pocketbook-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(lm.LoggerMiddleware)

	ush := handlers.NewUserHandlers(deps)
	wsh := handlers.NewWalletHandlers(deps)
	tsh := handlers.NewTransactionHandlers(deps)
	psh := handlers.NewPlaidHandlers(deps)
	dsh := handlers.NewDashboardHandlers(deps)

	am := middleware.NewMiddleware(deps.Firebase)
	r.Group(func(r chi.Router) {
		r.Use(am.FirebaseAuth)

		r.Mount("/users", ush.UserRoutes())
		r.Mount("/wallets", wsh.WalletRoutes())
		r.Mount("/transactions", tsh.TransactionRoutes())
		r.Mount("/plaid", psh.PlaidRoutes())
		r.Mount("/dashboard", dsh.DashboardRoutes())
	})

	return r
}
