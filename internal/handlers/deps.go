package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/mwhitfield/pocketbook-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Firebase        *auth.Client
	UserSvc         UserService
	WalletSvc       WalletService
	TransactionSvc  TransactionService
	PlaidSvc        PlaidService
	DashboardSvc    DashboardService
}
