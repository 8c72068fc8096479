package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/mwhitfield/pocketbook-backend/internal/bootstrap"
	"github.com/mwhitfield/pocketbook-backend/internal/config"
	"github.com/mwhitfield/pocketbook-backend/internal/crypto"
	"github.com/mwhitfield/pocketbook-backend/internal/handlers"
	"github.com/mwhitfield/pocketbook-backend/internal/response"
	"github.com/mwhitfield/pocketbook-backend/internal/router"
	"github.com/mwhitfield/pocketbook-backend/internal/services"
	"github.com/mwhitfield/pocketbook-backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// helpers
	tokenizer, err := crypto.NewTokenizer(cfg.TokenPassphrase, cfg.TokenSalt, cfg.TokenPassphrasePrevious)
	exitOnError("tokenizer init failed", err, bs.Log)

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	wstore := store.NewWalletStore(bs.Firestore)
	tstore := store.NewTransactionStore(bs.Firestore)
	bstore := store.NewBankAccountStore(bs.Firestore)

	// services
	userv := services.NewUserService(ustore)
	wserv := services.NewWalletService(wstore, tstore, tokenizer)
	tserv := services.NewTransactionService(tstore, wstore)
	plserv := services.NewPlaidService(bs.PlaidAdapter, bstore, tokenizer)
	dserv := services.NewDashboardService(ustore, wstore, tstore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.UserSvc = userv
	deps.WalletSvc = wserv
	deps.TransactionSvc = tserv
	deps.PlaidSvc = plserv
	deps.DashboardSvc = dserv

	// router
	r := router.NewRouter(deps)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
