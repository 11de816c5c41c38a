package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sango-pay/sango_pay/internal/query"
	"github.com/sango-pay/sango_pay/internal/wallet"
)

// RegisterWalletRoutes wires the authenticated wallet endpoints. Reads go to
// the query handler, mutations to the wallet engine handler.
func RegisterWalletRoutes(r fiber.Router, wallets *wallet.Handler, queries *query.Handler) {
	r.Get("/balance", queries.Balance)
	r.Get("/transactions", queries.Transactions)
	r.Post("/deposit", wallets.Deposit)
	r.Post("/withdraw", wallets.Withdraw)
	r.Post("/transfer", wallets.Transfer)
}
