package query

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sango-pay/sango_pay/internal/ledger"
	"github.com/sango-pay/sango_pay/internal/money"
)

// Handler exposes the read-only wallet endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a query HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Balance returns the authenticated account's current balance.
func (h *Handler) Balance(c *fiber.Ctx) error {
	accountID, _ := c.Locals("account_id").(string)
	if accountID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	balance, err := h.service.Balance(c.UserContext(), accountID)
	if err != nil {
		return errorToHTTP(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"account_id":    balance.AccountID,
		"balance":       money.FormatMinorUnits(balance.Amount),
		"balance_minor": balance.Amount,
		"as_of":         balance.AsOf,
	})
}

type transactionItem struct {
	ID          int64     `json:"id"`
	Kind        string    `json:"kind"`
	SenderID    string    `json:"sender_id"`
	ReceiverID  string    `json:"receiver_id"`
	Amount      string    `json:"amount"`
	AmountMinor int64     `json:"amount_minor"`
	CreatedAt   time.Time `json:"created_at"`
}

// Transactions lists the authenticated account's history, optionally bounded
// by from/to query parameters in RFC3339.
func (h *Handler) Transactions(c *fiber.Ctx) error {
	accountID, _ := c.Locals("account_id").(string)
	if accountID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}

	from, err := parseTimeParam(c.Query("from"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid from parameter")
	}
	to, err := parseTimeParam(c.Query("to"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid to parameter")
	}

	entries, err := h.service.Transactions(c.UserContext(), accountID, from, to)
	if err != nil {
		return errorToHTTP(err)
	}

	items := make([]transactionItem, 0, len(entries))
	for _, tx := range entries {
		items = append(items, transactionItem{
			ID:          tx.ID,
			Kind:        tx.Kind,
			SenderID:    tx.SenderID,
			ReceiverID:  tx.ReceiverID,
			Amount:      money.FormatMinorUnits(tx.Amount),
			AmountMinor: tx.Amount,
			CreatedAt:   tx.CreatedAt,
		})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"transactions": items})
}

func parseTimeParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func errorToHTTP(err error) error {
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrStoreUnavailable):
		return fiber.NewError(http.StatusServiceUnavailable, "store unavailable")
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
