package wallet

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/sango-pay/sango_pay/internal/ledger"
	"github.com/sango-pay/sango_pay/internal/money"
)

var validate = validator.New()

// Handler exposes the mutating wallet endpoints. The authenticated account id
// is resolved by the JWT middleware before any handler runs.
type Handler struct {
	service *Service
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type amountRequest struct {
	Amount string `json:"amount" validate:"required"`
}

type transferRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required,uuid4"`
	Amount     string `json:"amount" validate:"required"`
}

type transactionResponse struct {
	ID          int64     `json:"id"`
	Kind        string    `json:"kind"`
	SenderID    string    `json:"sender_id"`
	ReceiverID  string    `json:"receiver_id"`
	Amount      string    `json:"amount"`
	AmountMinor int64     `json:"amount_minor"`
	CreatedAt   time.Time `json:"created_at"`
}

func newTransactionResponse(tx ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Kind:        tx.Kind,
		SenderID:    tx.SenderID,
		ReceiverID:  tx.ReceiverID,
		Amount:      money.FormatMinorUnits(tx.Amount),
		AmountMinor: tx.Amount,
		CreatedAt:   tx.CreatedAt,
	}
}

// Deposit credits the authenticated account.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	accountID, amount, err := h.parseAmountCall(c)
	if err != nil {
		return err
	}
	tx, err := h.service.Deposit(c.UserContext(), accountID, amount)
	if err != nil {
		return errorToHTTP(err)
	}
	return c.Status(http.StatusCreated).JSON(newTransactionResponse(tx))
}

// Withdraw debits the authenticated account.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	accountID, amount, err := h.parseAmountCall(c)
	if err != nil {
		return err
	}
	tx, err := h.service.Withdraw(c.UserContext(), accountID, amount)
	if err != nil {
		return errorToHTTP(err)
	}
	return c.Status(http.StatusCreated).JSON(newTransactionResponse(tx))
}

// Transfer moves funds from the authenticated account to the receiver.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	accountID, _ := c.Locals("account_id").(string)
	if accountID == "" {
		return fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	amount, err := money.ParseMinorUnits(req.Amount)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	tx, err := h.service.Transfer(c.UserContext(), accountID, req.ReceiverID, amount)
	if err != nil {
		return errorToHTTP(err)
	}
	return c.Status(http.StatusCreated).JSON(newTransactionResponse(tx))
}

func (h *Handler) parseAmountCall(c *fiber.Ctx) (string, int64, error) {
	accountID, _ := c.Locals("account_id").(string)
	if accountID == "" {
		return "", 0, fiber.NewError(http.StatusUnauthorized, "unauthorized")
	}
	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return "", 0, fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return "", 0, fiber.NewError(http.StatusBadRequest, err.Error())
	}
	amount, err := money.ParseMinorUnits(req.Amount)
	if err != nil {
		return "", 0, fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return accountID, amount, nil
}

func errorToHTTP(err error) error {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrAccountNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return fiber.NewError(http.StatusConflict, "insufficient funds")
	case errors.Is(err, ledger.ErrStoreUnavailable):
		return fiber.NewError(http.StatusServiceUnavailable, "store unavailable")
	default:
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
}
