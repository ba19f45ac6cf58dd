package movement

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// MovementBody is the request body shared by deposits and withdrawals.
// Limits mirror the account-opening contract: memo and reference are short
// free text, the encoded key addresses the account. Callers retrying after
// a timeout should dedupe on reference; the ledger does not attach its own
// idempotency token to movements.
type MovementBody struct {
	EncodedKey string `json:"encodedKey" required:"true" minLength:"1" maxLength:"100" doc:"Idempotency key the account was opened with"`
	Amount     string `json:"amount" required:"true" doc:"Positive decimal amount, e.g. '100.00'"`
	Memo       string `json:"memo" required:"true" minLength:"1" maxLength:"48" doc:"Short description of the movement"`
	Reference  string `json:"reference,omitempty" maxLength:"48" doc:"Optional caller reference"`
}

// MovementReceipt is the response body confirming a committed movement.
type MovementReceipt struct {
	MovementID   int64  `json:"movementId" doc:"Per-account sequence number of the movement"`
	EncodedKey   string `json:"encodedKey" doc:"Account the movement was applied to"`
	RecordedAt   string `json:"recordedAt" doc:"RFC3339 append time"`
	BalanceAfter string `json:"balanceAfter" doc:"Decimal balance after the movement"`
}

// actionProcessor runs a ledger action inside one storage transaction.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	return amount, nil
}

// movementError maps domain outcomes onto status codes: a missing account
// is a 404, an overdraw is a business rejection (409) distinct from it, and
// a bad amount never reached storage (400).
func movementError(err error, failMsg string) error {
	switch {
	case errors.Is(err, actions.ErrAccountNotFound):
		return huma.NewError(http.StatusNotFound, "savings account not found")
	case errors.Is(err, actions.ErrInsufficientFunds):
		return huma.NewError(http.StatusConflict, "insufficient funds")
	case errors.Is(err, actions.ErrInvalidAmount):
		return huma.NewError(http.StatusBadRequest, err.Error())
	default:
		return huma.NewError(http.StatusInternalServerError, failMsg, err)
	}
}
