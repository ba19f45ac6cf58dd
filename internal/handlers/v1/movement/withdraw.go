package movement

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// WithdrawInput is the Huma input for withdrawing from an account.
type WithdrawInput struct {
	Body MovementBody
}

// WithdrawOutput is the Huma output for a withdrawal.
type WithdrawOutput struct {
	Status int
	Body   MovementReceipt
}

// WithdrawHandler handles POST /v1/withdraw.
type WithdrawHandler struct {
	Operator  actionProcessor
	MaxAmount decimal.Decimal
}

// NewWithdrawHandler creates a new WithdrawHandler.
func NewWithdrawHandler(op actionProcessor, maxAmount decimal.Decimal) *WithdrawHandler {
	return &WithdrawHandler{Operator: op, MaxAmount: maxAmount}
}

// Register registers the withdraw endpoint with the Huma API.
func (h *WithdrawHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "withdraw",
		Method:      http.MethodPost,
		Path:        "/v1/withdraw",
		Summary:     "Withdraw from a savings account",
		Description: "Debits the account and appends the movement atomically. Overdrawing is rejected with 409 and leaves the account untouched.",
		Tags:        []string{"Movements"},
	}, h.handle)
}

func (h *WithdrawHandler) handle(ctx context.Context, input *WithdrawInput) (*WithdrawOutput, error) {
	logData := logging.GetLogData(ctx)

	amount, err := parseAmount(input.Body.Amount)
	if err != nil {
		return nil, err
	}

	action := &actions.Withdraw{
		EncodedKey: input.Body.EncodedKey,
		Amount:     amount,
		Memo:       input.Body.Memo,
		Reference:  input.Body.Reference,
		MaxAmount:  h.MaxAmount,
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("withdrawMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, movementError(err, "failed to withdraw")
	}

	if logData != nil {
		logData.AddData("movementID", action.Result.MovementID)
	}

	return &WithdrawOutput{
		Status: http.StatusCreated,
		Body: MovementReceipt{
			MovementID:   action.Result.MovementID,
			EncodedKey:   action.Result.EncodedKey,
			RecordedAt:   action.Result.RecordedAt.Format(time.RFC3339),
			BalanceAfter: action.Result.BalanceAfter.String(),
		},
	}, nil
}
