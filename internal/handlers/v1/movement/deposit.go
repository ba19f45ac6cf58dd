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

// DepositInput is the Huma input for depositing into an account.
type DepositInput struct {
	Body MovementBody
}

// DepositOutput is the Huma output for a deposit.
type DepositOutput struct {
	Status int
	Body   MovementReceipt
}

// DepositHandler handles POST /v1/deposit.
type DepositHandler struct {
	Operator  actionProcessor
	MaxAmount decimal.Decimal
}

// NewDepositHandler creates a new DepositHandler.
func NewDepositHandler(op actionProcessor, maxAmount decimal.Decimal) *DepositHandler {
	return &DepositHandler{Operator: op, MaxAmount: maxAmount}
}

// Register registers the deposit endpoint with the Huma API.
func (h *DepositHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "deposit",
		Method:      http.MethodPost,
		Path:        "/v1/deposit",
		Summary:     "Deposit into a savings account",
		Description: "Credits the account and appends the movement atomically.",
		Tags:        []string{"Movements"},
	}, h.handle)
}

func (h *DepositHandler) handle(ctx context.Context, input *DepositInput) (*DepositOutput, error) {
	logData := logging.GetLogData(ctx)

	amount, err := parseAmount(input.Body.Amount)
	if err != nil {
		return nil, err
	}

	action := &actions.Deposit{
		EncodedKey: input.Body.EncodedKey,
		Amount:     amount,
		Memo:       input.Body.Memo,
		Reference:  input.Body.Reference,
		MaxAmount:  h.MaxAmount,
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("depositMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, movementError(err, "failed to deposit")
	}

	if logData != nil {
		logData.AddData("movementID", action.Result.MovementID)
	}

	return &DepositOutput{
		Status: http.StatusCreated,
		Body: MovementReceipt{
			MovementID:   action.Result.MovementID,
			EncodedKey:   action.Result.EncodedKey,
			RecordedAt:   action.Result.RecordedAt.Format(time.RFC3339),
			BalanceAfter: action.Result.BalanceAfter.String(),
		},
	}, nil
}
