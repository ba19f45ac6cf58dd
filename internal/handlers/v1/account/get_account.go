package account

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/service"
)

// GetAccountInput is the Huma input for fetching an account.
type GetAccountInput struct {
	EncodedKey string `path:"encodedKey" maxLength:"100" doc:"Idempotency key the account was opened with"`
}

// GetAccountOutput is the Huma output for fetching an account.
type GetAccountOutput struct {
	Body Account
}

// accountGetter is the interface for reading a single account.
type accountGetter interface {
	GetAccount(ctx context.Context, encodedKey string) (*service.Account, error)
}

// GetAccountHandler handles GET /v1/account/{encodedKey}.
type GetAccountHandler struct {
	LedgerService accountGetter
}

// NewGetAccountHandler creates a new GetAccountHandler.
func NewGetAccountHandler(svc accountGetter) *GetAccountHandler {
	return &GetAccountHandler{LedgerService: svc}
}

// Register registers the get account endpoint with the Huma API.
func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/account/{encodedKey}",
		Summary:     "Get a savings account",
		Description: "Returns the account's balance and metadata. A missing account is a 404, never a zero-balance default.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *GetAccountInput) (*GetAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("getAccountMs")
	}
	acct, err := h.LedgerService.GetAccount(ctx, input.EncodedKey)
	if stopTimer != nil {
		stopTimer()
	}
	if errors.Is(err, actions.ErrAccountNotFound) {
		return nil, huma.NewError(http.StatusNotFound, "savings account not found")
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to get account", err)
	}

	if logData != nil {
		logData.AddData("accountID", acct.ID)
	}

	return &GetAccountOutput{
		Body: Account{
			ID:         acct.ID,
			EncodedKey: acct.EncodedKey,
			OwnerID:    acct.OwnerID,
			Balance:    acct.Balance.String(),
			IsActive:   acct.IsActive,
			CreatedAt:  acct.CreatedAt.Format(time.RFC3339),
		},
	}, nil
}
