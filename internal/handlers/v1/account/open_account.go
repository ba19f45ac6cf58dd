package account

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/service"
)

// OpenAccountBody is the request body for opening a savings account.
type OpenAccountBody struct {
	OwnerID    int64  `json:"ownerId" required:"true" minimum:"1" doc:"Resolved customer id"`
	EncodedKey string `json:"encodedKey" required:"true" minLength:"1" maxLength:"100" doc:"Caller-generated idempotency key, e.g. a GUID"`
}

// OpenAccountInput is the Huma input for opening an account.
type OpenAccountInput struct {
	Body OpenAccountBody
}

// OpenAccountResponse is the response body for opening an account.
type OpenAccountResponse struct {
	ID             int64  `json:"id" doc:"Account id"`
	EncodedKey     string `json:"encodedKey" doc:"Idempotency key the account is registered under"`
	CreatedAt      string `json:"createdAt" doc:"RFC3339 creation time"`
	AlreadyExisted bool   `json:"alreadyExisted" doc:"True when the key was registered previously"`
}

// OpenAccountOutput is the Huma output for opening an account.
type OpenAccountOutput struct {
	Status int
	Body   OpenAccountResponse
}

// actionProcessor runs a ledger action inside one storage transaction.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// OpenAccountHandler handles POST /v1/account.
type OpenAccountHandler struct {
	Operator actionProcessor
	Owners   service.OwnerDirectory
}

// NewOpenAccountHandler creates a new OpenAccountHandler.
func NewOpenAccountHandler(op actionProcessor, owners service.OwnerDirectory) *OpenAccountHandler {
	return &OpenAccountHandler{Operator: op, Owners: owners}
}

// Register registers the open account endpoint with the Huma API.
func (h *OpenAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "open-account",
		Method:      http.MethodPost,
		Path:        "/v1/account",
		Summary:     "Open a savings account",
		Description: "Opens a savings account for a customer. Repeating the call with the same encodedKey returns the existing account with status 208 instead of creating a duplicate.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *OpenAccountHandler) handle(ctx context.Context, input *OpenAccountInput) (*OpenAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	exists, err := h.Owners.OwnerExists(ctx, input.Body.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to resolve owner", err)
	}
	if !exists {
		return nil, huma.NewError(http.StatusBadRequest, "unknown ownerId")
	}

	action := &actions.OpenAccount{
		OwnerID:    input.Body.OwnerID,
		EncodedKey: input.Body.EncodedKey,
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("openAccountMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to open account", err)
	}

	if logData != nil {
		logData.AddData("accountID", action.Result.ID)
		logData.AddData("alreadyExisted", action.Result.AlreadyExisted)
	}

	status := http.StatusCreated
	if action.Result.AlreadyExisted {
		status = http.StatusAlreadyReported
	}

	return &OpenAccountOutput{
		Status: status,
		Body: OpenAccountResponse{
			ID:             action.Result.ID,
			EncodedKey:     action.Result.EncodedKey,
			CreatedAt:      action.Result.CreatedAt.Format(time.RFC3339),
			AlreadyExisted: action.Result.AlreadyExisted,
		},
	}, nil
}
