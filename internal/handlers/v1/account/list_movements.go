package account

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// ListMovementsInput is the Huma input for listing an account's movements.
type ListMovementsInput struct {
	EncodedKey string `path:"encodedKey" maxLength:"100" doc:"Idempotency key the account was opened with"`
}

// ListMovementsResponseBody is the response body for listing movements.
type ListMovementsResponseBody struct {
	Movements []Movement `json:"movements" doc:"All movements, newest first"`
}

// ListMovementsOutput is the Huma output for listing movements.
type ListMovementsOutput struct {
	Body ListMovementsResponseBody
}

// movementLister is the interface for reading movement history.
type movementLister interface {
	ListMovements(ctx context.Context, encodedKey string) ([]service.Movement, error)
}

// ListMovementsHandler handles GET /v1/account/{encodedKey}/movements.
type ListMovementsHandler struct {
	LedgerService movementLister
}

// NewListMovementsHandler creates a new ListMovementsHandler.
func NewListMovementsHandler(svc movementLister) *ListMovementsHandler {
	return &ListMovementsHandler{LedgerService: svc}
}

// Register registers the list movements endpoint with the Huma API.
func (h *ListMovementsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-movements",
		Method:      http.MethodGet,
		Path:        "/v1/account/{encodedKey}/movements",
		Summary:     "List account movements",
		Description: "Returns every movement for the account ordered by recency. Unknown accounts and empty histories both return an empty list.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *ListMovementsHandler) handle(ctx context.Context, input *ListMovementsInput) (*ListMovementsOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listMovementsMs")
	}
	movements, err := h.LedgerService.ListMovements(ctx, input.EncodedKey)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list movements", err)
	}

	if logData != nil {
		logData.AddData("movementCount", len(movements))
	}

	resp := ListMovementsResponseBody{
		Movements: make([]Movement, len(movements)),
	}
	for i, m := range movements {
		resp.Movements[i] = Movement{
			Sequence:      m.Sequence,
			Kind:          m.Kind,
			Amount:        m.Amount.String(),
			Memo:          m.Memo,
			Reference:     m.Reference,
			BalanceBefore: m.BalanceBefore.String(),
			BalanceAfter:  m.BalanceAfter.String(),
			RecordedAt:    m.RecordedAt.Format(time.RFC3339),
			Channel:       m.Channel,
		}
	}

	return &ListMovementsOutput{Body: resp}, nil
}
