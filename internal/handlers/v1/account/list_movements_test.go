package account

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/service"
)

func newListTestAPI(t *testing.T, svc movementLister) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewListMovementsHandler(svc).Register(api)
	return api
}

func TestHTTP_ListMovements_Success(t *testing.T) {
	key := uuid.Must(uuid.NewV4()).String()
	recorded := time.Date(2026, 4, 2, 16, 45, 0, 0, time.UTC)

	mockSvc := new(mockLedgerService)
	mockSvc.On("ListMovements", mock.Anything, key).Return([]service.Movement{
		{
			Sequence:      2,
			Kind:          "withdraw",
			Amount:        decimal.RequireFromString("40.00"),
			Memo:          "groceries",
			Reference:     "ref-2",
			BalanceBefore: decimal.RequireFromString("100.00"),
			BalanceAfter:  decimal.RequireFromString("60.00"),
			RecordedAt:    recorded,
			Channel:       "API",
		},
		{
			Sequence:      1,
			Kind:          "deposit",
			Amount:        decimal.RequireFromString("100.00"),
			Memo:          "funding",
			BalanceBefore: decimal.Zero,
			BalanceAfter:  decimal.RequireFromString("100.00"),
			RecordedAt:    recorded.Add(-time.Hour),
			Channel:       "API",
		},
	}, nil)

	resp := newListTestAPI(t, mockSvc).Get("/v1/account/" + key + "/movements")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListMovementsResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Movements, 2)

	assert.Equal(t, int64(2), body.Movements[0].Sequence)
	assert.Equal(t, "withdraw", body.Movements[0].Kind)
	assert.Equal(t, "40", body.Movements[0].Amount)
	assert.Equal(t, "100", body.Movements[0].BalanceBefore)
	assert.Equal(t, "60", body.Movements[0].BalanceAfter)
	assert.Equal(t, "ref-2", body.Movements[0].Reference)
	assert.Equal(t, recorded.Format(time.RFC3339), body.Movements[0].RecordedAt)

	assert.Equal(t, int64(1), body.Movements[1].Sequence)
	assert.Equal(t, "deposit", body.Movements[1].Kind)
	assert.Empty(t, body.Movements[1].Reference)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListMovements_EmptyHistory(t *testing.T) {
	key := uuid.Must(uuid.NewV4()).String()

	mockSvc := new(mockLedgerService)
	mockSvc.On("ListMovements", mock.Anything, key).Return([]service.Movement{}, nil)

	resp := newListTestAPI(t, mockSvc).Get("/v1/account/" + key + "/movements")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListMovementsResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotNil(t, body.Movements)
	assert.Empty(t, body.Movements)
}

func TestHTTP_ListMovements_ServiceFailure(t *testing.T) {
	key := uuid.Must(uuid.NewV4()).String()

	mockSvc := new(mockLedgerService)
	mockSvc.On("ListMovements", mock.Anything, key).Return(nil, assert.AnError)

	resp := newListTestAPI(t, mockSvc).Get("/v1/account/" + key + "/movements")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
