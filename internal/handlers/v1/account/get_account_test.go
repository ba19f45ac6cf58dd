package account

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/service"
)

// mockLedgerService is a mock for accountGetter and movementLister.
type mockLedgerService struct {
	mock.Mock
}

func (m *mockLedgerService) GetAccount(ctx context.Context, encodedKey string) (*service.Account, error) {
	args := m.Called(ctx, encodedKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Account), args.Error(1)
}

func (m *mockLedgerService) ListMovements(ctx context.Context, encodedKey string) ([]service.Movement, error) {
	args := m.Called(ctx, encodedKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.Movement), args.Error(1)
}

func newGetTestAPI(t *testing.T, svc accountGetter) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewGetAccountHandler(svc).Register(api)
	return api
}

func TestHTTP_GetAccount_Success(t *testing.T) {
	key := uuid.Must(uuid.NewV4()).String()
	createdAt := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	mockSvc := new(mockLedgerService)
	mockSvc.On("GetAccount", mock.Anything, key).Return(&service.Account{
		ID:         3,
		EncodedKey: key,
		OwnerID:    14,
		Balance:    decimal.RequireFromString("150.00"),
		IsActive:   true,
		CreatedAt:  createdAt,
	}, nil)

	resp := newGetTestAPI(t, mockSvc).Get("/v1/account/" + key)

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Account
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(3), body.ID)
	assert.Equal(t, key, body.EncodedKey)
	assert.Equal(t, int64(14), body.OwnerID)
	assert.Equal(t, "150", body.Balance)
	assert.True(t, body.IsActive)
	assert.Equal(t, createdAt.Format(time.RFC3339), body.CreatedAt)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_GetAccount_ZeroBalance(t *testing.T) {
	key := uuid.Must(uuid.NewV4()).String()

	mockSvc := new(mockLedgerService)
	mockSvc.On("GetAccount", mock.Anything, key).Return(&service.Account{
		ID:         4,
		EncodedKey: key,
		OwnerID:    14,
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}, nil)

	resp := newGetTestAPI(t, mockSvc).Get("/v1/account/" + key)

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Account
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "0", body.Balance)
}

func TestHTTP_GetAccount_NotFound(t *testing.T) {
	key := uuid.Must(uuid.NewV4()).String()

	mockSvc := new(mockLedgerService)
	mockSvc.On("GetAccount", mock.Anything, key).Return(nil, actions.ErrAccountNotFound)

	resp := newGetTestAPI(t, mockSvc).Get("/v1/account/" + key)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_GetAccount_ServiceFailure(t *testing.T) {
	key := uuid.Must(uuid.NewV4()).String()

	mockSvc := new(mockLedgerService)
	mockSvc.On("GetAccount", mock.Anything, key).Return(nil, assert.AnError)

	resp := newGetTestAPI(t, mockSvc).Get("/v1/account/" + key)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
