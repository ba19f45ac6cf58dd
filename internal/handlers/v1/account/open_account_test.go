package account

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// mockProcessor is a mock for actionProcessor.
type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

// mockOwnerDirectory is a mock for service.OwnerDirectory.
type mockOwnerDirectory struct {
	mock.Mock
}

func (m *mockOwnerDirectory) OwnerExists(ctx context.Context, ownerID int64) (bool, error) {
	args := m.Called(ctx, ownerID)
	return args.Bool(0), args.Error(1)
}

func newOpenTestAPI(t *testing.T, op actionProcessor, owners *mockOwnerDirectory) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewOpenAccountHandler(op, owners).Register(api)
	return api
}

func TestHTTP_OpenAccount_Created(t *testing.T) {
	key := uuid.Must(uuid.NewV4()).String()
	createdAt := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

	mockOwners := new(mockOwnerDirectory)
	mockOwners.On("OwnerExists", mock.Anything, int64(31)).Return(true, nil)

	mockOp := new(mockProcessor)
	mockOp.On("Process", mock.Anything, mock.AnythingOfType("*actions.OpenAccount")).
		Run(func(args mock.Arguments) {
			action := args.Get(1).(*actions.OpenAccount)
			assert.Equal(t, int64(31), action.OwnerID)
			assert.Equal(t, key, action.EncodedKey)
			action.Result = actions.OpenAccountResult{ID: 8, EncodedKey: key, CreatedAt: createdAt}
		}).Return(nil)

	resp := newOpenTestAPI(t, mockOp, mockOwners).Post("/v1/account", OpenAccountBody{
		OwnerID:    31,
		EncodedKey: key,
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body OpenAccountResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(8), body.ID)
	assert.Equal(t, key, body.EncodedKey)
	assert.Equal(t, createdAt.Format(time.RFC3339), body.CreatedAt)
	assert.False(t, body.AlreadyExisted)
	mockOp.AssertExpectations(t)
	mockOwners.AssertExpectations(t)
}

func TestHTTP_OpenAccount_ExistingKeyReports208(t *testing.T) {
	key := uuid.Must(uuid.NewV4()).String()

	mockOwners := new(mockOwnerDirectory)
	mockOwners.On("OwnerExists", mock.Anything, int64(31)).Return(true, nil)

	mockOp := new(mockProcessor)
	mockOp.On("Process", mock.Anything, mock.AnythingOfType("*actions.OpenAccount")).
		Run(func(args mock.Arguments) {
			action := args.Get(1).(*actions.OpenAccount)
			action.Result = actions.OpenAccountResult{
				ID:             8,
				EncodedKey:     key,
				CreatedAt:      time.Now().UTC(),
				AlreadyExisted: true,
			}
		}).Return(nil)

	resp := newOpenTestAPI(t, mockOp, mockOwners).Post("/v1/account", OpenAccountBody{
		OwnerID:    31,
		EncodedKey: key,
	})

	assert.Equal(t, http.StatusAlreadyReported, resp.Code)
	var body OpenAccountResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.AlreadyExisted)
	assert.Equal(t, int64(8), body.ID)
}

func TestHTTP_OpenAccount_UnknownOwner(t *testing.T) {
	mockOwners := new(mockOwnerDirectory)
	mockOwners.On("OwnerExists", mock.Anything, int64(99)).Return(false, nil)

	mockOp := new(mockProcessor)

	resp := newOpenTestAPI(t, mockOp, mockOwners).Post("/v1/account", OpenAccountBody{
		OwnerID:    99,
		EncodedKey: uuid.Must(uuid.NewV4()).String(),
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockOp.AssertNotCalled(t, "Process")
}

func TestHTTP_OpenAccount_MissingRequiredFields(t *testing.T) {
	mockOwners := new(mockOwnerDirectory)
	mockOp := new(mockProcessor)

	// Huma schema validation rejects the request before the handler runs.
	resp := newOpenTestAPI(t, mockOp, mockOwners).Post("/v1/account", map[string]any{
		"ownerId": 31,
		// encodedKey omitted
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockOp.AssertNotCalled(t, "Process")
	mockOwners.AssertNotCalled(t, "OwnerExists")
}

func TestHTTP_OpenAccount_NonPositiveOwner(t *testing.T) {
	mockOwners := new(mockOwnerDirectory)
	mockOp := new(mockProcessor)

	// minimum:"1" violation, rejected by the schema.
	resp := newOpenTestAPI(t, mockOp, mockOwners).Post("/v1/account", OpenAccountBody{
		OwnerID:    0,
		EncodedKey: uuid.Must(uuid.NewV4()).String(),
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockOp.AssertNotCalled(t, "Process")
}

func TestHTTP_OpenAccount_ProcessFailure(t *testing.T) {
	mockOwners := new(mockOwnerDirectory)
	mockOwners.On("OwnerExists", mock.Anything, int64(31)).Return(true, nil)

	mockOp := new(mockProcessor)
	mockOp.On("Process", mock.Anything, mock.AnythingOfType("*actions.OpenAccount")).
		Return(assert.AnError)

	resp := newOpenTestAPI(t, mockOp, mockOwners).Post("/v1/account", OpenAccountBody{
		OwnerID:    31,
		EncodedKey: uuid.Must(uuid.NewV4()).String(),
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
