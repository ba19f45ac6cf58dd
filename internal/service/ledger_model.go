package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a savings account in the service layer.
type Account struct {
	ID         int64
	EncodedKey string
	OwnerID    int64
	Balance    decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
}

// Movement represents one committed balance-affecting event in the service
// layer. Sequence doubles as the movement's id within its account.
type Movement struct {
	Sequence      int64
	Kind          string
	Amount        decimal.Decimal
	Memo          string
	Reference     string
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	RecordedAt    time.Time
	Channel       string
}
