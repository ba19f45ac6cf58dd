package account

// Account is the API response model for a savings account.
type Account struct {
	ID         int64  `json:"id" doc:"Account id"`
	EncodedKey string `json:"encodedKey" doc:"Caller-supplied idempotency key"`
	OwnerID    int64  `json:"ownerId" doc:"Owning customer id"`
	Balance    string `json:"balance" doc:"Decimal balance"`
	IsActive   bool   `json:"isActive" doc:"Soft-deactivation flag"`
	CreatedAt  string `json:"createdAt" doc:"RFC3339 creation time"`
}

// Movement is the API response model for one ledger movement.
type Movement struct {
	Sequence      int64  `json:"sequence" doc:"1-based position within the account, doubles as the movement id"`
	Kind          string `json:"kind" doc:"deposit or withdraw"`
	Amount        string `json:"amount" doc:"Decimal magnitude, sign implied by kind"`
	Memo          string `json:"memo" doc:"Caller-supplied memo"`
	Reference     string `json:"reference,omitempty" doc:"Caller-supplied reference"`
	BalanceBefore string `json:"balanceBefore" doc:"Balance before this movement"`
	BalanceAfter  string `json:"balanceAfter" doc:"Balance after this movement"`
	RecordedAt    string `json:"recordedAt" doc:"RFC3339 append time"`
	Channel       string `json:"channel" doc:"Provenance tag"`
}
