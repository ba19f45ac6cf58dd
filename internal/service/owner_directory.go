package service

import "context"

// OwnerDirectory is the customer collaborator consumed before account
// creation. Registration, external id generation, and authentication live
// behind it in another system; the ledger only needs an existence answer for
// an already-resolved owner id.
type OwnerDirectory interface {
	OwnerExists(ctx context.Context, ownerID int64) (bool, error)
}

// StaticOwnerDirectory accepts every positive owner id. It stands in when
// the deployment has no customer service wired up.
type StaticOwnerDirectory struct{}

var _ OwnerDirectory = StaticOwnerDirectory{}

func (StaticOwnerDirectory) OwnerExists(ctx context.Context, ownerID int64) (bool, error) {
	return ownerID > 0, nil
}
