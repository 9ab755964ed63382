package protocols

import "context"

// Repository stores protocol records. Create must be atomic with respect to
// the id uniqueness check. ListByOwner returns records in creation order.
type Repository interface {
	Create(ctx context.Context, protocol *Protocol) (*Protocol, error)
	GetByID(ctx context.Context, id string) (*Protocol, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Protocol, error)
}
