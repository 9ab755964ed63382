package protocols

import (
	"context"
	"errors"
	"fmt"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/common"
)

// Defaults applied when the caller leaves protocol parameters unset,
// matching the service's documented behaviour.
const (
	DefaultAlgorithm  = "AES"
	DefaultKeyLength  = 256
	DefaultAuthMethod = "OAuth 2.0"
)

// Service is the protocol registry. Records are created once, never
// mutated, and may only be applied or listed by their owner.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a protocol for ownerID. An empty name fails with
// ErrValidation; an existing owner+name pair fails with ErrAlreadyExists.
func (s *Service) Create(ctx context.Context, ownerID, name, algorithm string, keyLength int, authMethod string, bypassSecurity bool) (*Protocol, error) {

	if name == "" {
		return nil, fmt.Errorf("%w: protocol name is required", common.ErrValidation)
	}
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	if keyLength == 0 {
		keyLength = DefaultKeyLength
	}
	if authMethod == "" {
		authMethod = DefaultAuthMethod
	}

	protocol := &Protocol{
		ID:                   DeriveID(ownerID, name),
		Name:                 name,
		EncryptionAlgorithm:  algorithm,
		KeyLength:            keyLength,
		AuthenticationMethod: authMethod,
		BypassSecurity:       bypassSecurity,
		OwnerID:              ownerID,
	}

	protocol, err := s.repo.Create(ctx, protocol)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating protocol: %w", err)
	}

	return protocol, nil
}

// Apply renders the secured representation of data under the named protocol.
// Ownership is enforced unconditionally: BypassSecurity on the record grants
// nothing.
func (s *Service) Apply(ctx context.Context, protocolID, callerID, data string) (string, *Protocol, error) {

	protocol, err := s.repo.GetByID(ctx, protocolID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", nil, common.ErrNotFound
		}
		return "", nil, fmt.Errorf("error loading protocol: %w", err)
	}

	if protocol.OwnerID != callerID {
		return "", nil, common.ErrForbidden
	}

	if data == "" {
		return "", nil, fmt.Errorf("%w: data to secure is required", common.ErrValidation)
	}

	secured := fmt.Sprintf("Secured %s with %s, %d-bit key, and %s authentication.",
		data, protocol.EncryptionAlgorithm, protocol.KeyLength, protocol.AuthenticationMethod)

	return secured, protocol, nil
}

// ListByOwner returns the owner's protocols in creation order.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]*Protocol, error) {
	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing protocols: %w", err)
	}
	return list, nil
}
