package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/RemyLoveLogicAI/aether-x-ultimate/internal/common"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// Service is the credential store: it owns registration, uniqueness and
// password verification. The bcrypt work runs under a weighted semaphore so
// a burst of logins cannot occupy every scheduler thread, and never while a
// repository lock is held.
type Service struct {
	repo     Repository
	hashCost int
	hashSem  *semaphore.Weighted
}

func NewService(repo Repository, hashCost int, maxConcurrentHashes int64) *Service {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	if maxConcurrentHashes <= 0 {
		maxConcurrentHashes = 8
	}
	return &Service{
		repo:     repo,
		hashCost: hashCost,
		hashSem:  semaphore.NewWeighted(maxConcurrentHashes),
	}
}

func (s *Service) hashPassword(ctx context.Context, password string) ([]byte, error) {
	if err := s.hashSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.hashSem.Release(1)
	return bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
}

func (s *Service) comparePassword(ctx context.Context, hash []byte, password string) error {
	if err := s.hashSem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.hashSem.Release(1)
	return bcrypt.CompareHashAndPassword(hash, []byte(password))
}

// Register creates a new active user. Empty fields fail with ErrValidation;
// a taken username fails with ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, username, password, email string) (*User, error) {

	if username == "" || password == "" || email == "" {
		return nil, fmt.Errorf("%w: username, password and email are required", common.ErrValidation)
	}

	hash, err := s.hashPassword(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		IsActive:     true,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Verify checks username/password and returns the user on success. Unknown
// usernames and wrong passwords both yield ErrUnauthorized so callers cannot
// enumerate accounts; a disabled account yields ErrForbidden.
func (s *Service) Verify(ctx context.Context, username, password string) (*User, error) {

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Burn comparable time so the miss is not observable.
			_ = s.comparePassword(ctx, dummyHash, password)
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	if err := s.comparePassword(ctx, user.PasswordHash, password); err != nil {
		return nil, common.ErrUnauthorized
	}

	if !user.IsActive {
		return nil, common.ErrForbidden
	}

	return user, nil
}

// dummyHash is compared against when the username does not exist, keeping
// the response time in the same range as a real comparison.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("placeholder"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()
