package service

import (
	"context"
	"errors"

	"nclx/gymnotetaker/internal/domain"
	"nclx/gymnotetaker/internal/repository"
)

var (
	ErrProfileExists   = errors.New("profile already exists for this account")
	ErrProfileNotFound = errors.New("profile not found")
)

type ProfileService interface {
	CreateProfile(ctx context.Context, accountID, email, username string) (*domain.User, error)
	GetByAccountID(ctx context.Context, accountID string) (*domain.User, error)
}

type profileService struct {
	userRepo repository.UserRepository
}

func NewProfileService(userRepo repository.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

// CreateProfile stores the profile under the account's own id.
func (s *profileService) CreateProfile(ctx context.Context, accountID, email, username string) (*domain.User, error) {
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:        accountID,
		AccountID: accountID,
		Email:     email,
		Username:  username,
	}
	if _, err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrProfileExists
		}
		return nil, err
	}
	return user, nil
}

func (s *profileService) GetByAccountID(ctx context.Context, accountID string) (*domain.User, error) {
	user, err := s.userRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return user, nil
}
