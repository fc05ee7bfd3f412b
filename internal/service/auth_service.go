package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"nclx/gymnotetaker/internal/domain"
	"nclx/gymnotetaker/internal/repository"
	"nclx/gymnotetaker/internal/session"
)

var (
	ErrEmailTaken           = errors.New("account with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrMissingCredentials   = errors.New("email and password cannot be empty")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrSessionInvalid       = errors.New("session is invalid or expired")
)

type AccountService interface {
	Register(ctx context.Context, email, password, username string) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (token string, account *domain.Account, err error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (accountID string, err error)
	Current(ctx context.Context, accountID string) (*domain.Account, error)
}

// accountService implements the AccountService interface.
type accountService struct {
	accountRepo repository.AccountRepository
	sessions    session.Store
	bcryptCost  int
}

func NewAccountService(accountRepo repository.AccountRepository, sessions session.Store) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		sessions:    sessions,
		bcryptCost:  bcrypt.DefaultCost,
	}
}

// Register creates an account. It does not start a session.
func (s *accountService) Register(ctx context.Context, email, password, username string) (*domain.Account, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if err := domain.ValidateEmail(email); err != nil {
		return nil, err
	}

	_, err := s.accountRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	account := &domain.Account{
		Email:        email,
		Username:     username,
		PasswordHash: string(hashedPassword),
	}
	if _, err := s.accountRepo.Create(ctx, account); err != nil {
		// unique index caught a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	account.PasswordHash = ""
	return account, nil
}

func (s *accountService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, ErrMissingCredentials
	}

	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.sessions.Create(ctx, account.ID)
	if err != nil {
		return "", nil, err
	}

	account.PasswordHash = ""
	return token, account, nil
}

func (s *accountService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		if errors.Is(err, session.ErrInvalidSession) {
			return ErrSessionInvalid
		}
		return err
	}
	return nil
}

func (s *accountService) Authenticate(ctx context.Context, token string) (string, error) {
	accountID, err := s.sessions.Validate(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrInvalidSession) {
			return "", ErrSessionInvalid
		}
		return "", err
	}
	return accountID, nil
}

func (s *accountService) Current(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, err
	}
	account.PasswordHash = ""
	return account, nil
}
