package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"jizhang/internal/models"
)

type AccountService struct {
	accounts AccountStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewAccountService(accounts AccountStore, logger *zap.Logger) *AccountService {
	return &AccountService{
		accounts: accounts,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *AccountService) Create(ctx context.Context, acc *models.Account) (*models.Account, error) {
	if acc.Name == "" {
		return nil, fmt.Errorf("%w: account name is required", ErrValidation)
	}

	if acc.ID == uuid.Nil {
		acc.ID = uuid.New()
	}
	now := s.now()
	acc.CreatedAt = now
	acc.UpdatedAt = now
	acc.Balance = acc.InitialBalance

	if err := s.accounts.Create(ctx, acc); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return acc, nil
}

func (s *AccountService) Get(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	acc, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return acc, nil
}

func (s *AccountService) List(ctx context.Context) ([]models.Account, error) {
	return s.accounts.List(ctx)
}

func (s *AccountService) Update(ctx context.Context, acc *models.Account) (*models.Account, error) {
	if acc.Name == "" {
		return nil, fmt.Errorf("%w: account name is required", ErrValidation)
	}

	existing, err := s.Get(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	acc.CreatedAt = existing.CreatedAt
	acc.UpdatedAt = s.now()

	if err := s.accounts.Update(ctx, acc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("update account: %w", err)
	}
	return acc, nil
}

func (s *AccountService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.accounts.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
