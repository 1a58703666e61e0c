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

type CategoryService struct {
	categories CategoryStore
	logger     *zap.Logger
	now        func() time.Time
}

func NewCategoryService(categories CategoryStore, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categories: categories,
		logger:     logger,
		now:        time.Now,
	}
}

func validateCategory(cat *models.Category) error {
	if cat.Name == "" {
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}
	if cat.Type != models.TransactionIncome && cat.Type != models.TransactionExpense {
		return fmt.Errorf("%w: category type must be income or expense", ErrValidation)
	}
	return nil
}

func (s *CategoryService) Create(ctx context.Context, cat *models.Category) (*models.Category, error) {
	if err := validateCategory(cat); err != nil {
		return nil, err
	}

	if cat.ID == uuid.Nil {
		cat.ID = uuid.New()
	}
	cat.CreatedAt = s.now()

	if err := s.categories.Create(ctx, cat); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return cat, nil
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) Update(ctx context.Context, cat *models.Category) (*models.Category, error) {
	if err := validateCategory(cat); err != nil {
		return nil, err
	}

	if err := s.categories.Update(ctx, cat); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return cat, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
