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

// RecurringExpenseService manages the fixed monthly expense templates.
// Templates only drive reminders; they never materialize transactions.
type RecurringExpenseService struct {
	recurring RecurringExpenseStore
	logger    *zap.Logger
	now       func() time.Time
}

func NewRecurringExpenseService(recurring RecurringExpenseStore, logger *zap.Logger) *RecurringExpenseService {
	return &RecurringExpenseService{
		recurring: recurring,
		logger:    logger,
		now:       time.Now,
	}
}

func validateRecurringExpense(item *models.RecurringExpense) error {
	if item.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if item.Amount.Sign() < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}
	if item.DayOfMonth < 1 || item.DayOfMonth > 31 {
		return fmt.Errorf("%w: day of month must be between 1 and 31", ErrValidation)
	}
	if item.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrValidation)
	}
	if item.EndDate != nil && item.DurationMonths != nil {
		return fmt.Errorf("%w: end date and duration are mutually exclusive", ErrValidation)
	}
	return nil
}

func (s *RecurringExpenseService) Create(ctx context.Context, item *models.RecurringExpense) (*models.RecurringExpense, error) {
	if err := validateRecurringExpense(item); err != nil {
		return nil, err
	}

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := s.now()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.recurring.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create recurring expense: %w", err)
	}

	s.logger.Info("Recurring expense created",
		zap.String("id", item.ID.String()),
		zap.String("name", item.Name),
	)
	return item, nil
}

func (s *RecurringExpenseService) Get(ctx context.Context, id uuid.UUID) (*models.RecurringExpense, error) {
	item, err := s.recurring.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecurringExpenseNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *RecurringExpenseService) List(ctx context.Context) ([]models.RecurringExpense, error) {
	return s.recurring.List(ctx)
}

func (s *RecurringExpenseService) Update(ctx context.Context, item *models.RecurringExpense) (*models.RecurringExpense, error) {
	if err := validateRecurringExpense(item); err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = s.now()

	if err := s.recurring.Update(ctx, item); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecurringExpenseNotFound
		}
		return nil, fmt.Errorf("update recurring expense: %w", err)
	}
	return item, nil
}

func (s *RecurringExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.recurring.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRecurringExpenseNotFound
		}
		return fmt.Errorf("delete recurring expense: %w", err)
	}
	return nil
}

// Toggle flips the enabled flag and returns the updated template.
func (s *RecurringExpenseService) Toggle(ctx context.Context, id uuid.UUID) (*models.RecurringExpense, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Enabled = !item.Enabled
	item.UpdatedAt = s.now()

	if err := s.recurring.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("toggle recurring expense: %w", err)
	}
	return item, nil
}
