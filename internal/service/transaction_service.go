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
	"jizhang/internal/repository"
)

// TransactionService owns the transaction lifecycle: CRUD, the three
// workflow tracks, and the pending queues. Each write and its balance
// adjustment on the account side run as one database transaction.
type TransactionService struct {
	transactions TransactionStore
	accounts     AccountStore
	db           TxRunner
	logger       *zap.Logger
	now          func() time.Time
}

func NewTransactionService(transactions TransactionStore, accounts AccountStore, db TxRunner, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		accounts:     accounts,
		db:           db,
		logger:       logger,
		now:          time.Now,
	}
}

func validateTransaction(tx *models.Transaction) error {
	if !tx.Type.Valid() {
		return fmt.Errorf("%w: unknown transaction type %q", ErrValidation, tx.Type)
	}
	if tx.Amount.Sign() < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}
	if tx.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if tx.AccountID == uuid.Nil {
		return fmt.Errorf("%w: account is required", ErrValidation)
	}
	if tx.Type == models.TransactionTransfer && tx.ToAccountID == nil {
		return fmt.Errorf("%w: transfer requires a target account", ErrValidation)
	}
	if tx.Type != models.TransactionTransfer && tx.ToAccountID != nil {
		return fmt.Errorf("%w: target account is only valid for transfers", ErrValidation)
	}
	return nil
}

// normalizeTransaction replaces nil slices with empties. A nil slice
// reaches the driver as SQL NULL and the tags and attachments columns
// are NOT NULL.
func normalizeTransaction(tx *models.Transaction) {
	if tx.Tags == nil {
		tx.Tags = []string{}
	}
	if tx.Attachments == nil {
		tx.Attachments = []models.Attachment{}
	}
}

// applyBalance mirrors the transaction onto account balances. Income
// credits the account, expense debits it, a transfer moves the amount
// between the two. reverse undoes a previous application.
func (s *TransactionService) applyBalance(ctx context.Context, tx *models.Transaction, reverse bool) error {
	amount := tx.Amount
	if reverse {
		amount = amount.Neg()
	}

	switch tx.Type {
	case models.TransactionIncome:
		return s.accounts.AdjustBalance(ctx, tx.AccountID, amount)
	case models.TransactionExpense:
		return s.accounts.AdjustBalance(ctx, tx.AccountID, amount.Neg())
	case models.TransactionTransfer:
		if err := s.accounts.AdjustBalance(ctx, tx.AccountID, amount.Neg()); err != nil {
			return err
		}
		if tx.ToAccountID != nil {
			return s.accounts.AdjustBalance(ctx, *tx.ToAccountID, amount)
		}
	}
	return nil
}

func (s *TransactionService) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if err := validateTransaction(tx); err != nil {
		return nil, err
	}

	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	now := s.now()
	tx.CreatedAt = now
	tx.UpdatedAt = now
	normalizeTransaction(tx)

	// Transfers never take part in the invoice or tax tracks.
	if tx.Type == models.TransactionTransfer {
		tx.InvoiceNeeded = false
		tx.InvoiceIssued = false
	}

	err := s.db.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.transactions.Create(ctx, tx); err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}
		if err := s.applyBalance(ctx, tx, false); err != nil {
			return fmt.Errorf("adjust balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transaction created",
		zap.String("id", tx.ID.String()),
		zap.String("type", string(tx.Type)),
	)
	return tx, nil
}

func (s *TransactionService) Get(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return tx, nil
}

func (s *TransactionService) List(ctx context.Context, filter repository.TransactionFilter) ([]models.Transaction, int, error) {
	return s.transactions.List(ctx, filter)
}

func (s *TransactionService) Update(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if err := validateTransaction(tx); err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, tx.ID)
	if err != nil {
		return nil, err
	}

	tx.CreatedAt = existing.CreatedAt
	tx.UpdatedAt = s.now()
	normalizeTransaction(tx)

	err = s.db.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.transactions.Update(ctx, tx); err != nil {
			return fmt.Errorf("update transaction: %w", err)
		}
		// Rebase balances: undo the old movement, apply the new one.
		if err := s.applyBalance(ctx, existing, true); err != nil {
			return fmt.Errorf("adjust balance: %w", err)
		}
		if err := s.applyBalance(ctx, tx, false); err != nil {
			return fmt.Errorf("adjust balance: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	return tx, nil
}

func (s *TransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.transactions.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete transaction: %w", err)
		}
		if err := s.applyBalance(ctx, existing, true); err != nil {
			return fmt.Errorf("adjust balance: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTransactionNotFound
		}
		return err
	}

	s.logger.Info("Transaction deleted", zap.String("id", id.String()))
	return nil
}

// ConfirmPayment marks the payment track confirmed with the account type
// the money landed on. There is no unconfirm.
func (s *TransactionService) ConfirmPayment(ctx context.Context, id uuid.UUID, accountType models.PaymentAccountType) (*models.Transaction, error) {
	if accountType != models.PaymentAccountCompany && accountType != models.PaymentAccountPersonal {
		return nil, fmt.Errorf("%w: unknown payment account type %q", ErrValidation, accountType)
	}

	if err := s.transactions.ConfirmPayment(ctx, id, accountType, s.now()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("confirm payment: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *TransactionService) ConfirmInvoice(ctx context.Context, id uuid.UUID, invoiceID *string) (*models.Transaction, error) {
	if err := s.transactions.ConfirmInvoice(ctx, id, invoiceID, s.now()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("confirm invoice: %w", err)
	}
	return s.Get(ctx, id)
}

// SkipInvoice drops the invoice requirement for good; the transaction
// leaves the pending-invoice queue and never re-enters it.
func (s *TransactionService) SkipInvoice(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	if err := s.transactions.SkipInvoice(ctx, id, s.now()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("skip invoice: %w", err)
	}
	return s.Get(ctx, id)
}

// ConfirmTaxDeclare records the filing period ("2006-01"); an empty
// period defaults to the transaction's own month.
func (s *TransactionService) ConfirmTaxDeclare(ctx context.Context, id uuid.UUID, taxPeriod string) (*models.Transaction, error) {
	if taxPeriod == "" {
		tx, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		taxPeriod = tx.Date.Format("2006-01")
	} else if _, err := time.Parse("2006-01", taxPeriod); err != nil {
		return nil, fmt.Errorf("%w: tax period must be YYYY-MM", ErrValidation)
	}

	if err := s.transactions.ConfirmTaxDeclare(ctx, id, taxPeriod, s.now()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("confirm tax declaration: %w", err)
	}
	return s.Get(ctx, id)
}

// Pending queues feeding the task dashboard.

func (s *TransactionService) PendingIncomePayments(ctx context.Context) ([]models.Transaction, error) {
	return s.transactions.ListPendingPayments(ctx, models.TransactionIncome)
}

func (s *TransactionService) PendingExpensePayments(ctx context.Context) ([]models.Transaction, error) {
	return s.transactions.ListPendingPayments(ctx, models.TransactionExpense)
}

func (s *TransactionService) PendingInvoices(ctx context.Context) ([]models.Transaction, error) {
	return s.transactions.ListPendingInvoices(ctx)
}

func (s *TransactionService) PendingTaxes(ctx context.Context) ([]models.Transaction, error) {
	return s.transactions.ListPendingTaxes(ctx)
}
