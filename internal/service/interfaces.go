package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"jizhang/internal/models"
	"jizhang/internal/repository"
)

// Store interfaces are declared on the consumer side so the services
// can be exercised against in-memory fakes. The repository structs are
// the production implementations.

// TxRunner groups several store calls into one atomic unit. The
// production implementation is repository.TxManager.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	List(ctx context.Context, filter repository.TransactionFilter) ([]models.Transaction, int, error)
	ListAll(ctx context.Context) ([]models.Transaction, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]models.Transaction, error)
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error

	ConfirmPayment(ctx context.Context, id uuid.UUID, accountType models.PaymentAccountType, at time.Time) error
	ConfirmInvoice(ctx context.Context, id uuid.UUID, invoiceID *string, at time.Time) error
	SkipInvoice(ctx context.Context, id uuid.UUID, at time.Time) error
	ConfirmTaxDeclare(ctx context.Context, id uuid.UUID, taxPeriod string, at time.Time) error

	ListPendingPayments(ctx context.Context, txType models.TransactionType) ([]models.Transaction, error)
	ListPendingInvoices(ctx context.Context) ([]models.Transaction, error)
	ListPendingTaxes(ctx context.Context) ([]models.Transaction, error)
}

type AccountStore interface {
	Create(ctx context.Context, acc *models.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	Update(ctx context.Context, acc *models.Account) error
	Delete(ctx context.Context, id uuid.UUID) error
	AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
}

type RecurringExpenseStore interface {
	Create(ctx context.Context, item *models.RecurringExpense) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.RecurringExpense, error)
	List(ctx context.Context) ([]models.RecurringExpense, error)
	Update(ctx context.Context, item *models.RecurringExpense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryStore interface {
	Create(ctx context.Context, cat *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, cat *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SettingsStore interface {
	GetTaxSettings(ctx context.Context) (*models.TaxSettings, error)
	SaveTaxSettings(ctx context.Context, s *models.TaxSettings) error
	GetCompanyInfo(ctx context.Context) (*models.CompanyInfo, error)
	SaveCompanyInfo(ctx context.Context, c *models.CompanyInfo) error
}
