package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"jizhang/internal/models"
)

var transactionColumns = []string{
	"id", "type", "amount", "date", "category_id", "account_id", "to_account_id",
	"description", "tags", "attachments",
	"payment_confirmed", "payment_account_type", "payment_confirmed_at",
	"invoice_needed", "invoice_completed", "invoice_confirmed_at", "invoice_id",
	"tax_declared", "tax_declared_at", "tax_period",
	"invoice_issued", "company_account_date",
	"created_at", "updated_at",
}

// TransactionFilter narrows List results. Zero fields are ignored.
type TransactionFilter struct {
	Type       *models.TransactionType
	CategoryID *uuid.UUID
	AccountID  *uuid.UUID
	DateStart  *time.Time
	DateEnd    *time.Time
	Keyword    string
	AmountMin  *decimal.Decimal
	AmountMax  *decimal.Decimal
	Page       int
	PageSize   int
}

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var tx models.Transaction
	err := row.Scan(
		&tx.ID, &tx.Type, &tx.Amount, &tx.Date, &tx.CategoryID, &tx.AccountID, &tx.ToAccountID,
		&tx.Description, &tx.Tags, &tx.Attachments,
		&tx.PaymentConfirmed, &tx.PaymentAccountType, &tx.PaymentConfirmedAt,
		&tx.InvoiceNeeded, &tx.InvoiceCompleted, &tx.InvoiceConfirmedAt, &tx.InvoiceID,
		&tx.TaxDeclared, &tx.TaxDeclaredAt, &tx.TaxPeriod,
		&tx.InvoiceIssued, &tx.CompanyAccountDate,
		&tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *TransactionRepository) queryMany(ctx context.Context, query squirrel.SelectBuilder) ([]models.Transaction, error) {
	sql, args, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := queryFrom(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *tx)
	}
	return transactions, rows.Err()
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Insert("transactions").
		Columns(transactionColumns...).
		Values(
			tx.ID, tx.Type, tx.Amount, tx.Date, tx.CategoryID, tx.AccountID, tx.ToAccountID,
			tx.Description, tx.Tags, tx.Attachments,
			tx.PaymentConfirmed, tx.PaymentAccountType, tx.PaymentConfirmedAt,
			tx.InvoiceNeeded, tx.InvoiceCompleted, tx.InvoiceConfirmedAt, tx.InvoiceID,
			tx.TaxDeclared, tx.TaxDeclaredAt, tx.TaxPeriod,
			tx.InvoiceIssued, tx.CompanyAccountDate,
			tx.CreatedAt, tx.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = queryFrom(ctx, r.db).Exec(ctx, sql, args...)
	return err
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return scanTransaction(queryFrom(ctx, r.db).QueryRow(ctx, sql, args...))
}

func filterConditions(filter TransactionFilter) squirrel.And {
	var conds squirrel.And
	if filter.Type != nil {
		conds = append(conds, squirrel.Eq{"type": *filter.Type})
	}
	if filter.CategoryID != nil {
		conds = append(conds, squirrel.Eq{"category_id": *filter.CategoryID})
	}
	if filter.AccountID != nil {
		conds = append(conds, squirrel.Eq{"account_id": *filter.AccountID})
	}
	if filter.DateStart != nil {
		conds = append(conds, squirrel.GtOrEq{"date": *filter.DateStart})
	}
	if filter.DateEnd != nil {
		conds = append(conds, squirrel.LtOrEq{"date": *filter.DateEnd})
	}
	if filter.Keyword != "" {
		conds = append(conds, squirrel.ILike{"description": "%" + filter.Keyword + "%"})
	}
	if filter.AmountMin != nil {
		conds = append(conds, squirrel.GtOrEq{"amount": *filter.AmountMin})
	}
	if filter.AmountMax != nil {
		conds = append(conds, squirrel.LtOrEq{"amount": *filter.AmountMax})
	}
	return conds
}

// List returns a page of transactions plus the unpaged total.
func (r *TransactionRepository) List(ctx context.Context, filter TransactionFilter) ([]models.Transaction, int, error) {
	conds := filterConditions(filter)

	countQuery := squirrel.Select("count(*)").From("transactions")
	if len(conds) > 0 {
		countQuery = countQuery.Where(conds)
	}
	sql, args, err := countQuery.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := queryFrom(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := squirrel.Select(transactionColumns...).
		From("transactions").
		OrderBy("date DESC", "created_at DESC")
	if len(conds) > 0 {
		query = query.Where(conds)
	}
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset(uint64((page - 1) * filter.PageSize)).Limit(uint64(filter.PageSize))
	}

	transactions, err := r.queryMany(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

// ListAll returns the full snapshot, most recent first. Used by the
// reminder and tax aggregation paths.
func (r *TransactionRepository) ListAll(ctx context.Context) ([]models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		OrderBy("date DESC", "created_at DESC")
	return r.queryMany(ctx, query)
}

func (r *TransactionRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.LtOrEq{"date": end}).
		OrderBy("date DESC", "created_at DESC")
	return r.queryMany(ctx, query)
}

func (r *TransactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Update("transactions").
		Set("type", tx.Type).
		Set("amount", tx.Amount).
		Set("date", tx.Date).
		Set("category_id", tx.CategoryID).
		Set("account_id", tx.AccountID).
		Set("to_account_id", tx.ToAccountID).
		Set("description", tx.Description).
		Set("tags", tx.Tags).
		Set("attachments", tx.Attachments).
		Set("payment_confirmed", tx.PaymentConfirmed).
		Set("payment_account_type", tx.PaymentAccountType).
		Set("payment_confirmed_at", tx.PaymentConfirmedAt).
		Set("invoice_needed", tx.InvoiceNeeded).
		Set("invoice_completed", tx.InvoiceCompleted).
		Set("invoice_confirmed_at", tx.InvoiceConfirmedAt).
		Set("invoice_id", tx.InvoiceID).
		Set("tax_declared", tx.TaxDeclared).
		Set("tax_declared_at", tx.TaxDeclaredAt).
		Set("tax_period", tx.TaxPeriod).
		Set("invoice_issued", tx.InvoiceIssued).
		Set("company_account_date", tx.CompanyAccountDate).
		Set("updated_at", tx.UpdatedAt).
		Where(squirrel.Eq{"id": tx.ID}).
		PlaceholderFormat(squirrel.Dollar)

	return r.execOne(ctx, query)
}

func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("transactions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}
	tag, err := queryFrom(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *TransactionRepository) execOne(ctx context.Context, query squirrel.UpdateBuilder) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}
	tag, err := queryFrom(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Workflow transitions. Each is a targeted update; the service reloads
// the row afterwards so callers always see persisted state.

func (r *TransactionRepository) ConfirmPayment(ctx context.Context, id uuid.UUID, accountType models.PaymentAccountType, at time.Time) error {
	query := squirrel.Update("transactions").
		Set("payment_confirmed", true).
		Set("payment_account_type", accountType).
		Set("payment_confirmed_at", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)
	return r.execOne(ctx, query)
}

func (r *TransactionRepository) ConfirmInvoice(ctx context.Context, id uuid.UUID, invoiceID *string, at time.Time) error {
	query := squirrel.Update("transactions").
		Set("invoice_completed", true).
		Set("invoice_confirmed_at", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)
	if invoiceID != nil {
		query = query.Set("invoice_id", *invoiceID)
	}
	return r.execOne(ctx, query)
}

func (r *TransactionRepository) SkipInvoice(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := squirrel.Update("transactions").
		Set("invoice_needed", false).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)
	return r.execOne(ctx, query)
}

func (r *TransactionRepository) ConfirmTaxDeclare(ctx context.Context, id uuid.UUID, taxPeriod string, at time.Time) error {
	query := squirrel.Update("transactions").
		Set("tax_declared", true).
		Set("tax_declared_at", at).
		Set("tax_period", taxPeriod).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)
	return r.execOne(ctx, query)
}

// Pending queues. Pure reads; recomputed on every call.

func (r *TransactionRepository) ListPendingPayments(ctx context.Context, txType models.TransactionType) ([]models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"payment_confirmed": false, "type": txType}).
		OrderBy("date DESC")
	return r.queryMany(ctx, query)
}

func (r *TransactionRepository) ListPendingInvoices(ctx context.Context) ([]models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.NotEq{"type": models.TransactionTransfer}).
		Where(squirrel.Eq{"invoice_needed": true, "invoice_completed": false}).
		OrderBy("date DESC")
	return r.queryMany(ctx, query)
}

func (r *TransactionRepository) ListPendingTaxes(ctx context.Context) ([]models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.NotEq{"type": models.TransactionTransfer}).
		Where(squirrel.Eq{"tax_declared": false}).
		OrderBy("date DESC")
	return r.queryMany(ctx, query)
}
