package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"jizhang/internal/models"
)

var accountColumns = []string{
	"id", "name", "type", "balance", "initial_balance", "icon", "color",
	"description", "is_default", "created_at", "updated_at",
}

type AccountRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAccountRepository(db *pgxpool.Pool, logger *zap.Logger) *AccountRepository {
	return &AccountRepository{
		db:     db,
		logger: logger,
	}
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var acc models.Account
	err := row.Scan(
		&acc.ID, &acc.Name, &acc.Type, &acc.Balance, &acc.InitialBalance, &acc.Icon, &acc.Color,
		&acc.Description, &acc.IsDefault, &acc.CreatedAt, &acc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *AccountRepository) Create(ctx context.Context, acc *models.Account) error {
	query := squirrel.Insert("accounts").
		Columns(accountColumns...).
		Values(
			acc.ID, acc.Name, acc.Type, acc.Balance, acc.InitialBalance, acc.Icon, acc.Color,
			acc.Description, acc.IsDefault, acc.CreatedAt, acc.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = queryFrom(ctx, r.db).Exec(ctx, sql, args...)
	return err
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	query := squirrel.Select(accountColumns...).
		From("accounts").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return scanAccount(queryFrom(ctx, r.db).QueryRow(ctx, sql, args...))
}

func (r *AccountRepository) List(ctx context.Context) ([]models.Account, error) {
	query := squirrel.Select(accountColumns...).
		From("accounts").
		OrderBy("created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := queryFrom(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *acc)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) Update(ctx context.Context, acc *models.Account) error {
	query := squirrel.Update("accounts").
		Set("name", acc.Name).
		Set("type", acc.Type).
		Set("balance", acc.Balance).
		Set("initial_balance", acc.InitialBalance).
		Set("icon", acc.Icon).
		Set("color", acc.Color).
		Set("description", acc.Description).
		Set("is_default", acc.IsDefault).
		Set("updated_at", acc.UpdatedAt).
		Where(squirrel.Eq{"id": acc.ID}).
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

func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("accounts").
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

// AdjustBalance shifts an account balance by delta (negative to debit).
// The transaction service calls this after every successful write so
// balances track the ledger.
func (r *AccountRepository) AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	query := squirrel.Update("accounts").
		Set("balance", squirrel.Expr("balance + ?", delta)).
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
