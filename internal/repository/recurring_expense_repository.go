package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"jizhang/internal/models"
)

var recurringExpenseColumns = []string{
	"id", "name", "amount", "day_of_month", "category_id", "account_id", "note",
	"start_date", "end_date", "duration_months", "enabled", "created_at", "updated_at",
}

type RecurringExpenseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewRecurringExpenseRepository(db *pgxpool.Pool, logger *zap.Logger) *RecurringExpenseRepository {
	return &RecurringExpenseRepository{
		db:     db,
		logger: logger,
	}
}

func scanRecurringExpense(row pgx.Row) (*models.RecurringExpense, error) {
	var item models.RecurringExpense
	err := row.Scan(
		&item.ID, &item.Name, &item.Amount, &item.DayOfMonth, &item.CategoryID, &item.AccountID, &item.Note,
		&item.StartDate, &item.EndDate, &item.DurationMonths, &item.Enabled, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *RecurringExpenseRepository) Create(ctx context.Context, item *models.RecurringExpense) error {
	query := squirrel.Insert("recurring_expenses").
		Columns(recurringExpenseColumns...).
		Values(
			item.ID, item.Name, item.Amount, item.DayOfMonth, item.CategoryID, item.AccountID, item.Note,
			item.StartDate, item.EndDate, item.DurationMonths, item.Enabled, item.CreatedAt, item.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = queryFrom(ctx, r.db).Exec(ctx, sql, args...)
	return err
}

func (r *RecurringExpenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.RecurringExpense, error) {
	query := squirrel.Select(recurringExpenseColumns...).
		From("recurring_expenses").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return scanRecurringExpense(queryFrom(ctx, r.db).QueryRow(ctx, sql, args...))
}

func (r *RecurringExpenseRepository) List(ctx context.Context) ([]models.RecurringExpense, error) {
	query := squirrel.Select(recurringExpenseColumns...).
		From("recurring_expenses").
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

	var items []models.RecurringExpense
	for rows.Next() {
		item, err := scanRecurringExpense(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *RecurringExpenseRepository) Update(ctx context.Context, item *models.RecurringExpense) error {
	query := squirrel.Update("recurring_expenses").
		Set("name", item.Name).
		Set("amount", item.Amount).
		Set("day_of_month", item.DayOfMonth).
		Set("category_id", item.CategoryID).
		Set("account_id", item.AccountID).
		Set("note", item.Note).
		Set("start_date", item.StartDate).
		Set("end_date", item.EndDate).
		Set("duration_months", item.DurationMonths).
		Set("enabled", item.Enabled).
		Set("updated_at", item.UpdatedAt).
		Where(squirrel.Eq{"id": item.ID}).
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

func (r *RecurringExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("recurring_expenses").
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
