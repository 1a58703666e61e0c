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

var categoryColumns = []string{
	"id", "name", "type", "icon", "color", "parent_id", "sort", "created_at",
}

type CategoryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCategoryRepository(db *pgxpool.Pool, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:     db,
		logger: logger,
	}
}

func scanCategory(row pgx.Row) (*models.Category, error) {
	var cat models.Category
	err := row.Scan(
		&cat.ID, &cat.Name, &cat.Type, &cat.Icon, &cat.Color, &cat.ParentID, &cat.Sort, &cat.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(ctx context.Context, cat *models.Category) error {
	query := squirrel.Insert("categories").
		Columns(categoryColumns...).
		Values(cat.ID, cat.Name, cat.Type, cat.Icon, cat.Color, cat.ParentID, cat.Sort, cat.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = queryFrom(ctx, r.db).Exec(ctx, sql, args...)
	return err
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	query := squirrel.Select(categoryColumns...).
		From("categories").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return scanCategory(queryFrom(ctx, r.db).QueryRow(ctx, sql, args...))
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	query := squirrel.Select(categoryColumns...).
		From("categories").
		OrderBy("sort", "created_at").
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

	var categories []models.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *cat)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, cat *models.Category) error {
	query := squirrel.Update("categories").
		Set("name", cat.Name).
		Set("type", cat.Type).
		Set("icon", cat.Icon).
		Set("color", cat.Color).
		Set("parent_id", cat.ParentID).
		Set("sort", cat.Sort).
		Where(squirrel.Eq{"id": cat.ID}).
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

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("categories").
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
