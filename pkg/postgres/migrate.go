package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT '',
		balance NUMERIC(18,2) NOT NULL DEFAULT 0,
		initial_balance NUMERIC(18,2) NOT NULL DEFAULT 0,
		icon TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		icon TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '',
		parent_id UUID,
		sort INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id UUID PRIMARY KEY,
		type TEXT NOT NULL,
		amount NUMERIC(18,2) NOT NULL,
		date TIMESTAMPTZ NOT NULL,
		category_id UUID,
		account_id UUID NOT NULL,
		to_account_id UUID,
		description TEXT NOT NULL DEFAULT '',
		tags TEXT[] NOT NULL DEFAULT '{}',
		attachments JSONB NOT NULL DEFAULT '[]',
		payment_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
		payment_account_type TEXT,
		payment_confirmed_at TIMESTAMPTZ,
		invoice_needed BOOLEAN NOT NULL DEFAULT TRUE,
		invoice_completed BOOLEAN NOT NULL DEFAULT FALSE,
		invoice_confirmed_at TIMESTAMPTZ,
		invoice_id TEXT,
		tax_declared BOOLEAN NOT NULL DEFAULT FALSE,
		tax_declared_at TIMESTAMPTZ,
		tax_period TEXT,
		invoice_issued BOOLEAN NOT NULL DEFAULT FALSE,
		company_account_date TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions (date)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions (account_id)`,
	`CREATE TABLE IF NOT EXISTS recurring_expenses (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		amount NUMERIC(18,2) NOT NULL,
		day_of_month INTEGER NOT NULL,
		category_id UUID,
		account_id UUID,
		note TEXT NOT NULL DEFAULT '',
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ,
		duration_months INTEGER,
		enabled BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tax_settings (
		id UUID PRIMARY KEY,
		vat_rate NUMERIC(8,4) NOT NULL,
		vat_threshold_quarterly NUMERIC(18,2) NOT NULL,
		additional_tax_rate NUMERIC(8,4) NOT NULL,
		income_tax_enabled BOOLEAN NOT NULL DEFAULT TRUE,
		province TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		taxpayer_type TEXT NOT NULL DEFAULT 'small',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS company_info (
		id UUID PRIMARY KEY,
		company_name TEXT NOT NULL DEFAULT '',
		tax_number TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		bank_name TEXT NOT NULL DEFAULT '',
		bank_account TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	logger.Info("Database schema ready")
	return nil
}
