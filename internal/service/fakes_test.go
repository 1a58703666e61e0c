package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"jizhang/internal/models"
	"jizhang/internal/repository"
)

// In-memory stores mirroring the repository behavior, including
// pgx.ErrNoRows on missing ids.

// fakeTxRunner counts transaction boundaries; rollback semantics stay
// with the database and are not simulated.
type fakeTxRunner struct {
	calls int
}

func (f *fakeTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeTransactionStore struct {
	byID  map[uuid.UUID]*models.Transaction
	order []uuid.UUID

	createErr error
	updateErr error
	deleteErr error
}

func newFakeTransactionStore() *fakeTransactionStore {
	return &fakeTransactionStore{byID: map[uuid.UUID]*models.Transaction{}}
}

func (f *fakeTransactionStore) Create(_ context.Context, tx *models.Transaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *tx
	f.byID[tx.ID] = &cp
	f.order = append(f.order, tx.ID)
	return nil
}

func (f *fakeTransactionStore) GetByID(_ context.Context, id uuid.UUID) (*models.Transaction, error) {
	tx, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *tx
	return &cp, nil
}

func (f *fakeTransactionStore) all() []models.Transaction {
	out := make([]models.Transaction, 0, len(f.order))
	for _, id := range f.order {
		if tx, ok := f.byID[id]; ok {
			out = append(out, *tx)
		}
	}
	return out
}

func (f *fakeTransactionStore) List(_ context.Context, _ repository.TransactionFilter) ([]models.Transaction, int, error) {
	items := f.all()
	return items, len(items), nil
}

func (f *fakeTransactionStore) ListAll(_ context.Context) ([]models.Transaction, error) {
	return f.all(), nil
}

func (f *fakeTransactionStore) ListByDateRange(_ context.Context, start, end time.Time) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range f.all() {
		if tx.Date.Before(start) || tx.Date.After(end) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func (f *fakeTransactionStore) Update(_ context.Context, tx *models.Transaction) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[tx.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *tx
	f.byID[tx.ID] = &cp
	return nil
}

func (f *fakeTransactionStore) Delete(_ context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeTransactionStore) ConfirmPayment(_ context.Context, id uuid.UUID, accountType models.PaymentAccountType, at time.Time) error {
	tx, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	tx.PaymentConfirmed = true
	tx.PaymentAccountType = &accountType
	tx.PaymentConfirmedAt = &at
	tx.UpdatedAt = at
	return nil
}

func (f *fakeTransactionStore) ConfirmInvoice(_ context.Context, id uuid.UUID, invoiceID *string, at time.Time) error {
	tx, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	tx.InvoiceCompleted = true
	tx.InvoiceConfirmedAt = &at
	if invoiceID != nil {
		tx.InvoiceID = invoiceID
	}
	tx.UpdatedAt = at
	return nil
}

func (f *fakeTransactionStore) SkipInvoice(_ context.Context, id uuid.UUID, at time.Time) error {
	tx, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	tx.InvoiceNeeded = false
	tx.UpdatedAt = at
	return nil
}

func (f *fakeTransactionStore) ConfirmTaxDeclare(_ context.Context, id uuid.UUID, taxPeriod string, at time.Time) error {
	tx, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	tx.TaxDeclared = true
	tx.TaxDeclaredAt = &at
	tx.TaxPeriod = &taxPeriod
	tx.UpdatedAt = at
	return nil
}

func sortByDateDesc(items []models.Transaction) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
}

func (f *fakeTransactionStore) ListPendingPayments(_ context.Context, txType models.TransactionType) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range f.all() {
		if tx.Type == txType && !tx.PaymentConfirmed {
			out = append(out, tx)
		}
	}
	sortByDateDesc(out)
	return out, nil
}

func (f *fakeTransactionStore) ListPendingInvoices(_ context.Context) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range f.all() {
		if tx.Type != models.TransactionTransfer && tx.InvoiceNeeded && !tx.InvoiceCompleted {
			out = append(out, tx)
		}
	}
	sortByDateDesc(out)
	return out, nil
}

func (f *fakeTransactionStore) ListPendingTaxes(_ context.Context) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range f.all() {
		if tx.Type != models.TransactionTransfer && !tx.TaxDeclared {
			out = append(out, tx)
		}
	}
	sortByDateDesc(out)
	return out, nil
}

type balanceAdjustment struct {
	accountID uuid.UUID
	delta     decimal.Decimal
}

type fakeAccountStore struct {
	byID        map[uuid.UUID]*models.Account
	adjustments []balanceAdjustment

	adjustErr error
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{byID: map[uuid.UUID]*models.Account{}}
}

func (f *fakeAccountStore) add(acc models.Account) {
	cp := acc
	f.byID[acc.ID] = &cp
}

func (f *fakeAccountStore) Create(_ context.Context, acc *models.Account) error {
	f.add(*acc)
	return nil
}

func (f *fakeAccountStore) GetByID(_ context.Context, id uuid.UUID) (*models.Account, error) {
	acc, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *acc
	return &cp, nil
}

func (f *fakeAccountStore) List(_ context.Context) ([]models.Account, error) {
	var out []models.Account
	for _, acc := range f.byID {
		out = append(out, *acc)
	}
	return out, nil
}

func (f *fakeAccountStore) Update(_ context.Context, acc *models.Account) error {
	if _, ok := f.byID[acc.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *acc
	f.byID[acc.ID] = &cp
	return nil
}

func (f *fakeAccountStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeAccountStore) AdjustBalance(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	if f.adjustErr != nil {
		return f.adjustErr
	}
	acc, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	acc.Balance = acc.Balance.Add(delta)
	f.adjustments = append(f.adjustments, balanceAdjustment{accountID: id, delta: delta})
	return nil
}

func (f *fakeAccountStore) balance(id uuid.UUID) decimal.Decimal {
	return f.byID[id].Balance
}

type fakeRecurringStore struct {
	byID  map[uuid.UUID]*models.RecurringExpense
	order []uuid.UUID
}

func newFakeRecurringStore() *fakeRecurringStore {
	return &fakeRecurringStore{byID: map[uuid.UUID]*models.RecurringExpense{}}
}

func (f *fakeRecurringStore) Create(_ context.Context, item *models.RecurringExpense) error {
	cp := *item
	f.byID[item.ID] = &cp
	f.order = append(f.order, item.ID)
	return nil
}

func (f *fakeRecurringStore) GetByID(_ context.Context, id uuid.UUID) (*models.RecurringExpense, error) {
	item, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *item
	return &cp, nil
}

func (f *fakeRecurringStore) List(_ context.Context) ([]models.RecurringExpense, error) {
	out := make([]models.RecurringExpense, 0, len(f.order))
	for _, id := range f.order {
		if item, ok := f.byID[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeRecurringStore) Update(_ context.Context, item *models.RecurringExpense) error {
	if _, ok := f.byID[item.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *item
	f.byID[item.ID] = &cp
	return nil
}

func (f *fakeRecurringStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

type fakeSettingsStore struct {
	taxSettings *models.TaxSettings
	companyInfo *models.CompanyInfo
}

func (f *fakeSettingsStore) GetTaxSettings(_ context.Context) (*models.TaxSettings, error) {
	if f.taxSettings == nil {
		return nil, pgx.ErrNoRows
	}
	cp := *f.taxSettings
	return &cp, nil
}

func (f *fakeSettingsStore) SaveTaxSettings(_ context.Context, s *models.TaxSettings) error {
	cp := *s
	f.taxSettings = &cp
	return nil
}

func (f *fakeSettingsStore) GetCompanyInfo(_ context.Context) (*models.CompanyInfo, error) {
	if f.companyInfo == nil {
		return nil, pgx.ErrNoRows
	}
	cp := *f.companyInfo
	return &cp, nil
}

func (f *fakeSettingsStore) SaveCompanyInfo(_ context.Context, c *models.CompanyInfo) error {
	cp := *c
	f.companyInfo = &cp
	return nil
}
