package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"jizhang/internal/models"
)

var serviceNow = time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)

func newTestTransactionService() (*TransactionService, *fakeTransactionStore, *fakeAccountStore) {
	txStore := newFakeTransactionStore()
	accStore := newFakeAccountStore()
	svc := NewTransactionService(txStore, accStore, &fakeTxRunner{}, zap.NewNop())
	svc.now = func() time.Time { return serviceNow }
	return svc, txStore, accStore
}

func testAccount(store *fakeAccountStore, balance int64) uuid.UUID {
	id := uuid.New()
	store.add(models.Account{ID: id, Name: "测试账户", Balance: decimal.NewFromInt(balance)})
	return id
}

func incomeTx(accountID uuid.UUID, amount int64) *models.Transaction {
	return &models.Transaction{
		Type:          models.TransactionIncome,
		Amount:        decimal.NewFromInt(amount),
		Date:          serviceNow.AddDate(0, 0, -1),
		AccountID:     accountID,
		InvoiceNeeded: true,
	}
}

func TestCreateTransaction_AssignsIDAndTimestamps(t *testing.T) {
	svc, store, accounts := newTestTransactionService()
	accID := testAccount(accounts, 1000)

	created, err := svc.Create(context.Background(), incomeTx(accID, 500))
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, serviceNow, created.CreatedAt)
	assert.Equal(t, serviceNow, created.UpdatedAt)

	stored, err := store.GetByID(context.Background(), created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, stored.ID)
}

func TestCreateTransaction_PersistsEmptySlicesForNilTagsAndAttachments(t *testing.T) {
	svc, store, accounts := newTestTransactionService()
	accID := testAccount(accounts, 0)
	ctx := context.Background()

	tx := incomeTx(accID, 100)
	tx.Tags = nil
	tx.Attachments = nil

	created, err := svc.Create(ctx, tx)
	assert.NoError(t, err)

	// A nil slice would hit the NOT NULL tags and attachments columns
	// as SQL NULL, so the stored row must carry empties.
	stored, err := store.GetByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.True(t, stored.Tags != nil)
	assert.Equal(t, 0, len(stored.Tags))
	assert.True(t, stored.Attachments != nil)
	assert.Equal(t, 0, len(stored.Attachments))
}

func TestUpdateTransaction_PersistsEmptySlicesForNilTagsAndAttachments(t *testing.T) {
	svc, store, accounts := newTestTransactionService()
	accID := testAccount(accounts, 0)
	ctx := context.Background()

	tx := incomeTx(accID, 100)
	tx.Tags = []string{"项目A"}
	created, err := svc.Create(ctx, tx)
	assert.NoError(t, err)

	updated := *created
	updated.Tags = nil
	updated.Attachments = nil
	_, err = svc.Update(ctx, &updated)
	assert.NoError(t, err)

	stored, err := store.GetByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.True(t, stored.Tags != nil)
	assert.Equal(t, 0, len(stored.Tags))
	assert.True(t, stored.Attachments != nil)
	assert.Equal(t, 0, len(stored.Attachments))
}

func TestCreateTransaction_AdjustsBalances(t *testing.T) {
	ctx := context.Background()

	t.Run("income credits the account", func(t *testing.T) {
		svc, _, accounts := newTestTransactionService()
		accID := testAccount(accounts, 1000)

		_, err := svc.Create(ctx, incomeTx(accID, 500))
		assert.NoError(t, err)
		assert.True(t, accounts.balance(accID).Equal(decimal.NewFromInt(1500)))
	})

	t.Run("expense debits the account", func(t *testing.T) {
		svc, _, accounts := newTestTransactionService()
		accID := testAccount(accounts, 1000)

		tx := incomeTx(accID, 300)
		tx.Type = models.TransactionExpense
		_, err := svc.Create(ctx, tx)
		assert.NoError(t, err)
		assert.True(t, accounts.balance(accID).Equal(decimal.NewFromInt(700)))
	})

	t.Run("transfer moves between accounts", func(t *testing.T) {
		svc, _, accounts := newTestTransactionService()
		from := testAccount(accounts, 1000)
		to := testAccount(accounts, 200)

		tx := incomeTx(from, 400)
		tx.Type = models.TransactionTransfer
		tx.ToAccountID = &to
		_, err := svc.Create(ctx, tx)
		assert.NoError(t, err)
		assert.True(t, accounts.balance(from).Equal(decimal.NewFromInt(600)))
		assert.True(t, accounts.balance(to).Equal(decimal.NewFromInt(600)))
	})
}

func TestCreateTransaction_TransferLeavesInvoiceAndTaxTracks(t *testing.T) {
	svc, _, accounts := newTestTransactionService()
	from := testAccount(accounts, 1000)
	to := testAccount(accounts, 0)

	tx := incomeTx(from, 100)
	tx.Type = models.TransactionTransfer
	tx.ToAccountID = &to
	tx.InvoiceNeeded = true
	tx.InvoiceIssued = true

	created, err := svc.Create(context.Background(), tx)
	assert.NoError(t, err)
	assert.False(t, created.InvoiceNeeded)
	assert.False(t, created.InvoiceIssued)
}

func TestCreateTransaction_Validation(t *testing.T) {
	svc, _, accounts := newTestTransactionService()
	accID := testAccount(accounts, 0)
	other := testAccount(accounts, 0)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(tx *models.Transaction)
	}{
		{"unknown type", func(tx *models.Transaction) { tx.Type = "refund" }},
		{"negative amount", func(tx *models.Transaction) { tx.Amount = decimal.NewFromInt(-1) }},
		{"zero date", func(tx *models.Transaction) { tx.Date = time.Time{} }},
		{"missing account", func(tx *models.Transaction) { tx.AccountID = uuid.Nil }},
		{"transfer without target", func(tx *models.Transaction) { tx.Type = models.TransactionTransfer }},
		{"target on non-transfer", func(tx *models.Transaction) { tx.ToAccountID = &other }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := incomeTx(accID, 100)
			tt.mutate(tx)
			_, err := svc.Create(ctx, tx)
			assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
		})
	}
}

func TestCreateTransaction_StoreFailureSkipsBalance(t *testing.T) {
	svc, store, accounts := newTestTransactionService()
	accID := testAccount(accounts, 1000)
	store.createErr = errors.New("boom")

	_, err := svc.Create(context.Background(), incomeTx(accID, 500))
	assert.Error(t, err)
	assert.True(t, accounts.balance(accID).Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 0, len(accounts.adjustments))
}

func TestTransactionWrites_GroupStoreAndBalanceInOneUnit(t *testing.T) {
	svc, _, accounts := newTestTransactionService()
	runner := svc.db.(*fakeTxRunner)
	accID := testAccount(accounts, 1000)
	ctx := context.Background()

	created, err := svc.Create(ctx, incomeTx(accID, 500))
	assert.NoError(t, err)
	assert.Equal(t, 1, runner.calls)

	updated := *created
	updated.Amount = decimal.NewFromInt(200)
	_, err = svc.Update(ctx, &updated)
	assert.NoError(t, err)
	assert.Equal(t, 2, runner.calls)

	assert.NoError(t, svc.Delete(ctx, created.ID))
	assert.Equal(t, 3, runner.calls)
}

func TestCreateTransaction_BalanceFailureFailsTheCreate(t *testing.T) {
	svc, _, accounts := newTestTransactionService()
	accID := testAccount(accounts, 1000)
	accounts.adjustErr = errors.New("deadlock detected")

	_, err := svc.Create(context.Background(), incomeTx(accID, 500))
	assert.Error(t, err)
}

func TestUpdateTransaction_RebasesBalance(t *testing.T) {
	svc, _, accounts := newTestTransactionService()
	accID := testAccount(accounts, 1000)
	ctx := context.Background()

	created, err := svc.Create(ctx, incomeTx(accID, 500))
	assert.NoError(t, err)
	assert.True(t, accounts.balance(accID).Equal(decimal.NewFromInt(1500)))

	updated := *created
	updated.Amount = decimal.NewFromInt(200)
	_, err = svc.Update(ctx, &updated)
	assert.NoError(t, err)
	assert.True(t, accounts.balance(accID).Equal(decimal.NewFromInt(1200)))
}

func TestUpdateTransaction_KeepsCreatedAt(t *testing.T) {
	svc, _, accounts := newTestTransactionService()
	accID := testAccount(accounts, 0)
	ctx := context.Background()

	created, err := svc.Create(ctx, incomeTx(accID, 100))
	assert.NoError(t, err)

	later := serviceNow.Add(time.Hour)
	svc.now = func() time.Time { return later }

	updated := *created
	updated.Description = "改了备注"
	result, err := svc.Update(ctx, &updated)
	assert.NoError(t, err)
	assert.Equal(t, created.CreatedAt, result.CreatedAt)
	assert.Equal(t, later, result.UpdatedAt)
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	svc, _, accounts := newTestTransactionService()
	accID := testAccount(accounts, 0)

	tx := incomeTx(accID, 100)
	tx.ID = uuid.New()
	_, err := svc.Update(context.Background(), tx)
	assert.True(t, errors.Is(err, ErrTransactionNotFound), "got %v", err)
}

func TestDeleteTransaction_ReversesBalance(t *testing.T) {
	svc, store, accounts := newTestTransactionService()
	accID := testAccount(accounts, 1000)
	ctx := context.Background()

	created, err := svc.Create(ctx, incomeTx(accID, 500))
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(ctx, created.ID))
	assert.True(t, accounts.balance(accID).Equal(decimal.NewFromInt(1000)))

	_, err = store.GetByID(ctx, created.ID)
	assert.Error(t, err)
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	svc, _, _ := newTestTransactionService()
	err := svc.Delete(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, ErrTransactionNotFound), "got %v", err)
}

func TestConfirmPayment_StampsTrack(t *testing.T) {
	svc, _, accounts := newTestTransactionService()
	accID := testAccount(accounts, 0)
	ctx := context.Background()

	created, err := svc.Create(ctx, incomeTx(accID, 100))
	assert.NoError(t, err)

	confirmed, err := svc.ConfirmPayment(ctx, created.ID, models.PaymentAccountCompany)
	assert.NoError(t, err)
	assert.True(t, confirmed.PaymentConfirmed)
	assert.Equal(t, models.PaymentAccountCompany, *confirmed.PaymentAccountType)
	assert.Equal(t, serviceNow, *confirmed.PaymentConfirmedAt)
}

func TestConfirmPayment_RejectsUnknownAccountType(t *testing.T) {
	svc, _, accounts := newTestTransactionService()
	accID := testAccount(accounts, 0)
	ctx := context.Background()

	created, err := svc.Create(ctx, incomeTx(accID, 100))
	assert.NoError(t, err)

	_, err = svc.ConfirmPayment(ctx, created.ID, "offshore")
	assert.True(t, errors.Is(err, ErrValidation), "got %v", err)
}

func TestConfirmInvoice_RecordsInvoiceID(t *testing.T) {
	svc, _, accounts := newTestTransactionService()
	accID := testAccount(accounts, 0)
	ctx := context.Background()

	created, err := svc.Create(ctx, incomeTx(accID, 100))
	assert.NoError(t, err)

	invoiceID := "INV-2026-001"
	confirmed, err := svc.ConfirmInvoice(ctx, created.ID, &invoiceID)
	assert.NoError(t, err)
	assert.True(t, confirmed.InvoiceCompleted)
	assert.Equal(t, invoiceID, *confirmed.InvoiceID)
	assert.Equal(t, serviceNow, *confirmed.InvoiceConfirmedAt)
}

func TestSkipInvoice_RemovesFromPendingQueuePermanently(t *testing.T) {
	svc, _, accounts := newTestTransactionService()
	accID := testAccount(accounts, 0)
	ctx := context.Background()

	created, err := svc.Create(ctx, incomeTx(accID, 100))
	assert.NoError(t, err)

	pending, err := svc.PendingInvoices(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(pending))

	skipped, err := svc.SkipInvoice(ctx, created.ID)
	assert.NoError(t, err)
	assert.False(t, skipped.InvoiceNeeded)

	pending, err = svc.PendingInvoices(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(pending))
}

func TestConfirmTaxDeclare_DefaultsPeriodToTransactionMonth(t *testing.T) {
	svc, _, accounts := newTestTransactionService()
	accID := testAccount(accounts, 0)
	ctx := context.Background()

	tx := incomeTx(accID, 100)
	tx.Date = time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, tx)
	assert.NoError(t, err)

	confirmed, err := svc.ConfirmTaxDeclare(ctx, created.ID, "")
	assert.NoError(t, err)
	assert.True(t, confirmed.TaxDeclared)
	assert.Equal(t, "2026-01", *confirmed.TaxPeriod)
}

func TestConfirmTaxDeclare_ValidatesPeriodFormat(t *testing.T) {
	svc, _, accounts := newTestTransactionService()
	accID := testAccount(accounts, 0)
	ctx := context.Background()

	created, err := svc.Create(ctx, incomeTx(accID, 100))
	assert.NoError(t, err)

	_, err = svc.ConfirmTaxDeclare(ctx, created.ID, "Q1-2026")
	assert.True(t, errors.Is(err, ErrValidation), "got %v", err)

	confirmed, err := svc.ConfirmTaxDeclare(ctx, created.ID, "2026-02")
	assert.NoError(t, err)
	assert.Equal(t, "2026-02", *confirmed.TaxPeriod)
}

func TestPendingQueues(t *testing.T) {
	svc, _, accounts := newTestTransactionService()
	accID := testAccount(accounts, 10000)
	other := testAccount(accounts, 0)
	ctx := context.Background()

	income, err := svc.Create(ctx, incomeTx(accID, 1000))
	assert.NoError(t, err)

	expense := incomeTx(accID, 200)
	expense.Type = models.TransactionExpense
	_, err = svc.Create(ctx, expense)
	assert.NoError(t, err)

	transfer := incomeTx(accID, 300)
	transfer.Type = models.TransactionTransfer
	transfer.ToAccountID = &other
	_, err = svc.Create(ctx, transfer)
	assert.NoError(t, err)

	incomes, err := svc.PendingIncomePayments(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(incomes))
	assert.Equal(t, models.TransactionIncome, incomes[0].Type)

	expenses, err := svc.PendingExpensePayments(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(expenses))

	// transfers stay out of the invoice and tax queues
	invoices, err := svc.PendingInvoices(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(invoices))

	taxes, err := svc.PendingTaxes(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(taxes))

	// confirming drains the queues
	_, err = svc.ConfirmPayment(ctx, income.ID, models.PaymentAccountCompany)
	assert.NoError(t, err)
	incomes, err = svc.PendingIncomePayments(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(incomes))
}
