package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionIncome, TransactionExpense, TransactionTransfer:
		return true
	}
	return false
}

type PaymentAccountType string

const (
	PaymentAccountCompany  PaymentAccountType = "company"
	PaymentAccountPersonal PaymentAccountType = "personal"
)

// Attachment is a file reference carried on a transaction. Stored as
// jsonb; the file itself lives outside this service.
type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// Transaction is a single financial movement. The three workflow tracks
// (payment, invoice, tax declaration) are independent flag groups, not
// one composite state.
type Transaction struct {
	ID          uuid.UUID       `db:"id"`
	Type        TransactionType `db:"type"`
	Amount      decimal.Decimal `db:"amount"`
	Date        time.Time       `db:"date"`
	CategoryID  *uuid.UUID      `db:"category_id"`
	AccountID   uuid.UUID       `db:"account_id"`
	ToAccountID *uuid.UUID      `db:"to_account_id"` // set iff Type == transfer
	Description string          `db:"description"`
	Tags        []string        `db:"tags"`
	Attachments []Attachment    `db:"attachments"`

	// Payment track
	PaymentConfirmed   bool                `db:"payment_confirmed"`
	PaymentAccountType *PaymentAccountType `db:"payment_account_type"`
	PaymentConfirmedAt *time.Time          `db:"payment_confirmed_at"`

	// Invoice track (not applicable to transfers)
	InvoiceNeeded      bool       `db:"invoice_needed"`
	InvoiceCompleted   bool       `db:"invoice_completed"`
	InvoiceConfirmedAt *time.Time `db:"invoice_confirmed_at"`
	InvoiceID          *string    `db:"invoice_id"`

	// Tax declaration track (not applicable to transfers)
	TaxDeclared   bool       `db:"tax_declared"`
	TaxDeclaredAt *time.Time `db:"tax_declared_at"`
	TaxPeriod     *string    `db:"tax_period"` // "2006-01"

	// Income record fields
	InvoiceIssued      bool       `db:"invoice_issued"`
	CompanyAccountDate *time.Time `db:"company_account_date"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
