package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"jizhang/internal/models"
)

const dateLayout = "2006-01-02"

type AttachmentPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

type TransactionRequest struct {
	Type        string              `json:"type"`
	Amount      float64             `json:"amount"`
	Date        string              `json:"date"`
	CategoryID  *string             `json:"categoryId"`
	AccountID   string              `json:"accountId"`
	ToAccountID *string             `json:"toAccountId"`
	Description string              `json:"description"`
	Tags        []string            `json:"tags"`
	Attachments []AttachmentPayload `json:"attachments"`

	PaymentConfirmed   bool    `json:"paymentConfirmed"`
	PaymentAccountType *string `json:"paymentAccountType"`

	InvoiceNeeded    bool    `json:"invoiceNeeded"`
	InvoiceCompleted bool    `json:"invoiceCompleted"`
	InvoiceID        *string `json:"invoiceId"`

	TaxDeclared bool    `json:"taxDeclared"`
	TaxPeriod   *string `json:"taxPeriod"`

	InvoiceIssued      bool    `json:"invoiceIssued"`
	CompanyAccountDate *string `json:"companyAccountDate"`
}

func parseOptionalUUID(s *string, field string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", field, err)
	}
	return &id, nil
}

func parseOptionalDate(s *string, field string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", field, err)
	}
	return &d, nil
}

// ToModel parses the payload into a transaction. Identifier and date
// parse failures surface here; semantic validation happens in the
// service layer.
func (r *TransactionRequest) ToModel() (*models.Transaction, error) {
	accountID, err := uuid.Parse(r.AccountID)
	if err != nil {
		return nil, fmt.Errorf("invalid accountId: %w", err)
	}
	categoryID, err := parseOptionalUUID(r.CategoryID, "categoryId")
	if err != nil {
		return nil, err
	}
	toAccountID, err := parseOptionalUUID(r.ToAccountID, "toAccountId")
	if err != nil {
		return nil, err
	}
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	companyAccountDate, err := parseOptionalDate(r.CompanyAccountDate, "companyAccountDate")
	if err != nil {
		return nil, err
	}

	var accountType *models.PaymentAccountType
	if r.PaymentAccountType != nil && *r.PaymentAccountType != "" {
		t := models.PaymentAccountType(*r.PaymentAccountType)
		accountType = &t
	}

	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	attachments := make([]models.Attachment, 0, len(r.Attachments))
	for _, a := range r.Attachments {
		attachments = append(attachments, models.Attachment{
			ID:   a.ID,
			Name: a.Name,
			URL:  a.URL,
			Type: a.Type,
			Size: a.Size,
		})
	}

	return &models.Transaction{
		Type:               models.TransactionType(r.Type),
		Amount:             decimal.NewFromFloat(r.Amount),
		Date:               date,
		CategoryID:         categoryID,
		AccountID:          accountID,
		ToAccountID:        toAccountID,
		Description:        r.Description,
		Tags:               tags,
		Attachments:        attachments,
		PaymentConfirmed:   r.PaymentConfirmed,
		PaymentAccountType: accountType,
		InvoiceNeeded:      r.InvoiceNeeded,
		InvoiceCompleted:   r.InvoiceCompleted,
		InvoiceID:          r.InvoiceID,
		TaxDeclared:        r.TaxDeclared,
		TaxPeriod:          r.TaxPeriod,
		InvoiceIssued:      r.InvoiceIssued,
		CompanyAccountDate: companyAccountDate,
	}, nil
}

type TransactionResponse struct {
	ID          string              `json:"id"`
	Type        string              `json:"type"`
	Amount      float64             `json:"amount"`
	Date        string              `json:"date"`
	CategoryID  *string             `json:"categoryId"`
	AccountID   string              `json:"accountId"`
	ToAccountID *string             `json:"toAccountId"`
	Description string              `json:"description"`
	Tags        []string            `json:"tags"`
	Attachments []AttachmentPayload `json:"attachments"`

	PaymentConfirmed   bool    `json:"paymentConfirmed"`
	PaymentAccountType *string `json:"paymentAccountType"`
	PaymentConfirmedAt *string `json:"paymentConfirmedAt"`

	InvoiceNeeded      bool    `json:"invoiceNeeded"`
	InvoiceCompleted   bool    `json:"invoiceCompleted"`
	InvoiceConfirmedAt *string `json:"invoiceConfirmedAt"`
	InvoiceID          *string `json:"invoiceId"`

	TaxDeclared   bool    `json:"taxDeclared"`
	TaxDeclaredAt *string `json:"taxDeclaredAt"`
	TaxPeriod     *string `json:"taxPeriod"`

	InvoiceIssued      bool    `json:"invoiceIssued"`
	CompanyAccountDate *string `json:"companyAccountDate"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func FromTransaction(tx *models.Transaction) TransactionResponse {
	var accountType *string
	if tx.PaymentAccountType != nil {
		s := string(*tx.PaymentAccountType)
		accountType = &s
	}

	attachments := make([]AttachmentPayload, 0, len(tx.Attachments))
	for _, a := range tx.Attachments {
		attachments = append(attachments, AttachmentPayload{
			ID:   a.ID,
			Name: a.Name,
			URL:  a.URL,
			Type: a.Type,
			Size: a.Size,
		})
	}

	tags := tx.Tags
	if tags == nil {
		tags = []string{}
	}

	return TransactionResponse{
		ID:                 tx.ID.String(),
		Type:               string(tx.Type),
		Amount:             tx.Amount.InexactFloat64(),
		Date:               tx.Date.Format(dateLayout),
		CategoryID:         uuidString(tx.CategoryID),
		AccountID:          tx.AccountID.String(),
		ToAccountID:        uuidString(tx.ToAccountID),
		Description:        tx.Description,
		Tags:               tags,
		Attachments:        attachments,
		PaymentConfirmed:   tx.PaymentConfirmed,
		PaymentAccountType: accountType,
		PaymentConfirmedAt: formatTimestamp(tx.PaymentConfirmedAt),
		InvoiceNeeded:      tx.InvoiceNeeded,
		InvoiceCompleted:   tx.InvoiceCompleted,
		InvoiceConfirmedAt: formatTimestamp(tx.InvoiceConfirmedAt),
		InvoiceID:          tx.InvoiceID,
		TaxDeclared:        tx.TaxDeclared,
		TaxDeclaredAt:      formatTimestamp(tx.TaxDeclaredAt),
		TaxPeriod:          tx.TaxPeriod,
		InvoiceIssued:      tx.InvoiceIssued,
		CompanyAccountDate: formatDate(tx.CompanyAccountDate),
		CreatedAt:          tx.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          tx.UpdatedAt.Format(time.RFC3339),
	}
}

func FromTransactions(transactions []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		out = append(out, FromTransaction(&transactions[i]))
	}
	return out
}

type TransactionListResponse struct {
	Data     []TransactionResponse `json:"data"`
	Total    int                   `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"pageSize"`
}

type ConfirmPaymentRequest struct {
	AccountType string `json:"accountType"`
}

type ConfirmInvoiceRequest struct {
	InvoiceID *string `json:"invoiceId"`
}

type ConfirmTaxRequest struct {
	TaxPeriod string `json:"taxPeriod"`
}
