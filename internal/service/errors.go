package service

import "errors"

var (
	ErrTransactionNotFound      = errors.New("transaction not found")
	ErrRecurringExpenseNotFound = errors.New("recurring expense not found")
	ErrAccountNotFound          = errors.New("account not found")
	ErrCategoryNotFound         = errors.New("category not found")
	ErrValidation               = errors.New("validation failed")
)
