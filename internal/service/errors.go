package service

import "errors"

// Sentinel errors for the billing/inventory core. Handlers map these to
// HTTP statuses with errors.Is; services always return them before any
// state mutation, so a failed call leaves store and bill history unchanged.
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductExists       = errors.New("product id already exists")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrDuplicateBillNumber = errors.New("bill number already exists")
	ErrBillNotFound        = errors.New("bill not found")
)
