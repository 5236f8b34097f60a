package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidTransition is returned when an invoice status change is
// not allowed from the current status.
var ErrInvalidTransition = errors.New("invalid invoice status transition")

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceIssued    InvoiceStatus = "issued"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceDraft, InvoiceIssued, InvoicePaid, InvoiceCancelled:
		return true
	}
	return false
}

// Outstanding reports whether an invoice in this status still counts
// toward receivables.
func (s InvoiceStatus) Outstanding() bool {
	return s == InvoiceDraft || s == InvoiceIssued
}

// CanTransition reports whether a status change from s to next is
// allowed. The forward path is draft -> issued -> paid; any non-paid
// status may move to cancelled. Paid and cancelled are terminal.
func (s InvoiceStatus) CanTransition(next InvoiceStatus) bool {
	switch s {
	case InvoiceDraft:
		return next == InvoiceIssued || next == InvoiceCancelled
	case InvoiceIssued:
		return next == InvoicePaid || next == InvoiceCancelled
	}
	return false
}

// Invoice represents a client invoice raised against a project.
// InvoiceNo is unique within its project, not globally.
type Invoice struct {
	ID          int64
	InvoiceNo   string
	Date        time.Time
	ProjectCode string
	ClientName  string
	Description string
	Amount      decimal.Decimal
	Status      InvoiceStatus
	Remarks     string
}
