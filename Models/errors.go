package Models

import "errors"

// Sentinel errors for the decision flows. Handlers translate these into
// stable machine-readable codes instead of the legacy string-matching
// contract.
var (
	ErrNotFound            = errors.New("record not found")
	ErrAlreadyMarked       = errors.New("attendance already marked for this date")
	ErrPaymentRequired     = errors.New("insufficient balance: payment or approval required")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrDuplicateVoucher    = errors.New("voucher number already exists")
	ErrNotPending          = errors.New("attendance is not pending")
	ErrMissingRequired     = errors.New("missing required fields")
	ErrUnknownExpenseState = errors.New("unknown expense status")
)
