package Models

import "strings"

// PatientStatus is the canonical treatment status vocabulary. The legacy
// data carried free-form strings ("active", "Active", "p", "Partially_Paid")
// so every status entering the system goes through NormalizeStatus exactly
// once, at the data-access boundary.
type PatientStatus string

const (
	StatusActive        PatientStatus = "active"
	StatusOngoing       PatientStatus = "ongoing"
	StatusPartiallyPaid PatientStatus = "partially_paid"
	StatusFullyPaid     PatientStatus = "fully_paid"
	StatusCompleted     PatientStatus = "completed"
	StatusDischarged    PatientStatus = "discharged"
	StatusCancelled     PatientStatus = "cancelled"
	StatusInactive      PatientStatus = "inactive"
)

var statusAliases = map[string]PatientStatus{
	"active":         StatusActive,
	"ongoing":        StatusOngoing,
	"p":              StatusPartiallyPaid,
	"partially_paid": StatusPartiallyPaid,
	"partial":        StatusPartiallyPaid,
	"f":              StatusFullyPaid,
	"fully_paid":     StatusFullyPaid,
	"completed":      StatusCompleted,
	"discharged":     StatusDischarged,
	"cancelled":      StatusCancelled,
	"canceled":       StatusCancelled,
	"inactive":       StatusInactive,
}

// NormalizeStatus maps any observed legacy spelling onto the closed
// vocabulary. Unknown values become inactive rather than leaking through.
func NormalizeStatus(raw string) PatientStatus {
	key := strings.ToLower(strings.TrimSpace(raw))
	if status, ok := statusAliases[key]; ok {
		return status
	}
	return StatusInactive
}

// IsInProgress reports whether a patient is still actively under treatment.
func (s PatientStatus) IsInProgress() bool {
	switch s {
	case StatusActive, StatusOngoing, StatusPartiallyPaid:
		return true
	}
	return false
}

// IsClosed reports whether treatment finished in any terminal form.
func (s PatientStatus) IsClosed() bool {
	switch s {
	case StatusCompleted, StatusDischarged, StatusFullyPaid:
		return true
	}
	return false
}

// InProgressStatuses and ClosedStatuses are the SQL-side equivalents of the
// predicates above, for use in WHERE ... IN clauses.
var (
	InProgressStatuses = []string{string(StatusActive), string(StatusOngoing), string(StatusPartiallyPaid)}
	ClosedStatuses     = []string{string(StatusCompleted), string(StatusDischarged), string(StatusFullyPaid)}
)
