package Models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	AttendancePresent = "present"
	AttendancePending = "pending"
)

// Attendance is the per-patient daily presence record. The unique index on
// (patient_id, attendance_date) is the correctness backstop for concurrent
// mark attempts: whichever transaction commits second fails the insert.
type Attendance struct {
	gorm.Model
	PatientID  uint   `json:"patient_id" gorm:"uniqueIndex:idx_attendance_patient_date"`
	Date       string `json:"attendance_date" gorm:"column:attendance_date;uniqueIndex:idx_attendance_patient_date"`
	Status     string `json:"status"`
	Remarks    string `json:"remarks"`
	MarkedByID uint   `json:"marked_by_id"`
}

type MarkAttendanceInput struct {
	PatientID     uint
	Date          string // defaults to today
	EmployeeID    uint
	PaymentAmount float64
	Mode          string
	Remarks       string
	MarkAsPending bool
}

// MarkAttendanceResult reports what the mark decided, for the UI.
type MarkAttendanceResult struct {
	Attendance       Attendance      `json:"attendance"`
	PaymentCollected *Payment        `json:"payment_collected,omitempty"`
	EffectiveBalance float64         `json:"effective_balance"`
	CostPerDay       float64         `json:"cost_per_day"`
	Progress         PatientProgress `json:"progress"`
}

// MarkAttendance runs the full presence decision in one transaction:
// balance check, attendance insert, optional payment insert, and the due
// recompute. The rules:
//
//   - balance >= cost per day: mark present, nothing to collect
//   - otherwise a payment covering the shortfall must accompany the mark,
//     or the caller asks for a pending mark awaiting approval
//   - a second mark for the same (patient, date) is rejected without
//     touching the ledger
func MarkAttendance(db *gorm.DB, input MarkAttendanceInput) (*MarkAttendanceResult, error) {
	if input.Date == "" {
		input.Date = time.Now().Format("2006-01-02")
	}

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Lock the patient row so a concurrent mark or payment on the same
	// patient waits for this balance decision to commit.
	var patient Patient
	if err := lockForUpdate(tx).Model(&Patient{}).Where("id = ?", input.PatientID).First(&patient).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var existing int64
	if err := tx.Model(&Attendance{}).
		Where("patient_id = ? AND attendance_date = ?", input.PatientID, input.Date).
		Count(&existing).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if existing > 0 {
		tx.Rollback()
		return nil, ErrAlreadyMarked
	}

	balance, _, err := EffectiveBalance(tx, &patient)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	costPerDay := patient.CostPerDay()

	attendance := Attendance{
		PatientID:  input.PatientID,
		Date:       input.Date,
		Status:     AttendancePresent,
		Remarks:    input.Remarks,
		MarkedByID: input.EmployeeID,
	}

	var collected *Payment
	if balance < costPerDay {
		shortfall := Shortfall(balance, costPerDay)
		switch {
		case input.PaymentAmount >= shortfall && input.PaymentAmount > 0:
			remarks := input.Remarks
			if remarks == "" {
				remarks = "Collected with attendance"
			}
			payment, _, _, err := RecordPayment(tx, input.PatientID, input.PaymentAmount, input.Mode, remarks, input.EmployeeID)
			if err != nil {
				tx.Rollback()
				return nil, err
			}
			collected = payment
		case input.MarkAsPending:
			attendance.Status = AttendancePending
		default:
			tx.Rollback()
			return nil, ErrPaymentRequired
		}
	}

	if err := tx.Create(&attendance).Error; err != nil {
		tx.Rollback()
		// A concurrent mark that won the race trips the unique index here.
		if strings.Contains(strings.ToLower(err.Error()), "unique") ||
			strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return nil, ErrAlreadyMarked
		}
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	newBalance, _, err := EffectiveBalance(db, &patient)
	if err != nil {
		return nil, err
	}
	progress, err := GetPatientProgress(db, &patient)
	if err != nil {
		return nil, err
	}

	return &MarkAttendanceResult{
		Attendance:       attendance,
		PaymentCollected: collected,
		EffectiveBalance: newBalance,
		CostPerDay:       costPerDay,
		Progress:         progress,
	}, nil
}

// ApproveAttendance flips a pending mark to present. The session was
// already counted against the balance when the pending row was written, so
// approval changes status only.
func ApproveAttendance(db *gorm.DB, attendanceID uint) error {
	var attendance Attendance
	if err := db.Model(&Attendance{}).Where("id = ?", attendanceID).First(&attendance).Error; err != nil {
		return ErrNotFound
	}
	if attendance.Status != AttendancePending {
		return ErrNotPending
	}
	return db.Model(&Attendance{}).Where("id = ?", attendanceID).
		Update("status", AttendancePresent).Error
}

// RejectAttendance removes a pending mark, releasing the consumed session.
func RejectAttendance(db *gorm.DB, attendanceID uint) error {
	var attendance Attendance
	if err := db.Model(&Attendance{}).Where("id = ?", attendanceID).First(&attendance).Error; err != nil {
		return ErrNotFound
	}
	if attendance.Status != AttendancePending {
		return ErrNotPending
	}
	return db.Unscoped().Delete(&Attendance{}, "id = ?", attendanceID).Error
}

// AttendanceHistory lists a patient's marks, newest first.
func AttendanceHistory(db *gorm.DB, patientID uint, limit int) ([]Attendance, error) {
	var history []Attendance
	err := db.Model(&Attendance{}).
		Where("patient_id = ?", patientID).
		Order("attendance_date DESC").
		Limit(limit).
		Find(&history).Error
	return history, err
}
