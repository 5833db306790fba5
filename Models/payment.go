package Models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is an append-only ledger entry. Rows are never updated or
// deleted; corrections are new entries.
type Payment struct {
	gorm.Model
	PatientID     uint    `json:"patient_id"`
	Amount        float64 `json:"amount"`
	Mode          string  `json:"mode"`
	PaymentDate   string  `json:"payment_date"`
	Remarks       string  `json:"remarks"`
	ReceiptRef    string  `json:"receipt_ref" gorm:"unique"`
	ProcessedByID uint    `json:"processed_by_id"`
}

// RecordPayment appends a ledger entry and re-syncs the patient's
// advance/due snapshot columns from the ledger. It runs on the caller's
// transaction so an attendance mark and its payment commit together.
// Returns the payment, the new paid total and the new due amount.
func RecordPayment(tx *gorm.DB, patientID uint, amount float64, mode, remarks string, employeeID uint) (*Payment, float64, float64, error) {
	if amount <= 0 || mode == "" {
		return nil, 0, 0, ErrInvalidAmount
	}

	// Row lock so concurrent payments serialize on the patient and the
	// snapshot columns never miss a committed ledger entry.
	var patient Patient
	if err := lockForUpdate(tx).Model(&Patient{}).Where("id = ?", patientID).First(&patient).Error; err != nil {
		return nil, 0, 0, ErrNotFound
	}

	if remarks == "" {
		remarks = "Payment via Mobile"
	}

	payment := Payment{
		PatientID:     patientID,
		Amount:        amount,
		Mode:          mode,
		PaymentDate:   time.Now().Format("2006-01-02"),
		Remarks:       remarks,
		ReceiptRef:    uuid.NewString(),
		ProcessedByID: employeeID,
	}
	if err := tx.Create(&payment).Error; err != nil {
		return nil, 0, 0, err
	}

	totalPaid, err := PaidTotal(tx, patientID)
	if err != nil {
		return nil, 0, 0, err
	}
	dueAmount := patient.TotalAmount - totalPaid

	if err := tx.Model(&Patient{}).Where("id = ?", patientID).
		Updates(map[string]interface{}{"advance_payment": totalPaid, "due_amount": dueAmount}).Error; err != nil {
		return nil, 0, 0, err
	}

	return &payment, totalPaid, dueAmount, nil
}

// AddPayment is the standalone payment flow (outside an attendance mark),
// wrapped in its own transaction.
func AddPayment(db *gorm.DB, patientID uint, amount float64, mode, remarks string, employeeID uint) (*Payment, float64, float64, error) {
	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	payment, totalPaid, dueAmount, err := RecordPayment(tx, patientID, amount, mode, remarks, employeeID)
	if err != nil {
		tx.Rollback()
		return nil, 0, 0, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, 0, 0, err
	}
	return payment, totalPaid, dueAmount, nil
}

func PaymentsForPatient(db *gorm.DB, patientID uint) ([]Payment, error) {
	var payments []Payment
	err := db.Model(&Payment{}).
		Where("patient_id = ?", patientID).
		Order("payment_date DESC, id DESC").
		Find(&payments).Error
	return payments, err
}
