package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddPaymentSyncsSnapshot(t *testing.T) {
	db := setupTestDB(t)
	branch := seedBranch(t, db, "Main")
	patient := seedPatient(t, db, branch.ID, Patient{
		TreatmentType: TreatmentPackage,
		TreatmentDays: 10,
		PackageCost:   5000,
		TotalAmount:   5000,
		DueAmount:     5000,
	})

	payment, totalPaid, due, err := AddPayment(db, patient.ID, 1200, "cash", "First instalment", 3)
	assert.NoError(t, err)
	assert.NotEmpty(t, payment.ReceiptRef)
	assert.Equal(t, 1200.0, totalPaid)
	assert.Equal(t, 3800.0, due)

	_, totalPaid, due, err = AddPayment(db, patient.ID, 800, "upi", "", 3)
	assert.NoError(t, err)
	assert.Equal(t, 2000.0, totalPaid)
	assert.Equal(t, 3000.0, due)

	var reloaded Patient
	assert.NoError(t, db.First(&reloaded, patient.ID).Error)
	assert.Equal(t, 2000.0, reloaded.AdvancePayment)
	assert.Equal(t, 3000.0, reloaded.DueAmount)
}

func TestAddPaymentDefaultRemarks(t *testing.T) {
	db := setupTestDB(t)
	branch := seedBranch(t, db, "Main")
	patient := seedPatient(t, db, branch.ID, Patient{TreatmentType: TreatmentDaily, TreatmentCostPerDay: 400})

	payment, _, _, err := AddPayment(db, patient.ID, 400, "cash", "", 1)
	assert.NoError(t, err)
	assert.Equal(t, "Payment via Mobile", payment.Remarks)
}

func TestAddPaymentValidation(t *testing.T) {
	db := setupTestDB(t)
	branch := seedBranch(t, db, "Main")
	patient := seedPatient(t, db, branch.ID, Patient{TreatmentType: TreatmentDaily, TreatmentCostPerDay: 400})

	_, _, _, err := AddPayment(db, patient.ID, 0, "cash", "", 1)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, _, _, err = AddPayment(db, patient.ID, -50, "cash", "", 1)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, _, _, err = AddPayment(db, patient.ID, 100, "", "", 1)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, _, _, err = AddPayment(db, 9999, 100, "cash", "", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

// A payment collected inside an attendance mark and a standalone payment
// go through the same locked patient load; the snapshot must reflect the
// full ledger after both.
func TestMarkThenPaymentKeepsSnapshotSynced(t *testing.T) {
	db := setupTestDB(t)
	branch := seedBranch(t, db, "Main")
	patient := seedPatient(t, db, branch.ID, Patient{
		TreatmentType:       TreatmentDaily,
		TreatmentCostPerDay: 400,
		TotalAmount:         4000,
		DueAmount:           4000,
	})

	result, err := MarkAttendance(db, MarkAttendanceInput{
		PatientID:     patient.ID,
		Date:          "2026-03-05",
		EmployeeID:    1,
		PaymentAmount: 400,
		Mode:          "cash",
	})
	assert.NoError(t, err)
	assert.NotNil(t, result.PaymentCollected)

	_, totalPaid, due, err := AddPayment(db, patient.ID, 600, "cash", "", 1)
	assert.NoError(t, err)
	assert.Equal(t, 1000.0, totalPaid)
	assert.Equal(t, 3000.0, due)

	var reloaded Patient
	assert.NoError(t, db.First(&reloaded, patient.ID).Error)
	assert.Equal(t, 1000.0, reloaded.AdvancePayment)
	assert.Equal(t, 3000.0, reloaded.DueAmount)
}

func TestPaymentsForPatientNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	branch := seedBranch(t, db, "Main")
	patient := seedPatient(t, db, branch.ID, Patient{TreatmentType: TreatmentDaily, TreatmentCostPerDay: 400})

	_, _, _, err := AddPayment(db, patient.ID, 100, "cash", "first", 1)
	assert.NoError(t, err)
	_, _, _, err = AddPayment(db, patient.ID, 200, "cash", "second", 1)
	assert.NoError(t, err)

	payments, err := PaymentsForPatient(db, patient.ID)
	assert.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.Equal(t, "second", payments[0].Remarks)
}
