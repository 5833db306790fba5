package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCostPerDayPackage(t *testing.T) {
	patient := Patient{
		TreatmentType: TreatmentPackage,
		TreatmentDays: 10,
		PackageCost:   5000,
	}
	assert.Equal(t, 500.0, patient.CostPerDay())
}

func TestCostPerDayPackageZeroDays(t *testing.T) {
	patient := Patient{
		TreatmentType: TreatmentPackage,
		TreatmentDays: 0,
		PackageCost:   5000,
	}
	assert.Equal(t, 0.0, patient.CostPerDay())
}

func TestCostPerDayDaily(t *testing.T) {
	patient := Patient{
		TreatmentType:       TreatmentDaily,
		TreatmentCostPerDay: 400,
	}
	assert.Equal(t, 400.0, patient.CostPerDay())
}

func TestEffectiveBalanceDerivedFromLedger(t *testing.T) {
	db := setupTestDB(t)
	branch := seedBranch(t, db, "Main")
	patient := seedPatient(t, db, branch.ID, Patient{
		TreatmentType: TreatmentPackage,
		TreatmentDays: 10,
		PackageCost:   5000,
		StartDate:     "2026-03-01",
	})

	_, _, _, err := AddPayment(db, patient.ID, 1200, "cash", "", 1)
	assert.NoError(t, err)

	balance, sessions, err := EffectiveBalance(db, &patient)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), sessions)
	assert.Equal(t, 1200.0, balance)

	// One session at 500/day leaves 700.
	result, err := MarkAttendance(db, MarkAttendanceInput{
		PatientID:  patient.ID,
		Date:       "2026-03-02",
		EmployeeID: 1,
	})
	assert.NoError(t, err)
	assert.Equal(t, 700.0, result.EffectiveBalance)

	balance, sessions, err = EffectiveBalance(db, &patient)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), sessions)
	assert.Equal(t, 700.0, balance)
}

func TestSessionsBeforeStartDateNotCounted(t *testing.T) {
	db := setupTestDB(t)
	branch := seedBranch(t, db, "Main")
	patient := seedPatient(t, db, branch.ID, Patient{
		TreatmentType: TreatmentPackage,
		TreatmentDays: 10,
		PackageCost:   5000,
		StartDate:     "2026-03-01",
	})

	// A mark from before the current plan started.
	err := db.Create(&Attendance{
		PatientID: patient.ID,
		Date:      "2026-02-15",
		Status:    AttendancePresent,
	}).Error
	assert.NoError(t, err)

	_, sessions, err := EffectiveBalance(db, &patient)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), sessions)
}

func TestShortfall(t *testing.T) {
	assert.Equal(t, 300.0, Shortfall(200, 500))
	assert.Equal(t, 0.0, Shortfall(500, 500))
	assert.Equal(t, 0.0, Shortfall(800, 500))
}
