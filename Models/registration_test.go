package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToPatient(t *testing.T) {
	db := setupTestDB(t)
	branch := seedBranch(t, db, "Main")

	registration := Registration{
		BranchID:    branch.ID,
		PatientName: "Intake",
		PhoneNumber: "9800000005",
		Status:      RegistrationPending,
	}
	assert.NoError(t, db.Create(&registration).Error)

	patient, err := ConvertToPatient(db, registration.ID, Patient{
		TreatmentType: TreatmentPackage,
		TreatmentDays: 10,
		PackageCost:   5000,
		Status:        "Active",
	})
	assert.NoError(t, err)
	assert.Equal(t, registration.ID, patient.RegistrationID)
	assert.Equal(t, branch.ID, patient.BranchID)
	assert.Equal(t, string(StatusActive), patient.Status)

	var reloaded Registration
	assert.NoError(t, db.First(&reloaded, registration.ID).Error)
	assert.Equal(t, RegistrationConsulted, reloaded.Status)
}

func TestConvertToPatientOnlyOnce(t *testing.T) {
	db := setupTestDB(t)
	branch := seedBranch(t, db, "Main")

	registration := Registration{
		BranchID:    branch.ID,
		PatientName: "Intake",
		PhoneNumber: "9800000006",
		Status:      RegistrationPending,
	}
	assert.NoError(t, db.Create(&registration).Error)

	_, err := ConvertToPatient(db, registration.ID, Patient{TreatmentType: TreatmentDaily, TreatmentCostPerDay: 400})
	assert.NoError(t, err)

	_, err = ConvertToPatient(db, registration.ID, Patient{TreatmentType: TreatmentDaily, TreatmentCostPerDay: 400})
	assert.ErrorIs(t, err, ErrAlreadyConverted)

	var patients int64
	assert.NoError(t, db.Model(&Patient{}).Where("registration_id = ?", registration.ID).Count(&patients).Error)
	assert.Equal(t, int64(1), patients)
}

func TestConvertToPatientMissingRegistration(t *testing.T) {
	db := setupTestDB(t)

	_, err := ConvertToPatient(db, 9999, Patient{TreatmentType: TreatmentDaily})
	assert.ErrorIs(t, err, ErrNotFound)
}
