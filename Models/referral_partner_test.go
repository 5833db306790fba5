package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	// Missing key reads as zero.
	value, err := GetSettingFloat(db, SettingGlobalRegistrationRate)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, value)

	assert.NoError(t, PutSettingFloat(db, SettingGlobalRegistrationRate, 7.5))
	value, err = GetSettingFloat(db, SettingGlobalRegistrationRate)
	assert.NoError(t, err)
	assert.Equal(t, 7.5, value)

	// Second put updates in place rather than duplicating the key.
	assert.NoError(t, PutSettingFloat(db, SettingGlobalRegistrationRate, 10))
	value, err = GetSettingFloat(db, SettingGlobalRegistrationRate)
	assert.NoError(t, err)
	assert.Equal(t, 10.0, value)

	var count int64
	assert.NoError(t, db.Model(&Setting{}).Where("key = ?", SettingGlobalRegistrationRate).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPartnerTransactionsUsesPartnerRate(t *testing.T) {
	db := setupTestDB(t)
	branch := seedBranch(t, db, "Main")

	partner := ReferralPartner{Name: "Dr. Rao", Status: PartnerActive, RegistrationRate: 10, TestRate: 20}
	assert.NoError(t, db.Create(&partner).Error)

	registration := Registration{
		BranchID:           branch.ID,
		PatientName:        "Referred Patient",
		PhoneNumber:        "9800000010",
		Status:             RegistrationPending,
		ConsultationAmount: 500,
		ReferralPartnerID:  &partner.ID,
	}
	assert.NoError(t, db.Create(&registration).Error)

	order := TestOrder{
		BranchID:          branch.ID,
		PatientName:       "Referred Patient",
		TotalAmount:       1000,
		ReferralPartnerID: &partner.ID,
	}
	assert.NoError(t, db.Create(&order).Error)

	transactions, err := PartnerTransactions(db, partner.ID)
	assert.NoError(t, err)
	assert.Len(t, transactions, 2)

	byKind := map[string]PartnerTransaction{}
	for _, tr := range transactions {
		byKind[tr.Kind] = tr
	}
	assert.Equal(t, 50.0, byKind["registration"].Commission)
	assert.Equal(t, 10.0, byKind["registration"].Rate)
	assert.Equal(t, 200.0, byKind["test"].Commission)
	assert.Equal(t, 20.0, byKind["test"].Rate)
}

func TestPartnerTransactionsGlobalRateFallback(t *testing.T) {
	db := setupTestDB(t)
	branch := seedBranch(t, db, "Main")

	assert.NoError(t, PutSettingFloat(db, SettingGlobalRegistrationRate, 5))
	assert.NoError(t, PutSettingFloat(db, SettingGlobalTestRate, 8))

	partner := ReferralPartner{Name: "Dr. Sen", Status: PartnerActive}
	assert.NoError(t, db.Create(&partner).Error)

	registration := Registration{
		BranchID:           branch.ID,
		PatientName:        "Walk In",
		PhoneNumber:        "9800000011",
		Status:             RegistrationPending,
		ConsultationAmount: 400,
		ReferralPartnerID:  &partner.ID,
	}
	assert.NoError(t, db.Create(&registration).Error)

	order := TestOrder{
		BranchID:          branch.ID,
		PatientName:       "Walk In",
		TotalAmount:       250,
		ReferralPartnerID: &partner.ID,
	}
	assert.NoError(t, db.Create(&order).Error)

	transactions, err := PartnerTransactions(db, partner.ID)
	assert.NoError(t, err)
	assert.Len(t, transactions, 2)

	byKind := map[string]PartnerTransaction{}
	for _, tr := range transactions {
		byKind[tr.Kind] = tr
	}
	assert.Equal(t, 20.0, byKind["registration"].Commission)
	assert.Equal(t, 5.0, byKind["registration"].Rate)
	assert.Equal(t, 20.0, byKind["test"].Commission)
	assert.Equal(t, 8.0, byKind["test"].Rate)
}

func TestPartnerTransactionsUnknownPartner(t *testing.T) {
	db := setupTestDB(t)
	_, err := PartnerTransactions(db, 4242)
	assert.ErrorIs(t, err, ErrNotFound)
}
