package Models

import (
	"errors"

	"gorm.io/gorm"
)

const (
	RegistrationPending   = "pending"
	RegistrationConsulted = "consulted"
	RegistrationCancelled = "cancelled"
	RegistrationClosed    = "closed"
)

// Registration is the pre-patient intake record. It may or may not convert
// into a Patient; conversion is one-to-one and guarded by a unique index on
// Patient.RegistrationID.
type Registration struct {
	gorm.Model
	BranchID           uint    `json:"branch_id"`
	PatientName        string  `json:"patient_name"`
	PhoneNumber        string  `json:"phone_number"`
	Age                int     `json:"age"`
	Gender             string  `json:"gender"`
	ChiefComplaint     string  `json:"chief_complaint"`
	ConsultationType   string  `json:"consultation_type"`
	ConsultationAmount float64 `json:"consultation_amount"`
	PaymentMethod      string  `json:"payment_method"`
	ReferralSource     string  `json:"referral_source"`
	ReferredBy         string  `json:"referred_by"`
	ReferralPartnerID  *uint   `json:"referral_partner_id" gorm:"default:null"`
	Status             string  `json:"status"`
}

var ErrAlreadyConverted = errors.New("registration already converted to a patient")

// ConvertToPatient creates a Patient from a consulted registration. The
// treatment terms come from the caller; identity comes from the intake row.
func ConvertToPatient(db *gorm.DB, registrationID uint, patient Patient) (*Patient, error) {
	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var registration Registration
	if err := tx.Model(&Registration{}).Where("id = ?", registrationID).First(&registration).Error; err != nil {
		tx.Rollback()
		return nil, ErrNotFound
	}

	var existing int64
	if err := tx.Model(&Patient{}).Where("registration_id = ?", registrationID).Count(&existing).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if existing > 0 {
		tx.Rollback()
		return nil, ErrAlreadyConverted
	}

	patient.RegistrationID = registrationID
	patient.BranchID = registration.BranchID
	patient.SetStatus(patient.Status)
	if err := tx.Create(&patient).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Model(&Registration{}).Where("id = ?", registrationID).
		Update("status", RegistrationConsulted).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return &patient, nil
}
