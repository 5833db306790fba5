package Models

import (
	"gorm.io/gorm"
)

const (
	TreatmentPackage = "package"
	TreatmentDaily   = "daily"
	TreatmentAdvance = "advance"
)

type Patient struct {
	gorm.Model
	RegistrationID      uint    `json:"registration_id" gorm:"uniqueIndex"`
	BranchID            uint    `json:"branch_id"`
	AssignedDoctor      string  `json:"assigned_doctor"`
	TreatmentType       string  `json:"treatment_type"`
	TreatmentDays       int     `json:"treatment_days"`
	PackageCost         float64 `json:"package_cost"`
	TreatmentCostPerDay float64 `json:"treatment_cost_per_day"`
	AdvancePayment      float64 `json:"advance_payment"`
	TotalAmount         float64 `json:"total_amount"`
	DueAmount           float64 `json:"due_amount"`
	StartDate           string  `json:"start_date"`
	EndDate             string  `json:"end_date"`
	Notes               string  `json:"notes"`
	Status              string  `json:"status"`
}

// SetStatus normalizes and stores a status value. All writes go through
// here so the column only ever holds the canonical vocabulary.
func (patient *Patient) SetStatus(raw string) {
	patient.Status = string(NormalizeStatus(raw))
}

func GetPatientByID(db *gorm.DB, id uint) (Patient, error) {
	var patient Patient
	if err := db.Model(&Patient{}).Where("id = ?", id).First(&patient).Error; err != nil {
		return patient, ErrNotFound
	}
	return patient, nil
}

// PatientProgress is the aggregate used by the UI progress bars.
type PatientProgress struct {
	SessionsPresent int64 `json:"sessions_present"`
	TreatmentDays   int   `json:"treatment_days"`
}

func GetPatientProgress(db *gorm.DB, patient *Patient) (PatientProgress, error) {
	var present int64
	err := db.Model(&Attendance{}).
		Where("patient_id = ? AND status = ?", patient.ID, AttendancePresent).
		Count(&present).Error
	if err != nil {
		return PatientProgress{}, err
	}
	return PatientProgress{SessionsPresent: present, TreatmentDays: patient.TreatmentDays}, nil
}
