package Models

import (
	"gorm.io/gorm"
)

// CostPerDay derives the per-session charge from the treatment terms.
// Package plans spread the package cost over the target day count;
// daily and advance plans carry an explicit per-day rate.
func (patient *Patient) CostPerDay() float64 {
	switch patient.TreatmentType {
	case TreatmentPackage:
		if patient.TreatmentDays > 0 {
			return patient.PackageCost / float64(patient.TreatmentDays)
		}
		return 0
	case TreatmentDaily, TreatmentAdvance:
		return patient.TreatmentCostPerDay
	}
	return 0
}

// SessionsSinceStart counts attendance rows (present and pending) consumed
// under the current plan, i.e. on or after the plan's start date.
func SessionsSinceStart(db *gorm.DB, patient *Patient) (int64, error) {
	startDate := patient.StartDate
	if startDate == "" {
		startDate = "1970-01-01"
	}
	var count int64
	err := db.Model(&Attendance{}).
		Where("patient_id = ? AND attendance_date >= ?", patient.ID, startDate).
		Count(&count).Error
	return count, err
}

// PaidTotal sums the payment ledger for a patient. The payments table is
// the single source of truth; the advance_payment column on the patient is
// only a synced snapshot of it.
func PaidTotal(db *gorm.DB, patientID uint) (float64, error) {
	var paid float64
	err := db.Model(&Payment{}).
		Where("patient_id = ?", patientID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paid).Error
	return paid, err
}

// EffectiveBalance is the prepaid credit remaining: everything paid minus
// everything consumed (sessions under the current plan at the per-day
// rate). It is derived at read time, never stored.
func EffectiveBalance(db *gorm.DB, patient *Patient) (float64, int64, error) {
	paid, err := PaidTotal(db, patient.ID)
	if err != nil {
		return 0, 0, err
	}
	sessions, err := SessionsSinceStart(db, patient)
	if err != nil {
		return 0, 0, err
	}
	consumed := float64(sessions) * patient.CostPerDay()
	return paid - consumed, sessions, nil
}

// Shortfall is the minimum payment needed before a visit can be marked
// present without approval.
func Shortfall(balance, costPerDay float64) float64 {
	if diff := costPerDay - balance; diff > 0 {
		return diff
	}
	return 0
}
