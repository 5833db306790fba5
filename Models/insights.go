package Models

import (
	"sort"
	"time"

	"gorm.io/gorm"
)

const insightResultCap = 50

// RiskTier buckets a days-absent count. Boundaries are strict: exactly 14
// days is High, 15 is Critical.
func RiskTier(daysAbsent int) (string, int) {
	switch {
	case daysAbsent > 14:
		return "Critical", 3
	case daysAbsent > 7:
		return "High", 2
	default:
		return "Medium", 1
	}
}

// DriftTier buckets days since a partner's last referral.
func DriftTier(days int) string {
	switch {
	case days > 30:
		return "Critical"
	case days > 20:
		return "High"
	default:
		return "Cold"
	}
}

// DaysBetween counts whole calendar days from a "2006-01-02" date string to
// now, date-to-date (time of day ignored), so tier boundaries are exact.
// Every screen that shows a day gap goes through this one function.
func DaysBetween(dateStr string, now time.Time) (int, bool) {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return 0, false
	}
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24), true
}

type RetentionEntry struct {
	PatientID     uint   `json:"patient_id"`
	PatientName   string `json:"patient_name"`
	PhoneNumber   string `json:"phone_number"`
	BranchName    string `json:"branch_name"`
	TreatmentType string `json:"treatment_type"`
	TreatmentDays int    `json:"treatment_days"`
	CurrentStatus string `json:"current_status"`
	AttendedDays  int64  `json:"attended_days"`
	LastVisitDate string `json:"last_visit_date"`
	DaysAbsent    int    `json:"days_absent"`
	RiskLevel     string `json:"risk_level"`
	RiskScore     int    `json:"risk_score"`
}

// RetentionRadar classifies patients whose treatment is incomplete and who
// have stopped coming. Read-only; safe to run repeatedly.
//
// Eligibility: status outside both the in-progress and the closed
// vocabulary, AND remaining obligation (package: present sessions below the
// target day count; otherwise: not completed), AND at least one present
// mark, since without a last visit the days-absent count is undefined.
func RetentionRadar(db *gorm.DB, branchIDs []uint, now time.Time) ([]RetentionEntry, error) {
	excluded := append(append([]string{}, InProgressStatuses...), ClosedStatuses...)

	type candidate struct {
		Patient
		PatientName string
		PhoneNumber string
		BranchName  string
	}
	query := db.Model(&Patient{}).
		Select("patients.*, registrations.patient_name, registrations.phone_number, branches.name AS branch_name").
		Joins("JOIN registrations ON registrations.id = patients.registration_id").
		Joins("JOIN branches ON branches.id = patients.branch_id").
		Where("patients.status NOT IN ?", excluded)
	// Empty branch list means every branch.
	if len(branchIDs) > 0 {
		query = query.Where("patients.branch_id IN ?", branchIDs)
	}

	var candidates []candidate
	err := query.Scan(&candidates).Error
	if err != nil {
		return nil, err
	}

	entries := make([]RetentionEntry, 0, len(candidates))
	for i := range candidates {
		p := &candidates[i]

		var attended int64
		if err := db.Model(&Attendance{}).
			Where("patient_id = ? AND status = ?", p.ID, AttendancePresent).
			Count(&attended).Error; err != nil {
			return nil, err
		}

		// Remaining obligation guard; both arms kept as the legacy system
		// had them, OR-combined.
		packageIncomplete := p.TreatmentType == TreatmentPackage && attended < int64(p.TreatmentDays)
		perVisitOpen := p.TreatmentType != TreatmentPackage && NormalizeStatus(p.Status) != StatusCompleted
		if !packageIncomplete && !perVisitOpen {
			continue
		}

		var lastVisit *string
		if err := db.Model(&Attendance{}).
			Where("patient_id = ? AND status = ?", p.ID, AttendancePresent).
			Select("MAX(attendance_date)").
			Scan(&lastVisit).Error; err != nil {
			return nil, err
		}
		if lastVisit == nil || *lastVisit == "" {
			continue
		}

		daysAbsent, ok := DaysBetween(*lastVisit, now)
		if !ok {
			continue
		}
		level, score := RiskTier(daysAbsent)

		entries = append(entries, RetentionEntry{
			PatientID:     p.ID,
			PatientName:   p.PatientName,
			PhoneNumber:   p.PhoneNumber,
			BranchName:    p.BranchName,
			TreatmentType: p.TreatmentType,
			TreatmentDays: p.TreatmentDays,
			CurrentStatus: p.Status,
			AttendedDays:  attended,
			LastVisitDate: *lastVisit,
			DaysAbsent:    daysAbsent,
			RiskLevel:     level,
			RiskScore:     score,
		})
	}

	// Most recently absent first
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastVisitDate > entries[j].LastVisitDate
	})
	if len(entries) > insightResultCap {
		entries = entries[:insightResultCap]
	}
	return entries, nil
}

type DriftEntry struct {
	PartnerID        uint   `json:"partner_id"`
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	LastReferralDate string `json:"last_referral_date"`
	TotalReferrals   int64  `json:"total_referrals"`
	DaysSinceLast    int    `json:"days_since_referral"`
	DriftLevel       string `json:"drift_level"`
}

// ReferralDrift flags active partners who have not referred a registration
// or test within the last 10 days. Partners with zero lifetime referrals
// are excluded entirely. Read-only.
func ReferralDrift(db *gorm.DB, now time.Time) ([]DriftEntry, error) {
	var partners []ReferralPartner
	if err := db.Model(&ReferralPartner{}).Where("status = ?", PartnerActive).Find(&partners).Error; err != nil {
		return nil, err
	}

	entries := make([]DriftEntry, 0, len(partners))
	for i := range partners {
		partner := &partners[i]

		var regCount, testCount int64
		if err := db.Model(&Registration{}).Where("referral_partner_id = ?", partner.ID).Count(&regCount).Error; err != nil {
			return nil, err
		}
		if err := db.Model(&TestOrder{}).Where("referral_partner_id = ?", partner.ID).Count(&testCount).Error; err != nil {
			return nil, err
		}
		if regCount+testCount == 0 {
			continue
		}

		var lastReg, lastTest *time.Time
		if regCount > 0 {
			if err := db.Model(&Registration{}).Where("referral_partner_id = ?", partner.ID).
				Select("MAX(created_at)").Scan(&lastReg).Error; err != nil {
				return nil, err
			}
		}
		if testCount > 0 {
			if err := db.Model(&TestOrder{}).Where("referral_partner_id = ?", partner.ID).
				Select("MAX(created_at)").Scan(&lastTest).Error; err != nil {
				return nil, err
			}
		}

		var last time.Time
		if lastReg != nil {
			last = *lastReg
		}
		if lastTest != nil && lastTest.After(last) {
			last = *lastTest
		}
		if last.IsZero() {
			continue
		}

		lastDate := last.Format("2006-01-02")
		days, ok := DaysBetween(lastDate, now)
		if !ok || days < 10 {
			continue
		}

		entries = append(entries, DriftEntry{
			PartnerID:        partner.ID,
			Name:             partner.Name,
			Phone:            partner.Phone,
			LastReferralDate: lastDate,
			TotalReferrals:   regCount + testCount,
			DaysSinceLast:    days,
			DriftLevel:       DriftTier(days),
		})
	}

	// Most stale first
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].DaysSinceLast > entries[j].DaysSinceLast
	})
	if len(entries) > insightResultCap {
		entries = entries[:insightResultCap]
	}
	return entries, nil
}
