package Models

import (
	"time"

	"gorm.io/gorm"
)

// reportRowCap bounds every report listing; totals are computed in SQL
// over the full filtered set, not the capped page.
const reportRowCap = 500

// ReportFilters is the shared filter surface of the admin reports.
// Empty fields are ignored; an empty date range defaults to the current
// month.
type ReportFilters struct {
	FromDate      string `form:"from_date" json:"from_date"`
	ToDate        string `form:"to_date" json:"to_date"`
	BranchID      uint   `form:"branch_id" json:"branch_id"`
	Status        string `form:"status" json:"status"`
	PaymentMethod string `form:"payment_method" json:"payment_method"`
	ReferredBy    string `form:"referred_by" json:"referred_by"`
	DoneBy        string `form:"done_by" json:"done_by"`
	Search        string `form:"search" json:"search"`
}

func (f *ReportFilters) normalize(now time.Time) {
	if f.FromDate == "" {
		f.FromDate = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	}
	if f.ToDate == "" {
		f.ToDate = now.Format("2006-01-02")
	}
}

type TestReportRow struct {
	ID            uint    `json:"id"`
	TestUID       string  `json:"test_uid"`
	VisitDate     string  `json:"visit_date"`
	PatientName   string  `json:"patient_name"`
	PhoneNumber   string  `json:"phone_number"`
	TestName      string  `json:"test_name"`
	ReferredBy    string  `json:"referred_by"`
	TestDoneBy    string  `json:"test_done_by"`
	TotalAmount   float64 `json:"total_amount"`
	AdvanceAmount float64 `json:"advance_amount"`
	Discount      float64 `json:"discount"`
	DueAmount     float64 `json:"due_amount"`
	PaymentStatus string  `json:"payment_status"`
	TestStatus    string  `json:"test_status"`
	BranchID      uint    `json:"branch_id"`
}

type TestReportTotals struct {
	TotalAmount   float64 `json:"total_amount"`
	AdvanceAmount float64 `json:"advance_amount"`
	Discount      float64 `json:"discount"`
	DueAmount     float64 `json:"due_amount"`
	Count         int64   `json:"count"`
}

func testReportQuery(db *gorm.DB, filters ReportFilters) *gorm.DB {
	query := db.Model(&TestOrder{}).
		Where("visit_date >= ? AND visit_date <= ?", filters.FromDate, filters.ToDate)
	if filters.BranchID != 0 {
		query = query.Where("branch_id = ?", filters.BranchID)
	}
	if filters.Status != "" {
		query = query.Where("payment_status = ?", filters.Status)
	}
	if filters.PaymentMethod != "" {
		query = query.Where("payment_method = ?", filters.PaymentMethod)
	}
	if filters.ReferredBy != "" {
		query = query.Where("referred_by = ?", filters.ReferredBy)
	}
	if filters.DoneBy != "" {
		query = query.Where("test_done_by = ?", filters.DoneBy)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("patient_name LIKE ? OR phone_number LIKE ? OR test_uid LIKE ?", like, like, like)
	}
	return query
}

// TestReport lists filtered test orders (capped) plus SQL totals over
// the whole filtered set.
func TestReport(db *gorm.DB, filters ReportFilters, now time.Time) ([]TestReportRow, TestReportTotals, error) {
	filters.normalize(now)

	var rows []TestReportRow
	err := testReportQuery(db, filters).
		Select("id, test_uid, visit_date, patient_name, phone_number, test_name, referred_by, test_done_by, total_amount, advance_amount, discount, due_amount, payment_status, test_status, branch_id").
		Order("visit_date DESC, id DESC").
		Limit(reportRowCap).
		Scan(&rows).Error
	if err != nil {
		return nil, TestReportTotals{}, err
	}

	var totals TestReportTotals
	err = testReportQuery(db, filters).
		Select("COALESCE(SUM(total_amount), 0) AS total_amount, COALESCE(SUM(advance_amount), 0) AS advance_amount, COALESCE(SUM(discount), 0) AS discount, COALESCE(SUM(due_amount), 0) AS due_amount, COUNT(*) AS count").
		Scan(&totals).Error
	if err != nil {
		return nil, TestReportTotals{}, err
	}
	return rows, totals, nil
}

type RegistrationReportRow struct {
	ID                 uint    `json:"id"`
	PatientName        string  `json:"patient_name"`
	PhoneNumber        string  `json:"phone_number"`
	Age                string  `json:"age"`
	Gender             string  `json:"gender"`
	ChiefComplaint     string  `json:"chief_complaint"`
	ConsultationType   string  `json:"consultation_type"`
	ConsultationAmount float64 `json:"consultation_amount"`
	PaymentMethod      string  `json:"payment_method"`
	ReferralSource     string  `json:"referral_source"`
	ReferredBy         string  `json:"referred_by"`
	Status             string  `json:"status"`
	BranchID           uint    `json:"branch_id"`
	CreatedAt          string  `json:"created_at"`
}

type RegistrationReportTotals struct {
	ConsultationAmount float64 `json:"consultation_amount"`
	Count              int64   `json:"count"`
}

func registrationReportQuery(db *gorm.DB, filters ReportFilters) *gorm.DB {
	query := db.Model(&Registration{}).
		Where("DATE(created_at) >= ? AND DATE(created_at) <= ?", filters.FromDate, filters.ToDate)
	if filters.BranchID != 0 {
		query = query.Where("branch_id = ?", filters.BranchID)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.PaymentMethod != "" {
		query = query.Where("payment_method = ?", filters.PaymentMethod)
	}
	if filters.ReferredBy != "" {
		query = query.Where("referred_by = ?", filters.ReferredBy)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("patient_name LIKE ? OR phone_number LIKE ?", like, like)
	}
	return query
}

func RegistrationReport(db *gorm.DB, filters ReportFilters, now time.Time) ([]RegistrationReportRow, RegistrationReportTotals, error) {
	filters.normalize(now)

	var rows []RegistrationReportRow
	err := registrationReportQuery(db, filters).
		Select("id, patient_name, phone_number, age, gender, chief_complaint, consultation_type, consultation_amount, payment_method, referral_source, referred_by, status, branch_id, DATE(created_at) AS created_at").
		Order("created_at DESC, id DESC").
		Limit(reportRowCap).
		Scan(&rows).Error
	if err != nil {
		return nil, RegistrationReportTotals{}, err
	}

	var totals RegistrationReportTotals
	err = registrationReportQuery(db, filters).
		Select("COALESCE(SUM(consultation_amount), 0) AS consultation_amount, COUNT(*) AS count").
		Scan(&totals).Error
	if err != nil {
		return nil, RegistrationReportTotals{}, err
	}
	return rows, totals, nil
}

type PatientReportRow struct {
	ID              uint    `json:"id"`
	PatientName     string  `json:"patient_name"`
	PhoneNumber     string  `json:"phone_number"`
	AssignedDoctor  string  `json:"assigned_doctor"`
	TreatmentType   string  `json:"treatment_type"`
	TreatmentDays   int     `json:"treatment_days"`
	SessionsPresent int64   `json:"sessions_present"`
	TotalAmount     float64 `json:"total_amount"`
	PaidAmount      float64 `json:"paid_amount"`
	DueAmount       float64 `json:"due_amount"`
	StartDate       string  `json:"start_date"`
	Status          string  `json:"status"`
	BranchID        uint    `json:"branch_id"`
}

type PatientReportTotals struct {
	TotalAmount float64 `json:"total_amount"`
	PaidAmount  float64 `json:"paid_amount"`
	DueAmount   float64 `json:"due_amount"`
	Count       int64   `json:"count"`
}

func patientReportQuery(db *gorm.DB, filters ReportFilters) *gorm.DB {
	query := db.Table("patients").
		Joins("JOIN registrations ON registrations.id = patients.registration_id").
		Where("patients.deleted_at IS NULL").
		Where("patients.start_date >= ? AND patients.start_date <= ?", filters.FromDate, filters.ToDate)
	if filters.BranchID != 0 {
		query = query.Where("patients.branch_id = ?", filters.BranchID)
	}
	if filters.Status != "" {
		query = query.Where("patients.status = ?", NormalizeStatus(filters.Status))
	}
	if filters.DoneBy != "" {
		query = query.Where("patients.assigned_doctor = ?", filters.DoneBy)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("registrations.patient_name LIKE ? OR registrations.phone_number LIKE ?", like, like)
	}
	return query
}

func PatientReport(db *gorm.DB, filters ReportFilters, now time.Time) ([]PatientReportRow, PatientReportTotals, error) {
	filters.normalize(now)

	var rows []PatientReportRow
	err := patientReportQuery(db, filters).
		Select("patients.id, registrations.patient_name, registrations.phone_number, patients.assigned_doctor, patients.treatment_type, patients.treatment_days, (SELECT COUNT(*) FROM attendances WHERE attendances.patient_id = patients.id AND attendances.status = 'present' AND attendances.deleted_at IS NULL) AS sessions_present, patients.total_amount, (SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payments.patient_id = patients.id AND payments.deleted_at IS NULL) AS paid_amount, patients.due_amount, patients.start_date, patients.status, patients.branch_id").
		Order("patients.start_date DESC, patients.id DESC").
		Limit(reportRowCap).
		Scan(&rows).Error
	if err != nil {
		return nil, PatientReportTotals{}, err
	}

	var totals PatientReportTotals
	err = patientReportQuery(db, filters).
		Select("COALESCE(SUM(patients.total_amount), 0) AS total_amount, COALESCE(SUM((SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payments.patient_id = patients.id AND payments.deleted_at IS NULL)), 0) AS paid_amount, COALESCE(SUM(patients.due_amount), 0) AS due_amount, COUNT(*) AS count").
		Scan(&totals).Error
	if err != nil {
		return nil, PatientReportTotals{}, err
	}
	return rows, totals, nil
}

// ReportFilterOptions feeds the report screens' dropdowns. The values
// are distinct over live rows, so the lists stay honest as data grows.
type ReportFilterOptions struct {
	ReferredBy     []string `json:"referred_by"`
	TestDoneBy     []string `json:"test_done_by"`
	PaymentMethods []string `json:"payment_methods"`
	Doctors        []string `json:"doctors"`
}

// FetchReportFilterOptions is per branch; branchID 0 spans every branch
// (the admin all-branches view).
func FetchReportFilterOptions(db *gorm.DB, branchID uint) (*ReportFilterOptions, error) {
	options := ReportFilterOptions{}

	tests := func() *gorm.DB {
		query := db.Model(&TestOrder{})
		if branchID != 0 {
			query = query.Where("branch_id = ?", branchID)
		}
		return query
	}

	err := tests().
		Distinct("referred_by").
		Where("referred_by != ''").
		Order("referred_by").
		Pluck("referred_by", &options.ReferredBy).Error
	if err != nil {
		return nil, err
	}

	err = tests().
		Distinct("test_done_by").
		Where("test_done_by != ''").
		Order("test_done_by").
		Pluck("test_done_by", &options.TestDoneBy).Error
	if err != nil {
		return nil, err
	}

	err = tests().
		Distinct("payment_method").
		Where("payment_method != ''").
		Order("payment_method").
		Pluck("payment_method", &options.PaymentMethods).Error
	if err != nil {
		return nil, err
	}

	doctors := db.Model(&Patient{})
	if branchID != 0 {
		doctors = doctors.Where("branch_id = ?", branchID)
	}
	err = doctors.
		Distinct("assigned_doctor").
		Where("assigned_doctor != ''").
		Order("assigned_doctor").
		Pluck("assigned_doctor", &options.Doctors).Error
	if err != nil {
		return nil, err
	}

	return &options, nil
}
