package Controllers

import (
	"time"

	"ProSpine/Models"
	"ProSpine/SSE"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type attendanceRow struct {
	PatientID           uint    `json:"patient_id"`
	PatientName         string  `json:"patient_name"`
	PhoneNumber         string  `json:"phone_number"`
	TreatmentType       string  `json:"treatment_type"`
	TreatmentDays       int     `json:"treatment_days"`
	PackageCost         float64 `json:"-"`
	TreatmentCostPerDay float64 `json:"-"`
	StartDate           string  `json:"start_date"`
	PatientStatus       string  `json:"patient_status"`
	AttendanceID        *uint   `json:"attendance_id"`
	MarkStatus          *string `json:"-"`
	Remarks             *string `json:"remarks"`

	EffectiveBalance float64 `json:"effective_balance" gorm:"-"`
	CostPerDay       float64 `json:"cost_per_day" gorm:"-"`
	Shortfall        float64 `json:"shortfall" gorm:"-"`
	SessionsUsed     int64   `json:"sessions_used" gorm:"-"`
	IsPresent        bool    `json:"is_present" gorm:"-"`
	AttendanceStatus string  `json:"attendance_status" gorm:"-"`
}

// FetchAttendance is the desk's day sheet: every branch patient with
// their mark for the date (if any), the live balance, and what a visit
// would cost, so the desk sees who is unmarked and who will hit a
// shortfall before anyone walks in.
func FetchAttendance(c *gin.Context) {
	var input struct {
		Date     string `form:"date"`
		BranchID uint   `form:"branch_id"`
		Search   string `form:"search"`
		Status   string `form:"status"` // present | pending | absent
		Page     int    `form:"page"`
		Limit    int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&input); err != nil {
		respondBindError(c, err)
		return
	}
	if input.Date == "" {
		input.Date = time.Now().Format("2006-01-02")
	}
	if input.Limit <= 0 || input.Limit > 200 {
		input.Limit = 50
	}
	if input.Page <= 0 {
		input.Page = 1
	}

	branchID, ok := scopedBranchID(c, input.BranchID)
	if !ok {
		return
	}

	base := func() *gorm.DB {
		query := Models.DB.Table("patients").
			Joins("JOIN registrations ON registrations.id = patients.registration_id").
			Joins("LEFT JOIN attendances ON attendances.patient_id = patients.id AND attendances.attendance_date = ? AND attendances.deleted_at IS NULL", input.Date).
			Where("patients.branch_id = ? AND patients.deleted_at IS NULL", branchID)
		if input.Search != "" {
			like := "%" + input.Search + "%"
			query = query.Where("registrations.patient_name LIKE ? OR registrations.phone_number LIKE ?", like, like)
		}
		switch input.Status {
		case Models.AttendancePresent, Models.AttendancePending:
			query = query.Where("attendances.status = ?", input.Status)
		case "absent":
			query = query.Where("attendances.id IS NULL")
		}
		return query
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		respondModelError(c, err)
		return
	}

	var rows []attendanceRow
	err := base().
		Select("patients.id AS patient_id, registrations.patient_name, registrations.phone_number, patients.treatment_type, patients.treatment_days, patients.package_cost, patients.treatment_cost_per_day, patients.start_date, patients.status AS patient_status, attendances.id AS attendance_id, attendances.status AS mark_status, attendances.remarks").
		Order("registrations.patient_name, patients.id").
		Limit(input.Limit).
		Offset((input.Page - 1) * input.Limit).
		Scan(&rows).Error
	if err != nil {
		respondModelError(c, err)
		return
	}

	for index := range rows {
		row := &rows[index]
		patient := Models.Patient{
			TreatmentType:       row.TreatmentType,
			TreatmentDays:       row.TreatmentDays,
			PackageCost:         row.PackageCost,
			TreatmentCostPerDay: row.TreatmentCostPerDay,
			StartDate:           row.StartDate,
		}
		patient.ID = row.PatientID

		balance, sessions, err := Models.EffectiveBalance(Models.DB, &patient)
		if err != nil {
			respondModelError(c, err)
			return
		}
		row.EffectiveBalance = balance
		row.CostPerDay = patient.CostPerDay()
		row.Shortfall = Models.Shortfall(balance, row.CostPerDay)
		row.SessionsUsed = sessions
		if row.MarkStatus != nil {
			row.AttendanceStatus = *row.MarkStatus
			row.IsPresent = row.AttendanceStatus == Models.AttendancePresent
		}
	}

	// Day totals span the whole branch, not just this page.
	var marked []struct {
		Status string
		Count  int64
	}
	err = Models.DB.Table("attendances").
		Joins("JOIN patients ON patients.id = attendances.patient_id").
		Where("attendances.attendance_date = ? AND patients.branch_id = ? AND attendances.deleted_at IS NULL", input.Date, branchID).
		Select("attendances.status, COUNT(*) AS count").
		Group("attendances.status").
		Scan(&marked).Error
	if err != nil {
		respondModelError(c, err)
		return
	}
	var present, pending int64
	for _, bucket := range marked {
		switch bucket.Status {
		case Models.AttendancePresent:
			present = bucket.Count
		case Models.AttendancePending:
			pending = bucket.Count
		}
	}

	var collected float64
	err = Models.DB.Table("payments").
		Joins("JOIN patients ON patients.id = payments.patient_id").
		Where("DATE(payments.created_at) = ? AND patients.branch_id = ? AND payments.deleted_at IS NULL", input.Date, branchID).
		Select("COALESCE(SUM(payments.amount), 0)").
		Scan(&collected).Error
	if err != nil {
		respondModelError(c, err)
		return
	}

	respondOK(c, "success", gin.H{
		"date":  input.Date,
		"rows":  rows,
		"total": total,
		"page":  input.Page,
		"limit": input.Limit,
		"stats": gin.H{
			"present":   present,
			"pending":   pending,
			"collected": collected,
		},
	})
}

func MarkAttendance(c *gin.Context) {
	var input struct {
		PatientID     uint    `json:"patient_id" binding:"required"`
		Date          string  `json:"date"`
		PaymentAmount float64 `json:"payment_amount"`
		Mode          string  `json:"mode"`
		Remarks       string  `json:"remarks"`
		MarkAsPending bool    `json:"mark_as_pending"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	employeeID, ok := requestEmployeeID(c)
	if !ok {
		return
	}

	result, err := Models.MarkAttendance(Models.DB, Models.MarkAttendanceInput{
		PatientID:     input.PatientID,
		Date:          input.Date,
		EmployeeID:    employeeID,
		PaymentAmount: input.PaymentAmount,
		Mode:          input.Mode,
		Remarks:       input.Remarks,
		MarkAsPending: input.MarkAsPending,
	})
	if err != nil {
		respondModelError(c, err)
		return
	}

	SSE.Broadcaster.Broadcast("Refresh")
	message := "Attendance Marked Successfully"
	if result.Attendance.Status == Models.AttendancePending {
		message = "Attendance Marked As Pending"
	}
	respondOK(c, message, result)
}

func ApproveAttendance(c *gin.Context) {
	var input struct {
		AttendanceID uint `json:"attendance_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	if err := Models.ApproveAttendance(Models.DB, input.AttendanceID); err != nil {
		respondModelError(c, err)
		return
	}
	SSE.Broadcaster.Broadcast("Refresh")
	respondOK(c, "Attendance Approved", nil)
}

func RejectAttendance(c *gin.Context) {
	var input struct {
		AttendanceID uint `json:"attendance_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	if err := Models.RejectAttendance(Models.DB, input.AttendanceID); err != nil {
		respondModelError(c, err)
		return
	}
	SSE.Broadcaster.Broadcast("Refresh")
	respondOK(c, "Attendance Rejected", nil)
}

func FetchAttendanceHistory(c *gin.Context) {
	var input struct {
		PatientID uint `json:"patient_id" binding:"required"`
		Limit     int  `json:"limit"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	if input.Limit <= 0 || input.Limit > 200 {
		input.Limit = 60
	}

	history, err := Models.AttendanceHistory(Models.DB, input.PatientID, input.Limit)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, "success", history)
}
