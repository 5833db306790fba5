package Controllers

import (
	"time"

	"ProSpine/Models"

	"github.com/gin-gonic/gin"
)

// FetchDashboard is the landing screen snapshot: today's intake,
// takings, spend, and what is waiting on an admin.
func FetchDashboard(c *gin.Context) {
	var input struct {
		BranchID uint   `form:"branch_id"`
		Date     string `form:"date"`
	}
	if err := c.ShouldBindQuery(&input); err != nil {
		respondBindError(c, err)
		return
	}
	if input.Date == "" {
		input.Date = time.Now().Format("2006-01-02")
	}

	branchID, ok := scopedBranchID(c, input.BranchID)
	if !ok {
		return
	}

	var registrationsToday int64
	if err := Models.DB.Model(&Models.Registration{}).
		Where("branch_id = ? AND DATE(created_at) = ?", branchID, input.Date).
		Count(&registrationsToday).Error; err != nil {
		respondModelError(c, err)
		return
	}

	var attendanceToday int64
	if err := Models.DB.Table("attendances").
		Joins("JOIN patients ON patients.id = attendances.patient_id").
		Where("attendances.attendance_date = ? AND patients.branch_id = ? AND attendances.status = ? AND attendances.deleted_at IS NULL", input.Date, branchID, Models.AttendancePresent).
		Count(&attendanceToday).Error; err != nil {
		respondModelError(c, err)
		return
	}

	var collectedToday float64
	if err := Models.DB.Table("payments").
		Joins("JOIN patients ON patients.id = payments.patient_id").
		Where("DATE(payments.created_at) = ? AND patients.branch_id = ? AND payments.deleted_at IS NULL", input.Date, branchID).
		Select("COALESCE(SUM(payments.amount), 0)").
		Scan(&collectedToday).Error; err != nil {
		respondModelError(c, err)
		return
	}

	var testsToday struct {
		Count  int64   `json:"count"`
		Amount float64 `json:"amount"`
	}
	if err := Models.DB.Model(&Models.TestOrder{}).
		Where("branch_id = ? AND visit_date = ?", branchID, input.Date).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS amount").
		Scan(&testsToday).Error; err != nil {
		respondModelError(c, err)
		return
	}

	approvedExpenses, err := Models.ApprovedTotalFor(Models.DB, branchID, input.Date)
	if err != nil {
		respondModelError(c, err)
		return
	}
	remainingBudget, err := Models.RemainingBudgetFor(Models.DB, branchID, input.Date)
	if err != nil {
		respondModelError(c, err)
		return
	}

	var pendingExpenses int64
	if err := Models.DB.Model(&Models.Expense{}).
		Where("branch_id = ? AND status = ?", branchID, Models.ExpensePending).
		Count(&pendingExpenses).Error; err != nil {
		respondModelError(c, err)
		return
	}

	var pendingAttendance int64
	if err := Models.DB.Table("attendances").
		Joins("JOIN patients ON patients.id = attendances.patient_id").
		Where("patients.branch_id = ? AND attendances.status = ? AND attendances.deleted_at IS NULL", branchID, Models.AttendancePending).
		Count(&pendingAttendance).Error; err != nil {
		respondModelError(c, err)
		return
	}

	respondOK(c, "success", gin.H{
		"date":                input.Date,
		"registrations_today": registrationsToday,
		"attendance_today":    attendanceToday,
		"collected_today":     collectedToday,
		"tests_today":         testsToday,
		"expenses_approved":   approvedExpenses,
		"budget_remaining":    remainingBudget,
		"pending_expenses":    pendingExpenses,
		"pending_attendance":  pendingAttendance,
	})
}

func FetchNotifications(c *gin.Context) {
	branchID, ok := requestBranchID(c)
	if !ok {
		return
	}
	role := requestRole(c)

	notifications, err := Models.UnreadNotifications(Models.DB, branchID, role)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, "success", notifications)
}

func MarkNotificationRead(c *gin.Context) {
	var input struct {
		NotificationID uint `json:"notification_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	if err := Models.MarkNotificationRead(Models.DB, input.NotificationID); err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, "Notification Marked As Read", nil)
}

func FetchInquiries(c *gin.Context) {
	inquiries, err := Models.OpenInquiries(Models.DB)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, "success", inquiries)
}
