package Controllers

import (
	"net/http"

	"ProSpine/Models"
	"ProSpine/SSE"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type patientRow struct {
	ID              uint    `json:"id"`
	RegistrationID  uint    `json:"registration_id"`
	PatientName     string  `json:"patient_name"`
	PhoneNumber     string  `json:"phone_number"`
	AssignedDoctor  string  `json:"assigned_doctor"`
	TreatmentType   string  `json:"treatment_type"`
	TreatmentDays   int     `json:"treatment_days"`
	TotalAmount     float64 `json:"total_amount"`
	DueAmount       float64 `json:"due_amount"`
	StartDate       string  `json:"start_date"`
	Status          string  `json:"status"`
	BranchID        uint    `json:"branch_id"`
	SessionsPresent int64   `json:"sessions_present"`
}

// FetchPatients pages through a branch's treated patients with the
// headline buckets (active / completed / inactive) and the branch's
// lifetime collection.
func FetchPatients(c *gin.Context) {
	var input struct {
		BranchID uint   `form:"branch_id"`
		Status   string `form:"status"`
		Search   string `form:"search"`
		Page     int    `form:"page"`
		Limit    int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&input); err != nil {
		respondBindError(c, err)
		return
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
			Where("patients.branch_id = ? AND patients.deleted_at IS NULL", branchID)
		if input.Status != "" {
			query = query.Where("patients.status = ?", Models.NormalizeStatus(input.Status))
		}
		if input.Search != "" {
			like := "%" + input.Search + "%"
			query = query.Where("registrations.patient_name LIKE ? OR registrations.phone_number LIKE ?", like, like)
		}
		return query
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		respondModelError(c, err)
		return
	}

	var rows []patientRow
	err := base().
		Select("patients.id, patients.registration_id, registrations.patient_name, registrations.phone_number, patients.assigned_doctor, patients.treatment_type, patients.treatment_days, patients.total_amount, patients.due_amount, patients.start_date, patients.status, patients.branch_id, (SELECT COUNT(*) FROM attendances WHERE attendances.patient_id = patients.id AND attendances.status = 'present' AND attendances.deleted_at IS NULL) AS sessions_present").
		Order("patients.created_at DESC").
		Limit(input.Limit).
		Offset((input.Page - 1) * input.Limit).
		Scan(&rows).Error
	if err != nil {
		respondModelError(c, err)
		return
	}

	// Buckets span the branch regardless of the active filter, through
	// the normalized vocabulary.
	var buckets []struct {
		Status string
		Count  int64
	}
	if err := Models.DB.Table("patients").
		Where("branch_id = ? AND deleted_at IS NULL", branchID).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&buckets).Error; err != nil {
		respondModelError(c, err)
		return
	}
	var active, completed, inactive, branchTotal int64
	for _, bucket := range buckets {
		normalized := Models.NormalizeStatus(bucket.Status)
		switch {
		case normalized.IsInProgress():
			active += bucket.Count
		case normalized.IsClosed():
			completed += bucket.Count
		default:
			inactive += bucket.Count
		}
		branchTotal += bucket.Count
	}

	var totalCollection float64
	if err := Models.DB.Table("payments").
		Joins("JOIN patients ON patients.id = payments.patient_id").
		Where("patients.branch_id = ? AND payments.deleted_at IS NULL", branchID).
		Select("COALESCE(SUM(payments.amount), 0)").
		Scan(&totalCollection).Error; err != nil {
		respondModelError(c, err)
		return
	}

	respondOK(c, "success", gin.H{
		"patients": rows,
		"total":    total,
		"page":     input.Page,
		"limit":    input.Limit,
		"stats": gin.H{
			"total":            branchTotal,
			"active":           active,
			"completed":        completed,
			"inactive":         inactive,
			"total_collection": totalCollection,
		},
	})
}

// FetchPatientDetails returns one patient's full billing picture: the
// live balance, progress, payment ledger, and recent marks.
func FetchPatientDetails(c *gin.Context) {
	var input struct {
		PatientID uint `json:"patient_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	patient, err := Models.GetPatientByID(Models.DB, input.PatientID)
	if err != nil {
		respondModelError(c, err)
		return
	}

	balance, sessions, err := Models.EffectiveBalance(Models.DB, &patient)
	if err != nil {
		respondModelError(c, err)
		return
	}
	progress, err := Models.GetPatientProgress(Models.DB, &patient)
	if err != nil {
		respondModelError(c, err)
		return
	}
	payments, err := Models.PaymentsForPatient(Models.DB, patient.ID)
	if err != nil {
		respondModelError(c, err)
		return
	}
	history, err := Models.AttendanceHistory(Models.DB, patient.ID, 30)
	if err != nil {
		respondModelError(c, err)
		return
	}

	respondOK(c, "success", gin.H{
		"patient":           patient,
		"effective_balance": balance,
		"sessions_used":     sessions,
		"cost_per_day":      patient.CostPerDay(),
		"progress":          progress,
		"payments":          payments,
		"attendance":        history,
	})
}

func UpdatePatient(c *gin.Context) {
	var input struct {
		PatientID           uint    `json:"patient_id" binding:"required"`
		AssignedDoctor      string  `json:"assigned_doctor"`
		TreatmentDays       int     `json:"treatment_days"`
		PackageCost         float64 `json:"package_cost"`
		TreatmentCostPerDay float64 `json:"treatment_cost_per_day"`
		EndDate             string  `json:"end_date"`
		Notes               string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	patient, err := Models.GetPatientByID(Models.DB, input.PatientID)
	if err != nil {
		respondModelError(c, err)
		return
	}

	if input.AssignedDoctor != "" {
		patient.AssignedDoctor = input.AssignedDoctor
	}
	if input.TreatmentDays > 0 {
		patient.TreatmentDays = input.TreatmentDays
	}
	if input.PackageCost > 0 {
		patient.PackageCost = input.PackageCost
	}
	if input.TreatmentCostPerDay > 0 {
		patient.TreatmentCostPerDay = input.TreatmentCostPerDay
	}
	if input.EndDate != "" {
		patient.EndDate = input.EndDate
	}
	if input.Notes != "" {
		patient.Notes = input.Notes
	}

	if err := Models.DB.Save(&patient).Error; err != nil {
		respondModelError(c, err)
		return
	}
	SSE.Broadcaster.Broadcast("Refresh")
	respondOK(c, "Patient Updated Successfully", patient)
}

func UpdatePatientStatus(c *gin.Context) {
	var input struct {
		PatientID uint   `json:"patient_id" binding:"required"`
		Status    string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	patient, err := Models.GetPatientByID(Models.DB, input.PatientID)
	if err != nil {
		respondModelError(c, err)
		return
	}

	patient.SetStatus(input.Status)
	if err := Models.DB.Model(&Models.Patient{}).Where("id = ?", patient.ID).
		Update("status", patient.Status).Error; err != nil {
		respondModelError(c, err)
		return
	}

	SSE.Broadcaster.Broadcast("Refresh")
	respondOK(c, "Patient Status Updated", gin.H{"status": patient.Status})
}

func GetPatientIdByPhone(c *gin.Context) {
	var input struct {
		PhoneNumber string `json:"phone_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	var patientID uint
	err := Models.DB.Table("patients").
		Joins("JOIN registrations ON registrations.id = patients.registration_id").
		Where("registrations.phone_number = ? AND patients.deleted_at IS NULL", input.PhoneNumber).
		Order("patients.created_at DESC").
		Limit(1).
		Select("patients.id").
		Scan(&patientID).Error
	if err != nil {
		respondModelError(c, err)
		return
	}
	if patientID == 0 {
		respondFail(c, http.StatusNotFound, "patient not found", CodeNotFound)
		return
	}
	respondOK(c, "success", gin.H{"patient_id": patientID})
}
