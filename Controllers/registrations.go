package Controllers

import (
	"net/http"

	"ProSpine/Models"
	"ProSpine/SSE"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func CreateRegistration(c *gin.Context) {
	var input struct {
		BranchID           uint    `json:"branch_id"`
		PatientName        string  `json:"patient_name" binding:"required"`
		PhoneNumber        string  `json:"phone_number" binding:"required"`
		Age                int     `json:"age"`
		Gender             string  `json:"gender"`
		ChiefComplaint     string  `json:"chief_complaint"`
		ConsultationType   string  `json:"consultation_type"`
		ConsultationAmount float64 `json:"consultation_amount"`
		PaymentMethod      string  `json:"payment_method"`
		ReferralSource     string  `json:"referral_source"`
		ReferredBy         string  `json:"referred_by"`
		ReferralPartnerID  *uint   `json:"referral_partner_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	branchID, ok := scopedBranchID(c, input.BranchID)
	if !ok {
		return
	}
	if input.ConsultationAmount < 0 {
		respondFail(c, http.StatusBadRequest, "consultation amount cannot be negative", CodeValidation)
		return
	}

	registration := Models.Registration{
		BranchID:           branchID,
		PatientName:        input.PatientName,
		PhoneNumber:        input.PhoneNumber,
		Age:                input.Age,
		Gender:             input.Gender,
		ChiefComplaint:     input.ChiefComplaint,
		ConsultationType:   input.ConsultationType,
		ConsultationAmount: input.ConsultationAmount,
		PaymentMethod:      input.PaymentMethod,
		ReferralSource:     input.ReferralSource,
		ReferredBy:         input.ReferredBy,
		ReferralPartnerID:  input.ReferralPartnerID,
		Status:             Models.RegistrationPending,
	}
	if err := Models.DB.Create(&registration).Error; err != nil {
		respondModelError(c, err)
		return
	}

	SSE.Broadcaster.Broadcast("Refresh")
	respondOK(c, "Registration Created Successfully", registration)
}

// FetchRegistrations pages through a branch's intake book and carries
// the per-status counters the screen's tabs show.
func FetchRegistrations(c *gin.Context) {
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
		query := Models.DB.Model(&Models.Registration{}).Where("branch_id = ?", branchID)
		if input.Status != "" {
			query = query.Where("status = ?", input.Status)
		}
		if input.Search != "" {
			like := "%" + input.Search + "%"
			query = query.Where("patient_name LIKE ? OR phone_number LIKE ?", like, like)
		}
		return query
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		respondModelError(c, err)
		return
	}

	var registrations []Models.Registration
	if err := base().
		Order("created_at DESC").
		Limit(input.Limit).
		Offset((input.Page - 1) * input.Limit).
		Find(&registrations).Error; err != nil {
		respondModelError(c, err)
		return
	}

	// Status counters span the branch regardless of the active filter.
	var buckets []struct {
		Status string
		Count  int64
	}
	if err := Models.DB.Model(&Models.Registration{}).
		Where("branch_id = ?", branchID).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&buckets).Error; err != nil {
		respondModelError(c, err)
		return
	}
	stats := gin.H{
		Models.RegistrationPending:   int64(0),
		Models.RegistrationConsulted: int64(0),
		Models.RegistrationCancelled: int64(0),
		Models.RegistrationClosed:    int64(0),
	}
	var branchTotal int64
	for _, bucket := range buckets {
		stats[bucket.Status] = bucket.Count
		branchTotal += bucket.Count
	}
	stats["total"] = branchTotal

	respondOK(c, "success", gin.H{
		"registrations": registrations,
		"total":         total,
		"page":          input.Page,
		"limit":         input.Limit,
		"stats":         stats,
	})
}

func UpdateRegistrationStatus(c *gin.Context) {
	var input struct {
		RegistrationID uint   `json:"registration_id" binding:"required"`
		Status         string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	switch input.Status {
	case Models.RegistrationPending, Models.RegistrationConsulted,
		Models.RegistrationCancelled, Models.RegistrationClosed:
	default:
		respondFail(c, http.StatusBadRequest, "unknown registration status", CodeValidation)
		return
	}

	result := Models.DB.Model(&Models.Registration{}).
		Where("id = ?", input.RegistrationID).
		Update("status", input.Status)
	if result.Error != nil {
		respondModelError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondFail(c, http.StatusNotFound, "registration not found", CodeNotFound)
		return
	}

	SSE.Broadcaster.Broadcast("Refresh")
	respondOK(c, "Registration Updated Successfully", nil)
}

// ConvertRegistration turns a consulted intake into a treated patient
// with its treatment terms.
func ConvertRegistration(c *gin.Context) {
	var input struct {
		RegistrationID      uint    `json:"registration_id" binding:"required"`
		AssignedDoctor      string  `json:"assigned_doctor"`
		TreatmentType       string  `json:"treatment_type" binding:"required"`
		TreatmentDays       int     `json:"treatment_days"`
		PackageCost         float64 `json:"package_cost"`
		TreatmentCostPerDay float64 `json:"treatment_cost_per_day"`
		AdvancePayment      float64 `json:"advance_payment"`
		TotalAmount         float64 `json:"total_amount"`
		StartDate           string  `json:"start_date"`
		EndDate             string  `json:"end_date"`
		Notes               string  `json:"notes"`
		Status              string  `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	switch input.TreatmentType {
	case Models.TreatmentPackage, Models.TreatmentDaily, Models.TreatmentAdvance:
	default:
		respondFail(c, http.StatusBadRequest, "unknown treatment type", CodeValidation)
		return
	}
	if input.TreatmentType == Models.TreatmentPackage && input.TreatmentDays <= 0 {
		respondFail(c, http.StatusBadRequest, "treatment days must be positive for packages", CodeValidation)
		return
	}

	employeeID, ok := requestEmployeeID(c)
	if !ok {
		return
	}

	patient, err := Models.ConvertToPatient(Models.DB, input.RegistrationID, Models.Patient{
		AssignedDoctor:      input.AssignedDoctor,
		TreatmentType:       input.TreatmentType,
		TreatmentDays:       input.TreatmentDays,
		PackageCost:         input.PackageCost,
		TreatmentCostPerDay: input.TreatmentCostPerDay,
		AdvancePayment:      0,
		TotalAmount:         input.TotalAmount,
		DueAmount:           input.TotalAmount,
		StartDate:           input.StartDate,
		EndDate:             input.EndDate,
		Notes:               input.Notes,
		Status:              input.Status,
	})
	if err != nil {
		respondModelError(c, err)
		return
	}

	// An advance collected at conversion goes through the ledger so the
	// balance math sees it.
	if input.AdvancePayment > 0 {
		if _, _, _, err := Models.AddPayment(Models.DB, patient.ID, input.AdvancePayment, "cash", "Advance at conversion", employeeID); err != nil {
			respondModelError(c, err)
			return
		}
	}

	SSE.Broadcaster.Broadcast("Refresh")
	respondOK(c, "Patient Created Successfully", patient)
}
