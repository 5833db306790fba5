package Controllers

import (
	"net/http"

	"ProSpine/Models"
	"ProSpine/SSE"

	"github.com/gin-gonic/gin"
)

func AddPayment(c *gin.Context) {
	var input struct {
		PatientID uint    `json:"patient_id" binding:"required"`
		Amount    float64 `json:"amount" binding:"required"`
		Mode      string  `json:"mode" binding:"required"`
		Remarks   string  `json:"remarks"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	employeeID, ok := requestEmployeeID(c)
	if !ok {
		return
	}

	payment, totalPaid, due, err := Models.AddPayment(Models.DB, input.PatientID, input.Amount, input.Mode, input.Remarks, employeeID)
	if err != nil {
		respondModelError(c, err)
		return
	}

	SSE.Broadcaster.Broadcast("Refresh")
	respondOK(c, "Payment Recorded Successfully", gin.H{
		"payment":    payment,
		"total_paid": totalPaid,
		"due_amount": due,
	})
}

func FetchPayments(c *gin.Context) {
	var input struct {
		PatientID uint `json:"patient_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	payments, err := Models.PaymentsForPatient(Models.DB, input.PatientID)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, "success", payments)
}

// FetchCollections sums a branch's takings per payment mode for one day.
func FetchCollections(c *gin.Context) {
	var input struct {
		Date     string `form:"date"`
		BranchID uint   `form:"branch_id"`
	}
	if err := c.ShouldBindQuery(&input); err != nil {
		respondBindError(c, err)
		return
	}
	if input.Date == "" {
		respondFail(c, http.StatusBadRequest, "date is required", CodeValidation)
		return
	}

	branchID, ok := scopedBranchID(c, input.BranchID)
	if !ok {
		return
	}

	type modeTotal struct {
		Mode  string  `json:"mode"`
		Total float64 `json:"total"`
	}
	var totals []modeTotal
	err := Models.DB.Table("payments").
		Joins("JOIN patients ON patients.id = payments.patient_id").
		Where("DATE(payments.created_at) = ? AND patients.branch_id = ? AND payments.deleted_at IS NULL", input.Date, branchID).
		Select("payments.mode AS mode, COALESCE(SUM(payments.amount), 0) AS total").
		Group("payments.mode").
		Scan(&totals).Error
	if err != nil {
		respondModelError(c, err)
		return
	}

	grand := 0.0
	for _, row := range totals {
		grand += row.Total
	}
	respondOK(c, "success", gin.H{"by_mode": totals, "total": grand})
}
