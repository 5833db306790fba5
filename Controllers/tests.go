package Controllers

import (
	"net/http"

	"ProSpine/Models"
	"ProSpine/SSE"

	"github.com/gin-gonic/gin"
)

func CreateTestOrder(c *gin.Context) {
	var input struct {
		VisitDate         string  `json:"visit_date"`
		PatientName       string  `json:"patient_name" binding:"required"`
		PhoneNumber       string  `json:"phone_number"`
		Gender            string  `json:"gender"`
		Age               string  `json:"age"`
		ReferredBy        string  `json:"referred_by"`
		ReferralPartnerID *uint   `json:"referral_partner_id"`
		TestDoneBy        string  `json:"test_done_by"`
		PaymentMethod     string  `json:"payment_method"`
		AdvanceAmount     float64 `json:"advance_amount"`
		Discount          float64 `json:"discount"`
		BranchID          uint    `json:"branch_id"`
		Tests             []struct {
			Name   string  `json:"name"`
			Amount float64 `json:"amount"`
		} `json:"tests" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	if input.AdvanceAmount < 0 || input.Discount < 0 {
		respondFail(c, http.StatusBadRequest, "amounts cannot be negative", CodeValidation)
		return
	}

	employeeID, ok := requestEmployeeID(c)
	if !ok {
		return
	}
	branchID, ok := scopedBranchID(c, input.BranchID)
	if !ok {
		return
	}

	lines := make([]Models.TestLine, 0, len(input.Tests))
	for _, test := range input.Tests {
		if test.Name == "" || test.Amount < 0 {
			respondFail(c, http.StatusBadRequest, "each test needs a name and a non-negative amount", CodeValidation)
			return
		}
		lines = append(lines, Models.TestLine{Name: test.Name, Amount: test.Amount})
	}

	order, err := Models.CreateTestOrder(Models.DB, Models.CreateTestOrderInput{
		VisitDate:         input.VisitDate,
		PatientName:       input.PatientName,
		PhoneNumber:       input.PhoneNumber,
		Gender:            input.Gender,
		Age:               input.Age,
		ReferredBy:        input.ReferredBy,
		ReferralPartnerID: input.ReferralPartnerID,
		TestDoneBy:        input.TestDoneBy,
		PaymentMethod:     input.PaymentMethod,
		AdvanceAmount:     input.AdvanceAmount,
		Discount:          input.Discount,
		Lines:             lines,
		BranchID:          branchID,
		CreatedByID:       employeeID,
	})
	if err != nil {
		respondModelError(c, err)
		return
	}

	SSE.Broadcaster.Broadcast("Refresh")
	respondOK(c, "Test Order Created Successfully", order)
}

func FetchTestOrders(c *gin.Context) {
	var input struct {
		BranchID uint   `form:"branch_id"`
		FromDate string `form:"from_date"`
		ToDate   string `form:"to_date"`
		Search   string `form:"search"`
	}
	if err := c.ShouldBindQuery(&input); err != nil {
		respondBindError(c, err)
		return
	}

	branchID, ok := scopedBranchID(c, input.BranchID)
	if !ok {
		return
	}

	query := Models.DB.Model(&Models.TestOrder{}).Where("branch_id = ?", branchID)
	if input.FromDate != "" {
		query = query.Where("visit_date >= ?", input.FromDate)
	}
	if input.ToDate != "" {
		query = query.Where("visit_date <= ?", input.ToDate)
	}
	if input.Search != "" {
		like := "%" + input.Search + "%"
		query = query.Where("patient_name LIKE ? OR phone_number LIKE ? OR test_uid LIKE ?", like, like, like)
	}

	var orders []Models.TestOrder
	if err := query.Preload("Items").Order("visit_date DESC, id DESC").Limit(500).Find(&orders).Error; err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, "success", orders)
}

func UpdateTestItemStatus(c *gin.Context) {
	var input struct {
		ItemID uint   `json:"item_id" binding:"required"`
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	switch input.Status {
	case "pending", "in_progress", "completed":
	default:
		respondFail(c, http.StatusBadRequest, "unknown test status", CodeValidation)
		return
	}

	if err := Models.UpdateTestItemStatus(Models.DB, input.ItemID, input.Status); err != nil {
		respondModelError(c, err)
		return
	}
	SSE.Broadcaster.Broadcast("Refresh")
	respondOK(c, "Test Status Updated", nil)
}
