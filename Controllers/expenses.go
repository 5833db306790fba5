package Controllers

import (
	"fmt"
	"log"
	"net/http"

	"ProSpine/FirebaseMessaging"
	"ProSpine/Models"
	"ProSpine/SSE"

	"github.com/gin-gonic/gin"
)

func CreateExpense(c *gin.Context) {
	var input struct {
		BranchID      uint    `json:"branch_id"`
		VoucherNo     string  `json:"voucher_no"`
		ExpenseDate   string  `json:"expense_date"`
		PaidTo        string  `json:"paid_to"`
		ExpenseDoneBy string  `json:"expense_done_by"`
		Category      string  `json:"category"`
		Description   string  `json:"description"`
		Amount        float64 `json:"amount" binding:"required"`
		AmountInWords string  `json:"amount_in_words"`
		PaymentMethod string  `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
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

	switch input.Category {
	case Models.ExpenseCategoryClinic, Models.ExpenseCategoryPersonal, Models.ExpenseCategoryReception:
	case "":
		input.Category = Models.ExpenseCategoryClinic
	default:
		respondFail(c, http.StatusBadRequest, "unknown expense category", CodeValidation)
		return
	}

	expense := Models.Expense{
		BranchID:      branchID,
		EmployeeID:    employeeID,
		VoucherNo:     input.VoucherNo,
		ExpenseDate:   input.ExpenseDate,
		PaidTo:        input.PaidTo,
		ExpenseDoneBy: input.ExpenseDoneBy,
		Category:      input.Category,
		Description:   input.Description,
		Amount:        input.Amount,
		AmountInWords: input.AmountInWords,
		PaymentMethod: input.PaymentMethod,
	}
	if err := Models.CreateExpense(Models.DB, &expense); err != nil {
		respondModelError(c, err)
		return
	}

	if expense.Status == Models.ExpensePending {
		go notifyBranchAdmins(branchID, fmt.Sprintf("Expense %s of %.2f needs approval", expense.VoucherNo, expense.Amount))
	}

	SSE.Broadcaster.Broadcast("Refresh")
	message := "Expense Approved"
	if expense.Status == Models.ExpensePending {
		message = "Expense Awaiting Approval"
	}
	respondOK(c, message, expense)
}

func notifyBranchAdmins(branchID uint, body string) {
	fcms, err := Models.BranchAdminFCMs(Models.DB, branchID)
	if err != nil {
		log.Println(err)
		return
	}
	if len(fcms) == 0 {
		return
	}
	if err := FirebaseMessaging.SendMessage(Models.NotificationRequest{
		Tokens: fcms,
		Title:  "Approval Required",
		Body:   body,
	}); err != nil {
		log.Println(err)
	}
}

func FetchExpenses(c *gin.Context) {
	var input struct {
		BranchID uint   `form:"branch_id"`
		FromDate string `form:"from_date"`
		ToDate   string `form:"to_date"`
		Status   string `form:"status"`
	}
	if err := c.ShouldBindQuery(&input); err != nil {
		respondBindError(c, err)
		return
	}

	branchID, ok := scopedBranchID(c, input.BranchID)
	if !ok {
		return
	}

	query := Models.DB.Model(&Models.Expense{}).Where("branch_id = ?", branchID)
	if input.FromDate != "" {
		query = query.Where("expense_date >= ?", input.FromDate)
	}
	if input.ToDate != "" {
		query = query.Where("expense_date <= ?", input.ToDate)
	}
	if input.Status != "" {
		query = query.Where("status = ?", input.Status)
	}

	var expenses []Models.Expense
	if err := query.Order("expense_date DESC, id DESC").Limit(500).Find(&expenses).Error; err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, "success", expenses)
}

// UpdateExpenseStatus is the admin approval endpoint for expenses that
// exceeded the day's remaining budget.
func UpdateExpenseStatus(c *gin.Context) {
	var input struct {
		ExpenseID uint   `json:"expense_id" binding:"required"`
		Status    string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	employeeID, ok := requestEmployeeID(c)
	if !ok {
		return
	}

	if err := Models.UpdateExpenseStatus(Models.DB, input.ExpenseID, input.Status, employeeID); err != nil {
		respondModelError(c, err)
		return
	}
	SSE.Broadcaster.Broadcast("Refresh")
	respondOK(c, "Expense Status Updated", nil)
}

func FetchExpenseSummary(c *gin.Context) {
	var input struct {
		BranchID uint   `form:"branch_id"`
		FromDate string `form:"from_date"`
		ToDate   string `form:"to_date"`
	}
	if err := c.ShouldBindQuery(&input); err != nil {
		respondBindError(c, err)
		return
	}
	if input.FromDate == "" || input.ToDate == "" {
		respondFail(c, http.StatusBadRequest, "from_date and to_date are required", CodeValidation)
		return
	}

	branchID, ok := scopedBranchID(c, input.BranchID)
	if !ok {
		return
	}

	totals, err := Models.ExpenseTotalsFor(Models.DB, branchID, input.FromDate, input.ToDate)
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, "success", totals)
}
