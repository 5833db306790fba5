package Controllers

import (
	"net/http"
	"time"

	"ProSpine/Models"

	"github.com/gin-gonic/gin"
)

func FetchBranches(c *gin.Context) {
	var branches []Models.Branch
	if err := Models.DB.Model(&Models.Branch{}).Order("name").Find(&branches).Error; err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, "success", branches)
}

func SaveBranch(c *gin.Context) {
	var input struct {
		ID              uint   `json:"id"`
		Name            string `json:"name" binding:"required"`
		Code            string `json:"code"`
		Address         string `json:"address"`
		Phone           string `json:"phone"`
		AdminEmployeeID uint   `json:"admin_employee_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	branch := Models.Branch{
		Name:            input.Name,
		Code:            input.Code,
		Address:         input.Address,
		Phone:           input.Phone,
		AdminEmployeeID: input.AdminEmployeeID,
		IsActive:        true,
	}
	if input.ID != 0 {
		var existing Models.Branch
		if err := Models.DB.First(&existing, input.ID).Error; err != nil {
			respondFail(c, http.StatusNotFound, "branch not found", CodeNotFound)
			return
		}
		branch.ID = input.ID
		branch.IsActive = existing.IsActive
	}

	if err := Models.DB.Save(&branch).Error; err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, "Branch Saved Successfully", branch)
}

func ToggleBranchStatus(c *gin.Context) {
	var input struct {
		BranchID uint `json:"branch_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	var branch Models.Branch
	if err := Models.DB.First(&branch, input.BranchID).Error; err != nil {
		respondFail(c, http.StatusNotFound, "branch not found", CodeNotFound)
		return
	}

	if err := Models.DB.Model(&branch).Update("is_active", !branch.IsActive).Error; err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, "Branch Status Updated", gin.H{"is_active": !branch.IsActive})
}

// SaveBranchBudget appends a dated budget entry. Earlier entries stay
// in place so past expense decisions remain explainable.
func SaveBranchBudget(c *gin.Context) {
	var input struct {
		BranchID      uint    `json:"branch_id" binding:"required"`
		DailyAmount   float64 `json:"daily_amount" binding:"required"`
		EffectiveFrom string  `json:"effective_from"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	if input.DailyAmount < 0 {
		respondFail(c, http.StatusBadRequest, "budget cannot be negative", CodeValidation)
		return
	}
	if input.EffectiveFrom == "" {
		input.EffectiveFrom = time.Now().Format("2006-01-02")
	}

	exists, err := Models.BranchExists(Models.DB, input.BranchID)
	if err != nil {
		respondModelError(c, err)
		return
	}
	if !exists {
		respondFail(c, http.StatusNotFound, "branch not found", CodeNotFound)
		return
	}

	if err := Models.SaveBudget(Models.DB, input.BranchID, input.DailyAmount, input.EffectiveFrom); err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, "Budget Saved Successfully", nil)
}

func FetchBranchBudget(c *gin.Context) {
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

	budget, err := Models.DailyBudgetFor(Models.DB, branchID, input.Date)
	if err != nil {
		respondModelError(c, err)
		return
	}
	remaining, err := Models.RemainingBudgetFor(Models.DB, branchID, input.Date)
	if err != nil {
		respondModelError(c, err)
		return
	}

	respondOK(c, "success", gin.H{
		"daily_budget": budget,
		"remaining":    remaining,
	})
}
