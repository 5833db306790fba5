package Models

import (
	"gorm.io/gorm"
)

type Branch struct {
	gorm.Model
	Name            string `json:"name" gorm:"unique"`
	Code            string `json:"code"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
	LogoPath        string `json:"logo_path"`
	AdminEmployeeID uint   `json:"admin_employee_id"`
	IsActive        bool   `json:"is_active"`
}

// BranchBudget is a dated ledger: budgets are appended with an effective
// date, never overwritten, so historic expenses keep the budget that was in
// force when they were created.
type BranchBudget struct {
	gorm.Model
	BranchID          uint    `json:"branch_id"`
	DailyBudgetAmount float64 `json:"daily_budget_amount"`
	EffectiveFromDate string  `json:"effective_from_date"`
}

// DailyBudgetFor returns the budget in force on a date: the newest ledger
// row whose effective date is at or before it. Zero when no budget was ever
// set.
func DailyBudgetFor(db *gorm.DB, branchID uint, date string) (float64, error) {
	var budget BranchBudget
	err := db.Where("branch_id = ? AND effective_from_date <= ?", branchID, date).
		Order("effective_from_date DESC").
		First(&budget).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return budget.DailyBudgetAmount, nil
}

// SaveBudget appends a new dated budget row for the branch.
func SaveBudget(db *gorm.DB, branchID uint, amount float64, effectiveFrom string) error {
	budget := BranchBudget{
		BranchID:          branchID,
		DailyBudgetAmount: amount,
		EffectiveFromDate: effectiveFrom,
	}
	return db.Create(&budget).Error
}
