package Models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	ExpensePending  = "pending"
	ExpenseApproved = "approved"
	ExpenseRejected = "rejected"
	ExpensePaid     = "paid"
)

// Expense categories mirror the three role-gated entry screens.
const (
	ExpenseCategoryClinic    = "clinic"
	ExpenseCategoryPersonal  = "personal"
	ExpenseCategoryReception = "reception"
)

type Expense struct {
	gorm.Model
	BranchID      uint    `json:"branch_id"`
	EmployeeID    uint    `json:"employee_id"`
	VoucherNo     string  `json:"voucher_no"`
	ExpenseDate   string  `json:"expense_date"`
	PaidTo        string  `json:"paid_to"`
	ExpenseDoneBy string  `json:"expense_done_by"`
	Category      string  `json:"category" gorm:"column:expense_for"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	AmountInWords string  `json:"amount_in_words"`
	PaymentMethod string  `json:"payment_method"`
	Status        string  `json:"status"`
	ApprovedByID  uint    `json:"approved_by_id"`
}

// ApprovedTotalFor sums approved expenses of a branch on a given date.
func ApprovedTotalFor(db *gorm.DB, branchID uint, date string) (float64, error) {
	var total float64
	err := db.Model(&Expense{}).
		Where("branch_id = ? AND expense_date = ? AND status = ?", branchID, date, ExpenseApproved).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// RemainingBudgetFor is the budget in force minus what is already approved
// for the date.
func RemainingBudgetFor(db *gorm.DB, branchID uint, date string) (float64, error) {
	budget, err := DailyBudgetFor(db, branchID, date)
	if err != nil {
		return 0, err
	}
	approved, err := ApprovedTotalFor(db, branchID, date)
	if err != nil {
		return 0, err
	}
	return budget - approved, nil
}

// CreateExpense validates, decides approved-vs-pending against the
// remaining daily budget, and inserts. An expense fitting inside the
// remaining budget is auto approved; anything larger waits for an admin.
// A pending insert also raises an in-app notification for branch admins.
func CreateExpense(db *gorm.DB, expense *Expense) error {
	if expense.ExpenseDate == "" {
		expense.ExpenseDate = time.Now().Format("2006-01-02")
	}
	if expense.PaidTo == "" || expense.Category == "" {
		return ErrMissingRequired
	}
	if expense.Amount <= 0 {
		return ErrInvalidAmount
	}

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if expense.VoucherNo != "" {
		var count int64
		if err := tx.Model(&Expense{}).
			Where("branch_id = ? AND voucher_no = ?", expense.BranchID, expense.VoucherNo).
			Count(&count).Error; err != nil {
			tx.Rollback()
			return err
		}
		if count > 0 {
			tx.Rollback()
			return ErrDuplicateVoucher
		}
	} else {
		expense.VoucherNo = "EXP-" + time.Now().Format("20060102150405")
	}

	remaining, err := RemainingBudgetFor(tx, expense.BranchID, expense.ExpenseDate)
	if err != nil {
		tx.Rollback()
		return err
	}

	if expense.Amount <= remaining {
		expense.Status = ExpenseApproved
	} else {
		expense.Status = ExpensePending
	}

	if err := tx.Create(expense).Error; err != nil {
		tx.Rollback()
		return err
	}

	if expense.Status == ExpensePending {
		message := fmt.Sprintf("New high-value expense req: %.2f (%s)", expense.Amount, expense.VoucherNo)
		if err := NotifyRole(tx, expense.BranchID, RoleAdmin, message, "/expenses?voucher="+expense.VoucherNo, expense.EmployeeID); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}
	return nil
}

// UpdateExpenseStatus moves an expense through the approval lifecycle.
func UpdateExpenseStatus(db *gorm.DB, expenseID uint, status string, approverID uint) error {
	switch status {
	case ExpenseApproved, ExpenseRejected, ExpensePaid, ExpensePending:
	default:
		return ErrUnknownExpenseState
	}

	var expense Expense
	if err := db.Model(&Expense{}).Where("id = ?", expenseID).First(&expense).Error; err != nil {
		return ErrNotFound
	}

	return db.Model(&Expense{}).Where("id = ?", expenseID).
		Updates(map[string]interface{}{"status": status, "approved_by_id": approverID}).Error
}

// ExpenseTotals are the filtered sums shown above the expense list.
type ExpenseTotals struct {
	Count          int64   `json:"total_expenses"`
	TotalAmount    float64 `json:"total_amount"`
	ApprovedAmount float64 `json:"approved_amount"`
	PendingAmount  float64 `json:"pending_amount"`
}

func ExpenseTotalsFor(db *gorm.DB, branchID uint, startDate, endDate string) (ExpenseTotals, error) {
	var totals ExpenseTotals
	err := db.Model(&Expense{}).
		Where("branch_id = ? AND expense_date BETWEEN ? AND ?", branchID, startDate, endDate).
		Select(`COUNT(*) AS count,
			COALESCE(SUM(amount), 0) AS total_amount,
			COALESCE(SUM(CASE WHEN status = 'approved' THEN amount ELSE 0 END), 0) AS approved_amount,
			COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0) AS pending_amount`).
		Scan(&totals).Error
	return totals, err
}
