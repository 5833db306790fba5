package Models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDailyBudgetForUsesNewestEffectiveEntry(t *testing.T) {
	db := setupTestDB(t)
	branch := seedBranch(t, db, "Main")

	assert.NoError(t, SaveBudget(db, branch.ID, 2000, "2026-01-01"))
	assert.NoError(t, SaveBudget(db, branch.ID, 3000, "2026-03-01"))

	budget, err := DailyBudgetFor(db, branch.ID, "2026-02-15")
	assert.NoError(t, err)
	assert.Equal(t, 2000.0, budget)

	budget, err = DailyBudgetFor(db, branch.ID, "2026-03-01")
	assert.NoError(t, err)
	assert.Equal(t, 3000.0, budget)

	// Before any entry exists the budget is zero.
	budget, err = DailyBudgetFor(db, branch.ID, "2025-12-31")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, budget)
}

func TestCreateExpenseAutoApprovalWithinBudget(t *testing.T) {
	db := setupTestDB(t)
	branch := seedBranch(t, db, "Main")
	assert.NoError(t, SaveBudget(db, branch.ID, 2000, "2026-01-01"))

	expense := Expense{
		BranchID:    branch.ID,
		EmployeeID:  1,
		ExpenseDate: "2026-03-10",
		PaidTo:      "Supplier",
		Category:    ExpenseCategoryClinic,
		Amount:      1500,
	}
	assert.NoError(t, CreateExpense(db, &expense))
	assert.Equal(t, ExpenseApproved, expense.Status)
}

func TestCreateExpenseBoundaryAmountEqualsRemaining(t *testing.T) {
	db := setupTestDB(t)
	branch := seedBranch(t, db, "Main")
	assert.NoError(t, SaveBudget(db, branch.ID, 2000, "2026-01-01"))

	first := Expense{BranchID: branch.ID, EmployeeID: 1, ExpenseDate: "2026-03-10", PaidTo: "A", Amount: 500, Category: ExpenseCategoryClinic}
	assert.NoError(t, CreateExpense(db, &first))
	assert.Equal(t, ExpenseApproved, first.Status)

	// Exactly the remaining 1500 still auto approves.
	second := Expense{BranchID: branch.ID, EmployeeID: 1, ExpenseDate: "2026-03-10", PaidTo: "B", Amount: 1500, Category: ExpenseCategoryClinic}
	assert.NoError(t, CreateExpense(db, &second))
	assert.Equal(t, ExpenseApproved, second.Status)

	// The budget is spent; one more goes pending.
	third := Expense{BranchID: branch.ID, EmployeeID: 1, ExpenseDate: "2026-03-10", PaidTo: "C", Amount: 1, Category: ExpenseCategoryClinic}
	assert.NoError(t, CreateExpense(db, &third))
	assert.Equal(t, ExpensePending, third.Status)
}

func TestCreateExpensePendingRaisesNotification(t *testing.T) {
	db := setupTestDB(t)
	branch := seedBranch(t, db, "Main")
	assert.NoError(t, SaveBudget(db, branch.ID, 100, "2026-01-01"))

	expense := Expense{
		BranchID:    branch.ID,
		EmployeeID:  7,
		ExpenseDate: "2026-03-10",
		PaidTo:      "Supplier",
		Category:    ExpenseCategoryClinic,
		Amount:      5000,
	}
	assert.NoError(t, CreateExpense(db, &expense))
	assert.Equal(t, ExpensePending, expense.Status)

	var notifications []Notification
	assert.NoError(t, db.Where("branch_id = ? AND role = ?", branch.ID, RoleAdmin).Find(&notifications).Error)
	assert.Len(t, notifications, 1)
}

func TestCreateExpensePendingDoesNotConsumeBudget(t *testing.T) {
	db := setupTestDB(t)
	branch := seedBranch(t, db, "Main")
	assert.NoError(t, SaveBudget(db, branch.ID, 1000, "2026-01-01"))

	big := Expense{BranchID: branch.ID, EmployeeID: 1, ExpenseDate: "2026-03-10", PaidTo: "A", Amount: 5000, Category: ExpenseCategoryClinic}
	assert.NoError(t, CreateExpense(db, &big))
	assert.Equal(t, ExpensePending, big.Status)

	// The pending row leaves the day's budget untouched.
	remaining, err := RemainingBudgetFor(db, branch.ID, "2026-03-10")
	assert.NoError(t, err)
	assert.Equal(t, 1000.0, remaining)

	small := Expense{BranchID: branch.ID, EmployeeID: 1, ExpenseDate: "2026-03-10", PaidTo: "B", Amount: 800, Category: ExpenseCategoryClinic}
	assert.NoError(t, CreateExpense(db, &small))
	assert.Equal(t, ExpenseApproved, small.Status)
}

func TestCreateExpenseDuplicateVoucherPerBranch(t *testing.T) {
	db := setupTestDB(t)
	branch := seedBranch(t, db, "Main")
	other := seedBranch(t, db, "East")
	assert.NoError(t, SaveBudget(db, branch.ID, 10000, "2026-01-01"))
	assert.NoError(t, SaveBudget(db, other.ID, 10000, "2026-01-01"))

	first := Expense{BranchID: branch.ID, EmployeeID: 1, VoucherNo: "EXP-77", ExpenseDate: "2026-03-10", PaidTo: "A", Amount: 100, Category: ExpenseCategoryClinic}
	assert.NoError(t, CreateExpense(db, &first))

	duplicate := Expense{BranchID: branch.ID, EmployeeID: 1, VoucherNo: "EXP-77", ExpenseDate: "2026-03-11", PaidTo: "B", Amount: 100, Category: ExpenseCategoryClinic}
	assert.ErrorIs(t, CreateExpense(db, &duplicate), ErrDuplicateVoucher)

	// The same voucher number is fine at another branch.
	elsewhere := Expense{BranchID: other.ID, EmployeeID: 1, VoucherNo: "EXP-77", ExpenseDate: "2026-03-10", PaidTo: "C", Amount: 100, Category: ExpenseCategoryClinic}
	assert.NoError(t, CreateExpense(db, &elsewhere))
}

func TestCreateExpenseValidation(t *testing.T) {
	db := setupTestDB(t)
	branch := seedBranch(t, db, "Main")

	noAmount := Expense{BranchID: branch.ID, EmployeeID: 1, ExpenseDate: "2026-03-10", PaidTo: "A", Category: ExpenseCategoryClinic}
	assert.ErrorIs(t, CreateExpense(db, &noAmount), ErrInvalidAmount)

	negative := Expense{BranchID: branch.ID, EmployeeID: 1, ExpenseDate: "2026-03-10", PaidTo: "A", Amount: -5, Category: ExpenseCategoryClinic}
	assert.ErrorIs(t, CreateExpense(db, &negative), ErrInvalidAmount)

	noPayee := Expense{BranchID: branch.ID, EmployeeID: 1, ExpenseDate: "2026-03-10", Amount: 100, Category: ExpenseCategoryClinic}
	assert.ErrorIs(t, CreateExpense(db, &noPayee), ErrMissingRequired)
}

func TestUpdateExpenseStatus(t *testing.T) {
	db := setupTestDB(t)
	branch := seedBranch(t, db, "Main")

	expense := Expense{BranchID: branch.ID, EmployeeID: 1, ExpenseDate: "2026-03-10", PaidTo: "A", Amount: 5000, Category: ExpenseCategoryClinic}
	assert.NoError(t, CreateExpense(db, &expense))
	assert.Equal(t, ExpensePending, expense.Status)

	assert.NoError(t, UpdateExpenseStatus(db, expense.ID, ExpenseApproved, 42))

	var updated Expense
	assert.NoError(t, db.First(&updated, expense.ID).Error)
	assert.Equal(t, ExpenseApproved, updated.Status)
	assert.Equal(t, uint(42), updated.ApprovedByID)

	assert.ErrorIs(t, UpdateExpenseStatus(db, expense.ID, "bogus", 42), ErrUnknownExpenseState)
	assert.ErrorIs(t, UpdateExpenseStatus(db, 9999, ExpenseApproved, 42), ErrNotFound)
}
