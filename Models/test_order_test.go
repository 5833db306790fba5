package Models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextTestUIDSerial(t *testing.T) {
	db := setupTestDB(t)

	uid, err := NextTestUID(db, "2026-03-05")
	assert.NoError(t, err)
	assert.Equal(t, "26030501", uid)

	assert.NoError(t, db.Create(&TestOrder{TestUID: uid, VisitDate: "2026-03-05"}).Error)

	uid, err = NextTestUID(db, "2026-03-05")
	assert.NoError(t, err)
	assert.Equal(t, "26030502", uid)

	// A new day restarts the serial.
	uid, err = NextTestUID(db, "2026-03-06")
	assert.NoError(t, err)
	assert.Equal(t, "26030601", uid)
}

func TestDeriveTestPaymentStatus(t *testing.T) {
	assert.Equal(t, TestPaymentPaid, DeriveTestPaymentStatus(1000, 1000, 0))
	assert.Equal(t, TestPaymentPaid, DeriveTestPaymentStatus(1000, 500, 500))
	assert.Equal(t, TestPaymentPartial, DeriveTestPaymentStatus(1000, 400, 0))
	assert.Equal(t, TestPaymentPending, DeriveTestPaymentStatus(1000, 0, 0))
	assert.Equal(t, TestPaymentPaid, DeriveTestPaymentStatus(0, 0, 0))
}

func TestCreateTestOrderDistribution(t *testing.T) {
	db := setupTestDB(t)
	branch := seedBranch(t, db, "Main")

	order, err := CreateTestOrder(db, CreateTestOrderInput{
		VisitDate:     "2026-03-05",
		PatientName:   "Walk In",
		PhoneNumber:   "9800000003",
		AdvanceAmount: 700,
		Discount:      100,
		Lines: []TestLine{
			{Name: "x-ray", Amount: 500},
			{Name: "mri", Amount: 400},
		},
		BranchID:    branch.ID,
		CreatedByID: 1,
	})
	assert.NoError(t, err)
	assert.Equal(t, "26030501", order.TestUID)
	assert.Equal(t, 900.0, order.TotalAmount)
	assert.Equal(t, 100.0, order.DueAmount)
	assert.Equal(t, TestPaymentPartial, order.PaymentStatus)
	assert.Equal(t, "X-RAY, MRI", order.TestName)
	assert.Len(t, order.Items, 2)

	// Greedy advance: the first item absorbs 500, the second the rest.
	assert.Equal(t, 500.0, order.Items[0].AdvanceShare)
	assert.Equal(t, 0.0, order.Items[0].DiscountShare)
	assert.Equal(t, 0.0, order.Items[0].DueAmount)
	assert.Equal(t, 200.0, order.Items[1].AdvanceShare)
	assert.Equal(t, 100.0, order.Items[1].DiscountShare)
	assert.Equal(t, 100.0, order.Items[1].DueAmount)

	// Shares conserve the header totals.
	advance, discount, due := 0.0, 0.0, 0.0
	for _, item := range order.Items {
		advance += item.AdvanceShare
		discount += item.DiscountShare
		due += item.DueAmount
	}
	assert.Equal(t, order.AdvanceAmount, advance)
	assert.Equal(t, order.Discount, discount)
	assert.Equal(t, order.DueAmount, due)
}

func TestCreateTestOrderValidation(t *testing.T) {
	db := setupTestDB(t)

	_, err := CreateTestOrder(db, CreateTestOrderInput{
		PatientName: "",
		Lines:       []TestLine{{Name: "x-ray", Amount: 500}},
	})
	assert.ErrorIs(t, err, ErrMissingRequired)

	_, err = CreateTestOrder(db, CreateTestOrderInput{
		PatientName: "Walk In",
		Lines:       nil,
	})
	assert.ErrorIs(t, err, ErrMissingRequired)
}

func TestCreateTestOrderDefaultsVisitDate(t *testing.T) {
	db := setupTestDB(t)

	order, err := CreateTestOrder(db, CreateTestOrderInput{
		PatientName: "Walk In",
		Lines:       []TestLine{{Name: "x-ray", Amount: 500}},
	})
	assert.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), order.VisitDate)
}

func TestUpdateTestItemStatusCompletesOrder(t *testing.T) {
	db := setupTestDB(t)

	order, err := CreateTestOrder(db, CreateTestOrderInput{
		VisitDate:   "2026-03-05",
		PatientName: "Walk In",
		Lines: []TestLine{
			{Name: "x-ray", Amount: 500},
			{Name: "mri", Amount: 400},
		},
	})
	assert.NoError(t, err)

	assert.NoError(t, UpdateTestItemStatus(db, order.Items[0].ID, "completed"))

	var reloaded TestOrder
	assert.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, "pending", reloaded.TestStatus)

	assert.NoError(t, UpdateTestItemStatus(db, order.Items[1].ID, "completed"))
	assert.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, "completed", reloaded.TestStatus)

	assert.ErrorIs(t, UpdateTestItemStatus(db, 9999, "completed"), ErrNotFound)
}
