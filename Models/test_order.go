package Models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	TestPaymentPaid    = "paid"
	TestPaymentPartial = "partial"
	TestPaymentPending = "pending"
)

// TestOrder is the parent header for one visit's diagnostic tests. The
// line items carry their own share of the advance and discount.
type TestOrder struct {
	gorm.Model
	TestUID           string     `json:"test_uid" gorm:"unique"`
	VisitDate         string     `json:"visit_date"`
	PatientName       string     `json:"patient_name"`
	PhoneNumber       string     `json:"phone_number"`
	Gender            string     `json:"gender"`
	Age               string     `json:"age"`
	TestName          string     `json:"test_name"`
	ReferredBy        string     `json:"referred_by"`
	ReferralPartnerID *uint      `json:"referral_partner_id" gorm:"default:null"`
	TestDoneBy        string     `json:"test_done_by"`
	TotalAmount       float64    `json:"total_amount"`
	AdvanceAmount     float64    `json:"advance_amount"`
	Discount          float64    `json:"discount"`
	DueAmount         float64    `json:"due_amount"`
	PaymentMethod     string     `json:"payment_method"`
	PaymentStatus     string     `json:"payment_status"`
	TestStatus        string     `json:"test_status"`
	BranchID          uint       `json:"branch_id"`
	CreatedByID       uint       `json:"created_by_id"`
	Items             []TestItem `json:"items"`
}

type TestItem struct {
	gorm.Model
	TestOrderID   uint    `json:"test_order_id"`
	Name          string  `json:"name"`
	Amount        float64 `json:"amount"`
	AdvanceShare  float64 `json:"advance_share"`
	DiscountShare float64 `json:"discount_share"`
	DueAmount     float64 `json:"due_amount"`
	Status        string  `json:"status"`
}

type TestLine struct {
	Name   string
	Amount float64
}

type CreateTestOrderInput struct {
	VisitDate         string
	PatientName       string
	PhoneNumber       string
	Gender            string
	Age               string
	ReferredBy        string
	ReferralPartnerID *uint
	TestDoneBy        string
	PaymentMethod     string
	AdvanceAmount     float64
	Discount          float64
	Lines             []TestLine
	BranchID          uint
	CreatedByID       uint
}

// NextTestUID builds the visit-date-prefixed serial uid (yymmddNN).
func NextTestUID(tx *gorm.DB, visitDate string) (string, error) {
	t, err := time.Parse("2006-01-02", visitDate)
	if err != nil {
		t = time.Now()
	}
	prefix := t.Format("060102")

	var lastUID string
	err = tx.Model(&TestOrder{}).
		Where("test_uid LIKE ?", prefix+"%").
		Order("test_uid DESC").
		Limit(1).
		Pluck("test_uid", &lastUID).Error
	if err != nil {
		return "", err
	}

	serial := 0
	if len(lastUID) > 6 {
		serial, _ = strconv.Atoi(lastUID[6:])
	}
	return fmt.Sprintf("%s%02d", prefix, serial+1), nil
}

// DeriveTestPaymentStatus mirrors the billing rules: nothing owed means
// paid, a partial advance means partial, otherwise pending.
func DeriveTestPaymentStatus(total, advance, discount float64) string {
	due := total - advance - discount
	switch {
	case total == 0:
		return TestPaymentPaid
	case due <= 0:
		return TestPaymentPaid
	case advance > 0:
		return TestPaymentPartial
	default:
		return TestPaymentPending
	}
}

// CreateTestOrder writes the parent header plus line items, distributing
// the advance and then the discount greedily across items in order. The
// distribution conserves totals: item shares always sum to the header
// amounts.
func CreateTestOrder(db *gorm.DB, input CreateTestOrderInput) (*TestOrder, error) {
	if input.PatientName == "" {
		return nil, ErrMissingRequired
	}
	if len(input.Lines) == 0 {
		return nil, ErrMissingRequired
	}
	if input.VisitDate == "" {
		input.VisitDate = time.Now().Format("2006-01-02")
	}

	total := 0.0
	names := make([]string, 0, len(input.Lines))
	for _, line := range input.Lines {
		total += line.Amount
		names = append(names, strings.ToUpper(line.Name))
	}
	due := total - input.AdvanceAmount - input.Discount

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	uid, err := NextTestUID(tx, input.VisitDate)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	order := TestOrder{
		TestUID:           uid,
		VisitDate:         input.VisitDate,
		PatientName:       input.PatientName,
		PhoneNumber:       input.PhoneNumber,
		Gender:            input.Gender,
		Age:               input.Age,
		TestName:          strings.Join(names, ", "),
		ReferredBy:        input.ReferredBy,
		ReferralPartnerID: input.ReferralPartnerID,
		TestDoneBy:        input.TestDoneBy,
		TotalAmount:       total,
		AdvanceAmount:     input.AdvanceAmount,
		Discount:          input.Discount,
		DueAmount:         due,
		PaymentMethod:     input.PaymentMethod,
		PaymentStatus:     DeriveTestPaymentStatus(total, input.AdvanceAmount, input.Discount),
		TestStatus:        "pending",
		BranchID:          input.BranchID,
		CreatedByID:       input.CreatedByID,
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	remainingAdvance := input.AdvanceAmount
	remainingDiscount := input.Discount
	for _, line := range input.Lines {
		advanceShare := 0.0
		if remainingAdvance > 0 {
			if remainingAdvance >= line.Amount {
				advanceShare = line.Amount
			} else {
				advanceShare = remainingAdvance
			}
			remainingAdvance -= advanceShare
		}

		discountShare := 0.0
		if remainingDiscount > 0 {
			maxDiscount := line.Amount - advanceShare
			if maxDiscount < 0 {
				maxDiscount = 0
			}
			if remainingDiscount >= maxDiscount {
				discountShare = maxDiscount
			} else {
				discountShare = remainingDiscount
			}
			remainingDiscount -= discountShare
		}

		item := TestItem{
			TestOrderID:   order.ID,
			Name:          strings.ToUpper(line.Name),
			Amount:        line.Amount,
			AdvanceShare:  advanceShare,
			DiscountShare: discountShare,
			DueAmount:     line.Amount - advanceShare - discountShare,
			Status:        "pending",
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		order.Items = append(order.Items, item)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return &order, nil
}

// UpdateTestItemStatus changes one line item's state and completes the
// parent when every item is done.
func UpdateTestItemStatus(db *gorm.DB, itemID uint, status string) error {
	var item TestItem
	if err := db.Model(&TestItem{}).Where("id = ?", itemID).First(&item).Error; err != nil {
		return ErrNotFound
	}

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&TestItem{}).Where("id = ?", itemID).Update("status", status).Error; err != nil {
		tx.Rollback()
		return err
	}

	var open int64
	if err := tx.Model(&TestItem{}).
		Where("test_order_id = ? AND status != ?", item.TestOrderID, "completed").
		Count(&open).Error; err != nil {
		tx.Rollback()
		return err
	}
	if open == 0 {
		if err := tx.Model(&TestOrder{}).Where("id = ?", item.TestOrderID).
			Update("test_status", "completed").Error; err != nil {
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
