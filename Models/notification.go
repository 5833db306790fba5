package Models

import (
	"gorm.io/gorm"
)

type Notification struct {
	gorm.Model
	Title       string `json:"title"`
	Message     string `json:"message"`
	Link        string `json:"link"`
	Role        string `json:"role"`
	BranchID    uint   `json:"branch_id"`
	CreatedByID uint   `json:"created_by_id"`
	IsRead      bool   `json:"is_read" gorm:"default:false"`
}

// NotificationRequest carries a push payload plus the device tokens it
// should fan out to.
type NotificationRequest struct {
	Tokens []string `json:"tokens"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
}

// Inquiry is an inbound WhatsApp message captured by the chatbot
// listener so reception can follow up from the dashboard.
type Inquiry struct {
	gorm.Model
	PhoneNumber string `json:"phone_number"`
	SenderName  string `json:"sender_name"`
	Message     string `json:"message"`
	Handled     bool   `json:"handled" gorm:"default:false"`
}

// NotifyRole persists an in-app notification for every employee of the
// given role at a branch. Runs on the caller's transaction.
func NotifyRole(tx *gorm.DB, branchID uint, role string, message string, link string, createdByID uint) error {
	notification := Notification{
		Title:       "Approval Required",
		Message:     message,
		Link:        link,
		Role:        role,
		BranchID:    branchID,
		CreatedByID: createdByID,
	}
	return tx.Create(&notification).Error
}

func UnreadNotifications(db *gorm.DB, branchID uint, role string) ([]Notification, error) {
	var notifications []Notification
	err := db.Model(&Notification{}).
		Where("branch_id = ? AND role = ? AND is_read = ?", branchID, role, false).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func MarkNotificationRead(db *gorm.DB, id uint) error {
	result := db.Model(&Notification{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func SaveInquiry(db *gorm.DB, inquiry *Inquiry) error {
	return db.Create(inquiry).Error
}

func OpenInquiries(db *gorm.DB) ([]Inquiry, error) {
	var inquiries []Inquiry
	err := db.Model(&Inquiry{}).Where("handled = ?", false).Order("created_at DESC").Find(&inquiries).Error
	return inquiries, err
}
