package Models

import (
	"strconv"

	"gorm.io/gorm"
)

const (
	PartnerActive   = "active"
	PartnerInactive = "inactive"
)

// ReferralPartner refers registrations and test orders to the clinic.
// Commission rates are percentages; a zero per-partner rate falls back to
// the global rate settings.
type ReferralPartner struct {
	gorm.Model
	Name             string  `json:"name"`
	Phone            string  `json:"phone"`
	Status           string  `json:"status"`
	RegistrationRate float64 `json:"registration_rate"`
	TestRate         float64 `json:"test_rate"`
}

// Setting is a small key/value table for clinic-wide knobs, currently the
// global commission rates.
type Setting struct {
	gorm.Model
	Key   string `json:"key" gorm:"unique"`
	Value string `json:"value"`
}

const (
	SettingGlobalRegistrationRate = "global_registration_rate"
	SettingGlobalTestRate         = "global_test_rate"
)

func GetSettingFloat(db *gorm.DB, key string) (float64, error) {
	var setting Setting
	if err := db.Model(&Setting{}).Where("key = ?", key).First(&setting).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	value, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil {
		return 0, nil
	}
	return value, nil
}

func PutSettingFloat(db *gorm.DB, key string, value float64) error {
	formatted := strconv.FormatFloat(value, 'f', -1, 64)
	var setting Setting
	err := db.Model(&Setting{}).Where("key = ?", key).First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		return db.Create(&Setting{Key: key, Value: formatted}).Error
	}
	if err != nil {
		return err
	}
	return db.Model(&Setting{}).Where("key = ?", key).Update("value", formatted).Error
}

// PartnerTransaction is one referred registration or test with its
// computed commission.
type PartnerTransaction struct {
	Kind       string  `json:"kind"` // registration | test
	RecordID   uint    `json:"record_id"`
	Date       string  `json:"date"`
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	Rate       float64 `json:"rate"`
	Commission float64 `json:"commission"`
}

// PartnerTransactions lists everything a partner referred, with the
// commission computed at the partner rate (global rate when the partner
// has none set).
func PartnerTransactions(db *gorm.DB, partnerID uint) ([]PartnerTransaction, error) {
	var partner ReferralPartner
	if err := db.Model(&ReferralPartner{}).Where("id = ?", partnerID).First(&partner).Error; err != nil {
		return nil, ErrNotFound
	}

	regRate := partner.RegistrationRate
	if regRate == 0 {
		var err error
		if regRate, err = GetSettingFloat(db, SettingGlobalRegistrationRate); err != nil {
			return nil, err
		}
	}
	testRate := partner.TestRate
	if testRate == 0 {
		var err error
		if testRate, err = GetSettingFloat(db, SettingGlobalTestRate); err != nil {
			return nil, err
		}
	}

	var registrations []Registration
	if err := db.Model(&Registration{}).Where("referral_partner_id = ?", partnerID).
		Order("created_at DESC").Find(&registrations).Error; err != nil {
		return nil, err
	}
	var tests []TestOrder
	if err := db.Model(&TestOrder{}).Where("referral_partner_id = ?", partnerID).
		Order("created_at DESC").Find(&tests).Error; err != nil {
		return nil, err
	}

	transactions := make([]PartnerTransaction, 0, len(registrations)+len(tests))
	for i := range registrations {
		r := &registrations[i]
		transactions = append(transactions, PartnerTransaction{
			Kind:       "registration",
			RecordID:   r.ID,
			Date:       r.CreatedAt.Format("2006-01-02"),
			Name:       r.PatientName,
			Amount:     r.ConsultationAmount,
			Rate:       regRate,
			Commission: r.ConsultationAmount * regRate / 100,
		})
	}
	for i := range tests {
		t := &tests[i]
		transactions = append(transactions, PartnerTransaction{
			Kind:       "test",
			RecordID:   t.ID,
			Date:       t.CreatedAt.Format("2006-01-02"),
			Name:       t.PatientName,
			Amount:     t.TotalAmount,
			Rate:       testRate,
			Commission: t.TotalAmount * testRate / 100,
		})
	}
	return transactions, nil
}
