package Controllers

import (
	"net/http"
	"time"

	"ProSpine/Models"

	"github.com/gin-gonic/gin"
)

// FetchReferralPartners lists partners with their lifetime referral count
// and how long ago the latest referral came in.
func FetchReferralPartners(c *gin.Context) {
	var partners []Models.ReferralPartner
	if err := Models.DB.Model(&Models.ReferralPartner{}).Order("name").Find(&partners).Error; err != nil {
		respondModelError(c, err)
		return
	}

	type referralAgg struct {
		PartnerID uint       `gorm:"column:partner_id"`
		Last      *time.Time `gorm:"column:last"`
		Total     int64      `gorm:"column:total"`
	}
	lastReferral := map[uint]time.Time{}
	totalReferrals := map[uint]int64{}
	for _, model := range []interface{}{&Models.Registration{}, &Models.TestOrder{}} {
		var rows []referralAgg
		if err := Models.DB.Model(model).
			Select("referral_partner_id AS partner_id, MAX(created_at) AS last, COUNT(*) AS total").
			Where("referral_partner_id IS NOT NULL").
			Group("referral_partner_id").
			Scan(&rows).Error; err != nil {
			respondModelError(c, err)
			return
		}
		for _, row := range rows {
			totalReferrals[row.PartnerID] += row.Total
			if row.Last != nil && row.Last.After(lastReferral[row.PartnerID]) {
				lastReferral[row.PartnerID] = *row.Last
			}
		}
	}

	now := time.Now()
	results := make([]gin.H, 0, len(partners))
	for i := range partners {
		partner := &partners[i]
		entry := gin.H{
			"partner":         partner,
			"total_referrals": totalReferrals[partner.ID],
		}
		if last, ok := lastReferral[partner.ID]; ok {
			lastDate := last.Format("2006-01-02")
			if days, ok := Models.DaysBetween(lastDate, now); ok {
				entry["last_referral_date"] = lastDate
				entry["days_since_referral"] = days
				entry["drift_level"] = Models.DriftTier(days)
			}
		}
		results = append(results, entry)
	}
	respondOK(c, "success", results)
}

func AddReferralPartner(c *gin.Context) {
	var input struct {
		Name             string  `json:"name" binding:"required"`
		Phone            string  `json:"phone"`
		RegistrationRate float64 `json:"registration_rate"`
		TestRate         float64 `json:"test_rate"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	partner := Models.ReferralPartner{
		Name:             input.Name,
		Phone:            input.Phone,
		Status:           Models.PartnerActive,
		RegistrationRate: input.RegistrationRate,
		TestRate:         input.TestRate,
	}
	if err := Models.DB.Create(&partner).Error; err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, "Referral Partner Created Successfully", partner)
}

func UpdateReferralPartner(c *gin.Context) {
	var input struct {
		PartnerID        uint     `json:"partner_id" binding:"required"`
		Name             string   `json:"name"`
		Phone            string   `json:"phone"`
		Status           string   `json:"status"`
		RegistrationRate *float64 `json:"registration_rate"`
		TestRate         *float64 `json:"test_rate"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	var partner Models.ReferralPartner
	if err := Models.DB.First(&partner, input.PartnerID).Error; err != nil {
		respondFail(c, http.StatusNotFound, "partner not found", CodeNotFound)
		return
	}

	if input.Name != "" {
		partner.Name = input.Name
	}
	if input.Phone != "" {
		partner.Phone = input.Phone
	}
	if input.Status != "" {
		if input.Status != Models.PartnerActive && input.Status != Models.PartnerInactive {
			respondFail(c, http.StatusBadRequest, "unknown partner status", CodeValidation)
			return
		}
		partner.Status = input.Status
	}
	if input.RegistrationRate != nil {
		partner.RegistrationRate = *input.RegistrationRate
	}
	if input.TestRate != nil {
		partner.TestRate = *input.TestRate
	}

	if err := Models.DB.Save(&partner).Error; err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, "Referral Partner Updated Successfully", partner)
}

// UpdateGlobalReferralRates sets the fallback commission rates used for
// partners without a rate of their own.
func UpdateGlobalReferralRates(c *gin.Context) {
	var input struct {
		RegistrationRate *float64 `json:"registration_rate"`
		TestRate         *float64 `json:"test_rate"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	if input.RegistrationRate != nil {
		if err := Models.PutSettingFloat(Models.DB, Models.SettingGlobalRegistrationRate, *input.RegistrationRate); err != nil {
			respondModelError(c, err)
			return
		}
	}
	if input.TestRate != nil {
		if err := Models.PutSettingFloat(Models.DB, Models.SettingGlobalTestRate, *input.TestRate); err != nil {
			respondModelError(c, err)
			return
		}
	}
	respondOK(c, "Rates Updated Successfully", nil)
}

func FetchPartnerTransactions(c *gin.Context) {
	var input struct {
		PartnerID uint `json:"partner_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	transactions, err := Models.PartnerTransactions(Models.DB, input.PartnerID)
	if err != nil {
		respondModelError(c, err)
		return
	}

	totalCommission := 0.0
	for _, transaction := range transactions {
		totalCommission += transaction.Commission
	}
	respondOK(c, "success", gin.H{
		"transactions":     transactions,
		"total_commission": totalCommission,
	})
}
