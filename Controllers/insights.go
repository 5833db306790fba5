package Controllers

import (
	"time"

	"ProSpine/Models"

	"github.com/gin-gonic/gin"
)

// RetentionRadar surfaces dropped-off patients ranked by tier so the
// desk can call the most at-risk first.
func RetentionRadar(c *gin.Context) {
	var input struct {
		BranchID uint `form:"branch_id"`
	}
	if err := c.ShouldBindQuery(&input); err != nil {
		respondBindError(c, err)
		return
	}

	role := requestRole(c)
	var branchIDs []uint
	if input.BranchID != 0 {
		branchID, ok := scopedBranchID(c, input.BranchID)
		if !ok {
			return
		}
		branchIDs = []uint{branchID}
	} else if role != Models.RoleAdmin && role != Models.RoleSuperadmin {
		own, ok := requestBranchID(c)
		if !ok {
			return
		}
		branchIDs = []uint{own}
	}

	entries, err := Models.RetentionRadar(Models.DB, branchIDs, time.Now())
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, "success", entries)
}

// ReferralDrift lists partners whose referral flow has gone quiet.
func ReferralDrift(c *gin.Context) {
	entries, err := Models.ReferralDrift(Models.DB, time.Now())
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, "success", entries)
}
