package Controllers

import (
	"fmt"
	"time"

	"ProSpine/Models"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
)

// Filter dropdown values change rarely, so they sit in a short-lived
// in-process cache instead of four DISTINCT scans per page load. Keyed
// per branch so one branch's dropdowns never leak into another's.
var filterOptionsCache = gocache.New(5*time.Minute, 10*time.Minute)

func reportFilters(c *gin.Context) (Models.ReportFilters, bool) {
	var filters Models.ReportFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		respondBindError(c, err)
		return filters, false
	}

	branchID, ok := scopedBranchID(c, filters.BranchID)
	if !ok {
		return filters, false
	}
	role := requestRole(c)
	// Admins may leave branch unset to see all branches.
	if filters.BranchID != 0 || (role != Models.RoleAdmin && role != Models.RoleSuperadmin) {
		filters.BranchID = branchID
	}
	return filters, true
}

func TestReport(c *gin.Context) {
	filters, ok := reportFilters(c)
	if !ok {
		return
	}

	rows, totals, err := Models.TestReport(Models.DB, filters, time.Now())
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, "success", gin.H{"rows": rows, "totals": totals})
}

func RegistrationReport(c *gin.Context) {
	filters, ok := reportFilters(c)
	if !ok {
		return
	}

	rows, totals, err := Models.RegistrationReport(Models.DB, filters, time.Now())
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, "success", gin.H{"rows": rows, "totals": totals})
}

func PatientReport(c *gin.Context) {
	filters, ok := reportFilters(c)
	if !ok {
		return
	}

	rows, totals, err := Models.PatientReport(Models.DB, filters, time.Now())
	if err != nil {
		respondModelError(c, err)
		return
	}
	respondOK(c, "success", gin.H{"rows": rows, "totals": totals})
}

func FetchReportFilterOptions(c *gin.Context) {
	var input struct {
		BranchID uint `form:"branch_id"`
	}
	if err := c.ShouldBindQuery(&input); err != nil {
		respondBindError(c, err)
		return
	}

	branchID, ok := scopedBranchID(c, input.BranchID)
	if !ok {
		return
	}
	role := requestRole(c)
	// Admins may leave branch unset to see all branches.
	if input.BranchID == 0 && (role == Models.RoleAdmin || role == Models.RoleSuperadmin) {
		branchID = 0
	}

	key := fmt.Sprintf("report_filter_options_%d", branchID)
	if cached, found := filterOptionsCache.Get(key); found {
		respondOK(c, "success", cached)
		return
	}

	options, err := Models.FetchReportFilterOptions(Models.DB, branchID)
	if err != nil {
		respondModelError(c, err)
		return
	}

	filterOptionsCache.Set(key, options, gocache.DefaultExpiration)
	respondOK(c, "success", options)
}
