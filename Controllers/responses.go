package Controllers

import (
	"errors"
	"log"
	"net/http"

	"ProSpine/Models"

	"github.com/gin-gonic/gin"
)

const (
	CodeValidation          = "validation"
	CodeUnauthorized        = "unauthorized"
	CodeForbidden           = "forbidden"
	CodeNotFound            = "not_found"
	CodeInsufficientBalance = "insufficient_balance"
	CodeDuplicate           = "duplicate"
	CodeInternal            = "internal"
)

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": message, "data": data})
}

func respondFail(c *gin.Context, httpStatus int, message string, code string) {
	c.JSON(httpStatus, gin.H{"status": "error", "message": message, "code": code})
}

// respondModelError maps the model layer's sentinel errors onto stable
// HTTP statuses and machine codes. Unknown errors are logged and hidden
// behind a generic message.
func respondModelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, Models.ErrNotFound):
		respondFail(c, http.StatusNotFound, err.Error(), CodeNotFound)
	case errors.Is(err, Models.ErrAlreadyMarked):
		respondFail(c, http.StatusConflict, err.Error(), CodeDuplicate)
	case errors.Is(err, Models.ErrAlreadyConverted):
		respondFail(c, http.StatusConflict, err.Error(), CodeDuplicate)
	case errors.Is(err, Models.ErrDuplicateVoucher):
		respondFail(c, http.StatusConflict, err.Error(), CodeDuplicate)
	case errors.Is(err, Models.ErrPaymentRequired):
		respondFail(c, http.StatusUnprocessableEntity, err.Error(), CodeInsufficientBalance)
	case errors.Is(err, Models.ErrInvalidAmount),
		errors.Is(err, Models.ErrMissingRequired),
		errors.Is(err, Models.ErrNotPending),
		errors.Is(err, Models.ErrUnknownExpenseState):
		respondFail(c, http.StatusBadRequest, err.Error(), CodeValidation)
	default:
		log.Println(err)
		respondFail(c, http.StatusInternalServerError, "something went wrong", CodeInternal)
	}
}

func respondBindError(c *gin.Context, err error) {
	respondFail(c, http.StatusBadRequest, err.Error(), CodeValidation)
}

// requestEmployeeID reads the identity the auth middleware stored from
// the verified token. Client-supplied employee ids are never trusted.
func requestEmployeeID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("employeeID")
	if !exists {
		respondFail(c, http.StatusUnauthorized, "unauthorized", CodeUnauthorized)
		return 0, false
	}
	id, ok := value.(uint)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "unauthorized", CodeUnauthorized)
		return 0, false
	}
	return id, true
}

func requestBranchID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("branchID")
	if !exists {
		respondFail(c, http.StatusUnauthorized, "unauthorized", CodeUnauthorized)
		return 0, false
	}
	id, ok := value.(uint)
	if !ok {
		respondFail(c, http.StatusUnauthorized, "unauthorized", CodeUnauthorized)
		return 0, false
	}
	return id, true
}

func requestRole(c *gin.Context) string {
	value, exists := c.Get("role")
	if !exists {
		return ""
	}
	role, _ := value.(string)
	return role
}

// scopedBranchID resolves which branch a request operates on: admins may
// ask for any branch via the input, everyone else is pinned to their own.
func scopedBranchID(c *gin.Context, requested uint) (uint, bool) {
	own, ok := requestBranchID(c)
	if !ok {
		return 0, false
	}
	role := requestRole(c)
	if requested != 0 && requested != own && role != Models.RoleAdmin && role != Models.RoleSuperadmin {
		respondFail(c, http.StatusForbidden, "branch not allowed", CodeForbidden)
		return 0, false
	}
	if requested == 0 {
		return own, true
	}
	return requested, true
}
