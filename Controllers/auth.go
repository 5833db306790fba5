package Controllers

import (
	"log"
	"net/http"

	"ProSpine/Models"
	"ProSpine/Utils/Token"

	"github.com/gin-gonic/gin"
)

func CurrentUser(c *gin.Context) {
	employee_id, err := Token.ExtractTokenID(c)
	if err != nil {
		respondFail(c, http.StatusUnauthorized, err.Error(), CodeUnauthorized)
		return
	}

	employee, err := Models.GetEmployeeByID(employee_id)
	if err != nil {
		respondFail(c, http.StatusUnauthorized, err.Error(), CodeUnauthorized)
		return
	}

	var output struct {
		ID       uint   `json:"ID"`
		Username string `json:"username"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
		BranchID uint   `json:"branch_id"`
	}
	output.ID = employee.ID
	output.Username = employee.Username
	output.FullName = employee.FullName()
	output.Role = employee.Role
	output.BranchID = employee.BranchID
	respondOK(c, "success", output)
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	uid, token, err := Models.LoginCheck(input.Username, input.Password)
	if err != nil {
		respondFail(c, http.StatusUnauthorized, "username or password is incorrect", CodeUnauthorized)
		return
	}

	employee, _ := Models.GetEmployeeByID(uid)
	if !employee.IsActive {
		respondFail(c, http.StatusUnauthorized, "account disabled", CodeUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "Login Successful",
		"jwt":       token,
		"role":      employee.Role,
		"branch_id": employee.BranchID,
	})
}

type RegisterInput struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	BranchID  uint   `json:"branch_id"`
}

// RegisterEmployee creates a reception or admin account. Only admins can
// reach this route.
func RegisterEmployee(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	if input.Role == "" {
		input.Role = Models.RoleReception
	}
	switch input.Role {
	case Models.RoleReception, Models.RoleAdmin, Models.RoleSuperadmin:
	default:
		respondFail(c, http.StatusBadRequest, "unknown role", CodeValidation)
		return
	}

	exists, err := Models.BranchExists(Models.DB, input.BranchID)
	if err != nil {
		respondModelError(c, err)
		return
	}
	if !exists {
		respondFail(c, http.StatusBadRequest, "branch does not exist", CodeValidation)
		return
	}

	employee := Models.Employee{
		Username:  input.Username,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      input.Role,
		BranchID:  input.BranchID,
		IsActive:  true,
	}
	if _, err := employee.SaveEmployee(); err != nil {
		log.Println(err)
		respondFail(c, http.StatusBadRequest, "failed to register employee", CodeValidation)
		return
	}

	respondOK(c, "Employee Registered Successfully", nil)
}

func SaveFcmToken(c *gin.Context) {
	var input struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	if input.Token == "" {
		respondFail(c, http.StatusBadRequest, "token is required", CodeValidation)
		return
	}

	employee_id, err := Token.ExtractTokenID(c)
	if err != nil {
		respondFail(c, http.StatusUnauthorized, err.Error(), CodeUnauthorized)
		return
	}

	deviceToken := Models.DeviceToken{EmployeeID: employee_id, Value: input.Token}
	if err := Models.DB.Where("value = ?", input.Token).FirstOrCreate(&deviceToken).Error; err != nil {
		log.Println(err)
	}
	c.JSON(http.StatusOK, nil)
}
