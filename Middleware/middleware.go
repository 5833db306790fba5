package Middleware

import (
	"net/http"

	"ProSpine/Models"
	"ProSpine/Utils/Token"

	"github.com/gin-gonic/gin"
)

func JwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := Token.TokenValid(c)
		if err != nil {
			c.String(http.StatusUnauthorized, "Unauthorized Token Invalid")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetBranch resolves the caller's identity from the verified token and
// pins the request to their employee id, branch, and role. Handlers never
// trust a client-supplied employee id.
func SetBranch() gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID, err := Token.ExtractTokenID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		employee, err := Models.GetEmployeeByID(employeeID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Employee not found"})
			c.Abort()
			return
		}
		if !employee.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account disabled"})
			c.Abort()
			return
		}

		c.Set("employeeID", employee.ID)
		c.Set("branchID", employee.BranchID)
		c.Set("role", employee.Role)
		c.Next()
	}
}

func PermissionCheckAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID, err := Token.ExtractTokenID(c)
		if err != nil {
			c.String(http.StatusUnauthorized, "Unauthorized Token Extraction")
			c.Abort()
			return
		}

		employee, err := Models.GetEmployeeByID(employeeID)
		if err != nil {
			c.String(http.StatusUnauthorized, "Unauthorized Employee Extraction")
			c.Abort()
			return
		}

		if employee.IsAdmin() {
			c.Next()
		} else {
			c.String(http.StatusForbidden, "Unauthorized Not Enough Permission")
			c.Abort()
		}
	}
}
