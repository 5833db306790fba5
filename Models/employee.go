package Models

import (
	"errors"
	"html"
	"strings"

	"ProSpine/Utils/Token"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleReception  = "reception"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

type Employee struct {
	gorm.Model
	Username  string        `gorm:"size:255;not null;unique" json:"username"`
	Password  string        `gorm:"size:255;not null" json:"password"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Role      string        `json:"role"`
	BranchID  uint          `json:"branch_id"`
	IsActive  bool          `json:"is_active"`
	Tokens    []DeviceToken `gorm:"foreignKey:EmployeeID"`
}

type DeviceToken struct {
	gorm.Model
	EmployeeID uint
	Value      string `json:"value" gorm:"unique"`
}

func (employee *Employee) FullName() string {
	return strings.TrimSpace(employee.FirstName + " " + employee.LastName)
}

func (employee *Employee) IsAdmin() bool {
	return employee.Role == RoleAdmin || employee.Role == RoleSuperadmin
}

func (employee *Employee) PrepareGive() {
	employee.Password = ""
}

func GetEmployeeByID(uid uint) (Employee, error) {
	var employee Employee
	if err := DB.First(&employee, uid).Error; err != nil {
		return employee, errors.New("Employee not found")
	}
	employee.PrepareGive()
	return employee, nil
}

// BranchAdminFCMs collects the device tokens of every admin of a branch,
// deduplicated, for pending-approval pushes.
func BranchAdminFCMs(db *gorm.DB, branchID uint) ([]string, error) {
	var admins []Employee
	if err := db.Where("branch_id = ? AND role IN ?", branchID, []string{RoleAdmin, RoleSuperadmin}).
		Find(&admins).Error; err != nil {
		return nil, err
	}

	unique := make(map[string]struct{})
	for _, admin := range admins {
		var tokens []DeviceToken
		if err := db.Where("employee_id = ?", admin.ID).Find(&tokens).Error; err != nil {
			return nil, err
		}
		for _, token := range tokens {
			unique[token.Value] = struct{}{}
		}
	}

	var fcms []string
	for value := range unique {
		fcms = append(fcms, value)
	}
	return fcms, nil
}

func VerifyPassword(password, hashedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func LoginCheck(username string, password string) (uint, string, error) {
	employee := Employee{}

	err := DB.Model(Employee{}).Where("username = ?", username).Take(&employee).Error
	if err != nil {
		return 0, "", err
	}

	err = VerifyPassword(password, employee.Password)
	if err != nil {
		return 0, "", err
	}

	token, err := Token.GenerateToken(employee.ID)
	if err != nil {
		return 0, "", err
	}

	return employee.ID, token, nil
}

func (employee *Employee) SaveEmployee() (*Employee, error) {
	if err := employee.BeforeSave(); err != nil {
		return &Employee{}, err
	}
	if err := DB.Create(&employee).Error; err != nil {
		return &Employee{}, err
	}
	return employee, nil
}

func (employee *Employee) BeforeSave() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(employee.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	employee.Password = string(hashedPassword)
	employee.Username = html.EscapeString(strings.TrimSpace(employee.Username))
	return nil
}
