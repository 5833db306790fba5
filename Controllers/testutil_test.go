package Controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ProSpine/Models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupHandlerTest rebinds the shared DB handle to a fresh in-memory
// database, so handlers run against the same schema as production.
func setupHandlerTest(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handlerdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := Models.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	Models.DB = db
	return db
}

// getContext builds an authenticated context for a GET handler, with the
// identity keys the middleware would have set.
func getContext(t *testing.T, target string, branchID uint, role string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Set("employeeID", uint(1))
	c.Set("branchID", branchID)
	c.Set("role", role)
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

func responseData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	data, ok := decodeBody(t, w)["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response data is not an object: %s", w.Body.String())
	}
	return data
}

func seedTestBranch(t *testing.T, db *gorm.DB, name string) Models.Branch {
	t.Helper()
	branch := Models.Branch{Name: name, IsActive: true}
	if err := db.Create(&branch).Error; err != nil {
		t.Fatalf("failed to seed branch: %v", err)
	}
	return branch
}

// seedTestPatient creates a registration plus its converted patient.
func seedTestPatient(t *testing.T, db *gorm.DB, branchID uint, name, phone string, patient Models.Patient) Models.Patient {
	t.Helper()
	registration := Models.Registration{
		BranchID:    branchID,
		PatientName: name,
		PhoneNumber: phone,
		Status:      Models.RegistrationConsulted,
	}
	if err := db.Create(&registration).Error; err != nil {
		t.Fatalf("failed to seed registration: %v", err)
	}

	patient.RegistrationID = registration.ID
	patient.BranchID = branchID
	if patient.Status == "" {
		patient.Status = string(Models.StatusActive)
	}
	if err := db.Create(&patient).Error; err != nil {
		t.Fatalf("failed to seed patient: %v", err)
	}
	return patient
}
