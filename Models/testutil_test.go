package Models

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database and runs the full
// migration, so every test sees the same schema (unique indexes
// included) as production. The database name is uniquified to prevent
// cross-test contamination when tests run in the same process.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedBranch(t *testing.T, db *gorm.DB, name string) Branch {
	t.Helper()
	branch := Branch{Name: name, IsActive: true}
	if err := db.Create(&branch).Error; err != nil {
		t.Fatalf("failed to seed branch: %v", err)
	}
	return branch
}

// seedPatient creates a registration plus its converted patient in one
// step with the given treatment terms.
func seedPatient(t *testing.T, db *gorm.DB, branchID uint, patient Patient) Patient {
	t.Helper()
	registration := Registration{
		BranchID:    branchID,
		PatientName: "Test Patient",
		PhoneNumber: "9800000001",
		Status:      RegistrationConsulted,
	}
	if err := db.Create(&registration).Error; err != nil {
		t.Fatalf("failed to seed registration: %v", err)
	}

	patient.RegistrationID = registration.ID
	patient.BranchID = branchID
	if patient.Status == "" {
		patient.Status = string(StatusActive)
	}
	if err := db.Create(&patient).Error; err != nil {
		t.Fatalf("failed to seed patient: %v", err)
	}
	return patient
}
