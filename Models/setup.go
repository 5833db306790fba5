package Models

import (
	"fmt"
	"log"

	"ProSpine/Config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var DB *gorm.DB

// lockForUpdate adds SELECT ... FOR UPDATE on dialects that support it.
// SQLite serializes writers on its own and rejects the clause, so the
// in-memory test databases skip it.
func lockForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func ConnectDataBase() {
	cfg := Config.Load()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("connection error:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("migration error:", err)
	}
}

// Migrate runs AutoMigrate in dependency order. The same migration is used
// by the in-memory test databases, so the attendance uniqueness backstop
// exists everywhere the mark flow runs.
func Migrate(db *gorm.DB) error {
	// First migrate models with no dependencies
	if err := db.AutoMigrate(&Branch{}, &Setting{}, &ReferralPartner{}); err != nil {
		return err
	}

	// Then models that reference branches
	if err := db.AutoMigrate(&Employee{}, &DeviceToken{}, &BranchBudget{}); err != nil {
		return err
	}

	// Intake and converted patients
	if err := db.AutoMigrate(&Registration{}, &Patient{}); err != nil {
		return err
	}

	// Finally the ledgers hanging off patients and branches
	return db.AutoMigrate(
		&Attendance{},
		&Payment{},
		&Expense{},
		&TestOrder{},
		&TestItem{},
		&Notification{},
		&Inquiry{},
	)
}

func BranchExists(db *gorm.DB, id uint) (bool, error) {
	var count int64
	err := db.Model(&Branch{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
