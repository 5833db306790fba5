package CronJobs

import (
	"fmt"
	"log"
	"time"

	"ProSpine/FirebaseMessaging"
	"ProSpine/Models"
	"ProSpine/Whatsapp"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

// RetentionSweep runs the dropout scan on a schedule and nudges both
// sides: a WhatsApp follow-up to critical-risk patients and a push to
// branch admins summarizing the day's at-risk list.
type RetentionSweep struct {
	DB *gorm.DB
}

func NewRetentionSweep(db *gorm.DB) *RetentionSweep {
	return &RetentionSweep{
		DB: db,
	}
}

// StartRetentionCron schedules the sweep every morning at 09:00.
func (rs *RetentionSweep) StartRetentionCron() *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.Local)

	scheduler.Every(1).Day().At("09:00").Do(func() {
		log.Println("Running retention sweep...")
		if err := rs.Run(); err != nil {
			log.Printf("Error running retention sweep: %v", err)
		}
	})

	scheduler.StartAsync()
	log.Println("Retention sweep cron job started")

	return scheduler
}

func (rs *RetentionSweep) Run() error {
	entries, err := Models.RetentionRadar(rs.DB, nil, time.Now())
	if err != nil {
		return fmt.Errorf("failed to compute retention radar: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	perBranch := make(map[string]int)
	for _, entry := range entries {
		perBranch[entry.BranchName]++

		if entry.RiskLevel != "Critical" || entry.PhoneNumber == "" {
			continue
		}

		message := fmt.Sprintf(
			"Hello %s, we noticed you have missed your physiotherapy sessions for %d days. "+
				"Your recovery depends on regular attendance. Please contact us to resume your treatment.",
			entry.PatientName,
			entry.DaysAbsent,
		)
		if err := Whatsapp.SendMessage(entry.PhoneNumber, message); err != nil {
			log.Printf("Failed to send follow-up to %s: %v", entry.PatientName, err)
			continue
		}
		log.Printf("Follow-up sent to %s (absent %d days)", entry.PatientName, entry.DaysAbsent)
	}

	var branches []Models.Branch
	if err := rs.DB.Model(&Models.Branch{}).Where("is_active = ?", true).Find(&branches).Error; err != nil {
		return fmt.Errorf("failed to list branches: %w", err)
	}
	for _, branch := range branches {
		count, ok := perBranch[branch.Name]
		if !ok || count == 0 {
			continue
		}
		fcms, err := Models.BranchAdminFCMs(rs.DB, branch.ID)
		if err != nil {
			log.Printf("Failed to collect admin tokens for %s: %v", branch.Name, err)
			continue
		}
		if len(fcms) == 0 {
			continue
		}
		if err := FirebaseMessaging.SendMessage(Models.NotificationRequest{
			Tokens: fcms,
			Title:  "Retention Radar",
			Body:   fmt.Sprintf("%d patients at %s are at risk of dropping out", count, branch.Name),
		}); err != nil {
			log.Printf("Failed to push retention summary for %s: %v", branch.Name, err)
		}
	}

	return nil
}
