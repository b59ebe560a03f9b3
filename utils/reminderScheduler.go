package utils

import (
	"log"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"

	"sattva/database"
	"sattva/models"
	programModels "sattva/models/program"
)

// InitializeReminderScheduler sets up the daily practice reminder job
func InitializeReminderScheduler() {
	log.Println("[REMINDER-SCHEDULER] Initializing practice reminder scheduler...")

	c := cron.New()

	// Run daily at 8 AM to nudge users who haven't practiced yet
	c.AddFunc("0 8 * * *", func() {
		log.Println("[REMINDER-SCHEDULER] Running daily practice reminder check...")
		SendPracticeReminders()
	})

	c.Start()
	log.Println("[REMINDER-SCHEDULER] Practice reminder scheduler started - runs daily at 8 AM")
}

// SendPracticeReminders emails every active, intro-engaged enrollee whose
// current day has not been touched since the start of the day
func SendPracticeReminders() {
	db := database.Database.Db
	dayStart := now.BeginningOfDay()

	var enrollments []programModels.Enrollment
	if err := db.
		Where("status = ? AND intro_engaged = ?", programModels.StatusActive, true).
		Find(&enrollments).Error; err != nil {
		log.Printf("[REMINDER-SCHEDULER] Failed to load enrollments: %v", err)
		return
	}

	sent := 0
	for _, enrollment := range enrollments {
		var prog programModels.Program
		if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", enrollment.ProgramID, false, true).First(&prog).Error; err != nil {
			continue
		}

		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", enrollment.UserID, false).First(&user).Error; err != nil {
			continue
		}

		// Skip anyone who already touched today's practice
		var state programModels.DayState
		if err := db.Where("user_id = ? AND program_id = ? AND day = ?", enrollment.UserID, enrollment.ProgramID, enrollment.CurrentDay).First(&state).Error; err == nil {
			if state.UpdatedAt.After(dayStart) {
				continue
			}
		}

		if err := SendPracticeReminder(user.Email, user.Name, prog.Title, enrollment.CurrentDay); err != nil {
			log.Printf("[REMINDER-SCHEDULER] Failed to send reminder to %s: %v", user.Email, err)
			continue
		}
		sent++
	}

	log.Printf("[REMINDER-SCHEDULER] Sent %d practice reminders", sent)
}
