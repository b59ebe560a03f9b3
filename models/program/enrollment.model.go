package program

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment lifecycle status
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusPaused    = "paused"
)

// Enrollment tracks a user's overall progress through a program. CurrentDay is
// the day the user may currently work on and is always clamped to
// [1, last published day index].
type Enrollment struct {
	gorm.Model
	UserID       uint       `json:"user_id" gorm:"index:idx_user_program,unique;not null"`
	ProgramID    uint       `json:"program_id" gorm:"index:idx_user_program,unique;not null"`
	Status       string     `json:"status" gorm:"default:'active'"`
	CurrentDay   int        `json:"current_day" gorm:"default:1"`
	IntroEngaged bool       `json:"intro_engaged" gorm:"default:false"`
	StartedAt    *time.Time `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
}
