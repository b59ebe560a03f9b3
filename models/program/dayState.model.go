package program

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DayState holds a user's practice data for one day of a program. Data is the
// free-text answer map keyed by journal field key; Sliders and Checkout are the
// before/after slider snapshots. Completed is derived by the progression engine,
// though the raw state-save path may also patch it directly.
type DayState struct {
	gorm.Model
	UserID    uint           `json:"user_id" gorm:"index:idx_user_program_day,unique;not null"`
	ProgramID uint           `json:"program_id" gorm:"index:idx_user_program_day,unique;not null"`
	Day       int            `json:"day" gorm:"index:idx_user_program_day,unique;not null"`
	Data      datatypes.JSON `json:"data"`
	Sliders   datatypes.JSON `json:"sliders"`
	Checkout  datatypes.JSON `json:"checkout"`
	Practiced bool           `json:"practiced" gorm:"default:false"`
	Mantra3x  bool           `json:"mantra3x" gorm:"default:false"`
	Completed bool           `json:"completed" gorm:"default:false"`
}
