package program

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Unit publication status
const (
	UnitDraft     = "DRAFT"
	UnitPublished = "PUBLISHED"
)

// Unit types; only DAY units count toward program length
const (
	UnitTypeDay        = "DAY"
	UnitTypeIntro      = "INTRO"
	UnitTypeConclusion = "CONCLUSION"
)

// Program is a guided multi-day learning program
type Program struct {
	gorm.Model
	Slug        string `json:"slug" gorm:"uniqueIndex;not null"`
	Title       string `json:"title"`
	Description string `json:"description" gorm:"type:text"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

// ProgramUnit is one day (or the intro/conclusion page) of a program.
// UnitIndex is 1-based and unique within (program, type). Journal holds the
// journal schema for the day: an ordered list of field descriptors (see
// progression.Field).
type ProgramUnit struct {
	gorm.Model
	ProgramID uint           `json:"program_id" gorm:"index;not null"`
	UnitType  string         `json:"unit_type" gorm:"default:'DAY'"`
	UnitIndex int            `json:"unit_index" gorm:"default:1"`
	Status    string         `json:"status" gorm:"default:'DRAFT'"`
	Title     string         `json:"title"`
	Mantra    string         `json:"mantra"`
	Journal   datatypes.JSON `json:"journal"`
	IsDeleted bool           `gorm:"default:false"`
}
