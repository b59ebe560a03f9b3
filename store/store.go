package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	programModels "sattva/models/program"
)

// UnitStore reads a program's unit catalog from the database
type UnitStore struct {
	db *gorm.DB
}

func NewUnitStore(db *gorm.DB) *UnitStore {
	return &UnitStore{db: db}
}

// PublishedDays returns the published day units of a program ordered by index.
// Draft units and intro/conclusion pages do not count toward progression.
func (s *UnitStore) PublishedDays(programID uint) ([]programModels.ProgramUnit, error) {
	var units []programModels.ProgramUnit
	err := s.db.
		Where("program_id = ? AND unit_type = ? AND status = ? AND is_deleted = ?",
			programID, programModels.UnitTypeDay, programModels.UnitPublished, false).
		Order("unit_index asc").
		Find(&units).Error
	return units, err
}

// EnrollmentStore persists enrollment records keyed by (user, program)
type EnrollmentStore struct {
	db *gorm.DB
}

func NewEnrollmentStore(db *gorm.DB) *EnrollmentStore {
	return &EnrollmentStore{db: db}
}

func (s *EnrollmentStore) Find(userID, programID uint) (*programModels.Enrollment, error) {
	var enrollment programModels.Enrollment
	err := s.db.Where("user_id = ? AND program_id = ?", userID, programID).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (s *EnrollmentStore) Upsert(enrollment *programModels.Enrollment) error {
	if enrollment.ID != 0 {
		return s.db.Save(enrollment).Error
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "program_id"}},
		UpdateAll: true,
	}).Create(enrollment).Error
}

// DayStateStore persists day practice records keyed by (user, program, day)
type DayStateStore struct {
	db *gorm.DB
}

func NewDayStateStore(db *gorm.DB) *DayStateStore {
	return &DayStateStore{db: db}
}

func (s *DayStateStore) Find(userID, programID uint, day int) (*programModels.DayState, error) {
	var state programModels.DayState
	err := s.db.Where("user_id = ? AND program_id = ? AND day = ?", userID, programID, day).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *DayStateStore) Upsert(state *programModels.DayState) error {
	if state.ID != 0 {
		return s.db.Save(state).Error
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "program_id"}, {Name: "day"}},
		UpdateAll: true,
	}).Create(state).Error
}

// Delete removes a single day's record. Deletes are hard so the unique
// (user, program, day) key stays free for a later re-save.
func (s *DayStateStore) Delete(userID, programID uint, day int) error {
	return s.db.Unscoped().
		Where("user_id = ? AND program_id = ? AND day = ?", userID, programID, day).
		Delete(&programModels.DayState{}).Error
}

// DeleteAll removes every day record of the program for the user
func (s *DayStateStore) DeleteAll(userID, programID uint) error {
	return s.db.Unscoped().
		Where("user_id = ? AND program_id = ?", userID, programID).
		Delete(&programModels.DayState{}).Error
}

// CompletedDays returns the day numbers the user has completed, ascending
func (s *DayStateStore) CompletedDays(userID, programID uint) ([]int, error) {
	var days []int
	err := s.db.Model(&programModels.DayState{}).
		Where("user_id = ? AND program_id = ? AND completed = ?", userID, programID, true).
		Order("day asc").
		Pluck("day", &days).Error
	return days, err
}
