package progression

import (
	programModels "sattva/models/program"
)

// UnitStore provides read-only access to the published day units of a program,
// ordered by unit index ascending.
type UnitStore interface {
	PublishedDays(programID uint) ([]programModels.ProgramUnit, error)
}

// EnrollmentStore persists the per-(user, program) enrollment record. Find
// returns (nil, nil) when no record exists; Upsert creates or updates the row
// keyed by (user, program).
type EnrollmentStore interface {
	Find(userID, programID uint) (*programModels.Enrollment, error)
	Upsert(enrollment *programModels.Enrollment) error
}

// DayStateStore persists the per-(user, program, day) practice records. Find
// returns (nil, nil) when no record exists.
type DayStateStore interface {
	Find(userID, programID uint, day int) (*programModels.DayState, error)
	Upsert(state *programModels.DayState) error
	Delete(userID, programID uint, day int) error
	DeleteAll(userID, programID uint) error
	CompletedDays(userID, programID uint) ([]int, error)
}
