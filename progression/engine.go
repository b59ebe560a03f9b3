package progression

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	programModels "sattva/models/program"
)

// Action is the progression action discriminator
type Action string

const (
	ActionSetDay      Action = "setDay"
	ActionCompleteDay Action = "completeDay"
	ActionReopenDay   Action = "reopenDay"
)

// ActionResult is the enrollment cursor after a progression action
type ActionResult struct {
	CurrentDay int    `json:"currentDay"`
	Status     string `json:"status"`
}

// IntroResult is the outcome of an intro engagement toggle
type IntroResult struct {
	Engaged       bool `json:"engaged"`
	Reset         bool `json:"reset"`
	LastPublished int  `json:"lastPublished"`
}

// StatePatch is a partial day-state update. Only non-nil fields are applied;
// no journal validation happens here so in-progress data can be autosaved.
type StatePatch struct {
	Data      *map[string]interface{} `json:"data"`
	Sliders   *map[string]interface{} `json:"sliders"`
	Checkout  *map[string]interface{} `json:"checkout"`
	Practiced *bool                   `json:"practiced"`
	Mantra3x  *bool                   `json:"mantra3x"`
	Completed *bool                   `json:"completed"`
}

// Engine applies the program progression rules: locking and unlocking days,
// validating day completion, moving the currentDay cursor and reconciling the
// enrollment status. All decisions run against the stores it is constructed
// with, keyed by an explicit user ID.
type Engine struct {
	units       UnitStore
	enrollments EnrollmentStore
	days        DayStateStore
	now         func() time.Time
}

func NewEngine(units UnitStore, enrollments EnrollmentStore, days DayStateStore) *Engine {
	return &Engine{units: units, enrollments: enrollments, days: days, now: time.Now}
}

// clampDay keeps a day cursor inside [1, last], falling back to 1 when the
// program has no published days.
func clampDay(day, last int) int {
	if last < 1 {
		last = 1
	}
	if day < 1 {
		day = 1
	}
	if day > last {
		day = last
	}
	return day
}

// lastIndex is the highest published day index; with contiguous day units this
// equals the published day count.
func lastIndex(units []programModels.ProgramUnit) int {
	last := 0
	for _, u := range units {
		if u.UnitIndex > last {
			last = u.UnitIndex
		}
	}
	return last
}

func unitForDay(units []programModels.ProgramUnit, day int) *programModels.ProgramUnit {
	for i := range units {
		if units[i].UnitIndex == day {
			return &units[i]
		}
	}
	return nil
}

// enrollment loads the enrollment record, lazily building a fresh active one
// at day 1 when the user has none. The caller decides whether to persist it.
func (e *Engine) enrollment(userID, programID uint) (*programModels.Enrollment, error) {
	enr, err := e.enrollments.Find(userID, programID)
	if err != nil {
		return nil, err
	}
	if enr == nil {
		enr = &programModels.Enrollment{
			UserID:     userID,
			ProgramID:  programID,
			Status:     programModels.StatusActive,
			CurrentDay: 1,
		}
	}
	return enr, nil
}

func (e *Engine) markCompleted(enr *programModels.Enrollment) {
	enr.Status = programModels.StatusCompleted
	if enr.CompletedAt == nil {
		t := e.now()
		enr.CompletedAt = &t
	}
}

// SetIntroEngagement toggles whether the user has started the program.
// Disengaging is a hard reset: every day state for the program is deleted and
// the enrollment is wound back to an untouched one.
func (e *Engine) SetIntroEngagement(userID, programID uint, engaged bool) (*IntroResult, error) {
	units, err := e.units.PublishedDays(programID)
	if err != nil {
		return nil, err
	}
	last := lastIndex(units)

	enr, err := e.enrollment(userID, programID)
	if err != nil {
		return nil, err
	}

	if !engaged {
		if err := e.days.DeleteAll(userID, programID); err != nil {
			return nil, err
		}
		enr.IntroEngaged = false
		enr.CurrentDay = 1
		enr.Status = programModels.StatusActive
		enr.StartedAt = nil
		enr.CompletedAt = nil
		if err := e.enrollments.Upsert(enr); err != nil {
			return nil, err
		}
		return &IntroResult{Engaged: false, Reset: true, LastPublished: last}, nil
	}

	enr.IntroEngaged = true
	enr.CurrentDay = clampDay(1, last)
	enr.Status = programModels.StatusActive
	if enr.StartedAt == nil {
		t := e.now()
		enr.StartedAt = &t
	}
	if err := e.enrollments.Upsert(enr); err != nil {
		return nil, err
	}
	return &IntroResult{Engaged: true, LastPublished: last}, nil
}

// Apply runs one progression action. The requested day is clamped into the
// published range; a program with no published day units rejects every action.
func (e *Engine) Apply(userID, programID uint, action Action, day *int) (*ActionResult, error) {
	units, err := e.units.PublishedDays(programID)
	if err != nil {
		return nil, err
	}
	last := lastIndex(units)
	if last < 1 {
		return nil, ErrNoPublishedUnits
	}

	enr, err := e.enrollment(userID, programID)
	if err != nil {
		return nil, err
	}

	switch action {
	case ActionSetDay:
		target := clampDay(dayOr(day, 1), last)
		enr.CurrentDay = target
		if target >= last {
			e.markCompleted(enr)
		} else {
			enr.Status = programModels.StatusActive
		}
	case ActionCompleteDay:
		return e.completeDay(enr, units, last, dayOr(day, enr.CurrentDay))
	case ActionReopenDay:
		// Reopening moves the cursor and revives the program; it does not
		// clear the day's completed flag.
		target := clampDay(dayOr(day, enr.CurrentDay), last)
		enr.CurrentDay = target
		enr.Status = programModels.StatusActive
	default:
		return nil, ErrUnknownAction
	}

	if err := e.enrollments.Upsert(enr); err != nil {
		return nil, err
	}
	return &ActionResult{CurrentDay: enr.CurrentDay, Status: enr.Status}, nil
}

// completeDay validates the day's practice record, marks it completed and
// advances the cursor. Validation failures abort before any write.
func (e *Engine) completeDay(enr *programModels.Enrollment, units []programModels.ProgramUnit, last, requested int) (*ActionResult, error) {
	doneDay := clampDay(requested, last)

	state, err := e.days.Find(enr.UserID, enr.ProgramID, doneDay)
	if err != nil {
		return nil, err
	}
	practiced := state != nil && state.Practiced

	journalOK := true
	if unit := unitForDay(units, doneDay); unit != nil {
		fields, err := ParseJournal(unit.Journal)
		if err != nil {
			return nil, err
		}
		if HasTextPrompts(fields) {
			journalOK = state != nil && AnyTextAnswered(decodeDocument(state.Data))
		}
	}

	if !practiced || !journalOK {
		return nil, &IncompleteDayError{Practiced: practiced, Journal: journalOK}
	}

	state.Completed = true
	if err := e.days.Upsert(state); err != nil {
		return nil, err
	}

	// Completing a day behind the cursor never moves it.
	if doneDay >= enr.CurrentDay {
		if doneDay >= last {
			enr.CurrentDay = last
			e.markCompleted(enr)
		} else {
			enr.CurrentDay = doneDay + 1
			enr.Status = programModels.StatusActive
		}
	}
	if err := e.enrollments.Upsert(enr); err != nil {
		return nil, err
	}
	return &ActionResult{CurrentDay: enr.CurrentDay, Status: enr.Status}, nil
}

// SaveDayState upserts the day's practice record, applying only the fields
// present in the patch.
func (e *Engine) SaveDayState(userID, programID uint, day int, patch StatePatch) (*programModels.DayState, error) {
	state, err := e.days.Find(userID, programID, day)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = &programModels.DayState{UserID: userID, ProgramID: programID, Day: day}
	}

	if patch.Data != nil {
		if state.Data, err = encodeDocument(*patch.Data); err != nil {
			return nil, err
		}
	}
	if patch.Sliders != nil {
		if state.Sliders, err = encodeDocument(*patch.Sliders); err != nil {
			return nil, err
		}
	}
	if patch.Checkout != nil {
		if state.Checkout, err = encodeDocument(*patch.Checkout); err != nil {
			return nil, err
		}
	}
	if patch.Practiced != nil {
		state.Practiced = *patch.Practiced
	}
	if patch.Mantra3x != nil {
		state.Mantra3x = *patch.Mantra3x
	}
	if patch.Completed != nil {
		state.Completed = *patch.Completed
	}

	if err := e.days.Upsert(state); err != nil {
		return nil, err
	}
	return state, nil
}

// ResetDay deletes one day's practice record and moves the cursor back onto
// that day.
func (e *Engine) ResetDay(userID, programID uint, day int) (*ActionResult, error) {
	units, err := e.units.PublishedDays(programID)
	if err != nil {
		return nil, err
	}
	target := clampDay(day, lastIndex(units))

	if err := e.days.Delete(userID, programID, target); err != nil {
		return nil, err
	}

	enr, err := e.enrollment(userID, programID)
	if err != nil {
		return nil, err
	}
	enr.CurrentDay = target
	enr.Status = programModels.StatusActive
	if err := e.enrollments.Upsert(enr); err != nil {
		return nil, err
	}
	return &ActionResult{CurrentDay: enr.CurrentDay, Status: enr.Status}, nil
}

// ResetProgram deletes every practice record for the program and winds the
// cursor back to day 1. Unlike intro disengagement it leaves introEngaged and
// the started/completed timestamps alone.
func (e *Engine) ResetProgram(userID, programID uint) (*ActionResult, error) {
	if err := e.days.DeleteAll(userID, programID); err != nil {
		return nil, err
	}

	enr, err := e.enrollment(userID, programID)
	if err != nil {
		return nil, err
	}
	enr.CurrentDay = 1
	enr.Status = programModels.StatusActive
	if err := e.enrollments.Upsert(enr); err != nil {
		return nil, err
	}
	return &ActionResult{CurrentDay: enr.CurrentDay, Status: enr.Status}, nil
}

// Journey loads everything the sidebar needs and computes the per-day display
// states.
func (e *Engine) Journey(userID, programID uint, slug string) (*Layout, error) {
	units, err := e.units.PublishedDays(programID)
	if err != nil {
		return nil, err
	}
	enr, err := e.enrollments.Find(userID, programID)
	if err != nil {
		return nil, err
	}
	completed, err := e.days.CompletedDays(userID, programID)
	if err != nil {
		return nil, err
	}
	return BuildLayout(slug, enr, units, completed), nil
}

func dayOr(day *int, fallback int) int {
	if day == nil {
		return fallback
	}
	return *day
}

func decodeDocument(raw datatypes.JSON) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}
	return doc
}

func encodeDocument(doc map[string]interface{}) (datatypes.JSON, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
