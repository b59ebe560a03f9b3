package progression

import (
	"fmt"
	"math"

	programModels "sattva/models/program"
)

// StepState is the display state of one sidebar step
type StepState string

const (
	StepDone   StepState = "done"
	StepActive StepState = "active"
	StepLocked StepState = "locked"
)

// StepKind distinguishes the intro/conclusion pseudo-steps from day units
type StepKind string

const (
	StepIntro      StepKind = "intro"
	StepDay        StepKind = "day"
	StepConclusion StepKind = "conclusion"
)

// Step is one entry of the journey sidebar
type Step struct {
	Kind  StepKind  `json:"kind"`
	Day   int       `json:"day,omitempty"`
	Title string    `json:"title"`
	State StepState `json:"state"`
	Href  string    `json:"href"`
}

// Layout is the computed journey sidebar for one user and program
type Layout struct {
	Items        []Step `json:"items"`
	Percent      int    `json:"percent"`
	DoneCount    int    `json:"doneCount"`
	Total        int    `json:"total"`
	ContinueHref string `json:"continueHref"`
}

// BuildLayout computes the per-day display state. It is a pure function of the
// enrollment, the published day units and the completed-day set, so it is safe
// to recompute on every render. A nil enrollment means the user never touched
// the program.
func BuildLayout(slug string, enr *programModels.Enrollment, units []programModels.ProgramUnit, completedDays []int) *Layout {
	engaged := enr != nil && enr.IntroEngaged
	finished := enr != nil && enr.Status == programModels.StatusCompleted
	currentDay := 1
	if enr != nil {
		currentDay = enr.CurrentDay
	}

	completed := make(map[int]bool, len(completedDays))
	for _, d := range completedDays {
		completed[d] = true
	}

	items := make([]Step, 0, len(units)+2)

	introState := StepActive
	if engaged {
		introState = StepDone
	}
	items = append(items, Step{
		Kind:  StepIntro,
		Title: "Introduction",
		State: introState,
		Href:  fmt.Sprintf("/programs/%s/intro", slug),
	})

	for _, u := range units {
		state := StepLocked
		switch {
		case !engaged:
			// Until the intro is engaged every day stays locked, day 1 included.
		case completed[u.UnitIndex]:
			state = StepDone
		case !finished && u.UnitIndex == currentDay:
			state = StepActive
		}
		items = append(items, Step{
			Kind:  StepDay,
			Day:   u.UnitIndex,
			Title: u.Title,
			State: state,
			Href:  fmt.Sprintf("/programs/%s/day/%d", slug, u.UnitIndex),
		})
	}

	conclusionState := StepLocked
	if finished {
		conclusionState = StepActive
	}
	items = append(items, Step{
		Kind:  StepConclusion,
		Title: "Conclusion",
		State: conclusionState,
		Href:  fmt.Sprintf("/programs/%s/conclusion", slug),
	})

	total := len(units)
	doneCount := len(completedDays)
	if finished {
		doneCount = total
	}
	divisor := total
	if divisor < 1 {
		divisor = 1
	}
	percent := int(math.Round(float64(doneCount) / float64(divisor) * 100))

	continueHref := items[0].Href
	for _, item := range items {
		if item.State == StepActive {
			continueHref = item.Href
			break
		}
	}

	return &Layout{
		Items:        items,
		Percent:      percent,
		DoneCount:    doneCount,
		Total:        total,
		ContinueHref: continueHref,
	}
}
