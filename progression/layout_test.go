package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	programModels "sattva/models/program"
)

func stepStates(layout *Layout) []StepState {
	states := make([]StepState, len(layout.Items))
	for i, item := range layout.Items {
		states[i] = item.State
	}
	return states
}

func TestLayoutBeforeIntroEngagementLocksEveryDay(t *testing.T) {
	enr := &programModels.Enrollment{CurrentDay: 2, Status: programModels.StatusActive}

	layout := BuildLayout("wakeup", enr, publishedDays(3), []int{1})

	require.Len(t, layout.Items, 5) // intro + 3 days + conclusion
	assert.Equal(t, []StepState{StepActive, StepLocked, StepLocked, StepLocked, StepLocked}, stepStates(layout))
	assert.Equal(t, "/programs/wakeup/intro", layout.ContinueHref)
}

func TestLayoutNilEnrollment(t *testing.T) {
	layout := BuildLayout("wakeup", nil, publishedDays(2), nil)

	assert.Equal(t, []StepState{StepActive, StepLocked, StepLocked, StepLocked}, stepStates(layout))
	assert.Equal(t, 0, layout.Percent)
	assert.Equal(t, "/programs/wakeup/intro", layout.ContinueHref)
}

func TestLayoutMidProgram(t *testing.T) {
	enr := &programModels.Enrollment{
		CurrentDay: 2, Status: programModels.StatusActive, IntroEngaged: true,
	}

	layout := BuildLayout("wakeup", enr, publishedDays(3), []int{1})

	require.Len(t, layout.Items, 5)
	assert.Equal(t, StepDone, layout.Items[0].State, "intro is done once engaged")
	assert.Equal(t, StepDone, layout.Items[1].State)
	assert.Equal(t, StepActive, layout.Items[2].State)
	assert.Equal(t, StepLocked, layout.Items[3].State)
	assert.Equal(t, StepLocked, layout.Items[4].State, "conclusion locked until completed")

	assert.Equal(t, 1, layout.DoneCount)
	assert.Equal(t, 3, layout.Total)
	assert.Equal(t, 33, layout.Percent)
	assert.Equal(t, "/programs/wakeup/day/2", layout.ContinueHref)
}

func TestLayoutCompletedProgram(t *testing.T) {
	enr := &programModels.Enrollment{
		CurrentDay: 3, Status: programModels.StatusCompleted, IntroEngaged: true,
	}

	// Only two completed-day records, but a completed program counts as full
	layout := BuildLayout("wakeup", enr, publishedDays(3), []int{1, 2})

	assert.Equal(t, 3, layout.DoneCount)
	assert.Equal(t, 100, layout.Percent)
	assert.Equal(t, StepActive, layout.Items[4].State, "conclusion is active")
	assert.Equal(t, "/programs/wakeup/conclusion", layout.ContinueHref)

	// No day shows active once the program is completed
	for _, item := range layout.Items[1:4] {
		assert.NotEqual(t, StepActive, item.State)
	}
}

func TestLayoutReopenedCompletedDayShowsDone(t *testing.T) {
	enr := &programModels.Enrollment{
		CurrentDay: 2, Status: programModels.StatusActive, IntroEngaged: true,
	}

	// Day 2 was completed then reopened: the completed flag wins the display
	layout := BuildLayout("wakeup", enr, publishedDays(3), []int{1, 2})

	assert.Equal(t, StepDone, layout.Items[2].State)
}

func TestLayoutNoPublishedUnits(t *testing.T) {
	layout := BuildLayout("wakeup", nil, nil, nil)

	require.Len(t, layout.Items, 2)
	assert.Equal(t, 0, layout.Total)
	assert.Equal(t, 0, layout.Percent)
}

func TestLayoutPercentRounds(t *testing.T) {
	enr := &programModels.Enrollment{
		CurrentDay: 3, Status: programModels.StatusActive, IntroEngaged: true,
	}

	layout := BuildLayout("wakeup", enr, publishedDays(6), []int{1, 2, 3, 4})

	assert.Equal(t, 67, layout.Percent) // round(4/6*100)
}
