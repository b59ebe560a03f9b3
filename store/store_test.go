package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	programModels "sattva/models/program"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&programModels.Program{},
		&programModels.ProgramUnit{},
		&programModels.Enrollment{},
		&programModels.DayState{},
	))
	return db
}

func TestPublishedDaysFiltersDraftsAndTypes(t *testing.T) {
	db := newTestDB(t)
	units := NewUnitStore(db)

	seed := []programModels.ProgramUnit{
		{ProgramID: 1, UnitType: programModels.UnitTypeIntro, UnitIndex: 1, Status: programModels.UnitPublished},
		{ProgramID: 1, UnitType: programModels.UnitTypeDay, UnitIndex: 2, Status: programModels.UnitPublished, Title: "Day 2"},
		{ProgramID: 1, UnitType: programModels.UnitTypeDay, UnitIndex: 1, Status: programModels.UnitPublished, Title: "Day 1"},
		{ProgramID: 1, UnitType: programModels.UnitTypeDay, UnitIndex: 3, Status: programModels.UnitDraft, Title: "Day 3"},
		{ProgramID: 2, UnitType: programModels.UnitTypeDay, UnitIndex: 1, Status: programModels.UnitPublished},
	}
	require.NoError(t, db.Create(&seed).Error)

	days, err := units.PublishedDays(1)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "Day 1", days[0].Title)
	assert.Equal(t, "Day 2", days[1].Title)
}

func TestEnrollmentUpsert(t *testing.T) {
	db := newTestDB(t)
	enrollments := NewEnrollmentStore(db)

	found, err := enrollments.Find(1, 1)
	require.NoError(t, err)
	assert.Nil(t, found)

	require.NoError(t, enrollments.Upsert(&programModels.Enrollment{
		UserID: 1, ProgramID: 1, Status: programModels.StatusActive, CurrentDay: 1,
	}))

	// A second keyless upsert for the same (user, program) must update, not duplicate
	require.NoError(t, enrollments.Upsert(&programModels.Enrollment{
		UserID: 1, ProgramID: 1, Status: programModels.StatusActive, CurrentDay: 2, IntroEngaged: true,
	}))

	var count int64
	require.NoError(t, db.Model(&programModels.Enrollment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	found, err = enrollments.Find(1, 1)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 2, found.CurrentDay)
	assert.True(t, found.IntroEngaged)

	// Updating through the loaded record keeps the same row
	found.Status = programModels.StatusCompleted
	require.NoError(t, enrollments.Upsert(found))

	found, err = enrollments.Find(1, 1)
	require.NoError(t, err)
	assert.Equal(t, programModels.StatusCompleted, found.Status)
}

func TestDayStateLifecycle(t *testing.T) {
	db := newTestDB(t)
	days := NewDayStateStore(db)

	found, err := days.Find(1, 1, 1)
	require.NoError(t, err)
	assert.Nil(t, found)

	for day := 1; day <= 3; day++ {
		require.NoError(t, days.Upsert(&programModels.DayState{
			UserID: 1, ProgramID: 1, Day: day, Practiced: true, Completed: day < 3,
		}))
	}
	require.NoError(t, days.Upsert(&programModels.DayState{
		UserID: 2, ProgramID: 1, Day: 1, Completed: true,
	}))

	completed, err := days.CompletedDays(1, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, completed)

	require.NoError(t, days.Delete(1, 1, 1))
	found, err = days.Find(1, 1, 1)
	require.NoError(t, err)
	assert.Nil(t, found)

	// The key must be reusable after a delete
	require.NoError(t, days.Upsert(&programModels.DayState{
		UserID: 1, ProgramID: 1, Day: 1, Practiced: true,
	}))

	require.NoError(t, days.DeleteAll(1, 1))
	completed, err = days.CompletedDays(1, 1)
	require.NoError(t, err)
	assert.Empty(t, completed)

	// Other users' records survive a DeleteAll
	otherUser, err := days.Find(2, 1, 1)
	require.NoError(t, err)
	require.NotNil(t, otherUser)
	assert.True(t, otherUser.Completed)
}

func TestDayStateUpsertUpdatesInPlace(t *testing.T) {
	db := newTestDB(t)
	days := NewDayStateStore(db)

	require.NoError(t, days.Upsert(&programModels.DayState{
		UserID: 1, ProgramID: 1, Day: 1, Practiced: true,
	}))
	require.NoError(t, days.Upsert(&programModels.DayState{
		UserID: 1, ProgramID: 1, Day: 1, Practiced: true, Completed: true,
	}))

	var count int64
	require.NoError(t, db.Model(&programModels.DayState{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	found, err := days.Find(1, 1, 1)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.Completed)
}
