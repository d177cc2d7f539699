package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"tjsl_backend/internals/features/tjsl/model"
)

func TestDaysSince(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysSince(now, now))
	assert.Equal(t, 1, DaysSince(now, now.Add(-time.Minute)))
	assert.Equal(t, 1, DaysSince(now, now.Add(time.Minute)))
	assert.Equal(t, 31, DaysSince(now, now.Add(-30*24*time.Hour-time.Second)))
}

func TestIsAtRisk(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	daysAgo := func(d int) time.Time { return now.AddDate(0, 0, -d) }

	risky, days := IsAtRisk(now, daysAgo(40), nil)
	assert.True(t, risky, "created 40 days ago without reports")
	assert.Equal(t, 40, days)

	last := daysAgo(10)
	risky, _ = IsAtRisk(now, daysAgo(90), &last)
	assert.False(t, risky, "latest report 10 days old")

	last = daysAgo(31)
	risky, days = IsAtRisk(now, daysAgo(90), &last)
	assert.True(t, risky, "latest report 31 days old")
	assert.Equal(t, 31, days)

	last = daysAgo(30)
	risky, _ = IsAtRisk(now, daysAgo(90), &last)
	assert.False(t, risky, "exactly 30 days is not over the threshold")

	risky, _ = IsAtRisk(now, daysAgo(12), nil)
	assert.False(t, risky)
}

func TestFindAtRisk_OnlyRunningSortedByAge(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	mk := func(status string, created time.Time) model.ProgramModel {
		return model.ProgramModel{ProgramID: uuid.New(), ProgramStatus: status, ProgramCreatedAt: created}
	}
	a := mk(model.ProgramStatusBerjalan, now.AddDate(0, 0, -45))
	b := mk(model.ProgramStatusBerjalan, now.AddDate(0, 0, -100))
	c := mk(model.ProgramStatusSelesai, now.AddDate(0, 0, -200))
	d := mk(model.ProgramStatusBerjalan, now.AddDate(0, 0, -100))

	last := map[uuid.UUID]time.Time{
		b.ProgramID: now.AddDate(0, 0, -60),
		d.ProgramID: now.AddDate(0, 0, -3),
	}
	out := FindAtRisk(now, []model.ProgramModel{a, b, c, d}, last)
	if assert.Len(t, out, 2) {
		assert.Equal(t, b.ProgramID, out[0].ProgramID)
		assert.Equal(t, 60, out[0].DaysSinceReport)
		assert.NotNil(t, out[0].LastReportAt)
		assert.Equal(t, a.ProgramID, out[1].ProgramID)
		assert.Nil(t, out[1].LastReportAt)
	}
}
