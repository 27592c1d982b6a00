package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sora-blue/GreatCorpSimulator/pkg/ledger"
	"github.com/sora-blue/GreatCorpSimulator/pkg/sim"
)

func TestBuildTaskRows(t *testing.T) {
	tasks := []sim.Task{
		{ID: 1, Name: "Quarterly report", Category: sim.CategoryHigh, TimeCost: 0.25, Approval: 22, Morale: -4, TimeLimited: true, DeadlineDay: 3},
		{ID: 2, Name: "Reply to email", Category: sim.CategoryLow, TimeCost: 0.05, Approval: 1, Morale: -1},
		{ID: 3, Name: "Fix printer", Category: sim.CategoryLow, TimeCost: 0.1, Approval: 2, Morale: -2, TimeLimited: true, DeadlineDay: 2},
		{ID: 4, Name: "Audit", Category: sim.CategoryMedium, TimeCost: 0.5, Approval: 6, Morale: -1, TimeLimited: true, DeadlineDay: 5},
	}

	rows := BuildTaskRows(tasks, 2)
	require.Len(t, rows, 4)

	assert.Equal(t, "0.25d", rows[0].Cost)
	assert.Equal(t, "+22", rows[0].Approval)
	assert.Equal(t, "-4", rows[0].Morale)
	assert.Equal(t, "due tomorrow", rows[0].Deadline)
	assert.Empty(t, rows[1].Deadline)
	assert.Equal(t, "due today", rows[2].Deadline)
	assert.Equal(t, "due in 3 days", rows[3].Deadline)

	assert.Equal(t, 2, IndexOfTask(rows, 3))
	assert.Equal(t, -1, IndexOfTask(rows, 99))
}

func TestLeaderboardRows(t *testing.T) {
	records := []ledger.RunRecord{
		{DaysSurvived: 10, Title: "Burned Out", Approval: 55, Morale: 12, TasksCompleted: 41, RecordedAt: time.Now()},
		{DaysSurvived: 4, Title: "Shown the Door", Approval: 30, Morale: 70, TasksCompleted: 9, RecordedAt: time.Now()},
	}

	rows := LeaderboardRows(records)
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0][0])
	assert.Equal(t, "10", rows[0][1])
	assert.Equal(t, "Burned Out", rows[0][2])
	assert.Equal(t, "41", rows[0][5])
	assert.Equal(t, "2", rows[1][0])
	assert.Len(t, rows[1], len(LeaderboardColumns(0)))
}

func TestLeaderboardColumnsStretch(t *testing.T) {
	narrow := LeaderboardColumns(0)
	wide := LeaderboardColumns(200)
	assert.Greater(t, wide[2].Width, narrow[2].Width)
}
