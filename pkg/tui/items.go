package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"

	"github.com/sora-blue/GreatCorpSimulator/pkg/ledger"
	"github.com/sora-blue/GreatCorpSimulator/pkg/sim"
)

// TaskRow is one selectable line of the task list.
type TaskRow struct {
	Task     sim.Task
	Cost     string // "0.25d"
	Approval string // "+12"
	Morale   string // "-3"
	Deadline string // "" for untimed tasks
}

// BuildTaskRows converts the tasks on offer into rows for rendering.
func BuildTaskRows(tasks []sim.Task, day int) []TaskRow {
	rows := make([]TaskRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, TaskRow{
			Task:     t,
			Cost:     fmt.Sprintf("%.2fd", t.TimeCost),
			Approval: signed(t.Approval),
			Morale:   signed(t.Morale),
			Deadline: deadlineLabel(t, day),
		})
	}
	return rows
}

func deadlineLabel(t sim.Task, day int) string {
	switch n := t.DaysLeft(day); {
	case n < 0:
		return ""
	case n == 0:
		return "due today"
	case n == 1:
		return "due tomorrow"
	default:
		return fmt.Sprintf("due in %d days", n)
	}
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// IndexOfTask returns the row holding the task with id, or -1.
func IndexOfTask(rows []TaskRow, id int) int {
	for i, r := range rows {
		if r.Task.ID == id {
			return i
		}
	}
	return -1
}

// LeaderboardColumns are the columns of the leaderboard table.
func LeaderboardColumns(width int) []table.Column {
	cols := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Days", Width: 5},
		{Title: "Outcome", Width: 18},
		{Title: "Approval", Width: 8},
		{Title: "Morale", Width: 6},
		{Title: "Tasks", Width: 5},
		{Title: "Recorded", Width: 16},
	}
	used := 0
	for _, c := range cols {
		used += c.Width + 2
	}
	if extra := width - used; extra > 0 {
		cols[2].Width += extra
	}
	return cols
}

// LeaderboardRows converts run records into table rows, best first.
func LeaderboardRows(records []ledger.RunRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for i, r := range records {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.DaysSurvived),
			r.Title,
			strconv.Itoa(r.Approval),
			strconv.Itoa(r.Morale),
			strconv.Itoa(r.TasksCompleted),
			r.RecordedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return rows
}

// skillLabel is the player-facing name of a card kind.
func skillLabel(k sim.SkillKind) string {
	switch k {
	case sim.SkillResetApproval:
		return "Reset Approval"
	case sim.SkillResetMorale:
		return "Reset Morale"
	case sim.SkillSuppress:
		return "Suppress"
	default:
		return string(k)
	}
}
