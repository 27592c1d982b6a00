package sim

// Category is the tier of a task. It controls the cost and reward draws.
type Category string

const (
	CategoryLow    Category = "low"
	CategoryMedium Category = "medium"
	CategoryHigh   Category = "high"
)

// Categories lists every category in generation order.
var Categories = []Category{CategoryLow, CategoryMedium, CategoryHigh}

// Task is a unit of work offered to the player.
type Task struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	TimeCost    float64  `json:"time_cost"` // fraction of one day
	Approval    int      `json:"approval"`
	Morale      int      `json:"morale"`
	Completed   bool     `json:"completed"`
	TimeLimited bool     `json:"time_limited"`
	DeadlineDay int      `json:"deadline_day,omitempty"` // 0 unless TimeLimited
	Overdue     bool     `json:"overdue"`
}

// IsOverdueOn reports whether the task's deadline has passed on the given day.
func (t Task) IsOverdueOn(day int) bool {
	return t.TimeLimited && !t.Completed && t.DeadlineDay < day
}

// DaysLeft returns how many days remain before the deadline, or -1 for untimed tasks.
func (t Task) DaysLeft(day int) int {
	if !t.TimeLimited {
		return -1
	}
	return t.DeadlineDay - day
}
