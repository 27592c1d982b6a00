package sim

import "slices"

// Queue holds the tasks currently offered to the player.
// Completed tasks are removed and never re-enter it.
type Queue struct {
	gen     *Generator
	minPool int
	batch   int
	maxPool int
	tasks   []Task
}

// NewQueue creates an empty queue that draws replacements from gen.
func NewQueue(gen *Generator, minPool, batch, maxPool int) *Queue {
	return &Queue{gen: gen, minPool: minPool, batch: batch, maxPool: maxPool}
}

// Populate discards every task and generates n fresh ones.
func (q *Queue) Populate(n, day int, effects Suppressor) {
	q.tasks = q.tasks[:0]
	for i := 0; i < n; i++ {
		q.tasks = append(q.tasks, q.gen.Generate(day, effects))
	}
	q.Sort()
}

// Add inserts a task and re-sorts the queue.
func (q *Queue) Add(t Task) {
	q.tasks = append(q.tasks, t)
	q.Sort()
}

// Generate draws one task from the generator and adds it.
func (q *Queue) Generate(day int, effects Suppressor) Task {
	t := q.gen.Generate(day, effects)
	q.Add(t)
	return t
}

// Get returns the task with the given id.
func (q *Queue) Get(id int) (Task, bool) {
	if i := q.indexOf(id); i >= 0 {
		return q.tasks[i], true
	}
	return Task{}, false
}

// Remove drops the task with the given id. It reports whether anything was removed.
func (q *Queue) Remove(id int) bool {
	i := q.indexOf(id)
	if i < 0 {
		return false
	}
	q.tasks = slices.Delete(q.tasks, i, i+1)
	return true
}

// Tasks returns a copy of every task in queue order.
func (q *Queue) Tasks() []Task {
	return slices.Clone(q.tasks)
}

// Len returns the number of tasks held.
func (q *Queue) Len() int {
	return len(q.tasks)
}

// Available returns the tasks that can still be done with timeLeft of the day,
// in queue order. It never modifies the queue.
func (q *Queue) Available(timeLeft float64) []Task {
	var out []Task
	for _, t := range q.tasks {
		if fits(t, timeLeft) {
			out = append(out, t)
		}
	}
	return out
}

// Refill generates tasks in batches until at least minPool are available or
// the queue reaches its size cap. It returns the number of tasks added.
func (q *Queue) Refill(timeLeft float64, day int, effects Suppressor) int {
	added := 0
	for q.countAvailable(timeLeft) < q.minPool && len(q.tasks) < q.maxPool {
		for i := 0; i < q.batch && len(q.tasks) < q.maxPool; i++ {
			q.tasks = append(q.tasks, q.gen.Generate(day, effects))
			added++
		}
	}
	if added > 0 {
		q.Sort()
	}
	return added
}

// Sort puts time-limited tasks first, earliest deadline first. Ties keep
// their relative order.
func (q *Queue) Sort() {
	slices.SortStableFunc(q.tasks, compareTasks)
}

// Overdue returns the tasks whose deadline passed before day.
func (q *Queue) Overdue(day int) []Task {
	var out []Task
	for _, t := range q.tasks {
		if t.IsOverdueOn(day) {
			out = append(out, t)
		}
	}
	return out
}

func (q *Queue) countAvailable(timeLeft float64) int {
	n := 0
	for _, t := range q.tasks {
		if fits(t, timeLeft) {
			n++
		}
	}
	return n
}

func (q *Queue) indexOf(id int) int {
	return slices.IndexFunc(q.tasks, func(t Task) bool { return t.ID == id })
}

func fits(t Task, timeLeft float64) bool {
	return !t.Completed && t.TimeCost <= timeLeft+timeEpsilon
}

func compareTasks(a, b Task) int {
	switch {
	case a.TimeLimited && !b.TimeLimited:
		return -1
	case !a.TimeLimited && b.TimeLimited:
		return 1
	case a.TimeLimited && b.TimeLimited:
		return a.DeadlineDay - b.DeadlineDay
	default:
		return 0
	}
}
