package sim

// EventKind names something that happened in the simulation that a
// presentation layer may want to react to.
type EventKind string

const (
	EventTaskCompleted    EventKind = "task-completed"
	EventTaskOverdue      EventKind = "task-overdue"
	EventSkillCardAwarded EventKind = "skill-card-awarded"
	EventSkillCardUsed    EventKind = "skill-card-used"
	EventEffectExpired    EventKind = "effect-expired"
	EventDayStarted       EventKind = "day-started"
	EventRunEnded         EventKind = "run-ended"
)

// Event is a notification emitted by the session. Only the fields relevant to
// the kind are set.
type Event struct {
	Kind   EventKind
	Day    int
	Task   *Task
	Skill  SkillKind
	Effect *Effect
	Reason EndReason
}
