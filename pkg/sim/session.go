package sim

import (
	"errors"
	"math"

	"github.com/sora-blue/GreatCorpSimulator/pkg/config"
)

// timeEpsilon absorbs float error when comparing fractions of a day.
const timeEpsilon = 1e-9

// ErrRunInProgress is returned by Start while a run is active.
var ErrRunInProgress = errors.New("a run is already in progress")

// ErrNotActive is returned by operations that need an active run.
var ErrNotActive = errors.New("no active run")

// Phase is the state of the session's state machine.
type Phase int

const (
	PhaseInactive Phase = iota
	PhaseActive
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseInactive:
		return "inactive"
	case PhaseActive:
		return "active"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// GameState is the mutable record of one run.
type GameState struct {
	Meters
	Day            int       `json:"day"`
	TimeLeft       float64   `json:"time_left"`
	TasksCompleted int       `json:"tasks_completed"`
	Active         bool      `json:"active"`
	EndReason      EndReason `json:"end_reason,omitempty"`
}

// RunRecorder receives the final state of every run that ends.
type RunRecorder interface {
	RecordRun(state GameState)
}

// Option configures a Session.
type Option func(*Session)

// WithRecorder reports ended runs to r.
func WithRecorder(r RunRecorder) Option {
	return func(s *Session) { s.recorder = r }
}

// Session is one player's simulation: the game state, the task queue and the
// effect registry. It is not safe for concurrent use; callers serialize every
// call onto a single goroutine.
type Session struct {
	balance  config.Balance
	rng      Rand
	state    GameState
	queue    *Queue
	effects  *Effects
	recorder RunRecorder
	events   []Event
}

// NewSession creates an inactive session. Call Start to begin a run.
func NewSession(balance config.Balance, rng Rand, opts ...Option) *Session {
	gen := NewGenerator(balance, rng)
	s := &Session{
		balance: balance,
		rng:     rng,
		queue:   NewQueue(gen, balance.MinPool, balance.RefillBatch, balance.MaxPool),
		effects: NewEffects(balance.ResetValue, balance.SuppressDays),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins a fresh run.
func (s *Session) Start() error {
	if s.state.Active {
		return ErrRunInProgress
	}
	s.state = GameState{
		Day:      1,
		TimeLeft: 1.0,
		Meters:   Meters{Approval: s.balance.StartApproval, Morale: s.balance.StartMorale},
		Active:   true,
	}
	s.events = nil
	s.effects.Reset()
	s.queue.gen.Reset()
	s.queue.Populate(s.balance.InitialTasks, s.state.Day, s.effects)
	s.refill()
	s.emit(Event{Kind: EventDayStarted, Day: s.state.Day})
	return nil
}

// Tick advances the clock by one step. It does nothing unless a run is active.
func (s *Session) Tick() {
	if !s.state.Active {
		return
	}

	s.state.TimeLeft = max(0, roundTime(s.state.TimeLeft-s.balance.TickStep))
	s.state.Apply(s.balance.DriftApprove, s.balance.DriftMorale)

	for _, t := range s.queue.Overdue(s.state.Day) {
		t.Overdue = true
		t.Completed = true
		s.state.Apply(-s.balance.OverduePenalty, 0)
		s.closeTask(t)
		s.emit(Event{Kind: EventTaskOverdue, Day: s.state.Day, Task: &t})
		s.queue.Generate(s.state.Day, s.effects)
	}

	if s.state.TimeLeft <= timeEpsilon {
		// End conditions are checked before rollover so the run ends on the
		// day the threshold was crossed.
		switch {
		case s.state.Approval < s.balance.DismissThreshold:
			s.end(EndDismissed)
			return
		case s.state.Morale < s.balance.BreakdownThreshold:
			s.end(EndBreakdown)
			return
		}
		s.rollover()
	}
	s.refill()
}

// CompleteTask finishes the task with the given id. Unknown or completed ids
// and inactive sessions are ignored.
func (s *Session) CompleteTask(id int) {
	if !s.state.Active {
		return
	}
	t, ok := s.queue.Get(id)
	if !ok || t.Completed {
		return
	}

	s.state.TimeLeft = max(0, roundTime(s.state.TimeLeft-t.TimeCost))
	s.state.TasksCompleted++
	s.closeTask(t)
	t.Completed = true
	s.emit(Event{Kind: EventTaskCompleted, Day: s.state.Day, Task: &t})

	if t.Category == CategoryHigh && s.rng.Float64() < s.balance.CardChance {
		kind := SkillKinds[pick(s.rng, len(SkillKinds))]
		s.effects.Award(kind)
		s.emit(Event{Kind: EventSkillCardAwarded, Day: s.state.Day, Skill: kind})
	}

	s.queue.Generate(s.state.Day, s.effects)
	s.refill()
}

// Idle spends a short break: a little time, a little approval, a little morale
// back. It does nothing when the run is inactive or there is not enough time left.
func (s *Session) Idle() {
	if !s.state.Active || s.state.TimeLeft+timeEpsilon < s.balance.IdleCost {
		return
	}
	s.state.TimeLeft = max(0, roundTime(s.state.TimeLeft-s.balance.IdleCost))
	s.state.Apply(s.balance.IdleApproval, s.balance.IdleMorale)
	s.refill()
}

// UseSkillCard consumes one card of kind and applies its effect.
func (s *Session) UseSkillCard(kind SkillKind) error {
	if !s.state.Active {
		return ErrNotActive
	}
	if err := s.effects.Use(kind, &s.state.Meters); err != nil {
		return err
	}
	s.emit(Event{Kind: EventSkillCardUsed, Day: s.state.Day, Skill: kind})
	s.refill()
	return nil
}

// VoluntaryExit ends the active run at the player's request.
func (s *Session) VoluntaryExit() {
	if !s.state.Active {
		return
	}
	s.end(EndVoluntaryExit)
}

// State returns a copy of the game state.
func (s *Session) State() GameState {
	return s.state
}

// Phase returns where the session is in its lifecycle.
func (s *Session) Phase() Phase {
	switch {
	case s.state.Active:
		return PhaseActive
	case s.state.EndReason != "":
		return PhaseEnded
	default:
		return PhaseInactive
	}
}

// AvailableTasks returns the tasks that fit in the time left today.
func (s *Session) AvailableTasks() []Task {
	return s.queue.Available(s.state.TimeLeft)
}

// Tasks returns every task in the queue, including those that no longer fit today.
func (s *Session) Tasks() []Task {
	return s.queue.Tasks()
}

// SkillCards returns the card counts.
func (s *Session) SkillCards() map[SkillKind]int {
	return s.effects.Cards()
}

// ActiveEffects returns the running effects.
func (s *Session) ActiveEffects() []Effect {
	return s.effects.Active()
}

// Result summarizes the ended run. It is only meaningful in PhaseEnded.
func (s *Session) Result() Result {
	return ResultFor(s.state.EndReason, s.state.Day)
}

// DrainEvents returns the events emitted since the last call and clears them.
func (s *Session) DrainEvents() []Event {
	ev := s.events
	s.events = nil
	return ev
}

// closeTask applies a task's rewards and removes it from the queue.
func (s *Session) closeTask(t Task) {
	s.state.Apply(t.Approval, t.Morale)
	s.queue.Remove(t.ID)
}

func (s *Session) rollover() {
	s.state.TimeLeft = 1.0
	s.state.Day++
	for _, eff := range s.effects.AdvanceDay() {
		s.emit(Event{Kind: EventEffectExpired, Day: s.state.Day, Effect: &eff})
	}
	s.emit(Event{Kind: EventDayStarted, Day: s.state.Day})
}

func (s *Session) end(reason EndReason) {
	s.state.Active = false
	s.state.EndReason = reason
	s.emit(Event{Kind: EventRunEnded, Day: s.state.Day, Reason: reason})
	if s.recorder != nil {
		s.recorder.RecordRun(s.state)
	}
}

func (s *Session) refill() {
	s.queue.Refill(s.state.TimeLeft, s.state.Day, s.effects)
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

// roundTime trims float drift so fifty 0.02 steps land exactly on zero.
func roundTime(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
