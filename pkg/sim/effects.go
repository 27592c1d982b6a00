package sim

import (
	"errors"
	"slices"
)

// SkillKind identifies a consumable skill card.
type SkillKind string

const (
	SkillResetApproval SkillKind = "reset-approval"
	SkillResetMorale   SkillKind = "reset-morale"
	SkillSuppress      SkillKind = "suppress"
)

// SkillKinds lists every card kind in award order.
var SkillKinds = []SkillKind{SkillResetApproval, SkillResetMorale, SkillSuppress}

// EffectKind identifies a time-boxed modifier.
type EffectKind string

// EffectSuppressLowTier stops the generator from producing low-tier tasks.
const EffectSuppressLowTier EffectKind = "suppress-low-tier"

// ErrNoSkillCard is returned when using a card kind whose count is zero.
var ErrNoSkillCard = errors.New("no skill card of that kind left")

// ErrUnknownSkillCard is returned for card kinds the registry does not know.
var ErrUnknownSkillCard = errors.New("unknown skill card")

// Effect is a modifier that lasts a number of days.
type Effect struct {
	Kind          EffectKind `json:"kind"`
	RemainingDays int        `json:"remaining_days"`
}

// Effects tracks skill-card counts and the active effects they produce.
type Effects struct {
	resetValue   int
	suppressDays int
	cards        map[SkillKind]int
	active       []Effect
}

// NewEffects creates an empty registry. resetValue is the meter value the
// reset cards restore; suppressDays is the lifetime of a suppress effect.
func NewEffects(resetValue, suppressDays int) *Effects {
	return &Effects{
		resetValue:   resetValue,
		suppressDays: suppressDays,
		cards:        make(map[SkillKind]int),
	}
}

// Reset drops every card and effect.
func (e *Effects) Reset() {
	e.cards = make(map[SkillKind]int)
	e.active = nil
}

// Award adds one card of the given kind.
func (e *Effects) Award(kind SkillKind) {
	e.cards[kind]++
}

// Count returns how many cards of kind are held.
func (e *Effects) Count(kind SkillKind) int {
	return e.cards[kind]
}

// Cards returns a copy of every card count, including zero counts.
func (e *Effects) Cards() map[SkillKind]int {
	out := make(map[SkillKind]int, len(SkillKinds))
	for _, k := range SkillKinds {
		out[k] = e.cards[k]
	}
	return out
}

// Use consumes one card and applies it. Nothing changes when the card is unknown
// or exhausted.
func (e *Effects) Use(kind SkillKind, m *Meters) error {
	if !slices.Contains(SkillKinds, kind) {
		return ErrUnknownSkillCard
	}
	if e.cards[kind] == 0 {
		return ErrNoSkillCard
	}
	e.cards[kind]--

	switch kind {
	case SkillResetApproval:
		m.SetApproval(e.resetValue)
	case SkillResetMorale:
		m.SetMorale(e.resetValue)
	case SkillSuppress:
		e.active = append(e.active, Effect{Kind: EffectSuppressLowTier, RemainingDays: e.suppressDays})
	}
	return nil
}

// AdvanceDay ages every effect by one day and returns the ones that expired.
func (e *Effects) AdvanceDay() []Effect {
	var expired []Effect
	kept := e.active[:0]
	for _, eff := range e.active {
		eff.RemainingDays--
		if eff.RemainingDays <= 0 {
			expired = append(expired, eff)
			continue
		}
		kept = append(kept, eff)
	}
	e.active = kept
	return expired
}

// HasSuppression reports whether any suppress effect is active.
func (e *Effects) HasSuppression() bool {
	return slices.ContainsFunc(e.active, func(eff Effect) bool {
		return eff.Kind == EffectSuppressLowTier
	})
}

// Active returns a copy of the active effects.
func (e *Effects) Active() []Effect {
	return slices.Clone(e.active)
}
