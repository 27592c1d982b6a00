package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetersClamp(t *testing.T) {
	m := Meters{Approval: 95, Morale: 5}
	m.Apply(20, -20)
	assert.Equal(t, Meters{Approval: 100, Morale: 0}, m)

	m.Apply(-250, 250)
	assert.Equal(t, Meters{Approval: 0, Morale: 100}, m)

	m.SetApproval(120)
	m.SetMorale(-3)
	assert.Equal(t, Meters{Approval: 100, Morale: 0}, m)
}

func TestUseExhaustedCard(t *testing.T) {
	e := NewEffects(80, 3)
	m := Meters{Approval: 20, Morale: 30}

	err := e.Use(SkillResetApproval, &m)
	assert.ErrorIs(t, err, ErrNoSkillCard)
	assert.Equal(t, Meters{Approval: 20, Morale: 30}, m)
	assert.Zero(t, e.Count(SkillResetApproval))
}

func TestUseUnknownCard(t *testing.T) {
	e := NewEffects(80, 3)
	m := Meters{Approval: 20, Morale: 30}

	assert.ErrorIs(t, e.Use(SkillKind("teleport"), &m), ErrUnknownSkillCard)
	assert.Equal(t, Meters{Approval: 20, Morale: 30}, m)
}

func TestUseResetCards(t *testing.T) {
	e := NewEffects(80, 3)
	e.Award(SkillResetApproval)
	e.Award(SkillResetMorale)
	m := Meters{Approval: 20, Morale: 30}

	require.NoError(t, e.Use(SkillResetApproval, &m))
	assert.Equal(t, Meters{Approval: 80, Morale: 30}, m)

	require.NoError(t, e.Use(SkillResetMorale, &m))
	assert.Equal(t, Meters{Approval: 80, Morale: 80}, m)

	assert.Equal(t, map[SkillKind]int{SkillResetApproval: 0, SkillResetMorale: 0, SkillSuppress: 0}, e.Cards())
}

func TestSuppressEffectsStackAndExpireIndependently(t *testing.T) {
	e := NewEffects(80, 3)
	e.Award(SkillSuppress)
	e.Award(SkillSuppress)
	var m Meters

	require.NoError(t, e.Use(SkillSuppress, &m))
	assert.True(t, e.HasSuppression())
	assert.Empty(t, e.AdvanceDay())

	require.NoError(t, e.Use(SkillSuppress, &m))
	assert.Equal(t, []Effect{
		{Kind: EffectSuppressLowTier, RemainingDays: 2},
		{Kind: EffectSuppressLowTier, RemainingDays: 3},
	}, e.Active())

	assert.Empty(t, e.AdvanceDay())
	expired := e.AdvanceDay()
	assert.Len(t, expired, 1)
	assert.True(t, e.HasSuppression(), "second effect still running")

	expired = e.AdvanceDay()
	assert.Len(t, expired, 1)
	assert.False(t, e.HasSuppression())
	assert.Empty(t, e.Active())
}

func TestEffectsReset(t *testing.T) {
	e := NewEffects(80, 3)
	e.Award(SkillSuppress)
	require.NoError(t, e.Use(SkillSuppress, &Meters{}))
	e.Award(SkillResetMorale)

	e.Reset()
	assert.False(t, e.HasSuppression())
	assert.Zero(t, e.Count(SkillResetMorale))
}
