package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sora-blue/GreatCorpSimulator/pkg/config"
)

func TestAutoplayEndsAndRecordsOnce(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		rec := &fakeRecorder{}
		s := NewSession(config.Default(), rand.New(rand.NewSource(seed)), WithRecorder(rec))
		require.NoError(t, s.Start())

		ticks := Autoplay(s, 30)
		st := s.State()
		assert.Positive(t, ticks)
		assert.False(t, st.Active, "seed %d", seed)
		assert.NotEmpty(t, st.EndReason)
		assert.LessOrEqual(t, st.Day, 31)
		assert.Len(t, rec.runs, 1, "seed %d", seed)
	}
}

func TestAutoplayResignsAtDayCap(t *testing.T) {
	s := NewSession(config.Casual(), rand.New(rand.NewSource(4)))
	require.NoError(t, s.Start())

	Autoplay(s, 1)
	st := s.State()
	if st.EndReason == EndVoluntaryExit {
		assert.Equal(t, 2, st.Day)
	} else {
		assert.Equal(t, 1, st.Day)
	}
}

func TestAutoplayIsReproducible(t *testing.T) {
	play := func() GameState {
		s := NewSession(config.Default(), rand.New(rand.NewSource(21)))
		require.NoError(t, s.Start())
		Autoplay(s, 20)
		return s.State()
	}
	assert.Equal(t, play(), play())
}

func TestAutoplayOnInactiveSession(t *testing.T) {
	s := NewSession(config.Default(), constRand(0.5))
	assert.Zero(t, Autoplay(s, 10))
	assert.Equal(t, PhaseInactive, s.Phase())
}

func TestBestTask(t *testing.T) {
	tasks := []Task{
		{ID: 1, TimeCost: 0.5, Approval: 20, Morale: -5},
		{ID: 2, TimeCost: 0.1, Approval: 6, Morale: -1},
		{ID: 3, TimeCost: 0.2, Approval: 7, Morale: -1, TimeLimited: true, DeadlineDay: 4},
	}

	best, ok := bestTask(tasks, GameState{Day: 1})
	require.True(t, ok)
	assert.Equal(t, 2, best.ID)

	best, _ = bestTask(tasks, GameState{Day: 4})
	assert.Equal(t, 3, best.ID, "due today doubles the score")

	_, ok = bestTask(nil, GameState{Day: 1})
	assert.False(t, ok)
}
