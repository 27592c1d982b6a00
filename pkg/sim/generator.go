package sim

import (
	"math"

	"github.com/sora-blue/GreatCorpSimulator/pkg/config"
)

// Rand is the uniform [0,1) source every draw depends on.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Suppressor reports whether low-tier tasks are currently suppressed.
type Suppressor interface {
	HasSuppression() bool
}

// Generator produces randomized tasks.
type Generator struct {
	balance config.Balance
	rng     Rand
	nextID  int
}

// NewGenerator creates a Generator drawing from rng.
func NewGenerator(balance config.Balance, rng Rand) *Generator {
	return &Generator{balance: balance, rng: rng}
}

// Reset restarts id assignment at zero.
func (g *Generator) Reset() {
	g.nextID = 0
}

// Generate creates a new task for the given day. Low-tier tasks are never
// produced while effects reports suppression.
func (g *Generator) Generate(day int, effects Suppressor) Task {
	pool := Categories
	if effects != nil && effects.HasSuppression() {
		pool = Categories[1:]
	}
	cat := pool[g.index(len(pool))]
	cb := g.categoryBalance(cat)

	cost := g.uniform(cb.TimeCost.Min, cb.TimeCost.Max)
	approval := g.uniformInt(cb.Approval.Min, cb.Approval.Max)
	morale := g.uniformInt(cb.Morale.Min, cb.Morale.Max)
	name := cb.Names[g.index(len(cb.Names))]

	t := Task{
		ID:       g.nextID,
		Name:     name,
		Category: cat,
		TimeCost: round2(cost),
		Approval: max(0, int(math.Round(float64(approval)*g.balance.RewardMultiplier))),
		Morale:   morale,
	}
	g.nextID++

	if t.TimeCost <= 0 {
		t.TimeCost = 0.01
	}

	if g.rng.Float64() < g.balance.TimedChance {
		t.TimeLimited = true
		t.DeadlineDay = day + g.uniformInt(g.balance.DeadlineDays.Min, g.balance.DeadlineDays.Max)
	}
	return t
}

func (g *Generator) categoryBalance(c Category) config.CategoryBalance {
	switch c {
	case CategoryMedium:
		return g.balance.Medium
	case CategoryHigh:
		return g.balance.High
	default:
		return g.balance.Low
	}
}

// index draws a uniform index in [0,n).
func (g *Generator) index(n int) int {
	return pick(g.rng, n)
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// uniformInt draws an integer in [lo,hi], both inclusive.
func (g *Generator) uniformInt(lo, hi int) int {
	return lo + pick(g.rng, hi-lo+1)
}

func pick(rng Rand, n int) int {
	if n <= 1 {
		return 0
	}
	i := int(rng.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
