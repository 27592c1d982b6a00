package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// IntRange is an inclusive integer interval.
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// CategoryBalance holds the draw ranges for one task category.
type CategoryBalance struct {
	TimeCost Range    `yaml:"time_cost"`
	Approval IntRange `yaml:"approval"`
	Morale   IntRange `yaml:"morale"`
	Names    []string `yaml:"names"`
}

// Balance holds gameplay balance configuration
type Balance struct {
	// Clock
	TickStep     float64 `yaml:"tick_step"`
	DriftApprove int     `yaml:"drift_approval"`
	DriftMorale  int     `yaml:"drift_morale"`

	// Idle ("slacking off")
	IdleCost     float64 `yaml:"idle_cost"`
	IdleApproval int     `yaml:"idle_approval"`
	IdleMorale   int     `yaml:"idle_morale"`

	// Meters
	StartApproval      int `yaml:"start_approval"`
	StartMorale        int `yaml:"start_morale"`
	DismissThreshold   int `yaml:"dismiss_threshold"`
	BreakdownThreshold int `yaml:"breakdown_threshold"`

	// Task pool
	InitialTasks int `yaml:"initial_tasks"`
	MinPool      int `yaml:"min_pool"`
	RefillBatch  int `yaml:"refill_batch"`
	MaxPool      int `yaml:"max_pool"`

	// Deadlines
	TimedChance    float64  `yaml:"timed_chance"`
	DeadlineDays   IntRange `yaml:"deadline_days"`
	OverduePenalty int      `yaml:"overdue_penalty"`

	// Skill cards
	CardChance   float64 `yaml:"card_chance"`
	ResetValue   int     `yaml:"reset_value"`
	SuppressDays int     `yaml:"suppress_days"`

	// Difficulty multiplier applied to every approval reward
	RewardMultiplier float64 `yaml:"reward_multiplier"`

	Low    CategoryBalance `yaml:"low"`
	Medium CategoryBalance `yaml:"medium"`
	High   CategoryBalance `yaml:"high"`
}

// Default returns the default balance configuration
func Default() Balance {
	return Balance{
		TickStep:     0.02,
		DriftApprove: -1,
		DriftMorale:  1,

		IdleCost:     0.04,
		IdleApproval: -1,
		IdleMorale:   1,

		StartApproval:      80,
		StartMorale:        80,
		DismissThreshold:   40,
		BreakdownThreshold: 40,

		InitialTasks: 18,
		MinPool:      8,
		RefillBatch:  3,
		MaxPool:      64,

		TimedChance:    0.30,
		DeadlineDays:   IntRange{Min: 1, Max: 3},
		OverduePenalty: 10,

		CardChance:   0.30,
		ResetValue:   80,
		SuppressDays: 3,

		RewardMultiplier: 1.0,

		Low: CategoryBalance{
			TimeCost: Range{Min: 0.02, Max: 0.80},
			Approval: IntRange{Min: 1, Max: 5},
			Morale:   IntRange{Min: -20, Max: -1},
			Names:    []string{"Tidy up docs", "Reply to emails", "Sit in a meeting", "Update the status report", "Code review"},
		},
		Medium: CategoryBalance{
			TimeCost: Range{Min: 0.10, Max: 0.60},
			Approval: IntRange{Min: 6, Max: 20},
			Morale:   IntRange{Min: -5, Max: -1},
			Names:    []string{"Feature work", "System tuning", "Requirements analysis", "Write test cases", "Architecture design"},
		},
		High: CategoryBalance{
			TimeCost: Range{Min: 0.02, Max: 0.30},
			Approval: IntRange{Min: 10, Max: 30},
			Morale:   IntRange{Min: -5, Max: -1},
			Names:    []string{"Tech research", "Performance deep-dive", "Security hardening", "Innovation pitch", "Brown-bag talk"},
		},
	}
}

// Casual returns easier balance for casual difficulty
func Casual() Balance {
	cfg := Default()
	cfg.RewardMultiplier = 1.25
	cfg.OverduePenalty = 5
	cfg.CardChance = 0.40
	cfg.SuppressDays = 4
	return cfg
}

// Hard returns harder balance for experienced players
func Hard() Balance {
	cfg := Default()
	cfg.RewardMultiplier = 0.8
	cfg.OverduePenalty = 15
	cfg.TimedChance = 0.40
	cfg.CardChance = 0.20
	return cfg
}

// Preset returns the balance preset for a difficulty name.
// Unknown names fall back to Default.
func Preset(difficulty string) Balance {
	switch difficulty {
	case "casual":
		return Casual()
	case "hard":
		return Hard()
	default:
		return Default()
	}
}

// LoadBalance overlays a YAML balance file onto base. Fields missing from the
// file keep base's values.
func LoadBalance(path string, base Balance) (Balance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading balance file: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parsing balance file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return base, fmt.Errorf("balance file %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders the balance as YAML.
func (b Balance) Marshal() ([]byte, error) {
	return yaml.Marshal(b)
}

// Validate rejects balances the simulation cannot run with.
func (b Balance) Validate() error {
	var errs []error
	if b.TickStep <= 0 || b.TickStep > 1 {
		errs = append(errs, fmt.Errorf("tick_step must be in (0,1], got %v", b.TickStep))
	}
	if b.IdleCost <= 0 || b.IdleCost > 1 {
		errs = append(errs, fmt.Errorf("idle_cost must be in (0,1], got %v", b.IdleCost))
	}
	if b.MinPool < 0 || b.RefillBatch <= 0 {
		errs = append(errs, errors.New("min_pool must be non-negative and refill_batch positive"))
	}
	if b.MaxPool < b.InitialTasks {
		errs = append(errs, fmt.Errorf("max_pool (%d) is smaller than initial_tasks (%d)", b.MaxPool, b.InitialTasks))
	}
	if b.DeadlineDays.Min < 1 || b.DeadlineDays.Max < b.DeadlineDays.Min {
		errs = append(errs, errors.New("deadline_days must satisfy 1 <= min <= max"))
	}
	if b.RewardMultiplier < 0 {
		errs = append(errs, errors.New("reward_multiplier must be non-negative"))
	}
	for name, c := range map[string]CategoryBalance{"low": b.Low, "medium": b.Medium, "high": b.High} {
		if c.TimeCost.Min <= 0 || c.TimeCost.Max > 1 || c.TimeCost.Max < c.TimeCost.Min {
			errs = append(errs, fmt.Errorf("%s.time_cost must satisfy 0 < min <= max <= 1", name))
		}
		if c.Approval.Max < c.Approval.Min || c.Morale.Max < c.Morale.Min {
			errs = append(errs, fmt.Errorf("%s has an inverted reward range", name))
		}
		if len(c.Names) == 0 {
			errs = append(errs, fmt.Errorf("%s.names must not be empty", name))
		}
	}
	return errors.Join(errs...)
}
