package sim

import "fmt"

// EndReason is why a run ended. The zero value means the run has not ended.
type EndReason string

const (
	EndVoluntaryExit EndReason = "voluntary-exit"
	EndDismissed     EndReason = "dismissed"
	EndBreakdown     EndReason = "breakdown"
)

// Result is the player-facing summary of an ended run.
type Result struct {
	Title       string
	Subtitle    string
	Description string
}

// ResultFor describes how a run ending for reason on day reads to the player.
func ResultFor(reason EndReason, day int) Result {
	switch reason {
	case EndVoluntaryExit:
		return Result{
			Title:       "Quit While Ahead",
			Subtitle:    "A wise call",
			Description: fmt.Sprintf("You walked away on day %d. In a high-pressure office, knowing when to stop is its own kind of skill. You kept your balance and avoided burning yourself out.", day),
		}
	case EndDismissed:
		return Result{
			Title:       "Shown the Door",
			Subtitle:    "The boss was not impressed",
			Description: fmt.Sprintf("You were let go on day %d. Management felt you fell short of expectations. Next time, try to balance the quality of your work against the pace.", day),
		}
	case EndBreakdown:
		return Result{
			Title:       "Burned Out",
			Subtitle:    "Too much pressure",
			Description: fmt.Sprintf("You broke down on day %d. The relentless pressure wore your well-being down until you could no longer keep going. Your health matters more than the job.", day),
		}
	default:
		return Result{
			Title:       "Game Over",
			Subtitle:    "Unknown cause",
			Description: "The run ended for reasons nobody can explain.",
		}
	}
}
