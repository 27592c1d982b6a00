package sim

// Autoplay drives an active session with a simple greedy policy until the run
// ends or maxDays have been played, then resigns if the run is still going.
// It returns the number of clock ticks taken.
func Autoplay(s *Session, maxDays int) int {
	ticks := 0
	for s.state.Active && s.state.Day <= maxDays {
		autoplayStep(s)
		if !s.state.Active {
			break
		}
		s.Tick()
		ticks++
	}
	if s.state.Active {
		s.VoluntaryExit()
	}
	return ticks
}

// autoplayStep makes at most one decision per tick: spend a card, rest, or
// take the most rewarding task per unit of time.
func autoplayStep(s *Session) {
	b := s.balance
	st := s.state

	switch {
	case st.Approval < b.DismissThreshold+10 && s.effects.Count(SkillResetApproval) > 0:
		_ = s.UseSkillCard(SkillResetApproval)
		return
	case st.Morale < b.BreakdownThreshold+10 && s.effects.Count(SkillResetMorale) > 0:
		_ = s.UseSkillCard(SkillResetMorale)
		return
	case s.effects.Count(SkillSuppress) > 0 && !s.effects.HasSuppression():
		_ = s.UseSkillCard(SkillSuppress)
		return
	}

	if st.Approval >= b.StartApproval {
		return
	}
	if st.Morale < b.BreakdownThreshold+15 {
		s.Idle()
		return
	}

	best, ok := bestTask(s.AvailableTasks(), st)
	if ok {
		s.CompleteTask(best.ID)
	}
}

// bestTask scores tasks by net reward per unit of time, preferring deadlines
// that land today.
func bestTask(tasks []Task, st GameState) (Task, bool) {
	var best Task
	bestScore := 0.0
	found := false
	for _, t := range tasks {
		score := float64(t.Approval+t.Morale) / t.TimeCost
		if t.DaysLeft(st.Day) == 0 {
			score *= 2
		}
		if !found || score > bestScore {
			best, bestScore, found = t, score, true
		}
	}
	return best, found
}
