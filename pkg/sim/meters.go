package sim

const (
	MeterMin = 0
	MeterMax = 100
)

// Meters holds the two bounded meters. Every mutation clamps to [MeterMin, MeterMax].
type Meters struct {
	Approval int `json:"approval"`
	Morale   int `json:"morale"`
}

// Apply adds the deltas and clamps both meters.
func (m *Meters) Apply(approvalDelta, moraleDelta int) {
	m.Approval = clampMeter(m.Approval + approvalDelta)
	m.Morale = clampMeter(m.Morale + moraleDelta)
}

// SetApproval sets approval, clamped.
func (m *Meters) SetApproval(v int) {
	m.Approval = clampMeter(v)
}

// SetMorale sets morale, clamped.
func (m *Meters) SetMorale(v int) {
	m.Morale = clampMeter(v)
}

func clampMeter(v int) int {
	return min(MeterMax, max(MeterMin, v))
}
