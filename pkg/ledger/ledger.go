// Package ledger keeps the ranked history of finished runs.
package ledger

import (
	"cmp"
	"encoding/json"
	"log"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/sora-blue/GreatCorpSimulator/pkg/sim"
)

// DefaultKey is the blob the history is stored under.
const DefaultKey = "leaderboard"

// RunRecord is the snapshot of one ended run.
type RunRecord struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Reason         sim.EndReason `json:"reason"`
	DaysSurvived   int           `json:"days"`
	Approval       int           `json:"approval"`
	Morale         int           `json:"morale"`
	TasksCompleted int           `json:"tasksCompleted"`
	RecordedAt     time.Time     `json:"recordedAt"`
}

// BlobStore is a string key-value store. Missing keys report ok=false.
type BlobStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets where load and save failures are reported.
func WithLogger(l *log.Logger) Option {
	return func(lg *Ledger) { lg.logger = l }
}

// WithClock replaces time.Now for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(lg *Ledger) { lg.now = now }
}

// WithKey stores the history under key instead of DefaultKey.
func WithKey(key string) Option {
	return func(lg *Ledger) { lg.key = key }
}

// Ledger is the ranked run history backed by a BlobStore. Persistence is best
// effort: failures are logged and the in-memory history stays authoritative.
type Ledger struct {
	store   BlobStore
	key     string
	logger  *log.Logger
	now     func() time.Time
	records []RunRecord
}

// New loads the history from store. Missing or malformed data yields an
// empty history.
func New(store BlobStore, opts ...Option) *Ledger {
	lg := &Ledger{
		store:  store,
		key:    DefaultKey,
		logger: log.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(lg)
	}
	if records, err := lg.load(); err != nil {
		lg.logger.Printf("ledger: %v; starting with an empty history", err)
	} else {
		lg.records = records
	}
	return lg
}

// RecordRun snapshots an ended run and stores it in rank order.
func (lg *Ledger) RecordRun(state sim.GameState) {
	rec := RunRecord{
		ID:             uuid.NewString(),
		Title:          sim.ResultFor(state.EndReason, state.Day).Title,
		Reason:         state.EndReason,
		DaysSurvived:   state.Day,
		Approval:       state.Approval,
		Morale:         state.Morale,
		TasksCompleted: state.TasksCompleted,
		RecordedAt:     lg.now().UTC(),
	}
	// Newest first before the stable sort so equal timestamps still rank it ahead
	lg.records = slices.Insert(lg.records, 0, rec)
	sortRecords(lg.records)
	lg.save()
}

// Records returns the history, best run first.
func (lg *Ledger) Records() []RunRecord {
	return slices.Clone(lg.records)
}

// Best returns the top-ranked run.
func (lg *Ledger) Best() (RunRecord, bool) {
	if len(lg.records) == 0 {
		return RunRecord{}, false
	}
	return lg.records[0], true
}

// Len returns the number of recorded runs.
func (lg *Ledger) Len() int {
	return len(lg.records)
}

// Clear drops the whole history.
func (lg *Ledger) Clear() {
	lg.records = nil
	if err := lg.store.Remove(lg.key); err != nil {
		lg.logger.Printf("ledger: clear: %v", err)
	}
}

// Reload re-reads the history after an external change. A failed reload
// keeps the current history.
func (lg *Ledger) Reload() error {
	records, err := lg.load()
	if err != nil {
		lg.logger.Printf("ledger: reload: %v", err)
		return err
	}
	lg.records = records
	return nil
}

func (lg *Ledger) load() ([]RunRecord, error) {
	raw, ok, err := lg.store.Get(lg.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var records []RunRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, &MalformedError{Key: lg.key, Err: err}
	}
	sortRecords(records)
	return records, nil
}

func (lg *Ledger) save() {
	data, err := json.Marshal(lg.records)
	if err != nil {
		lg.logger.Printf("ledger: encode: %v", err)
		return
	}
	if err := lg.store.Set(lg.key, string(data)); err != nil {
		lg.logger.Printf("ledger: save: %v", err)
	}
}

// sortRecords ranks by days survived, most recent first among ties.
func sortRecords(records []RunRecord) {
	slices.SortStableFunc(records, func(a, b RunRecord) int {
		if c := cmp.Compare(b.DaysSurvived, a.DaysSurvived); c != 0 {
			return c
		}
		return b.RecordedAt.Compare(a.RecordedAt)
	})
}
