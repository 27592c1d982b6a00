package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sora-blue/GreatCorpSimulator/pkg/sim"
	"github.com/sora-blue/GreatCorpSimulator/pkg/store"
)

// stepClock advances one minute on every call.
func stepClock() func() time.Time {
	t := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func setupTestLedger(t *testing.T) (*Ledger, *store.Memory, *bytes.Buffer) {
	t.Helper()
	mem := store.NewMemory()
	var buf bytes.Buffer
	lg := New(mem, WithClock(stepClock()), WithLogger(log.New(&buf, "", 0)))
	return lg, mem, &buf
}

func ended(day int, reason sim.EndReason) sim.GameState {
	return sim.GameState{
		Meters:         sim.Meters{Approval: 35, Morale: 60},
		Day:            day,
		TasksCompleted: day * 4,
		EndReason:      reason,
	}
}

func days(records []RunRecord) []int {
	var out []int
	for _, r := range records {
		out = append(out, r.DaysSurvived)
	}
	return out
}

func TestEmptyLedger(t *testing.T) {
	lg, _, buf := setupTestLedger(t)

	assert.Empty(t, lg.Records())
	assert.Zero(t, lg.Len())
	_, ok := lg.Best()
	assert.False(t, ok)
	assert.Empty(t, buf.String())
}

func TestRecordRunSnapshot(t *testing.T) {
	lg, _, _ := setupTestLedger(t)

	lg.RecordRun(ended(6, sim.EndDismissed))
	rec, ok := lg.Best()
	require.True(t, ok)

	_, err := uuid.Parse(rec.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Shown the Door", rec.Title)
	assert.Equal(t, sim.EndDismissed, rec.Reason)
	assert.Equal(t, 6, rec.DaysSurvived)
	assert.Equal(t, 35, rec.Approval)
	assert.Equal(t, 60, rec.Morale)
	assert.Equal(t, 24, rec.TasksCompleted)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 1, 0, 0, time.UTC), rec.RecordedAt)
}

func TestRankingByDaysThenRecency(t *testing.T) {
	lg, _, _ := setupTestLedger(t)

	lg.RecordRun(ended(5, sim.EndBreakdown))
	lg.RecordRun(ended(10, sim.EndDismissed))
	lg.RecordRun(ended(10, sim.EndVoluntaryExit))

	records := lg.Records()
	assert.Equal(t, []int{10, 10, 5}, days(records))
	assert.Equal(t, sim.EndVoluntaryExit, records[0].Reason, "later of the tied runs first")
	assert.Equal(t, sim.EndDismissed, records[1].Reason)
	assert.True(t, records[0].RecordedAt.After(records[1].RecordedAt))
}

func TestTiesWithSameTimestampPreferNewestRun(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	lg := New(store.NewMemory(), WithClock(func() time.Time { return fixed }))

	lg.RecordRun(ended(10, sim.EndDismissed))
	lg.RecordRun(ended(10, sim.EndBreakdown))
	lg.RecordRun(ended(3, sim.EndVoluntaryExit))

	records := lg.Records()
	require.Len(t, records, 3)
	assert.Equal(t, sim.EndBreakdown, records[0].Reason)
	assert.Equal(t, sim.EndDismissed, records[1].Reason)
	assert.Equal(t, sim.EndVoluntaryExit, records[2].Reason)
}

func TestRecordsIsACopy(t *testing.T) {
	lg, _, _ := setupTestLedger(t)
	lg.RecordRun(ended(3, sim.EndBreakdown))

	records := lg.Records()
	records[0].DaysSurvived = 99
	assert.Equal(t, 3, lg.Records()[0].DaysSurvived)
}

func TestPersistsAcrossInstances(t *testing.T) {
	lg, mem, _ := setupTestLedger(t)
	lg.RecordRun(ended(2, sim.EndBreakdown))
	lg.RecordRun(ended(7, sim.EndDismissed))

	reopened := New(mem)
	assert.Equal(t, lg.Records(), reopened.Records())
}

func TestStoredFormat(t *testing.T) {
	lg, mem, _ := setupTestLedger(t)
	lg.RecordRun(ended(4, sim.EndVoluntaryExit))

	raw, ok, err := mem.Get(DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)

	var fields []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &fields))
	require.Len(t, fields, 1)
	for _, name := range []string{"id", "title", "reason", "days", "approval", "morale", "tasksCompleted", "recordedAt"} {
		assert.Contains(t, fields[0], name)
	}
	assert.Equal(t, "2024-03-01T09:01:00Z", fields[0]["recordedAt"])
	assert.Equal(t, "voluntary-exit", fields[0]["reason"])
}

func TestMalformedDataIsEmptyHistory(t *testing.T) {
	mem := store.NewMemory()
	require.NoError(t, mem.Set(DefaultKey, "{not json"))
	var buf bytes.Buffer

	lg := New(mem, WithLogger(log.New(&buf, "", 0)))
	assert.Empty(t, lg.Records())
	assert.Contains(t, buf.String(), "malformed history")

	// The next run replaces the bad blob
	lg.RecordRun(ended(1, sim.EndBreakdown))
	assert.Len(t, New(mem).Records(), 1)
}

func TestLoadSortsStoredRecords(t *testing.T) {
	mem := store.NewMemory()
	require.NoError(t, mem.Set(DefaultKey, `[
		{"id":"a","days":2,"recordedAt":"2024-01-01T00:00:00Z"},
		{"id":"b","days":9,"recordedAt":"2024-01-01T00:00:00Z"},
		{"id":"c","days":9,"recordedAt":"2024-01-02T00:00:00Z"}
	]`))

	lg := New(mem)
	var ids []string
	for _, r := range lg.Records() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"c", "b", "a"}, ids)
}

func TestClear(t *testing.T) {
	lg, mem, _ := setupTestLedger(t)
	lg.RecordRun(ended(3, sim.EndBreakdown))

	lg.Clear()
	assert.Empty(t, lg.Records())
	_, ok, err := mem.Get(DefaultKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, New(mem).Records())
}

func TestReload(t *testing.T) {
	lg, mem, _ := setupTestLedger(t)
	other := New(mem, WithClock(stepClock()))
	other.RecordRun(ended(8, sim.EndDismissed))

	assert.Empty(t, lg.Records())
	require.NoError(t, lg.Reload())
	assert.Equal(t, []int{8}, days(lg.Records()))
}

func TestFailedReloadKeepsHistory(t *testing.T) {
	lg, mem, buf := setupTestLedger(t)
	lg.RecordRun(ended(3, sim.EndBreakdown))
	require.NoError(t, mem.Set(DefaultKey, "garbage"))

	err := lg.Reload()
	var malformed *MalformedError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, DefaultKey, malformed.Key)
	assert.Equal(t, []int{3}, days(lg.Records()))
	assert.Contains(t, buf.String(), "reload")
}

type failingStore struct{}

var errDiskFull = errors.New("disk full")

func (failingStore) Get(string) (string, bool, error) { return "", false, errDiskFull }
func (failingStore) Set(string, string) error { return errDiskFull }
func (failingStore) Remove(string) error { return errDiskFull }

func TestStoreFailuresAreLogged(t *testing.T) {
	var buf bytes.Buffer
	lg := New(failingStore{}, WithLogger(log.New(&buf, "", 0)))
	assert.Contains(t, buf.String(), "disk full")

	lg.RecordRun(ended(4, sim.EndBreakdown))
	assert.Equal(t, []int{4}, days(lg.Records()), "history survives a failed save")

	lg.Clear()
	assert.Empty(t, lg.Records())
	assert.Contains(t, buf.String(), "ledger: save: disk full")
	assert.Contains(t, buf.String(), "ledger: clear: disk full")
}

func TestFileBackedLedger(t *testing.T) {
	s, err := store.NewStore(t.TempDir())
	require.NoError(t, err)

	lg := New(s, WithKey("scores"))
	lg.RecordRun(ended(12, sim.EndVoluntaryExit))

	_, err = os.Stat(s.Path("scores"))
	require.NoError(t, err)
	assert.Equal(t, []int{12}, days(New(s, WithKey("scores")).Records()))
	assert.Empty(t, New(s).Records())
}

var _ sim.RunRecorder = (*Ledger)(nil)
