package runtime_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"grantflow/internal/runtime"
)

func newTestLog(t *testing.T, maxEntries int) *runtime.ActionLog {
	t.Helper()
	return runtime.NewActionLog(filepath.Join(t.TempDir(), "action-log.json"), maxEntries)
}

func entry(id string) runtime.LogEntry {
	return runtime.LogEntry{
		ID:        id,
		Timestamp: time.Now().UTC(),
		Actor:     "admin",
		Action:    "scan",
		Status:    "completed",
	}
}

func TestActionLog_AppendAndRecent(t *testing.T) {
	log := newTestLog(t, 100)

	assert.NoError(t, log.Append(entry("a")))
	assert.NoError(t, log.Append(entry("b")))
	assert.NoError(t, log.Append(entry("c")))

	recent, err := log.Recent(10)
	assert.NoError(t, err)
	assert.Len(t, recent, 3)
	assert.Equal(t, "c", recent[0].ID)
	assert.Equal(t, "b", recent[1].ID)
	assert.Equal(t, "a", recent[2].ID)
}

func TestActionLog_RecentHonorsLimit(t *testing.T) {
	log := newTestLog(t, 100)

	for _, id := range []string{"a", "b", "c", "d"} {
		assert.NoError(t, log.Append(entry(id)))
	}

	recent, err := log.Recent(2)
	assert.NoError(t, err)
	assert.Len(t, recent, 2)
	assert.Equal(t, "d", recent[0].ID)
	assert.Equal(t, "c", recent[1].ID)
}

func TestActionLog_TrimsToMaxEntries(t *testing.T) {
	log := newTestLog(t, 2)

	assert.NoError(t, log.Append(entry("a")))
	assert.NoError(t, log.Append(entry("b")))
	assert.NoError(t, log.Append(entry("c")))

	recent, err := log.Recent(10)
	assert.NoError(t, err)
	assert.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].ID)
	assert.Equal(t, "b", recent[1].ID)
}

func TestActionLog_MissingFileReadsEmpty(t *testing.T) {
	log := newTestLog(t, 10)

	recent, err := log.Recent(10)
	assert.NoError(t, err)
	assert.Empty(t, recent)
}

func TestActionLog_CorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "action-log.json")
	assert.NoError(t, os.WriteFile(path, []byte("{{not json"), 0o644))

	log := runtime.NewActionLog(path, 10)

	recent, err := log.Recent(10)
	assert.NoError(t, err)
	assert.Empty(t, recent)

	assert.NoError(t, log.Append(entry("a")))
	recent, err = log.Recent(10)
	assert.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestActionLog_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "action-log.json")
	log := runtime.NewActionLog(path, 10)

	assert.NoError(t, log.Append(entry("a")))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
