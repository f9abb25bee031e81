package slot

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

type execCall struct {
	query string
	args  []interface{}
}

// recordingExecutor записывает ExecContext и возвращает заданное число затронутых строк
type recordingExecutor struct {
	calls        []execCall
	rowsAffected int64
}

func (e *recordingExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	e.calls = append(e.calls, execCall{query: query, args: args})
	return fakeResult(e.rowsAffected), nil
}

func (e *recordingExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	panic("not used")
}

func (e *recordingExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	panic("not used")
}

type fakeResult int64

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return int64(r), nil }

var start = time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)

func slotsFrom(n int) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0, n)
	for i := 0; i < n; i++ {
		slots = append(slots, domain.NewTimeSlot(1, start.Add(time.Duration(i)*domain.SlotQuantum)))
	}
	return slots
}

func TestInsert_Batches(t *testing.T) {
	exec := &recordingExecutor{}
	repo := NewRepository(exec)

	require.NoError(t, repo.Insert(context.Background(), slotsFrom(insertBatchSize+3)))

	require.Len(t, exec.calls, 2)
	assert.Contains(t, exec.calls[0].query, "INSERT INTO time_slots (provider_id,start_at,duration_minutes)")
	assert.Len(t, exec.calls[0].args, insertBatchSize*3)
	assert.Len(t, exec.calls[1].args, 9)
	assert.Equal(t, 15, exec.calls[0].args[2])
}

func TestInsert_RejectsNonQuantumSlot(t *testing.T) {
	exec := &recordingExecutor{}
	repo := NewRepository(exec)

	bad := domain.NewTimeSlot(1, start)
	bad.Duration = 30 * time.Minute

	err := repo.Insert(context.Background(), []domain.TimeSlot{bad})
	assert.ErrorIs(t, err, ErrCorruptedSlot)
	assert.Empty(t, exec.calls)
}

func TestDelete_OnlyFreeSlots(t *testing.T) {
	exec := &recordingExecutor{rowsAffected: 2}
	repo := NewRepository(exec)

	require.NoError(t, repo.Delete(context.Background(), slotsFrom(2)))

	require.Len(t, exec.calls, 1)
	assert.Contains(t, exec.calls[0].query, "DELETE FROM time_slots")
	assert.Contains(t, exec.calls[0].query, "reservation_id IS NULL")
	assert.Contains(t, exec.calls[0].query, "start_at IN ($2,$3)")
}

func TestDelete_ReservedSlotDetected(t *testing.T) {
	exec := &recordingExecutor{rowsAffected: 1}
	repo := NewRepository(exec)

	err := repo.Delete(context.Background(), slotsFrom(2))
	assert.ErrorIs(t, err, ErrSlotReserved)
}

func TestBind_RequiresEverySlot(t *testing.T) {
	keys := []domain.SlotKey{
		domain.NewSlotKey(1, start),
		domain.NewSlotKey(1, start.Add(domain.SlotQuantum)),
		domain.NewSlotKey(1, start.Add(2*domain.SlotQuantum)),
	}

	exec := &recordingExecutor{rowsAffected: 3}
	require.NoError(t, NewRepository(exec).Bind(context.Background(), 42, keys))
	assert.Contains(t, exec.calls[0].query, "UPDATE time_slots SET reservation_id = $1")
	assert.Contains(t, exec.calls[0].query, "(reservation_id IS NULL OR reservation_id = $")
	assert.Equal(t, int64(42), exec.calls[0].args[0])

	exec = &recordingExecutor{rowsAffected: 2}
	err := NewRepository(exec).Bind(context.Background(), 42, keys)
	assert.ErrorIs(t, err, ErrSlotsChanged)
}

func TestRelease(t *testing.T) {
	exec := &recordingExecutor{rowsAffected: 1}
	repo := NewRepository(exec)

	require.NoError(t, repo.Release(context.Background(), 7, []domain.SlotKey{domain.NewSlotKey(1, start)}))
	assert.Contains(t, exec.calls[0].query, "SET reservation_id = $1")
	assert.Nil(t, exec.calls[0].args[0])

	released, err := repo.ReleaseAll(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), released)
}

func TestRelease_NoKeysNoQuery(t *testing.T) {
	exec := &recordingExecutor{}
	require.NoError(t, NewRepository(exec).Release(context.Background(), 7, nil))
	assert.Empty(t, exec.calls)
}
