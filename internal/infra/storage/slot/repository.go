package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScheduleService/pkg/psqlbuilder"
)

// Максимальное число строк в одном INSERT
const insertBatchSize = 500

var slotColumns = []string{
	"provider_id",
	"start_at",
	"duration_minutes",
	"reservation_id",
}

// Repository репозиторий сетки слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindInRange возвращает слоты поставщика в [from, until), отсортированные по началу
func (r *Repository) FindInRange(ctx context.Context, providerID int64, from, until time.Time) ([]domain.TimeSlot, error) {
	return r.find(ctx, "FindInRange", squirrel.And{
		squirrel.Eq{"provider_id": providerID},
		squirrel.GtOrEq{"start_at": from},
		squirrel.Lt{"start_at": until},
	})
}

// FindByProvider возвращает все слоты поставщика, отсортированные по началу
func (r *Repository) FindByProvider(ctx context.Context, providerID int64) ([]domain.TimeSlot, error) {
	return r.find(ctx, "FindByProvider", squirrel.Eq{"provider_id": providerID})
}

// FindFreeInRange возвращает только свободные слоты поставщика в [from, until)
func (r *Repository) FindFreeInRange(ctx context.Context, providerID int64, from, until time.Time) ([]domain.TimeSlot, error) {
	return r.find(ctx, "FindFreeInRange", squirrel.And{
		squirrel.Eq{"provider_id": providerID},
		squirrel.GtOrEq{"start_at": from},
		squirrel.Lt{"start_at": until},
		squirrel.Eq{"reservation_id": nil},
	})
}

// FindByReservation возвращает слоты, привязанные к бронированию
func (r *Repository) FindByReservation(ctx context.Context, reservationID int64) ([]domain.TimeSlot, error) {
	return r.find(ctx, "FindByReservation", squirrel.Eq{"reservation_id": reservationID})
}

// FindByKey точечный поиск слота
func (r *Repository) FindByKey(ctx context.Context, key domain.SlotKey) (*domain.TimeSlot, error) {
	slots, err := r.find(ctx, "FindByKey", squirrel.Eq{
		"provider_id": key.ProviderID,
		"start_at":    key.Start,
	})
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrSlotNotFound
	}
	return &slots[0], nil
}

// Insert вставляет свободные слоты пачками
func (r *Repository) Insert(ctx context.Context, slots []domain.TimeSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for start := 0; start < len(slots); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(slots) {
			end = len(slots)
		}

		builder := psqlbuilder.Insert("time_slots").
			Columns("provider_id", "start_at", "duration_minutes")

		for _, s := range slots[start:end] {
			if err := s.Validate(); err != nil {
				return fmt.Errorf("%w: Insert - %v", ErrCorruptedSlot, err)
			}
			builder = builder.Values(s.ProviderID, s.Start, int(s.Duration/time.Minute))
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Insert - execute insert: %v", ErrExecQuery, err)
		}
	}

	return nil
}

// Delete удаляет свободные слоты. Если хотя бы один слот оказался занят, возвращает ErrSlotReserved.
func (r *Repository) Delete(ctx context.Context, slots []domain.TimeSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for providerID, starts := range startsByProvider(slots) {
		query, args, err := psqlbuilder.Delete("time_slots").
			Where(squirrel.Eq{"provider_id": providerID}).
			Where(squirrel.Eq{"start_at": starts}).
			Where(squirrel.Eq{"reservation_id": nil}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
		}

		result, err := executor.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
		}

		if rowsAffected != int64(len(starts)) {
			return fmt.Errorf("%w: provider=%d deleted %d of %d", ErrSlotReserved, providerID, rowsAffected, len(starts))
		}
	}

	return nil
}

// Bind привязывает слоты к бронированию. Слоты должны быть свободны или уже принадлежать ему.
func (r *Repository) Bind(ctx context.Context, reservationID int64, keys []domain.SlotKey) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for providerID, starts := range startsByKey(keys) {
		query, args, err := psqlbuilder.Update("time_slots").
			Set("reservation_id", reservationID).
			Where(squirrel.Eq{"provider_id": providerID}).
			Where(squirrel.Eq{"start_at": starts}).
			Where(squirrel.Or{
				squirrel.Eq{"reservation_id": nil},
				squirrel.Eq{"reservation_id": reservationID},
			}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: Bind - build update query: %v", ErrBuildQuery, err)
		}

		result, err := executor.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: Bind - execute update: %v", ErrExecQuery, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: Bind - get rows affected: %v", ErrExecQuery, err)
		}

		if rowsAffected != int64(len(starts)) {
			return fmt.Errorf("%w: reservation=%d bound %d of %d", ErrSlotsChanged, reservationID, rowsAffected, len(starts))
		}
	}

	return nil
}

// Release освобождает указанные слоты бронирования
func (r *Repository) Release(ctx context.Context, reservationID int64, keys []domain.SlotKey) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for providerID, starts := range startsByKey(keys) {
		query, args, err := psqlbuilder.Update("time_slots").
			Set("reservation_id", nil).
			Where(squirrel.Eq{"provider_id": providerID}).
			Where(squirrel.Eq{"start_at": starts}).
			Where(squirrel.Eq{"reservation_id": reservationID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
		}
	}

	return nil
}

// ReleaseAll освобождает все слоты бронирования
func (r *Repository) ReleaseAll(ctx context.Context, reservationID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("reservation_id", nil).
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseAll - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseAll - execute update: %v", ErrExecQuery, err)
	}

	released, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseAll - get rows affected: %v", ErrExecQuery, err)
	}

	return released, nil
}

func (r *Repository) find(ctx context.Context, op string, where squirrel.Sqlizer) ([]domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(where).
		OrderBy("provider_id ASC", "start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	slots, err := scanSlots(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return slots, nil
}

// scanSlots сканирует строки и проверяет инвариант кванта
func scanSlots(rows *sql.Rows) ([]domain.TimeSlot, error) {
	slots := make([]domain.TimeSlot, 0)

	for rows.Next() {
		var (
			s               domain.TimeSlot
			durationMinutes int
			reservationID   sql.NullInt64
		)

		if err := rows.Scan(&s.ProviderID, &s.Start, &durationMinutes, &reservationID); err != nil {
			return nil, fmt.Errorf("%w: scan row: %v", ErrScanRow, err)
		}

		s.Duration = time.Duration(durationMinutes) * time.Minute
		if reservationID.Valid {
			id := reservationID.Int64
			s.ReservationID = &id
		}

		if err := s.Validate(); err != nil {
			return nil, errors.Join(ErrCorruptedSlot, err)
		}

		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

func startsByProvider(slots []domain.TimeSlot) map[int64][]time.Time {
	grouped := make(map[int64][]time.Time)
	for _, s := range slots {
		grouped[s.ProviderID] = append(grouped[s.ProviderID], s.Start)
	}
	return grouped
}

func startsByKey(keys []domain.SlotKey) map[int64][]time.Time {
	grouped := make(map[int64][]time.Time)
	for _, k := range keys {
		grouped[k.ProviderID] = append(grouped[k.ProviderID], k.Start)
	}
	return grouped
}
