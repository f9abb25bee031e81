package reservation

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

var reservationColumns = []string{
	"id",
	"provider_id",
	"start_at",
	"duration_minutes",
	"service_kind",
	"customer_name",
	"customer_address",
	"customer_email",
	"customer_phone",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование. Слоты привязываются отдельно через репозиторий слотов.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"provider_id",
			"start_at",
			"duration_minutes",
			"service_kind",
			"customer_name",
			"customer_address",
			"customer_email",
			"customer_phone",
		).
		Values(
			res.ProviderID,
			res.Start,
			int(res.Duration/time.Minute),
			string(res.ServiceKind),
			res.Customer.Name,
			res.Customer.Address,
			res.Customer.Email,
			res.Customer.PhoneNumber,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return res, nil
}

// GetByID получает бронирование вместе с ключами его слотов
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	keys, err := r.slotKeys(ctx, id)
	if err != nil {
		return nil, err
	}
	res.Slots = keys

	return res, nil
}

// GetByIDs получает бронирования по списку ID (без ключей слотов)
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Reservation, error) {
	if len(ids) == 0 {
		return []*domain.Reservation{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0, len(ids))
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// Update перезаписывает время, услугу и данные клиента
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("start_at", res.Start).
		Set("duration_minutes", int(res.Duration/time.Minute)).
		Set("service_kind", string(res.ServiceKind)).
		Set("customer_name", res.Customer.Name).
		Set("customer_address", res.Customer.Address).
		Set("customer_email", res.Customer.Email).
		Set("customer_phone", res.Customer.PhoneNumber).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.CreatedAt, &res.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return res, nil
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
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

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func (r *Repository) slotKeys(ctx context.Context, reservationID int64) ([]domain.SlotKey, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("provider_id", "start_at").
		From("time_slots").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: slotKeys - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: slotKeys - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	keys := make([]domain.SlotKey, 0)
	for rows.Next() {
		var (
			providerID int64
			start      time.Time
		)
		if err := rows.Scan(&providerID, &start); err != nil {
			return nil, fmt.Errorf("%w: slotKeys - scan row: %v", ErrScanRow, err)
		}
		keys = append(keys, domain.NewSlotKey(providerID, start))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: slotKeys - rows error: %v", ErrScanRow, err)
	}

	return keys, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res             domain.Reservation
		durationMinutes int
		serviceKind     string
	)

	err := row.Scan(
		&res.ID,
		&res.ProviderID,
		&res.Start,
		&durationMinutes,
		&serviceKind,
		&res.Customer.Name,
		&res.Customer.Address,
		&res.Customer.Email,
		&res.Customer.PhoneNumber,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Duration = time.Duration(durationMinutes) * time.Minute
	res.ServiceKind = domain.ServiceKind(serviceKind)

	return &res, nil
}
