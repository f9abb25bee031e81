package apply_schedule

import "errors"

var (
	// ErrProviderNotFound возвращается, когда поставщик не найден
	ErrProviderNotFound = errors.New("apply_schedule: provider not found")

	// ErrInvalidSchedule возвращается при попытке изменить слоты с активным бронированием
	ErrInvalidSchedule = errors.New("apply_schedule: editing time slots with an active reservation is not allowed")

	// ErrScheduleAlreadyExists возвращается в режиме создания, если на дату уже есть слоты
	ErrScheduleAlreadyExists = errors.New("apply_schedule: schedule already exists for the date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("apply_schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("apply_schedule: internal error")
)
