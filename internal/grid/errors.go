package grid

import "errors"

var (
	// ErrInvalidSchedule возвращается при попытке изменить слоты с активным бронированием
	ErrInvalidSchedule = errors.New("grid: editing time slots with an active reservation is not allowed")

	// ErrNoAvailableTimeSlots возвращается, когда в запрошенном интервале нет слота
	ErrNoAvailableTimeSlots = errors.New("grid: no available time slots")

	// ErrTimeSlotsAlreadyReserved возвращается, когда слот занят другим бронированием
	ErrTimeSlotsAlreadyReserved = errors.New("grid: time slots already reserved")

	// ErrConfiguration возвращается, если длительность услуги не кратна кванту
	ErrConfiguration = errors.New("grid: duration is not a positive multiple of the slot quantum")

	// ErrInvalidWindow возвращается для окна доступности с некорректным началом
	ErrInvalidWindow = errors.New("grid: invalid availability window")
)
