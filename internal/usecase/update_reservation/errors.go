package update_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrUnknownServiceKind возвращается для неизвестного вида услуги
	ErrUnknownServiceKind = errors.New("update_reservation: unknown service kind")

	// ErrNoAvailableTimeSlots возвращается, если в запрошенном интервале нет слота
	ErrNoAvailableTimeSlots = errors.New("update_reservation: no available time slots")

	// ErrTimeSlotsAlreadyReserved возвращается, если слот занят другим бронированием
	ErrTimeSlotsAlreadyReserved = errors.New("update_reservation: time slots already reserved")

	// ErrConfiguration возвращается, если длительность услуги не кратна кванту слота
	ErrConfiguration = errors.New("update_reservation: service duration is not a multiple of the slot quantum")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
