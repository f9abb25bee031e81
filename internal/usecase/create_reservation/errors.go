package create_reservation

import "errors"

var (
	// ErrProviderNotFound возвращается, когда поставщик не найден
	ErrProviderNotFound = errors.New("create_reservation: provider not found")

	// ErrUnknownServiceKind возвращается для неизвестного вида услуги
	ErrUnknownServiceKind = errors.New("create_reservation: unknown service kind")

	// ErrNoAvailableTimeSlots возвращается, если в запрошенном интервале нет слота
	ErrNoAvailableTimeSlots = errors.New("create_reservation: no available time slots")

	// ErrTimeSlotsAlreadyReserved возвращается, если слот занят другим бронированием
	ErrTimeSlotsAlreadyReserved = errors.New("create_reservation: time slots already reserved")

	// ErrConfiguration возвращается, если длительность услуги не кратна кванту слота
	ErrConfiguration = errors.New("create_reservation: service duration is not a multiple of the slot quantum")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
