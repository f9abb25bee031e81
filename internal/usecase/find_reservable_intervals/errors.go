package find_reservable_intervals

import "errors"

var (
	// ErrProviderNotFound возвращается, когда поставщик не найден
	ErrProviderNotFound = errors.New("find_reservable_intervals: provider not found")

	// ErrUnknownServiceKind возвращается для неизвестного вида услуги
	ErrUnknownServiceKind = errors.New("find_reservable_intervals: unknown service kind")

	// ErrConfiguration возвращается, если длительность услуги не кратна кванту слота
	ErrConfiguration = errors.New("find_reservable_intervals: service duration is not a multiple of the slot quantum")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("find_reservable_intervals: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("find_reservable_intervals: internal error")
)
