package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotReserved возвращается, когда удаляемый слот уже привязан к бронированию
	ErrSlotReserved = errors.New("slot.repository: slot is bound to a reservation")

	// ErrSlotsChanged возвращается, когда число затронутых строк не совпало с ожидаемым
	ErrSlotsChanged = errors.New("slot.repository: slots changed concurrently")

	// ErrCorruptedSlot возвращается для слота с длительностью, отличной от кванта
	ErrCorruptedSlot = errors.New("slot.repository: corrupted slot")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
