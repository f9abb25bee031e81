package durations

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ErrUnknownServiceKind возвращается, если для вида услуги не задана длительность
var ErrUnknownServiceKind = errors.New("durations: no duration configured for service kind")

// Service сопоставляет вид услуги и её длительность
type Service struct{}

// NewService создает сервис длительностей
func NewService() *Service {
	return &Service{}
}

// Duration возвращает длительность услуги
func (s *Service) Duration(kind domain.ServiceKind) (time.Duration, error) {
	switch kind {
	case domain.ServiceTiresChange, domain.ServiceTireChangePlusStorage:
		return 30 * time.Minute, nil
	case domain.ServiceWheelBalancing, domain.ServiceTireRepair:
		return 60 * time.Minute, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownServiceKind, kind)
	}
}
