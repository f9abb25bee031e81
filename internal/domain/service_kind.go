package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownServiceKind is returned for a service kind outside the closed set.
var ErrUnknownServiceKind = errors.New("domain: unknown service kind")

// ServiceKind is the type of service a customer books.
type ServiceKind string

const (
	ServiceTiresChange           ServiceKind = "TIRES_CHANGE"
	ServiceTireChangePlusStorage ServiceKind = "TIRE_CHANGE_PLUS_STORAGE"
	ServiceWheelBalancing        ServiceKind = "WHEEL_BALANCING"
	ServiceTireRepair            ServiceKind = "TIRE_REPAIR"
)

// AllServiceKinds lists every supported service kind.
var AllServiceKinds = []ServiceKind{
	ServiceTiresChange,
	ServiceTireChangePlusStorage,
	ServiceWheelBalancing,
	ServiceTireRepair,
}

// ParseServiceKind validates s against the closed set.
func ParseServiceKind(s string) (ServiceKind, error) {
	for _, k := range AllServiceKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownServiceKind, s)
}

func (k ServiceKind) String() string {
	return string(k)
}
