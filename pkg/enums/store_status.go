package enums

import "fmt"

// StoreStatus marks whether a store tenant is operational.
type StoreStatus string

const (
	StoreStatusActive   StoreStatus = "active"
	StoreStatusInactive StoreStatus = "inactive"
)

// String implements fmt.Stringer.
func (s StoreStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StoreStatus.
func (s StoreStatus) IsValid() bool {
	return s == StoreStatusActive || s == StoreStatusInactive
}

// ParseStoreStatus converts raw input into a StoreStatus.
func ParseStoreStatus(value string) (StoreStatus, error) {
	switch StoreStatus(value) {
	case StoreStatusActive:
		return StoreStatusActive, nil
	case StoreStatusInactive:
		return StoreStatusInactive, nil
	}
	return "", fmt.Errorf("invalid store status %q", value)
}
