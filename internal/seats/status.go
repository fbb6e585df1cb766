package seats

import (
	"fmt"
	"strings"
)

// Status is the canonical seat inventory state. Transitions move along
// AVAILABLE -> LOCKED -> UNAVAILABLE, and only an explicit release
// (cancel/expire reconciliation) moves LOCKED or UNAVAILABLE back to
// AVAILABLE.
type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusLocked      Status = "LOCKED"
	StatusUnavailable Status = "UNAVAILABLE"
)

// ParseStatus validates a seat status at the boundary.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(s)) {
	case StatusAvailable:
		return StatusAvailable, nil
	case StatusLocked:
		return StatusLocked, nil
	case StatusUnavailable:
		return StatusUnavailable, nil
	default:
		return "", fmt.Errorf("invalid seat status: %q", s)
	}
}

func (s Status) IsValid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Class is the seat cabin class, validated once at the boundary.
type Class string

const (
	ClassEconomy  Class = "ECONOMY"
	ClassBusiness Class = "BUSINESS"
	ClassFirst    Class = "FIRST"
)

// ParseClass validates a seat class at the boundary.
func ParseClass(s string) (Class, error) {
	switch Class(strings.ToUpper(s)) {
	case ClassEconomy:
		return ClassEconomy, nil
	case ClassBusiness:
		return ClassBusiness, nil
	case ClassFirst:
		return ClassFirst, nil
	default:
		return "", fmt.Errorf("invalid seat class: %q", s)
	}
}
