package bookings

import (
	"fmt"
	"strings"
)

// PassengerType is validated once at the request boundary.
type PassengerType string

const (
	PassengerAdult  PassengerType = "ADULT"
	PassengerChild  PassengerType = "CHILD"
	PassengerInfant PassengerType = "INFANT"
)

func ParsePassengerType(s string) (PassengerType, error) {
	switch PassengerType(strings.ToUpper(s)) {
	case PassengerAdult:
		return PassengerAdult, nil
	case PassengerChild:
		return PassengerChild, nil
	case PassengerInfant:
		return PassengerInfant, nil
	default:
		return "", fmt.Errorf("invalid passenger type: %q", s)
	}
}
