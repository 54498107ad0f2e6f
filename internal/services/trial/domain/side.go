package domain

import "strings"

// Side identifies one of the two adversarial parties.
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// Sides lists both parties in presentation order.
var Sides = [2]Side{SideA, SideB}

// ParseSide normalizes user input such as "a", "B", or "SIDE_A".
func ParseSide(value string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "A", "SIDE_A":
		return SideA, nil
	case "B", "SIDE_B":
		return SideB, nil
	default:
		return "", ErrInvalidSide
	}
}

// Valid reports whether s is A or B.
func (s Side) Valid() bool {
	return s == SideA || s == SideB
}

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}
