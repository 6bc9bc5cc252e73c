// Package models provides domain models for the trading journal.
package models

// Direction represents the side of a closed trade.
type Direction string

const (
	DirectionLong  Direction = "Long"
	DirectionShort Direction = "Short"
)

// Valid reports whether the direction is one of the known values.
func (d Direction) Valid() bool {
	return d == DirectionLong || d == DirectionShort
}

// Sign returns +1 for Long and -1 for Short.
func (d Direction) Sign() float64 {
	if d == DirectionShort {
		return -1
	}
	return 1
}
