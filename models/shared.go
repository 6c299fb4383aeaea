package models

import "fmt"

// Direction identifies one travel leg of the shuttle round trip.
// Capacity and reservations are tracked independently per direction.
type Direction string

const (
	DirectionHotelToAirport Direction = "HOTEL_TO_AIRPORT"
	DirectionAirportToHotel Direction = "AIRPORT_TO_HOTEL"
)

// Directions lists both legs, in the order trips run them.
var Directions = []Direction{DirectionHotelToAirport, DirectionAirportToHotel}

// Opposite returns the other leg.
func (d Direction) Opposite() Direction {
	if d == DirectionHotelToAirport {
		return DirectionAirportToHotel
	}
	return DirectionHotelToAirport
}

func (d Direction) Valid() bool {
	return d == DirectionHotelToAirport || d == DirectionAirportToHotel
}

// ParseDirection validates a client-supplied direction string.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown direction %q", s)
	}
	return d, nil
}
