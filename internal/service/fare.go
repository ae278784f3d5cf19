package service

import "math"

const (
	baseFare  = 2.00
	perKmRate = 1.50
)

// CalculateFare maps trip distance in kilometers to a fare, rounded to two
// decimal places. Pure function; callers validate that distance is
// non-negative.
func CalculateFare(distanceKm float64) float64 {
	fare := baseFare + perKmRate*distanceKm
	return math.Round(fare*100) / 100
}
