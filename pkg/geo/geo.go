package geo

import "math"

const EarthRadiusKM = 6371.0

// DistanceKM returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func DistanceKM(lat1, lng1, lat2, lng2 float64) float64 {
	cosAngle := math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Cos(radians(lng2)-radians(lng1)) +
		math.Sin(radians(lat1))*math.Sin(radians(lat2))

	// Rounding can push the cosine fractionally outside [-1, 1] for
	// coincident or near-antipodal points, which would make Acos return NaN.
	cosAngle = math.Max(-1, math.Min(1, cosAngle))

	return EarthRadiusKM * math.Acos(cosAngle)
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
