package utils

import "math"

const earthRadiusMeters = 6371000

// HaversineDistance returns the great-circle distance between two coordinates in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Site is the workplace employees check in at. A zero radius disables the check.
type Site struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

func (s Site) Enabled() bool {
	return s.RadiusMeters > 0
}

// Distance returns how far the coordinate is from the site and whether it lies within the radius.
func (s Site) Distance(lat, lon float64) (float64, bool) {
	d := HaversineDistance(s.Latitude, s.Longitude, lat, lon)
	if !s.Enabled() {
		return d, true
	}
	return d, d <= s.RadiusMeters
}
