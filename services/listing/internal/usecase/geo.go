package usecase

import "math"

const earthRadiusKm = 6371.0

// GreatCircleKm is the spherical law of cosines distance between two points.
// The acos argument is clamped so identical points yield 0 instead of NaN.
func GreatCircleKm(lat1, lng1, lat2, lng2 float64) float64 {
	if lat1 == lat2 && lng1 == lng2 {
		return 0
	}
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dLambda := radians(lng2) - radians(lng1)

	cosine := math.Cos(phi1)*math.Cos(phi2)*math.Cos(dLambda) + math.Sin(phi1)*math.Sin(phi2)
	cosine = math.Max(-1, math.Min(1, cosine))
	return earthRadiusKm * math.Acos(cosine)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

type bounds struct {
	minLat, maxLat float64
	minLng, maxLng float64
	// wrap is set when the longitude window cannot be expressed as a single
	// range (near a pole or across the antimeridian).
	wrap bool
}

func boundingBox(lat, lng, radiusKm float64) bounds {
	dLat := radiusKm / earthRadiusKm * 180 / math.Pi
	b := bounds{
		minLat: math.Max(-90, lat-dLat),
		maxLat: math.Min(90, lat+dLat),
	}
	if b.minLat <= -90 || b.maxLat >= 90 {
		b.wrap = true
		return b
	}

	// Widest longitude offset of a spherical cap, reached north or south of
	// the centre's parallel.
	sinLng := math.Sin(radiusKm/earthRadiusKm) / math.Cos(radians(lat))
	if sinLng >= 1 {
		b.wrap = true
		return b
	}
	dLng := math.Asin(sinLng) * 180 / math.Pi
	b.minLng = lng - dLng
	b.maxLng = lng + dLng
	if b.minLng < -180 || b.maxLng > 180 {
		b.wrap = true
	}
	return b
}
