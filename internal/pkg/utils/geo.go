package utils

import "math"

// EarthRadiusKm - радиус Земли в километрах, используется для перевода расстояния в радианы
const EarthRadiusKm = 6371.0

// DistanceToRadians переводит расстояние в километрах в угловой радиус сферической шапки
func DistanceToRadians(distanceKm float64) float64 {
	return distanceKm / EarthRadiusKm
}

// CentralAngle вычисляет центральный угол (в радианах) между двумя точками по формуле гаверсинусов
func CentralAngle(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// HaversineDistance вычисляет расстояние между двумя точками в километрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	return EarthRadiusKm * CentralAngle(lat1, lon1, lat2, lon2)
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
