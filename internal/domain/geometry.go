package domain

// LatLon is a geographic coordinate pair in degrees.
type LatLon struct {
	Lat float64
	Lon float64
}

// Point is a final schematic position in map pixels.
type Point struct {
	X float64
	Y float64
}
