package domain

// Stop is a transit stop. Identity is Name; Geo is immutable once set at
// ingestion, Display starts equal to Geo and is mutated in place by layout
// straightening (§4.E phase 3), XY is the final schematic pixel position
// committed by layout phase 5.
type Stop struct {
	Name      string
	Geo       LatLon
	Display   LatLon
	XY        Point
	IsBase    bool
	Distances map[string]int // neighbor stop name -> road meters, asymmetric allowed
}
