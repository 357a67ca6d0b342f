package domain

// RouteKind distinguishes how a bus's listed stop sequence is traversed.
type RouteKind int

const (
	// RouteRound: first stop equals last; the listed order is the whole
	// traversal.
	RouteRound RouteKind = iota
	// RouteTwoWay: stops are listed in one direction only, traversed
	// there and back.
	RouteTwoWay
)

// Bus is a named route. StopCount/UniqueStopCount/GeoLength/RoadLength/
// Curvature/ColorID are derived during catalog construction (component B)
// and frozen from then on.
type Bus struct {
	Name  string
	Stops []string
	Kind  RouteKind

	StopCount       int
	UniqueStopCount int
	GeoLength       float64
	RoadLength      int
	Curvature       float64
	ColorID         int
}
