package domain

// RouterSettings carries the constants the routing graph is built with.
// BusVelocity and PedestrianVelocity are already converted to meters per
// minute (the wire value arrives in KpH and is scaled by 1000/60 during
// parsing — see internal/request).
type RouterSettings struct {
	BusWaitTime        int
	BusVelocity        float64
	PedestrianVelocity float64
}

// Layer is one entry of RenderSettings.Layers, the fixed, closed set of
// drawable layers (§4.F).
type Layer string

const (
	LayerBusLines     Layer = "bus_lines"
	LayerBusLabels    Layer = "bus_labels"
	LayerStopPoints   Layer = "stop_points"
	LayerStopLabels   Layer = "stop_labels"
	LayerCompanyLines Layer = "company_lines"
	LayerCompanyPoints Layer = "company_points"
	LayerCompanyLabels Layer = "company_labels"
)

// RenderSettings parameterizes the SVG renderer (component F) and the map
// layout's bounding box (component E).
type RenderSettings struct {
	Width, Height      float64
	Padding            float64
	StopRadius         float64
	LineWidth          float64
	StopLabelFontSize  int
	StopLabelOffset    Point
	UnderlayerColor    Color
	UnderlayerWidth    float64
	ColorPalette       []Color
	BusLabelFontSize   int
	BusLabelOffset     Point
	Layers             []Layer
	OuterMargin        float64
	CompanyRadius      float64
	CompanyLineWidth   float64

	// MinLon/MaxLat/Zoom are computed by layout phase 1 and retained for
	// coordinate projection in phase 4 and by any later re-render.
	MinLon float64
	MaxLat float64
	Zoom   float64
}
