// Package request implements the "external" request parser contract:
// decoding the wire JSON documents into the structures the core
// components consume. Responses are built by internal/query and encoded
// by the process_requests command, not here. The wire grammar itself (encoding/json struct tags) is
// the idiomatic-Go equivalent of the original's custom JSON parser,
// which spec.md names as out of scope.
package request

import (
	"encoding/json"
	"fmt"
	"io"

	"transitcatalog/internal/catalog"
	"transitcatalog/internal/domain"
	"transitcatalog/internal/engineerr"
	"transitcatalog/internal/yellowpages"
)

// MakeBaseInput is the top-level document make_base reads.
type MakeBaseInput struct {
	RoutingSettings      domain.RouterSettings
	RenderSettings       domain.RenderSettings
	Stops                []catalog.StopInput
	Buses                []catalog.BusInput
	SerializationFile    string
	YellowPages          yellowpages.Directory
}

type routingSettingsWire struct {
	BusWaitTime        int     `json:"bus_wait_time"`
	BusVelocity        float64 `json:"bus_velocity"`
	PedestrianVelocity float64 `json:"pedestrian_velocity"`
}

func (w routingSettingsWire) toSettings() domain.RouterSettings {
	return domain.RouterSettings{
		BusWaitTime:        w.BusWaitTime,
		BusVelocity:        w.BusVelocity * 1000 / 60,
		PedestrianVelocity: w.PedestrianVelocity * 1000 / 60,
	}
}

type renderSettingsWire struct {
	Width             float64   `json:"width"`
	Height            float64   `json:"height"`
	Padding           float64   `json:"padding"`
	StopRadius        float64   `json:"stop_radius"`
	LineWidth         float64   `json:"line_width"`
	StopLabelFontSize int       `json:"stop_label_font_size"`
	StopLabelOffset   pointWire `json:"stop_label_offset"`
	UnderlayerColor   colorWire `json:"underlayer_color"`
	UnderlayerWidth   float64   `json:"underlayer_width"`
	ColorPalette      []colorWire `json:"color_palette"`
	BusLabelFontSize  int       `json:"bus_label_font_size"`
	BusLabelOffset    pointWire `json:"bus_label_offset"`
	Layers            []string  `json:"layers"`
	OuterMargin       float64   `json:"outer_margin"`
	CompanyRadius     float64   `json:"company_radius"`
	CompanyLineWidth  float64   `json:"company_line_width"`
}

func (w renderSettingsWire) toSettings() domain.RenderSettings {
	palette := make([]domain.Color, len(w.ColorPalette))
	for i, c := range w.ColorPalette {
		palette[i] = c.Color
	}
	layers := make([]domain.Layer, len(w.Layers))
	for i, l := range w.Layers {
		layers[i] = domain.Layer(l)
	}
	return domain.RenderSettings{
		Width:             w.Width,
		Height:            w.Height,
		Padding:           w.Padding,
		StopRadius:        w.StopRadius,
		LineWidth:         w.LineWidth,
		StopLabelFontSize: w.StopLabelFontSize,
		StopLabelOffset:   w.StopLabelOffset.toPoint(),
		UnderlayerColor:   w.UnderlayerColor.Color,
		UnderlayerWidth:   w.UnderlayerWidth,
		ColorPalette:      palette,
		BusLabelFontSize:  w.BusLabelFontSize,
		BusLabelOffset:    w.BusLabelOffset.toPoint(),
		Layers:            layers,
		OuterMargin:       w.OuterMargin,
		CompanyRadius:     w.CompanyRadius,
		CompanyLineWidth:  w.CompanyLineWidth,
	}
}

type baseRequestWire struct {
	Type string `json:"type"`

	// Bus fields
	Name        string   `json:"name"`
	Stops       []string `json:"stops"`
	IsRoundtrip *bool    `json:"is_roundtrip"`

	// Stop fields
	Latitude      float64        `json:"latitude"`
	Longitude     float64        `json:"longitude"`
	RoadDistances map[string]int `json:"road_distances"`
}

type serializationSettingsWire struct {
	File string `json:"file"`
}

type makeBaseDocWire struct {
	RoutingSettings      routingSettingsWire       `json:"routing_settings"`
	RenderSettings       renderSettingsWire        `json:"render_settings"`
	BaseRequests         []baseRequestWire         `json:"base_requests"`
	SerializationSettings serializationSettingsWire `json:"serialization_settings"`
	YellowPages          yellowPagesWire           `json:"yellow_pages"`
}

// ParseMakeBase decodes a make_base input document from r.
func ParseMakeBase(r io.Reader) (MakeBaseInput, error) {
	var doc makeBaseDocWire
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return MakeBaseInput{}, engineerr.NewParseError("make_base document", err)
	}

	var stops []catalog.StopInput
	var buses []catalog.BusInput
	for _, br := range doc.BaseRequests {
		switch br.Type {
		case "Bus":
			if br.IsRoundtrip == nil {
				return MakeBaseInput{}, engineerr.NewParseError("base_requests[].is_roundtrip", fmt.Errorf("missing"))
			}
			kind := domain.RouteTwoWay
			if *br.IsRoundtrip {
				kind = domain.RouteRound
			}
			buses = append(buses, catalog.BusInput{Name: br.Name, Stops: br.Stops, Kind: kind})
		case "Stop":
			dist := br.RoadDistances
			if dist == nil {
				dist = map[string]int{}
			}
			stops = append(stops, catalog.StopInput{Name: br.Name, Lat: br.Latitude, Lon: br.Longitude, Distances: dist})
		default:
			return MakeBaseInput{}, engineerr.NewParseError("base_requests[].type", fmt.Errorf("unknown base request type %q", br.Type))
		}
	}

	dir, err := doc.YellowPages.toDirectory()
	if err != nil {
		return MakeBaseInput{}, err
	}

	return MakeBaseInput{
		RoutingSettings:   doc.RoutingSettings.toSettings(),
		RenderSettings:    doc.RenderSettings.toSettings(),
		Stops:             stops,
		Buses:             buses,
		SerializationFile: doc.SerializationSettings.File,
		YellowPages:       dir,
	}, nil
}
