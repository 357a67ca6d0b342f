// Package svg implements the low-level SVG primitives the renderer draws
// with: Circle, Polyline, Rectangle, Text, and the Document that wraps
// them. The output grammar (attribute order, trailing space after each
// polyline point, the literal XML prologue) follows the original's
// Svg::Object family byte for byte, since the renderer's output is
// directly embedded in query responses and compared by callers.
package svg

import (
	"fmt"
	"strings"

	"transitcatalog/internal/domain"
)

type Point struct {
	X, Y float64
}

// commonOptions holds the fill/stroke attributes shared by every shape.
type commonOptions struct {
	Fill        domain.Color
	Stroke      domain.Color
	StrokeWidth float64
	LineCap     string
	LineJoin    string
	hasCap      bool
	hasJoin     bool
}

func newCommon() commonOptions {
	return commonOptions{StrokeWidth: 1.0}
}

func (o commonOptions) render(sb *strings.Builder) {
	fmt.Fprintf(sb, `fill="%s" stroke="%s" stroke-width="%v" `, o.Fill.String(), o.Stroke.String(), o.StrokeWidth)
	if o.hasCap {
		fmt.Fprintf(sb, `stroke-linecap="%s" `, o.LineCap)
	}
	if o.hasJoin {
		fmt.Fprintf(sb, `stroke-linejoin="%s" `, o.LineJoin)
	}
}

// Circle is an SVG <circle>.
type Circle struct {
	common commonOptions
	Center Point
	Radius float64
}

func NewCircle() *Circle { return &Circle{common: newCommon(), Radius: 1} }

func (c *Circle) SetCenter(p Point) *Circle          { c.Center = p; return c }
func (c *Circle) SetRadius(r float64) *Circle        { c.Radius = r; return c }
func (c *Circle) SetFillColor(col domain.Color) *Circle   { c.common.Fill = col; return c }
func (c *Circle) SetStrokeColor(col domain.Color) *Circle { c.common.Stroke = col; return c }
func (c *Circle) SetStrokeWidth(w float64) *Circle   { c.common.StrokeWidth = w; return c }

func (c *Circle) Render(sb *strings.Builder) {
	fmt.Fprintf(sb, `<circle cx="%v" cy="%v" r="%v" `, c.Center.X, c.Center.Y, c.Radius)
	c.common.render(sb)
	sb.WriteString("/>")
}

// Polyline is an SVG <polyline>.
type Polyline struct {
	common commonOptions
	Points []Point
}

func NewPolyline() *Polyline { return &Polyline{common: newCommon()} }

func (p *Polyline) AddPoint(pt Point) *Polyline { p.Points = append(p.Points, pt); return p }
func (p *Polyline) SetStrokeColor(col domain.Color) *Polyline { p.common.Stroke = col; return p }
func (p *Polyline) SetFillColor(col domain.Color) *Polyline   { p.common.Fill = col; return p }
func (p *Polyline) SetStrokeWidth(w float64) *Polyline   { p.common.StrokeWidth = w; return p }
func (p *Polyline) SetStrokeLineCap(v string) *Polyline  { p.common.LineCap = v; p.common.hasCap = true; return p }
func (p *Polyline) SetStrokeLineJoin(v string) *Polyline { p.common.LineJoin = v; p.common.hasJoin = true; return p }

func (p *Polyline) Render(sb *strings.Builder) {
	sb.WriteString(`<polyline points="`)
	for _, pt := range p.Points {
		fmt.Fprintf(sb, "%v,%v ", pt.X, pt.Y)
	}
	sb.WriteString(`" `)
	p.common.render(sb)
	sb.WriteString("/>")
}

// Rectangle is an SVG <rect>.
type Rectangle struct {
	common                commonOptions
	X, Y, Width, Height float64
}

func NewRectangle() *Rectangle { return &Rectangle{common: newCommon()} }

func (r *Rectangle) SetPoint(p Point) *Rectangle        { r.X, r.Y = p.X, p.Y; return r }
func (r *Rectangle) SetWidth(w float64) *Rectangle      { r.Width = w; return r }
func (r *Rectangle) SetHeight(h float64) *Rectangle     { r.Height = h; return r }
func (r *Rectangle) SetFillColor(col domain.Color) *Rectangle { r.common.Fill = col; return r }

func (r *Rectangle) Render(sb *strings.Builder) {
	fmt.Fprintf(sb, `<rect x="%v" y="%v" width="%v" height="%v" `, r.X, r.Y, r.Width, r.Height)
	r.common.render(sb)
	sb.WriteString("/>")
}

// Text is an SVG <text>.
type Text struct {
	common                commonOptions
	Point                 Point
	Offset                Point
	FontSize              int
	FontFamily            string
	hasFamily             bool
	FontWeight            string
	hasWeight             bool
	Data                  string
}

func NewText() *Text { return &Text{common: newCommon(), FontSize: 1} }

func (t *Text) SetPoint(p Point) *Text      { t.Point = p; return t }
func (t *Text) SetOffset(p Point) *Text     { t.Offset = p; return t }
func (t *Text) SetFontSize(s int) *Text     { t.FontSize = s; return t }
func (t *Text) SetFontFamily(f string) *Text { t.FontFamily = f; t.hasFamily = true; return t }
func (t *Text) SetFontWeight(w string) *Text { t.FontWeight = w; t.hasWeight = true; return t }
func (t *Text) SetData(d string) *Text      { t.Data = d; return t }
func (t *Text) SetFillColor(col domain.Color) *Text   { t.common.Fill = col; return t }
func (t *Text) SetStrokeColor(col domain.Color) *Text { t.common.Stroke = col; return t }
func (t *Text) SetStrokeWidth(w float64) *Text   { t.common.StrokeWidth = w; return t }
func (t *Text) SetStrokeLineCap(v string) *Text  { t.common.LineCap = v; t.common.hasCap = true; return t }
func (t *Text) SetStrokeLineJoin(v string) *Text { t.common.LineJoin = v; t.common.hasJoin = true; return t }

func (t *Text) Render(sb *strings.Builder) {
	fmt.Fprintf(sb, `<text x="%v" y="%v" dx="%v" dy="%v" font-size="%d" `,
		t.Point.X, t.Point.Y, t.Offset.X, t.Offset.Y, t.FontSize)
	if t.hasFamily {
		fmt.Fprintf(sb, `font-family="%s" `, t.FontFamily)
	}
	if t.hasWeight {
		fmt.Fprintf(sb, `font-weight="%s" `, t.FontWeight)
	}
	t.common.render(sb)
	sb.WriteString(">")
	sb.WriteString(t.Data)
	sb.WriteString("</text>")
}

// Object is anything that can render itself into the document body.
type Object interface {
	Render(sb *strings.Builder)
}

// Document is an ordered collection of objects rendered inside the SVG
// root element.
type Document struct {
	objects []Object
}

func (d *Document) Add(o Object) { d.objects = append(d.objects, o) }

// Clone returns a shallow copy of the object list, suitable for a route
// overlay to build on top of the memoized base map without mutating it.
func (d *Document) Clone() *Document {
	c := &Document{objects: make([]Object, len(d.objects))}
	copy(c.objects, d.objects)
	return c
}

func (d *Document) Render() string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" ?>`)
	sb.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" version="1.1">`)
	for _, o := range d.objects {
		o.Render(&sb)
	}
	sb.WriteString("</svg>")
	return sb.String()
}
