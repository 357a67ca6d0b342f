package domain

import "fmt"

// Color is the closed set of ways a color can be expressed on the wire:
// a bare string ("red"), an [r,g,b] triple, or an [r,g,b,a] quadruple.
// Exactly one of the three is set; IsSet reports whether any is. All
// fields are exported so the codec bridge's gob encoding round-trips it
// without a custom GobEncode/GobDecode pair.
type Color struct {
	Set     bool
	Name    string
	RGB     [3]int
	Alpha   float64
	HasRGB  bool
	HasRGBA bool
}

func NewNamedColor(name string) Color {
	return Color{Set: true, Name: name}
}

func NewRGBColor(r, g, b int) Color {
	return Color{Set: true, HasRGB: true, RGB: [3]int{r, g, b}}
}

func NewRGBAColor(r, g, b int, a float64) Color {
	return Color{Set: true, HasRGBA: true, RGB: [3]int{r, g, b}, Alpha: a}
}

// String renders the color the way Svg::Color::AsString does: "none" when
// unset, "rgb(r,g,b)" / "rgba(r,g,b,a)" for the structured forms, else the
// bare name verbatim.
func (c Color) String() string {
	switch {
	case !c.Set:
		return "none"
	case c.HasRGBA:
		return fmt.Sprintf("rgba(%d,%d,%d,%v)", c.RGB[0], c.RGB[1], c.RGB[2], c.Alpha)
	case c.HasRGB:
		return fmt.Sprintf("rgb(%d,%d,%d)", c.RGB[0], c.RGB[1], c.RGB[2])
	default:
		return c.Name
	}
}

func (c Color) IsSet() bool { return c.Set }
