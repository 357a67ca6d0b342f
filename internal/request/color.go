package request

import (
	"encoding/json"
	"fmt"

	"transitcatalog/internal/engineerr"

	"transitcatalog/internal/domain"
)

// colorWire decodes the three wire shapes a color can take: a bare
// string, an [r,g,b] array, or an [r,g,b,a] array.
type colorWire struct {
	domain.Color
}

func (c *colorWire) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		c.Color = domain.NewNamedColor(name)
		return nil
	}

	var nums []float64
	if err := json.Unmarshal(data, &nums); err != nil {
		return engineerr.NewParseError("color", err)
	}
	switch len(nums) {
	case 3:
		c.Color = domain.NewRGBColor(int(nums[0]), int(nums[1]), int(nums[2]))
	case 4:
		c.Color = domain.NewRGBAColor(int(nums[0]), int(nums[1]), int(nums[2]), nums[3])
	default:
		return engineerr.NewParseError("color", fmt.Errorf("expected 3 or 4 numbers, got %d", len(nums)))
	}
	return nil
}

// pointWire decodes a [x,y] pair into a domain.Point.
type pointWire [2]float64

func (p pointWire) toPoint() domain.Point { return domain.Point{X: p[0], Y: p[1]} }
