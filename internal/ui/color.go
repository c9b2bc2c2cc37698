package ui

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// DarkLuminanceThreshold is the weighted brightness at or below which a
// colour counts as dark
const DarkLuminanceThreshold = 130

// ColorToRgba formats c as a CSS rgba() value with 8-bit channels
func ColorToRgba(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("rgba(%d, %d, %d, %d)", n.R, n.G, n.B, n.A)
}

// IsColorDark reports whether c is dark enough to need light text on top
func IsColorDark(c color.Color) bool {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return (30*int(n.R)+59*int(n.G)+11*int(n.B))/100 <= DarkLuminanceThreshold
}

// ParseHexColor parses "#rgb" or "#rrggbb" into an opaque colour
func ParseHexColor(s string) (color.NRGBA, error) {
	if len(s) != 4 && len(s) != 7 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// BlendColors mixes a towards b by t in CIE L*a*b* space, 0 <= t <= 1
func BlendColors(a, b color.Color, t float64) color.Color {
	ca, _ := colorful.MakeColor(opaque(a))
	cb, _ := colorful.MakeColor(opaque(b))
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: bl, A: 0xff}
}

// opaque drops the alpha channel; colorful rejects fully transparent input
func opaque(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0xff
	return n
}
