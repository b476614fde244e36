package column

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/ticker/internal/renderer/core"
)

// Style is how a column draws itself. While a column animates its
// foreground fades from Highlight to Base.Foreground.
type Style struct {
	Base      core.Style
	Highlight core.Color
}

// DefaultStyle returns a bold default-colour style with no highlight.
func DefaultStyle() Style {
	return Style{
		Base:      core.DefaultStyle().Bold(),
		Highlight: core.ColorDefault,
	}
}

// At returns the cell style for an animation at progress.
func (st Style) At(progress float64, animating bool) core.Style {
	if !animating || st.Highlight.IsDefault() {
		return st.Base
	}
	fg := st.Base.Foreground
	if fg.IsDefault() || fg.Indexed || st.Highlight.Indexed {
		// Nothing to blend between; hold the highlight until settled.
		return st.Base.WithForeground(st.Highlight)
	}
	return st.Base.WithForeground(Blend(st.Highlight, fg, progress))
}

// Blend mixes two RGB colours in CIE L*a*b* space.
func Blend(from, to core.Color, t float64) core.Color {
	c := toColorful(from).BlendLab(toColorful(to), min(max(t, 0), 1)).Clamped()
	r, g, b := c.RGB255()
	return core.ColorFromRGB(r, g, b)
}

func toColorful(c core.Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}
