package render

import (
	"fmt"
	"image/color"
	"io"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"
	"gonum.org/v1/gonum/spatial/r2"
)

// Surface is the drawing target of the frame renderer. Begin starts a
// fresh frame, Flush finishes it, Release frees the surface; after
// Release no further frames may be drawn.
type Surface interface {
	Begin(width, height int, bg color.RGBA)
	FillCircle(p r2.Vec, radius float64, c color.RGBA)
	StrokeCircle(p r2.Vec, radius, lineWidth float64, c color.RGBA)
	StrokeCubic(p0, c1, c2, p1 r2.Vec, lineWidth float64, c color.RGBA)
	Label(text string, p r2.Vec, scale float64, c color.RGBA)
	Flush() error
	Release() error
}

// Raster renders frames onto a gg context; the most recent frame can be
// saved as PNG.
type Raster struct {
	dc       *gg.Context
	released bool
}

// NewRaster returns an empty raster surface.
func NewRaster() *Raster { return &Raster{} }

func (r *Raster) Begin(width, height int, bg color.RGBA) {
	if r.released {
		return
	}
	if r.dc == nil || r.dc.Width() != width || r.dc.Height() != height {
		r.dc = gg.NewContext(width, height)
		r.dc.SetFontFace(basicfont.Face7x13)
	}
	r.dc.SetColor(bg)
	r.dc.Clear()
}

func (r *Raster) FillCircle(p r2.Vec, radius float64, c color.RGBA) {
	if r.dc == nil {
		return
	}
	r.dc.SetColor(c)
	r.dc.DrawCircle(p.X, p.Y, radius)
	r.dc.Fill()
}

func (r *Raster) StrokeCircle(p r2.Vec, radius, lineWidth float64, c color.RGBA) {
	if r.dc == nil {
		return
	}
	r.dc.SetColor(c)
	r.dc.SetLineWidth(lineWidth)
	r.dc.DrawCircle(p.X, p.Y, radius)
	r.dc.Stroke()
}

func (r *Raster) StrokeCubic(p0, c1, c2, p1 r2.Vec, lineWidth float64, c color.RGBA) {
	if r.dc == nil {
		return
	}
	r.dc.SetColor(c)
	r.dc.SetLineWidth(lineWidth)
	r.dc.MoveTo(p0.X, p0.Y)
	r.dc.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p1.X, p1.Y)
	r.dc.Stroke()
}

func (r *Raster) Label(text string, p r2.Vec, scale float64, c color.RGBA) {
	if r.dc == nil || text == "" {
		return
	}
	r.dc.SetColor(c)
	if scale != 1 {
		r.dc.Push()
		r.dc.ScaleAbout(scale, scale, p.X, p.Y)
		r.dc.DrawStringAnchored(text, p.X, p.Y, 0.5, 0.5)
		r.dc.Pop()
		return
	}
	r.dc.DrawStringAnchored(text, p.X, p.Y, 0.5, 0.5)
}

func (r *Raster) Flush() error { return nil }

// SavePNG writes the most recent frame to path.
func (r *Raster) SavePNG(path string) error {
	if r.dc == nil {
		return fmt.Errorf("no frame rendered")
	}
	return r.dc.SavePNG(path)
}

// Release frees the context; later Begin calls become no-ops.
func (r *Raster) Release() error {
	r.dc = nil
	r.released = true
	return nil
}

// SVG streams one frame as an SVG document to a writer. Begin starts the
// document, Flush closes it.
type SVG struct {
	w        io.Writer
	canvas   *svg.SVG
	released bool
}

// NewSVG returns a surface writing to w.
func NewSVG(w io.Writer) *SVG { return &SVG{w: w} }

func (s *SVG) Begin(width, height int, bg color.RGBA) {
	if s.released {
		return
	}
	s.canvas = svg.New(s.w)
	s.canvas.Start(width, height)
	s.canvas.Rect(0, 0, width, height, "fill:"+cssColor(bg))
}

func (s *SVG) FillCircle(p r2.Vec, radius float64, c color.RGBA) {
	if s.canvas == nil {
		return
	}
	s.canvas.Circle(int(p.X), int(p.Y), int(radius),
		fmt.Sprintf("fill:%s;fill-opacity:%.3f", cssColor(c), cssOpacity(c)))
}

func (s *SVG) StrokeCircle(p r2.Vec, radius, lineWidth float64, c color.RGBA) {
	if s.canvas == nil {
		return
	}
	s.canvas.Circle(int(p.X), int(p.Y), int(radius),
		fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%.3f;stroke-width:%.1f",
			cssColor(c), cssOpacity(c), lineWidth))
}

func (s *SVG) StrokeCubic(p0, c1, c2, p1 r2.Vec, lineWidth float64, c color.RGBA) {
	if s.canvas == nil {
		return
	}
	d := fmt.Sprintf("M%.1f,%.1f C%.1f,%.1f %.1f,%.1f %.1f,%.1f",
		p0.X, p0.Y, c1.X, c1.Y, c2.X, c2.Y, p1.X, p1.Y)
	s.canvas.Path(d,
		fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%.3f;stroke-width:%.1f",
			cssColor(c), cssOpacity(c), lineWidth))
}

func (s *SVG) Label(text string, p r2.Vec, scale float64, c color.RGBA) {
	if s.canvas == nil || text == "" {
		return
	}
	size := 13 * scale
	s.canvas.Text(int(p.X), int(p.Y), text,
		fmt.Sprintf("fill:%s;fill-opacity:%.3f;font-size:%.1fpx;font-family:monospace;text-anchor:middle",
			cssColor(c), cssOpacity(c), size))
}

func (s *SVG) Flush() error {
	if s.canvas == nil {
		return nil
	}
	s.canvas.End()
	s.canvas = nil
	return nil
}

func (s *SVG) Release() error {
	s.canvas = nil
	s.released = true
	return nil
}

func cssColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func cssOpacity(c color.RGBA) float64 {
	return float64(c.A) / 255
}
