package export

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/kristiantorvik/Facemilling-program-builder/internal/model"
)

const (
	previewWidth  = 900
	previewHeight = 700
	previewMargin = 40.0
)

// RenderPreview draws a top-down PNG of the first depth level's spiral over
// the stock outline. Arcs are flattened to their endpoints; the image is a
// sanity check for the operator, not a simulation.
func RenderPreview(path string, stock model.Stock, levels []model.DepthLevel) error {
	if len(levels) == 0 {
		return fmt.Errorf("no depth levels to render")
	}

	minX, minY, maxX, maxY, ok := model.PathBounds(levels[:1])
	if !ok {
		return fmt.Errorf("first depth level has no points")
	}
	// Include the stock rectangle in the view box.
	if 0 < minX {
		minX = 0
	}
	if 0 < minY {
		minY = 0
	}
	if stock.XSize > maxX {
		maxX = stock.XSize
	}
	if stock.YSize > maxY {
		maxY = stock.YSize
	}

	spanX := maxX - minX
	spanY := maxY - minY
	if spanX <= 0 || spanY <= 0 {
		return fmt.Errorf("degenerate toolpath bounds")
	}

	scaleX := (previewWidth - 2*previewMargin) / spanX
	scaleY := (previewHeight - 2*previewMargin) / spanY
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}

	// Machine Y grows upward; image Y grows downward.
	toImage := func(x, y float64) (float64, float64) {
		px := previewMargin + (x-minX)*scale
		py := previewHeight - previewMargin - (y-minY)*scale
		return px, py
	}

	dc := gg.NewContext(previewWidth, previewHeight)
	defer dc.Close()

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Stock outline.
	sx, sy := toImage(0, stock.YSize)
	dc.SetRGB(0.55, 0.55, 0.55)
	dc.SetLineWidth(2)
	dc.DrawRectangle(sx, sy, stock.XSize*scale, stock.YSize*scale)
	dc.Stroke()

	// Toolpath of the first level: rapid approach dashed-off as a plain
	// gray segment, cutting moves in blue.
	for _, pass := range levels[0].Passes {
		for i := 1; i < len(pass); i++ {
			p0, p1 := pass[i-1], pass[i]
			x0, y0 := toImage(p0.X, p0.Y)
			x1, y1 := toImage(p1.X, p1.Y)
			if p0.Rapid || p1.Rapid {
				dc.SetRGB(0.7, 0.7, 0.7)
				dc.SetLineWidth(1)
			} else {
				dc.SetRGB(0.15, 0.35, 0.8)
				dc.SetLineWidth(1.5)
			}
			dc.DrawLine(x0, y0, x1, y1)
			dc.Stroke()
		}
		// Mark the plunge point.
		if len(pass) > 1 {
			px, py := toImage(pass[1].X, pass[1].Y)
			dc.SetRGB(0.85, 0.2, 0.2)
			dc.DrawCircle(px, py, 4)
			dc.Fill()
		}
	}

	return dc.SavePNG(path)
}
