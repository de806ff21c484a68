package export

import (
	"fmt"

	"github.com/yofu/dxf"

	"github.com/kristiantorvik/Facemilling-program-builder/internal/model"
)

// ExportDXF writes the cutting moves of every depth level to a DXF file,
// one layer per level, for inspection in CAD. Corner arcs are flattened to
// their endpoint segments; rapid approach moves are skipped.
func ExportDXF(path string, levels []model.DepthLevel) error {
	if len(levels) == 0 {
		return fmt.Errorf("no depth levels to export")
	}

	d := dxf.NewDrawing()

	for i, level := range levels {
		layer := fmt.Sprintf("DEPTH_%02d", i+1)
		if _, err := d.AddLayer(layer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("adding layer %s: %w", layer, err)
		}

		for _, pass := range level.Passes {
			for j := 1; j < len(pass); j++ {
				p0, p1 := pass[j-1], pass[j]
				if p0.Rapid || p1.Rapid {
					continue
				}
				if _, err := d.Line(p0.X, p0.Y, p0.Z, p1.X, p1.Y, p1.Z); err != nil {
					return fmt.Errorf("adding segment on %s: %w", layer, err)
				}
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("saving DXF: %w", err)
	}
	return nil
}
