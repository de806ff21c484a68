package model

// ToolPathPoint is one motion target in the generated program. Points are
// produced by the spiral calculator and never mutated afterwards.
type ToolPathPoint struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Feed      float64 `json:"feed"`
	Rapid     bool    `json:"rapid"`
	Arc       bool    `json:"arc"` // arc endpoint; ArcRadius carries the radius
	ArcRadius float64 `json:"arc_radius,omitempty"`
}

// DepthLevel groups the passes cut at one target Z depth.
type DepthLevel struct {
	ZDepth float64           `json:"z_depth"`
	Passes [][]ToolPathPoint `json:"passes"`
}

// PointCount returns the total number of points across all passes.
func (d DepthLevel) PointCount() int {
	n := 0
	for _, pass := range d.Passes {
		n += len(pass)
	}
	return n
}

// PathBounds returns the XY bounding box of all points across the given
// levels. ok is false when there are no points at all.
func PathBounds(levels []DepthLevel) (minX, minY, maxX, maxY float64, ok bool) {
	for _, level := range levels {
		for _, pass := range level.Passes {
			for _, p := range pass {
				if !ok {
					minX, maxX = p.X, p.X
					minY, maxY = p.Y, p.Y
					ok = true
					continue
				}
				if p.X < minX {
					minX = p.X
				}
				if p.X > maxX {
					maxX = p.X
				}
				if p.Y < minY {
					minY = p.Y
				}
				if p.Y > maxY {
					maxY = p.Y
				}
			}
		}
	}
	return minX, minY, maxX, maxY, ok
}
