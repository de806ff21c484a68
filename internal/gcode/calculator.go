package gcode

import (
	"math"

	"github.com/kristiantorvik/Facemilling-program-builder/internal/model"
)

// SpiralCalculator computes rectangular spiral face-milling toolpaths from a
// validated parameter record. It is a pure function of its inputs: two
// calculators built from identical parameters produce identical point
// sequences.
type SpiralCalculator struct {
	params model.Parameters

	stock        model.Stock
	position     model.Position
	cornerRadius float64 // rounded to whole mm at construction
	clearance    float64
	leadIn       float64
	overlap      float64
}

// NewSpiralCalculator builds a calculator. Parameters must already have
// passed Validate; fields are read without presence checks.
func NewSpiralCalculator(params model.Parameters) *SpiralCalculator {
	return &SpiralCalculator{
		params:       params,
		stock:        params.Stock,
		position:     params.Position,
		cornerRadius: math.Round(params.Machine.CornerRadius),
		clearance:    params.Machine.ClearanceHeight,
		leadIn:       params.Machine.LeadInLength,
		overlap:      params.Machine.LastCutOverlap,
	}
}

// CalculateSpiralPasses computes the ordered depth levels for the requested
// operation. Roughing steps from the stock top down to finished Z plus the
// finishing allowance; finishing is a single level at finished Z. Roughing
// with only-finish set returns no levels.
func (c *SpiralCalculator) CalculateSpiralPasses(isRoughing bool) []model.DepthLevel {
	if isRoughing && c.params.OnlyFinish {
		return nil
	}

	var (
		toolRadius float64
		depthOfCut float64
		widthOfCut float64
		startZ     float64
		endZ       float64
		feedrate   float64
	)
	plungeFeedrate := c.params.Machine.PlungeFeedrate

	if isRoughing {
		r := c.params.Roughing
		toolRadius = r.ToolDiameter / 2.0
		depthOfCut = r.DepthOfCut
		widthOfCut = r.WidthOfCut
		startZ = c.stock.ZSize
		endZ = c.stock.FinishedZ + r.LeaveForFinishing
		feedrate = r.Feedrate
	} else {
		f := c.params.Finishing
		toolRadius = f.ToolDiameter / 2.0
		widthOfCut = f.WidthOfCut
		startZ = c.stock.FinishedZ
		if !c.params.OnlyFinish {
			startZ += c.params.Roughing.LeaveForFinishing
		}
		endZ = c.stock.FinishedZ
		feedrate = f.Feedrate
		depthOfCut = startZ - endZ
	}

	var depths []float64
	currentZ := startZ
	for currentZ > endZ {
		nextZ := math.Max(currentZ-depthOfCut, endZ)
		depths = append(depths, nextZ)
		currentZ = nextZ
	}
	// Finishing always cuts at least the final level, even when the
	// allowance is zero (only-finish straight to finished Z).
	if !isRoughing && len(depths) == 0 {
		depths = append(depths, endZ)
	}

	levels := make([]model.DepthLevel, 0, len(depths))
	for _, zDepth := range depths {
		points := c.generateRectangularSpiral(toolRadius, widthOfCut, zDepth, feedrate, plungeFeedrate)
		levels = append(levels, model.DepthLevel{
			ZDepth: zDepth,
			Passes: [][]model.ToolPathPoint{points}, // one spiral is one pass holding all points
		})
	}
	return levels
}

// generateRectangularSpiral emits one complete clockwise spiral at a single
// depth: approach from outside, feed to the bottom-left corner of the first
// lap, then nested laps of arc/edge segments insetting by the stepover.
// Remaining stock per axis is tracked so the final edge is extended to the
// tool-radius boundary and the spiral stops as soon as the face is cleared.
func (c *SpiralCalculator) generateRectangularSpiral(
	toolRadius, widthOfCut, zDepth, feedrate, plungeFeedrate float64,
) []model.ToolPathPoint {
	var points []model.ToolPathPoint

	// Work area bounds, expanded by the stock offset margin.
	xMin := -c.stock.StockOffset
	yMin := -c.stock.StockOffset
	xMax := c.stock.XSize + c.stock.StockOffset
	yMax := c.stock.YSize + c.stock.StockOffset

	xStockLeft := xMax - xMin
	yStockLeft := yMax - yMin

	// G55/G56/G57 offsets shift the geometry itself. Table offsets are
	// written into the offset registers in the program header instead.
	if c.position.Reference != model.ReferenceTable {
		xMin += c.position.X
		yMin += c.position.Y
		xMax += c.position.X
		yMax += c.position.Y
	}

	cornerR := c.cornerRadius
	stepover := c.calculateStepover(xMin, yMin, xMax, yMax, widthOfCut)

	// Rapid approach from outside the stock.
	startX := xMax + c.leadIn + toolRadius
	startY := yMin - toolRadius + stepover
	points = append(points, model.ToolPathPoint{
		X: round1(startX), Y: round1(startY), Z: zDepth,
		Feed: plungeFeedrate, Rapid: true,
	})

	// First lap boundary sits one tool radius outside the work area.
	curXMin := xMin - toolRadius
	curYMin := yMin - toolRadius
	curXMax := xMax + toolRadius
	curYMax := yMax + toolRadius

	// Feed to the bottom-left corner of the first lap.
	points = append(points, model.ToolPathPoint{
		X: round1(curXMin + stepover + cornerR), Y: round1(curYMin + stepover), Z: zDepth,
		Feed: feedrate,
	})

	yStockLeft -= stepover
	if yStockLeft < 0 {
		// The first pass already clears the stock.
		points = append(points, model.ToolPathPoint{
			X: round1(curXMin + stepover + toolRadius), Y: round1(curYMin + stepover), Z: zDepth,
			Feed: feedrate,
		})
		return points
	}

	for curXMax-curXMin > toolRadius*2 && curYMax-curYMin > toolRadius*2 {
		// Step inward for this lap.
		curXMin += stepover
		curYMin += stepover
		curXMax -= stepover
		curYMax -= stepover

		// Arc at bottom-left.
		points = append(points, model.ToolPathPoint{
			X: round1(curXMin), Y: round1(curYMin + cornerR), Z: zDepth,
			Feed: feedrate, Arc: true, ArcRadius: cornerR,
		})
		// Up the left edge.
		points = append(points, model.ToolPathPoint{
			X: round1(curXMin), Y: round1(curYMax - cornerR), Z: zDepth,
			Feed: feedrate,
		})
		xStockLeft -= stepover
		if xStockLeft < 0 {
			points = append(points, model.ToolPathPoint{
				X: round1(curXMin), Y: round1(curYMax + toolRadius), Z: zDepth,
				Feed: feedrate,
			})
			break
		}

		// Arc at top-left.
		points = append(points, model.ToolPathPoint{
			X: round1(curXMin + cornerR), Y: round1(curYMax), Z: zDepth,
			Feed: feedrate, Arc: true, ArcRadius: cornerR,
		})
		// Right across the top.
		points = append(points, model.ToolPathPoint{
			X: round1(curXMax - cornerR), Y: round1(curYMax), Z: zDepth,
			Feed: feedrate,
		})
		yStockLeft -= stepover
		if yStockLeft < 0 {
			points = append(points, model.ToolPathPoint{
				X: round1(curXMax + toolRadius), Y: round1(curYMax), Z: zDepth,
				Feed: feedrate,
			})
			break
		}

		// Arc at top-right.
		points = append(points, model.ToolPathPoint{
			X: round1(curXMax), Y: round1(curYMax - cornerR), Z: zDepth,
			Feed: feedrate, Arc: true, ArcRadius: cornerR,
		})
		// Down the right edge, stopping one stepover short of the bottom.
		points = append(points, model.ToolPathPoint{
			X: round1(curXMax), Y: round1(curYMin + stepover + cornerR), Z: zDepth,
			Feed: feedrate,
		})
		xStockLeft -= stepover
		if xStockLeft < 0 {
			points = append(points, model.ToolPathPoint{
				X: round1(curXMax), Y: round1(curYMin - toolRadius), Z: zDepth,
				Feed: feedrate,
			})
			break
		}

		// Arc at bottom-right.
		points = append(points, model.ToolPathPoint{
			X: round1(curXMax - cornerR), Y: round1(curYMin + stepover), Z: zDepth,
			Feed: feedrate, Arc: true, ArcRadius: cornerR,
		})
		// Left across the bottom into the next lap's corner.
		points = append(points, model.ToolPathPoint{
			X: round1(curXMin + stepover + cornerR), Y: round1(curYMin + stepover), Z: zDepth,
			Feed: feedrate,
		})
		yStockLeft -= stepover
		if yStockLeft < 0 {
			points = append(points, model.ToolPathPoint{
				X: round1(curXMin + stepover - toolRadius), Y: round1(curYMin + stepover), Z: zDepth,
				Feed: feedrate,
			})
			break
		}
	}

	return points
}

// calculateStepover distributes the passes evenly so the realized stepover
// never exceeds widthOfCut and the final lap overlaps the previous one by
// at least the configured last-cut overlap. The floor-division-plus-one lap
// count is the established numeric contract; do not "fix" the rounding.
func (c *SpiralCalculator) calculateStepover(xMin, yMin, xMax, yMax, widthOfCut float64) float64 {
	width := xMax - xMin
	height := yMax - yMin
	span := math.Min(width, height)

	numberOfCuts := math.Floor((span+c.overlap)/widthOfCut) + 1
	stepover := (span + c.overlap) / numberOfCuts
	return round1(stepover)
}

// TotalClearanceHeight returns the absolute rapid-retract plane above the
// table: stock height plus the configured clearance.
func (c *SpiralCalculator) TotalClearanceHeight() float64 {
	return round3(c.stock.ZSize + c.clearance)
}

// round1 rounds to one decimal place. Coordinates are committed at this
// precision before serialization so the program text stays clean.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
