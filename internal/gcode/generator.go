package gcode

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kristiantorvik/Facemilling-program-builder/internal/model"
)

// Generator produces a complete face-milling program from one parameter
// record. It validates first, computes the roughing and finishing spirals,
// and serializes header, body and footer. It holds no state between calls
// and performs no I/O; persisting the text is the writer's concern.
type Generator struct {
	params model.Parameters
	now    func() time.Time
}

func New(params model.Parameters) *Generator {
	return &Generator{params: params, now: time.Now}
}

// Generate returns the program text, or a *ValidationError when the
// parameters fail any rule. No partial program is ever returned.
func (g *Generator) Generate() (string, error) {
	if err := Validate(g.params); err != nil {
		return "", err
	}

	calc := NewSpiralCalculator(g.params)

	var b strings.Builder
	g.writeHeader(&b)
	if !g.params.OnlyFinish {
		g.writeRoughing(&b, calc)
	}
	g.writeFinishing(&b, calc)
	g.writeFooter(&b)
	return b.String(), nil
}

func (g *Generator) writeHeader(b *strings.Builder) {
	stock := g.params.Stock
	timestamp := g.now().Format("2006-01-02 15:04:05")

	b.WriteString("(*******************************)\n")
	b.WriteString("(======FaceMilling Program======)\n")
	fmt.Fprintf(b, "(===Date: %s===)\n", timestamp)
	b.WriteString("(*******************************)\n")
	b.WriteString("(==========Stock Size===========)\n")
	fmt.Fprintf(b, "(X=%smm, Y=%smm, Z=%smm)\n", fnum(stock.XSize), fnum(stock.YSize), fnum(stock.ZSize))
	b.WriteString("(*******************************)\n")
	fmt.Fprintf(b, "(======Finished Z: %smm======)\n", fnum(stock.FinishedZ))
	b.WriteString("(*******************************)\n\n")

	// Table reference writes the work offset registers directly from the
	// machine's table coordinates plus the stock position.
	if g.params.Position.Reference == model.ReferenceTable {
		ms := g.params.Machine
		offsetX := ms.TableReferenceX + g.params.Position.X
		offsetY := ms.TableReferenceY + g.params.Position.Y

		b.WriteString("(Setting G55 according to table offset)\n")
		fmt.Fprintf(b, "#5241 = %s\n", fnum(offsetX))
		fmt.Fprintf(b, "#5242 = %s\n", fnum(offsetY))
		fmt.Fprintf(b, "#5243 = %s\n\n", fnum(ms.TableReferenceZ))

		b.WriteString("G28 G91 Z0\n\n")
	}
}

func (g *Generator) writeRoughing(b *strings.Builder, calc *SpiralCalculator) {
	roughing := g.params.Roughing

	b.WriteString("\nN1 (Roughing)\n")
	fmt.Fprintf(b, "M06 T%d\n", roughing.ToolNumber)
	g.writeOperationSetup(b, roughing.RPM)

	levels := calc.CalculateSpiralPasses(true)
	first := levels[0].Passes[0][0]
	clearance := calc.TotalClearanceHeight()

	fmt.Fprintf(b, "G0 X%s Y%s\n", fnum(first.X), fnum(first.Y))
	fmt.Fprintf(b, "G43 H%d Z%s\n", roughing.ToolNumber, fnum(clearance))

	g.writeCoolantOn(b)

	for _, level := range levels {
		fmt.Fprintf(b, "(Depth: %smm)\n", fnum(level.ZDepth))
		for _, pass := range level.Passes {
			g.writePass(b, pass)
		}
		// Retract between depth levels.
		fmt.Fprintf(b, "G0 Z%s\n", fnum(clearance))
	}

	g.writeCoolantOff(b)
	b.WriteString("M5\n")
	b.WriteString("G28 G91 Z0\n")
}

func (g *Generator) writeFinishing(b *strings.Builder, calc *SpiralCalculator) {
	finishing := g.params.Finishing

	b.WriteString("\nN2 (Finishing)\n")
	b.WriteString("M1\n") // optional stop before the tool change
	fmt.Fprintf(b, "M06 T%d\n", finishing.ToolNumber)
	g.writeOperationSetup(b, finishing.RPM)

	levels := calc.CalculateSpiralPasses(false)
	first := levels[0].Passes[0][0]
	clearance := calc.TotalClearanceHeight()

	fmt.Fprintf(b, "G0 X%s Y%s\n", fnum(first.X), fnum(first.Y))
	fmt.Fprintf(b, "G43 H%d Z%s\n", finishing.ToolNumber, fnum(clearance))

	g.writeCoolantOn(b)

	for _, level := range levels {
		for _, pass := range level.Passes {
			g.writePass(b, pass)
		}
	}

	// Finishing retracts only once, after the last level.
	fmt.Fprintf(b, "G0 Z%s\n", fnum(clearance))

	g.writeCoolantOff(b)
	b.WriteString("M5\n")
}

// writeOperationSetup emits the per-operation preamble shared by roughing
// and finishing: work offset select, contouring mode, rotary axis zeroing
// and clamping, spindle start.
func (g *Generator) writeOperationSetup(b *strings.Builder, rpm int) {
	switch g.params.Position.Reference {
	case model.ReferenceG56:
		b.WriteString("G56\n")
	case model.ReferenceG57:
		b.WriteString("G57\n")
	default:
		// Table mode writes its offsets into G55 in the header.
		b.WriteString("G55\n")
	}

	b.WriteString("G5.1 Q1 R5\n") // semi-precision contouring mode
	b.WriteString("G0 G90 B0 C0\n")
	b.WriteString("M32 (Clamp C)\nM34 (Clamp B)\n")
	fmt.Fprintf(b, "M3 S%d\n", rpm)
}

// writePass serializes one point sequence. The first point positions the
// tool and plunges at its own feed; the second re-establishes the cutting
// feedrate; the rest are plain arc or linear moves.
func (g *Generator) writePass(b *strings.Builder, pass []model.ToolPathPoint) {
	for i, point := range pass {
		switch {
		case i == 0:
			fmt.Fprintf(b, "G0 X%s Y%s\n", fnum(point.X), fnum(point.Y))
			fmt.Fprintf(b, "G1 Z%s F%s\n", fnum(point.Z), fnum(point.Feed))
		case i == 1:
			fmt.Fprintf(b, "G1 X%s Y%s F%s\n", fnum(point.X), fnum(point.Y), fnum(point.Feed))
		case point.Arc:
			// G2 is a clockwise arc.
			fmt.Fprintf(b, "G2 X%s Y%s R%s\n", fnum(point.X), fnum(point.Y), fnum(point.ArcRadius))
		default:
			fmt.Fprintf(b, "G1 X%s Y%s\n", fnum(point.X), fnum(point.Y))
		}
	}
}

func (g *Generator) writeCoolantOn(b *strings.Builder) {
	for _, c := range g.params.Coolant {
		fmt.Fprintf(b, "M%d (Turn on %s)\n", c.Codes.OnCode, c.Name)
	}
}

func (g *Generator) writeCoolantOff(b *strings.Builder) {
	for _, c := range g.params.Coolant {
		fmt.Fprintf(b, "M%d (Turn off %s)\n", c.Codes.OffCode, c.Name)
	}
}

func (g *Generator) writeFooter(b *strings.Builder) {
	b.WriteString("\nG49\n")
	b.WriteString("G28 G91 Z0\n")
	b.WriteString("G28 G91 X0 Y0\n")
	b.WriteString("M30\n")
	b.WriteString("%\n")
}

// fnum formats a coordinate or feed with its minimal decimal
// representation. Values arrive already rounded from the calculator; no
// re-rounding happens here.
func fnum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
