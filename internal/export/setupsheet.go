// Package export writes operator-facing artifacts for a generated program:
// a setup-sheet PDF, a toolpath preview image, and a DXF of the path.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/kristiantorvik/Facemilling-program-builder/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	marginLeft = 15.0
	marginTop  = 15.0
	lineHeight = 6.0
	qrSize     = 35.0 // QR code size in mm
)

// sheetInfo is the job metadata encoded into the setup sheet's QR code.
type sheetInfo struct {
	JobID      string  `json:"job_id"`
	Name       string  `json:"name"`
	StockX     float64 `json:"stock_x_mm"`
	StockY     float64 `json:"stock_y_mm"`
	StockZ     float64 `json:"stock_z_mm"`
	FinishedZ  float64 `json:"finished_z_mm"`
	OnlyFinish bool    `json:"only_finish"`
}

// WriteSetupSheet generates a one-page PDF for the operator: program name,
// job ID, stock dimensions, tool table and coolant list, plus a QR code
// carrying the job metadata as JSON.
func WriteSetupSheet(path string, j model.Job) error {
	p := j.Params

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginTop)
	pdf.AddPage()

	// Title block
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-2*marginLeft-qrSize, 8, fmt.Sprintf("Face Milling - %s", j.Name), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetX(marginLeft)
	pdf.CellFormat(pageWidth-2*marginLeft-qrSize, 5,
		fmt.Sprintf("Job %s - %s", j.ID, j.CreatedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	// QR code top-right
	qrData, err := json.Marshal(sheetInfo{
		JobID:      j.ID,
		Name:       j.Name,
		StockX:     p.Stock.XSize,
		StockY:     p.Stock.YSize,
		StockZ:     p.Stock.ZSize,
		FinishedZ:  p.Stock.FinishedZ,
		OnlyFinish: p.OnlyFinish,
	})
	if err != nil {
		return fmt.Errorf("marshaling job info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generating QR code: %w", err)
	}
	imgName := "qr_" + j.ID
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, pageWidth-marginLeft-qrSize, marginTop, qrSize, qrSize, false,
		fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	y := marginTop + qrSize + 8

	y = writeSection(pdf, y, "Stock", [][2]string{
		{"Size", fmt.Sprintf("%.1f x %.1f x %.1f mm", p.Stock.XSize, p.Stock.YSize, p.Stock.ZSize)},
		{"Finished Z", fmt.Sprintf("%.1f mm", p.Stock.FinishedZ)},
		{"Stock offset", fmt.Sprintf("%.1f mm", p.Stock.StockOffset)},
		{"Reference", fmt.Sprintf("%s (X%+.1f Y%+.1f)", p.Position.Reference, p.Position.X, p.Position.Y)},
	})

	if p.Roughing != nil && !p.OnlyFinish {
		r := p.Roughing
		y = writeSection(pdf, y, "Roughing", [][2]string{
			{"Tool", fmt.Sprintf("T%d - D%.1f mm", r.ToolNumber, r.ToolDiameter)},
			{"Depth of cut", fmt.Sprintf("%.1f mm", r.DepthOfCut)},
			{"Width of cut", fmt.Sprintf("%.1f mm", r.WidthOfCut)},
			{"Leave", fmt.Sprintf("%.1f mm", r.LeaveForFinishing)},
			{"Spindle / feed", fmt.Sprintf("S%d / F%.0f", r.RPM, r.Feedrate)},
		})
	} else {
		y = writeSection(pdf, y, "Roughing", [][2]string{{"Skipped", "only-finish job"}})
	}

	f := p.Finishing
	y = writeSection(pdf, y, "Finishing", [][2]string{
		{"Tool", fmt.Sprintf("T%d - D%.1f mm", f.ToolNumber, f.ToolDiameter)},
		{"Width of cut", fmt.Sprintf("%.1f mm", f.WidthOfCut)},
		{"Spindle / feed", fmt.Sprintf("S%d / F%.0f", f.RPM, f.Feedrate)},
	})

	coolant := [][2]string{}
	for _, c := range p.Coolant {
		coolant = append(coolant, [2]string{c.Name, fmt.Sprintf("M%d on / M%d off", c.Codes.OnCode, c.Codes.OffCode)})
	}
	if len(coolant) == 0 {
		coolant = append(coolant, [2]string{"None", "dry cut"})
	}
	writeSection(pdf, y, "Coolant", coolant)

	return pdf.OutputFileAndClose(path)
}

// writeSection draws a titled label/value block and returns the Y position
// below it.
func writeSection(pdf *fpdf.Fpdf, y float64, title string, rows [][2]string) float64 {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(pageWidth-2*marginLeft, lineHeight, title, "B", 1, "L", false, 0, "")
	y += lineHeight + 1

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(50, lineHeight, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(pageWidth-2*marginLeft-50, lineHeight, row[1], "", 1, "L", false, 0, "")
		y += lineHeight
	}
	return y + 4
}
