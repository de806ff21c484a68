package gcode

import (
	"github.com/kristiantorvik/Facemilling-program-builder/internal/model"
)

// Validation ranges. All lengths in mm, feeds in mm/min.
const (
	CornerRadiusMin = 1.0
	CornerRadiusMax = 25.0
	ToolDiameterMin = 5.0
	ToolDiameterMax = 300.0
	RPMMin          = 800
	RPMMax          = 20000
	FeedrateMin     = 100.0
	FeedrateMax     = 15000.0
	StockSizeMin    = 50.0
	StockSizeMax    = 1000.0
	ClearanceMin    = 5.0
	ClearanceMax    = 500.0
	DepthOfCutMin   = 0.1
	DepthOfCutMax   = 100.0
)

// Validate checks the complete parameter record for range and cross-field
// consistency. It returns nil when every rule holds, otherwise a
// *ValidationError for the first failing check. Pure function, no side
// effects, and nothing downstream re-checks what passed here.
func Validate(p model.Parameters) error {
	if err := validatePosition(p.Position); err != nil {
		return err
	}
	if err := validateStock(p.Stock); err != nil {
		return err
	}
	if !p.OnlyFinish {
		if p.Roughing == nil {
			return failf("missing roughing section")
		}
		if err := validateRoughing(*p.Roughing); err != nil {
			return err
		}
	}
	if err := validateFinishing(p.Finishing); err != nil {
		return err
	}
	if err := validateMachineSettings(p.Machine); err != nil {
		return err
	}
	if err := validateCoolant(p.Coolant); err != nil {
		return err
	}
	return validateInterdependencies(p)
}

func validatePosition(pos model.Position) error {
	if !pos.Reference.Valid() {
		return failf("position reference must be one of: Table, G55, G56, G57")
	}
	return nil
}

func validateStock(s model.Stock) error {
	if s.XSize < StockSizeMin || s.XSize > StockSizeMax {
		return failf("stock X size must be between %v and %vmm", StockSizeMin, StockSizeMax)
	}
	if s.YSize < StockSizeMin || s.YSize > StockSizeMax {
		return failf("stock Y size must be between %v and %vmm", StockSizeMin, StockSizeMax)
	}
	if s.ZSize < StockSizeMin || s.ZSize > StockSizeMax {
		return failf("stock Z size must be between %v and %vmm", StockSizeMin, StockSizeMax)
	}
	if s.FinishedZ < 0 || s.FinishedZ >= s.ZSize {
		return failf("stock finished Z height must be between 0 and Z size")
	}
	if s.StockOffset < 0 {
		return failf("stock offset cannot be negative")
	}
	return nil
}

func validateRoughing(r model.Roughing) error {
	if r.ToolNumber < 0 {
		return failf("roughing tool number must be positive")
	}
	if r.ToolDiameter < ToolDiameterMin || r.ToolDiameter > ToolDiameterMax {
		return failf("roughing tool diameter must be between %v and %vmm", ToolDiameterMin, ToolDiameterMax)
	}
	if r.DepthOfCut < DepthOfCutMin || r.DepthOfCut > DepthOfCutMax {
		return failf("roughing depth of cut must be between %v and %vmm", DepthOfCutMin, DepthOfCutMax)
	}
	if r.LeaveForFinishing < 0 {
		return failf("roughing leave for finishing cannot be negative")
	}
	if r.WidthOfCut > r.ToolDiameter {
		return failf("roughing width of cut must be at most tool diameter (%vmm)", r.ToolDiameter)
	}
	if r.RPM < RPMMin || r.RPM > RPMMax {
		return failf("roughing RPM must be between %v and %v", RPMMin, RPMMax)
	}
	if r.Feedrate < FeedrateMin || r.Feedrate > FeedrateMax {
		return failf("roughing feedrate must be between %v and %vmm/min", FeedrateMin, FeedrateMax)
	}
	return nil
}

func validateFinishing(f model.Finishing) error {
	if f.ToolNumber < 0 {
		return failf("finishing tool number must be positive")
	}
	if f.ToolDiameter < ToolDiameterMin || f.ToolDiameter > ToolDiameterMax {
		return failf("finishing tool diameter must be between %v and %vmm", ToolDiameterMin, ToolDiameterMax)
	}
	if f.WidthOfCut > f.ToolDiameter {
		return failf("finishing width of cut must be at most tool diameter (%vmm)", f.ToolDiameter)
	}
	if f.RPM < RPMMin || f.RPM > RPMMax {
		return failf("finishing RPM must be between %v and %v", RPMMin, RPMMax)
	}
	if f.Feedrate < FeedrateMin || f.Feedrate > FeedrateMax {
		return failf("finishing feedrate must be between %v and %vmm/min", FeedrateMin, FeedrateMax)
	}
	return nil
}

func validateMachineSettings(ms model.MachineSettings) error {
	if ms.CornerRadius < CornerRadiusMin || ms.CornerRadius > CornerRadiusMax {
		return failf("corner radius must be between %v and %vmm", CornerRadiusMin, CornerRadiusMax)
	}
	if ms.ClearanceHeight < ClearanceMin || ms.ClearanceHeight > ClearanceMax {
		return failf("clearance height must be between %v and %vmm", ClearanceMin, ClearanceMax)
	}
	if ms.PlungeFeedrate < FeedrateMin || ms.PlungeFeedrate > FeedrateMax {
		return failf("plunge feedrate must be between %v and %vmm/min", FeedrateMin, FeedrateMax)
	}
	if ms.LeadInLength < 0 {
		return failf("lead-in length cannot be negative")
	}
	return nil
}

func validateCoolant(coolant []model.CoolantSelection) error {
	for _, c := range coolant {
		if c.Codes.OnCode < 0 {
			return failf("coolant %q on_code must be a positive integer, got %d", c.Name, c.Codes.OnCode)
		}
		if c.Codes.OffCode < 0 {
			return failf("coolant %q off_code must be a positive integer, got %d", c.Name, c.Codes.OffCode)
		}
	}
	return nil
}

// validateInterdependencies checks the cross-section rules. Roughing must
// have material to remove above the finishing allowance.
func validateInterdependencies(p model.Parameters) error {
	if p.OnlyFinish {
		return nil
	}
	materialToRemove := p.Stock.ZSize - p.Stock.FinishedZ - p.Roughing.LeaveForFinishing
	if materialToRemove <= 0 {
		return failf("leave for finishing must be less than total material to remove")
	}
	return nil
}
