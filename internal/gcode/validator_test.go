package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristiantorvik/Facemilling-program-builder/internal/model"
)

func TestValidate_Defaults(t *testing.T) {
	require.NoError(t, Validate(model.DefaultParameters()))
}

func TestValidate_MissingRoughing(t *testing.T) {
	p := model.DefaultParameters()
	p.Roughing = nil

	err := Validate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roughing")

	// With only-finish set the same record is fine.
	p.OnlyFinish = true
	assert.NoError(t, Validate(p))
}

func TestValidate_BadReference(t *testing.T) {
	p := model.DefaultParameters()
	p.Position.Reference = "G58"

	err := Validate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reference")
}

// TestValidate_Boundaries exercises every range at its inclusive and
// exclusive edge independently.
func TestValidate_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Parameters)
		ok     bool
	}{
		{"stock x at min", func(p *model.Parameters) { p.Stock.XSize = 50.0 }, true},
		{"stock x below min", func(p *model.Parameters) { p.Stock.XSize = 49.999 }, false},
		{"stock y at max", func(p *model.Parameters) { p.Stock.YSize = 1000.0 }, true},
		{"stock y above max", func(p *model.Parameters) { p.Stock.YSize = 1000.001 }, false},
		{"stock z below min", func(p *model.Parameters) { p.Stock.ZSize = 49.9 }, false},
		{"finished z at zero", func(p *model.Parameters) {
			p.Stock.FinishedZ = 0
			p.Roughing.LeaveForFinishing = 0
		}, true},
		{"finished z negative", func(p *model.Parameters) { p.Stock.FinishedZ = -0.1 }, false},
		{"finished z equals z size", func(p *model.Parameters) { p.Stock.FinishedZ = p.Stock.ZSize }, false},
		{"stock offset negative", func(p *model.Parameters) { p.Stock.StockOffset = -1 }, false},
		{"roughing tool dia at min", func(p *model.Parameters) {
			p.Roughing.ToolDiameter = 5.0
			p.Roughing.WidthOfCut = 5.0
		}, true},
		{"roughing tool dia below min", func(p *model.Parameters) {
			p.Roughing.ToolDiameter = 4.999
			p.Roughing.WidthOfCut = 4.0
		}, false},
		{"roughing tool dia above max", func(p *model.Parameters) { p.Roughing.ToolDiameter = 300.1 }, false},
		{"roughing tool number negative", func(p *model.Parameters) { p.Roughing.ToolNumber = -1 }, false},
		{"depth of cut at min", func(p *model.Parameters) { p.Roughing.DepthOfCut = 0.1 }, true},
		{"depth of cut below min", func(p *model.Parameters) { p.Roughing.DepthOfCut = 0.09 }, false},
		{"depth of cut above max", func(p *model.Parameters) { p.Roughing.DepthOfCut = 100.1 }, false},
		{"leave negative", func(p *model.Parameters) { p.Roughing.LeaveForFinishing = -0.5 }, false},
		{"width equals tool dia", func(p *model.Parameters) { p.Roughing.WidthOfCut = p.Roughing.ToolDiameter }, true},
		{"width above tool dia", func(p *model.Parameters) { p.Roughing.WidthOfCut = p.Roughing.ToolDiameter + 0.1 }, false},
		{"rpm at min", func(p *model.Parameters) { p.Roughing.RPM = 800 }, true},
		{"rpm below min", func(p *model.Parameters) { p.Roughing.RPM = 799 }, false},
		{"rpm at max", func(p *model.Parameters) { p.Roughing.RPM = 20000 }, true},
		{"rpm above max", func(p *model.Parameters) { p.Roughing.RPM = 20001 }, false},
		{"feedrate at min", func(p *model.Parameters) { p.Roughing.Feedrate = 100 }, true},
		{"feedrate below min", func(p *model.Parameters) { p.Roughing.Feedrate = 99.9 }, false},
		{"feedrate above max", func(p *model.Parameters) { p.Roughing.Feedrate = 15001 }, false},
		{"finishing tool number negative", func(p *model.Parameters) { p.Finishing.ToolNumber = -3 }, false},
		{"finishing tool dia below min", func(p *model.Parameters) {
			p.Finishing.ToolDiameter = 4.9
			p.Finishing.WidthOfCut = 4.0
		}, false},
		{"finishing width above tool dia", func(p *model.Parameters) { p.Finishing.WidthOfCut = p.Finishing.ToolDiameter + 1 }, false},
		{"finishing rpm below min", func(p *model.Parameters) { p.Finishing.RPM = 500 }, false},
		{"finishing feedrate above max", func(p *model.Parameters) { p.Finishing.Feedrate = 15000.5 }, false},
		{"corner radius at min", func(p *model.Parameters) { p.Machine.CornerRadius = 1.0 }, true},
		{"corner radius below min", func(p *model.Parameters) { p.Machine.CornerRadius = 0.9 }, false},
		{"corner radius at max", func(p *model.Parameters) { p.Machine.CornerRadius = 25.0 }, true},
		{"corner radius above max", func(p *model.Parameters) { p.Machine.CornerRadius = 25.1 }, false},
		{"clearance at min", func(p *model.Parameters) { p.Machine.ClearanceHeight = 5.0 }, true},
		{"clearance below min", func(p *model.Parameters) { p.Machine.ClearanceHeight = 4.9 }, false},
		{"clearance above max", func(p *model.Parameters) { p.Machine.ClearanceHeight = 500.5 }, false},
		{"plunge feedrate at min", func(p *model.Parameters) { p.Machine.PlungeFeedrate = 100 }, true},
		{"plunge feedrate below min", func(p *model.Parameters) { p.Machine.PlungeFeedrate = 99 }, false},
		{"lead-in negative", func(p *model.Parameters) { p.Machine.LeadInLength = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.DefaultParameters()
			tt.mutate(&p)
			err := Validate(p)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_CoolantCodes(t *testing.T) {
	p := model.DefaultParameters()
	p.Coolant = []model.CoolantSelection{
		{Name: "Air", Codes: model.CoolantCodes{OnCode: 81, OffCode: 82}},
	}
	require.NoError(t, Validate(p))

	p.Coolant[0].Codes.OnCode = -1
	err := Validate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Air")

	p.Coolant[0].Codes = model.CoolantCodes{OnCode: 8, OffCode: -9}
	assert.Error(t, Validate(p))
}

func TestValidate_NoMaterialForRoughing(t *testing.T) {
	p := model.DefaultParameters()
	// 150 - 140 - 10 = 0: nothing left for roughing above the allowance.
	p.Roughing.LeaveForFinishing = 10.0

	err := Validate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leave for finishing")

	// Only-finish skips the cross-field rule entirely.
	p.OnlyFinish = true
	assert.NoError(t, Validate(p))
}

func TestValidate_ReturnsValidationError(t *testing.T) {
	p := model.DefaultParameters()
	p.Stock.XSize = 10

	err := Validate(p)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Reason)
}
