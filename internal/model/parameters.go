// Package model defines the parameter record and toolpath types shared by
// the validator, spiral calculator and program generator.
package model

// Reference selects which work-offset register positions the stock on the
// machine. Table means the offset registers are written explicitly in the
// program header from the table reference coordinates.
type Reference string

const (
	ReferenceTable Reference = "Table"
	ReferenceG55   Reference = "G55"
	ReferenceG56   Reference = "G56"
	ReferenceG57   Reference = "G57"
)

// References lists all valid reference frame tags.
var References = []Reference{ReferenceTable, ReferenceG55, ReferenceG56, ReferenceG57}

// Valid reports whether the reference is one of the enumerated tags.
func (r Reference) Valid() bool {
	for _, v := range References {
		if r == v {
			return true
		}
	}
	return false
}

// Position places the stock relative to the selected reference frame.
type Position struct {
	Reference Reference `json:"reference" yaml:"reference"`
	X         float64   `json:"x" yaml:"x"` // mm, signed
	Y         float64   `json:"y" yaml:"y"` // mm, signed
}

// Stock describes the raw block and the target height.
type Stock struct {
	XSize       float64 `json:"x_size" yaml:"x_size"`                       // mm
	YSize       float64 `json:"y_size" yaml:"y_size"`                       // mm
	ZSize       float64 `json:"z_size" yaml:"z_size"`                       // mm
	FinishedZ   float64 `json:"finished_z_height" yaml:"finished_z_height"` // mm, 0 <= FinishedZ < ZSize
	StockOffset float64 `json:"stock_offset" yaml:"stock_offset"`           // mm margin milled around the part
}

// Roughing holds the tool and cutting data for the roughing operation.
type Roughing struct {
	ToolNumber        int     `json:"tool_number" yaml:"tool_number"`
	ToolDiameter      float64 `json:"tool_diameter" yaml:"tool_diameter"` // mm
	DepthOfCut        float64 `json:"depth_of_cut" yaml:"depth_of_cut"`   // mm per level
	LeaveForFinishing float64 `json:"leave_for_finishing" yaml:"leave_for_finishing"`
	WidthOfCut        float64 `json:"width_of_cut" yaml:"width_of_cut"` // max stepover, mm
	RPM               int     `json:"rpm" yaml:"rpm"`
	Feedrate          float64 `json:"feedrate" yaml:"feedrate"` // mm/min
}

// Finishing holds the tool and cutting data for the single finishing pass.
// The finishing depth of cut is derived, not configured: it is the distance
// from the roughing floor (or stock top in only-finish mode) to FinishedZ.
type Finishing struct {
	ToolNumber   int     `json:"tool_number" yaml:"tool_number"`
	ToolDiameter float64 `json:"tool_diameter" yaml:"tool_diameter"`
	WidthOfCut   float64 `json:"width_of_cut" yaml:"width_of_cut"`
	RPM          int     `json:"rpm" yaml:"rpm"`
	Feedrate     float64 `json:"feedrate" yaml:"feedrate"`
}

// MachineSettings carries machine-level configuration that applies to every
// generated program regardless of the job.
type MachineSettings struct {
	TableReferenceX float64 `json:"table_reference_x" yaml:"table_reference_x"`
	TableReferenceY float64 `json:"table_reference_y" yaml:"table_reference_y"`
	TableReferenceZ float64 `json:"table_reference_z" yaml:"table_reference_z"`
	ClearanceHeight float64 `json:"clearance_height" yaml:"clearance_height"` // above stock top, mm
	PlungeFeedrate  float64 `json:"plunge_feedrate" yaml:"plunge_feedrate"`   // mm/min
	LeadInLength    float64 `json:"lead_in_length" yaml:"lead_in_length"`     // approach outside stock, mm
	CornerRadius    float64 `json:"corner_radius" yaml:"corner_radius"`       // spiral corner arcs, mm
	LastCutOverlap  float64 `json:"last_cut_overlap" yaml:"last_cut_overlap"` // mm
	OutputPath      string  `json:"output_path" yaml:"output_path"`
	ProgramName     string  `json:"program_name" yaml:"program_name"`
	AppendTimestamp bool    `json:"append_timestamp" yaml:"append_timestamp"`
}

// CoolantCodes are the M-codes that switch one coolant circuit on and off.
type CoolantCodes struct {
	OnCode  int `json:"on_code" yaml:"on_code"`
	OffCode int `json:"off_code" yaml:"off_code"`
}

// CoolantSelection is one coolant chosen for a run. Selections are kept as
// an ordered slice rather than a map: the generated program must emit the
// on/off codes in exactly the order the caller supplied them.
type CoolantSelection struct {
	Name  string       `json:"name" yaml:"name"`
	Codes CoolantCodes `json:"codes" yaml:"codes"`
}

// Parameters is the complete, immutable input for one program generation
// call. Numeric fields are expected to be coerced by the boundary that
// builds this record; the core never parses strings.
type Parameters struct {
	Position   Position           `json:"position"`
	Stock      Stock              `json:"stock"`
	Roughing   *Roughing          `json:"roughing,omitempty"` // nil when OnlyFinish
	Finishing  Finishing          `json:"finishing"`
	Machine    MachineSettings    `json:"machine_settings"`
	Coolant    []CoolantSelection `json:"coolant,omitempty"`
	OnlyFinish bool               `json:"only_finish"`
}

// DefaultPosition returns the stock position defaults.
func DefaultPosition() Position {
	return Position{Reference: ReferenceTable, X: 0, Y: 0}
}

// DefaultStock returns the stock dimension defaults.
func DefaultStock() Stock {
	return Stock{
		XSize:       400.0,
		YSize:       300.0,
		ZSize:       150.0,
		FinishedZ:   140.0,
		StockOffset: 0.0,
	}
}

// DefaultRoughing returns the roughing tool defaults.
func DefaultRoughing() Roughing {
	return Roughing{
		ToolNumber:        55,
		ToolDiameter:      63.0,
		DepthOfCut:        5.0,
		LeaveForFinishing: 1.0,
		WidthOfCut:        30.0,
		RPM:               6500,
		Feedrate:          7000,
	}
}

// DefaultFinishing returns the finishing tool defaults.
func DefaultFinishing() Finishing {
	return Finishing{
		ToolNumber:   1,
		ToolDiameter: 80.0,
		WidthOfCut:   53.0,
		RPM:          4000,
		Feedrate:     3000,
	}
}

// DefaultMachineSettings returns the machine-level defaults.
func DefaultMachineSettings() MachineSettings {
	return MachineSettings{
		TableReferenceX: -2600.0,
		TableReferenceY: -1500.0,
		TableReferenceZ: -1171.193,
		ClearanceHeight: 50.0,
		PlungeFeedrate:  500.0,
		LeadInLength:    10.0,
		CornerRadius:    4.0,
		LastCutOverlap:  10.0,
		OutputPath:      ".",
		ProgramName:     "FACEMILLING",
		AppendTimestamp: true,
	}
}

// DefaultParameters assembles a complete parameter record from the
// per-section defaults. Used by tests and as the fallback when a job file
// leaves sections out.
func DefaultParameters() Parameters {
	roughing := DefaultRoughing()
	return Parameters{
		Position:  DefaultPosition(),
		Stock:     DefaultStock(),
		Roughing:  &roughing,
		Finishing: DefaultFinishing(),
		Machine:   DefaultMachineSettings(),
	}
}
