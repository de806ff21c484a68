package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kristiantorvik/Facemilling-program-builder/internal/config"
	"github.com/kristiantorvik/Facemilling-program-builder/internal/export"
	"github.com/kristiantorvik/Facemilling-program-builder/internal/gcode"
	"github.com/kristiantorvik/Facemilling-program-builder/internal/job"
	"github.com/kristiantorvik/Facemilling-program-builder/internal/model"
)

var (
	generateJobPath    string
	generateConfigPath string
	generateOutDir     string
	generateSetupSheet bool
	generatePreview    bool
	generateDXF        bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a face milling program from a job file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(generateConfigPath)
		if err != nil {
			return err
		}

		jf, err := job.Load(generateJobPath)
		if err != nil {
			return err
		}
		jb, err := jf.Resolve(cfg)
		if err != nil {
			return err
		}

		outDir := generateOutDir
		if outDir == "" {
			outDir = cfg.Machine.OutputPath
		}

		path, err := runJob(jb, cfg, outDir)
		if err != nil {
			return err
		}
		cmd.Printf("Program written to %s\n", path)

		if generateSetupSheet || generatePreview || generateDXF {
			if err := writeExports(cmd, jb, outDir); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateJobPath, "job", "j", "", "path to the YAML job file (required)")
	generateCmd.Flags().StringVar(&generateConfigPath, "config", "", "path to the config file (default: ./facemill.json or ~/.facemill/config.json)")
	generateCmd.Flags().StringVarP(&generateOutDir, "out", "o", "", "output directory (default: config output_path)")
	generateCmd.Flags().BoolVar(&generateSetupSheet, "setup-sheet", false, "also write an operator setup sheet PDF")
	generateCmd.Flags().BoolVar(&generatePreview, "preview", false, "also render a toolpath preview PNG")
	generateCmd.Flags().BoolVar(&generateDXF, "dxf", false, "also export the toolpath as DXF")
	_ = generateCmd.MarkFlagRequired("job")
}

func loadConfig(path string) (config.AppConfig, error) {
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return config.Load(path)
}

// runJob generates and writes one program, returning the written path.
func runJob(jb model.Job, cfg config.AppConfig, outDir string) (string, error) {
	program, err := gcode.New(jb.Params).Generate()
	if err != nil {
		return "", err
	}

	name := jb.Name
	if cfg.Machine.AppendTimestamp {
		name = fmt.Sprintf("%s_%s", name, jb.CreatedAt.Format("20060102_150405"))
	}
	return gcode.WriteProgram(outDir, name, program)
}

// writeExports renders the optional artifacts next to the program file.
// The toolpath is recomputed here; the calculator is pure, so the result
// matches what the generator serialized.
func writeExports(cmd *cobra.Command, jb model.Job, outDir string) error {
	calc := gcode.NewSpiralCalculator(jb.Params)
	levels := calc.CalculateSpiralPasses(!jb.Params.OnlyFinish)
	if len(levels) == 0 {
		levels = calc.CalculateSpiralPasses(false)
	}

	if generateSetupSheet {
		path := filepath.Join(outDir, jb.Name+"_setup.pdf")
		if err := export.WriteSetupSheet(path, jb); err != nil {
			return fmt.Errorf("setup sheet: %w", err)
		}
		cmd.Printf("Setup sheet written to %s\n", path)
	}
	if generatePreview {
		path := filepath.Join(outDir, jb.Name+"_preview.png")
		if err := export.RenderPreview(path, jb.Params.Stock, levels); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		cmd.Printf("Preview written to %s\n", path)
	}
	if generateDXF {
		path := filepath.Join(outDir, jb.Name+".dxf")
		if err := export.ExportDXF(path, levels); err != nil {
			return fmt.Errorf("dxf: %w", err)
		}
		cmd.Printf("DXF written to %s\n", path)
	}
	return nil
}
