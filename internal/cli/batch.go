package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kristiantorvik/Facemilling-program-builder/internal/importer"
)

var (
	batchInputPath  string
	batchConfigPath string
	batchOutDir     string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate programs for every job row in a CSV or Excel file",
	Long: `batch imports one job per row (name, stock x/y/z, finished z, optional
stock offset and only-finish flag), fills the tooling from the config
defaults and generates a program for each. A failing row is reported and
skipped; the rest of the batch continues.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(batchConfigPath)
		if err != nil {
			return err
		}

		result := importer.ImportFile(batchInputPath)
		for _, w := range result.Warnings {
			cmd.Printf("warning: %s\n", w)
		}
		for _, e := range result.Errors {
			cmd.Printf("error: %s\n", e)
		}
		if len(result.Jobs) == 0 {
			return fmt.Errorf("no usable jobs in %s", batchInputPath)
		}

		outDir := batchOutDir
		if outDir == "" {
			outDir = cfg.Machine.OutputPath
		}

		failed := 0
		for _, jf := range result.Jobs {
			jb, err := jf.Resolve(cfg)
			if err != nil {
				cmd.Printf("%s: %v\n", jf.Name, err)
				failed++
				continue
			}
			path, err := runJob(jb, cfg, outDir)
			if err != nil {
				cmd.Printf("%s: %v\n", jb.Name, err)
				failed++
				continue
			}
			cmd.Printf("%s (job %s): %s\n", jb.Name, jb.ID, path)
		}

		cmd.Printf("%d of %d programs generated\n", len(result.Jobs)-failed, len(result.Jobs))
		if failed > 0 {
			return fmt.Errorf("%d job(s) failed", failed)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVarP(&batchInputPath, "input", "i", "", "path to the CSV or Excel job list (required)")
	batchCmd.Flags().StringVar(&batchConfigPath, "config", "", "path to the config file")
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "", "output directory (default: config output_path)")
	_ = batchCmd.MarkFlagRequired("input")
}
