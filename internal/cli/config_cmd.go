package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kristiantorvik/Facemilling-program-builder/internal/config"
)

var configPathFlag string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or initialize the machine configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPathFlag
		if path == "" {
			path = config.DefaultConfigPath()
		}
		if err := config.Save(path, config.DefaultAppConfig()); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		cmd.Printf("Config written to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPathFlag)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		cmd.Printf("\nCoolant catalog: %s\n", strings.Join(cfg.CoolantNames(), ", "))
		return nil
	},
}

func init() {
	configCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "path to the config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
