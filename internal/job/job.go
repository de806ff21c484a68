// Package job loads YAML job files and resolves them into complete
// parameter records using the application configuration for anything the
// file leaves out.
package job

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kristiantorvik/Facemilling-program-builder/internal/config"
	"github.com/kristiantorvik/Facemilling-program-builder/internal/model"
)

// File is the on-disk shape of a job. All sections except stock are
// optional; missing sections fall back to the config defaults. Coolant
// entries are catalog names whose M-codes are resolved at load time.
type File struct {
	Name       string           `yaml:"name"`
	Position   *model.Position  `yaml:"position"`
	Stock      *model.Stock     `yaml:"stock"`
	Roughing   *model.Roughing  `yaml:"roughing"`
	Finishing  *model.Finishing `yaml:"finishing"`
	OnlyFinish bool             `yaml:"only_finish"`
	Coolant    []string         `yaml:"coolant"`
}

// Load reads and parses a job file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing job YAML: %w", err)
	}
	return &f, nil
}

// Resolve fills missing sections from the config defaults, maps coolant
// names through the catalog and returns a Job ready for generation. The
// config is never mutated.
func (f *File) Resolve(cfg config.AppConfig) (model.Job, error) {
	params := model.Parameters{
		Position:   cfg.Defaults.Position,
		Stock:      cfg.Defaults.Stock,
		Finishing:  cfg.Defaults.Finishing,
		Machine:    cfg.Machine,
		OnlyFinish: f.OnlyFinish,
	}

	if f.Position != nil {
		params.Position = *f.Position
	}
	if f.Stock != nil {
		params.Stock = *f.Stock
	}
	if f.Finishing != nil {
		params.Finishing = *f.Finishing
	}
	if !f.OnlyFinish {
		roughing := cfg.Defaults.Roughing
		if f.Roughing != nil {
			roughing = *f.Roughing
		}
		params.Roughing = &roughing
	}

	coolant, err := cfg.SelectCoolant(f.Coolant)
	if err != nil {
		return model.Job{}, err
	}
	params.Coolant = coolant

	name := f.Name
	if name == "" {
		name = cfg.Machine.ProgramName
	}
	return model.NewJob(name, params), nil
}
