// Package config loads the TOML run configuration shared by the distill
// commands. Flags always override file values.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where commands look for a config file when none is given.
const DefaultPath = "distill.toml"

// Config carries the account- and model-level settings a distillation run
// reuses across commands.
type Config struct {
	Region       string `toml:"region"`
	Bucket       string `toml:"bucket"`
	RoleArn      string `toml:"role_arn"`
	TeacherModel string `toml:"teacher_model"`
	StudentModel string `toml:"student_model"`
	OutputPrefix string `toml:"output_prefix"`
}

// Load reads a TOML config file. A missing file at the default path yields a
// zero config so flags alone can drive a run; an explicitly requested file
// that does not exist is an error.
func Load(path string, explicit bool) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file %s does not exist", path)
		}
		return &cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse config %s: %w", path, err)
	}

	return &cfg, nil
}

// Merge returns value when non-empty, falling back to the config value.
func Merge(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
