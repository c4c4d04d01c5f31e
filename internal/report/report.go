// Package report emits a machine-readable YAML summary of a generation run,
// so packaging pipelines can assert on skipped subcommands without scraping
// log output.
package report

import (
	"os"

	"github.com/agentstation/utc"
	"github.com/goccy/go-yaml"

	"github.com/agentstation/helpman/internal/assemble"
	"github.com/agentstation/helpman/pkg/constants"
	"github.com/agentstation/helpman/pkg/errors"
)

// Report summarizes one generation run.
type Report struct {
	Binary      string   `yaml:"binary"`
	Section     int      `yaml:"section"`
	Output      string   `yaml:"output"`
	Commands    int      `yaml:"commands"`
	GeneratedAt utc.Time `yaml:"generated_at"`
	Warnings    []Entry  `yaml:"warnings,omitempty"`
}

// Entry is one skipped subcommand.
type Entry struct {
	Command string `yaml:"command"`
	Reason  string `yaml:"reason"`
}

// New builds a Report from the outcome of a generation run.
func New(binary string, section int, output string, commands int, warnings []assemble.Warning) *Report {
	r := &Report{
		Binary:      binary,
		Section:     section,
		Output:      output,
		Commands:    commands,
		GeneratedAt: utc.Now(),
	}
	for _, w := range warnings {
		r.Warnings = append(r.Warnings, Entry{
			Command: w.Command(),
			Reason:  w.Err.Error(),
		})
	}
	return r
}

// Write marshals the report as YAML to the given path.
func (r *Report) Write(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return errors.WrapIO("encode", path, err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
