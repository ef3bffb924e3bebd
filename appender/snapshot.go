package appender

import (
	"gopkg.in/yaml.v3"

	"github.com/philipp01105/patlog/core"
)

// Snapshot is the introspectable configuration of an appender.
// Formatter is set only when the appender has its own formatter.
type Snapshot struct {
	Type       string     `yaml:"type"`
	Level      core.Level `yaml:"level,omitempty"`
	Formatter  string     `yaml:"formatter,omitempty"`
	File       string     `yaml:"file,omitempty"`
	MaxSizeMB  int        `yaml:"max_size_mb,omitempty"`
	MaxBackups int        `yaml:"max_backups,omitempty"`
	MaxAgeDays int        `yaml:"max_age_days,omitempty"`
	Async      bool       `yaml:"async,omitempty"`
	BufferSize int        `yaml:"buffer_size,omitempty"`
}

// YAML renders the snapshot as a YAML document
func (s Snapshot) YAML() string {
	out, err := yaml.Marshal(s)
	if err != nil {
		return ""
	}
	return string(out)
}
