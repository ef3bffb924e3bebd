package logger

import (
	"gopkg.in/yaml.v3"

	"github.com/philipp01105/patlog/appender"
)

// Snapshot is the introspectable configuration of a logger
type Snapshot struct {
	Name      string              `yaml:"name"`
	Level     Level               `yaml:"level,omitempty"`
	Formatter string              `yaml:"formatter,omitempty"`
	Appenders []appender.Snapshot `yaml:"appenders,omitempty"`
}

// Snapshot captures the logger's floor, formatter and own appenders
func (l *Logger) Snapshot() Snapshot {
	s := Snapshot{
		Name:  l.name,
		Level: l.Level(),
	}
	if f := l.Formatter(); f != nil {
		s.Formatter = f.Pattern()
	}
	for _, a := range l.ownAppenders() {
		s.Appenders = append(s.Appenders, a.Snapshot())
	}
	return s
}

// YAML renders the logger snapshot as a YAML document
func (l *Logger) YAML() string {
	return marshalYAML(l.Snapshot())
}

func marshalYAML(v any) string {
	out, err := yaml.Marshal(v)
	if err != nil {
		return ""
	}
	return string(out)
}
