package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/certolabs/certo/pkg/certo/parse"
)

// dialectFile is the YAML shape of a dialect override. Omitted keywords
// fall back to the Spanish defaults, so a file can override just the
// markers it cares about.
type dialectFile struct {
	If       string `yaml:"if"`
	Then     string `yaml:"then"`
	And      string `yaml:"and"`
	Or       string `yaml:"or"`
	CFMarker string `yaml:"cf_marker"`
	Goal     string `yaml:"goal"`
}

// LoadDialect loads a keyword dialect from a YAML file.
func LoadDialect(path string) (parse.Dialect, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return parse.Dialect{}, err
	}

	var df dialectFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return parse.Dialect{}, fmt.Errorf("parse dialect file: %w", err)
	}

	d := parse.Spanish()
	if df.If != "" {
		d.If = df.If
	}
	if df.Then != "" {
		d.Then = df.Then
	}
	if df.And != "" {
		d.And = df.And
	}
	if df.Or != "" {
		d.Or = df.Or
	}
	if df.CFMarker != "" {
		d.CFMarker = df.CFMarker
	}
	if df.Goal != "" {
		d.Goal = df.Goal
	}

	if err := d.Validate(); err != nil {
		return parse.Dialect{}, err
	}
	return d, nil
}
