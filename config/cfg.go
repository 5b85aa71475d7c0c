// Package config holds program configuration, logger and debug report.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplatesConfig struct {
		Regular string `yaml:"regular,omitempty" sanitize:"assure_file_access"`
		Retina  string `yaml:"retina,omitempty" sanitize:"assure_file_access"`
	}

	ImagesConfig struct {
		Workers         int  `yaml:"workers" validate:"gte=0,lte=256"`
		AutoOrientation bool `yaml:"auto_orientation"`
	}

	StylesheetConfig struct {
		Destination        string          `yaml:"destination" sanitize:"path_clean" validate:"required,filepath"`
		SelectorWithPseudo string          `yaml:"selector_with_pseudo"`
		Templates          TemplatesConfig `yaml:"templates"`
		Images             ImagesConfig    `yaml:"images"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Stylesheet StylesheetConfig `yaml:"stylesheet"`
		Logging    LoggingConfig    `yaml:"logging"`
		Reporting  ReporterConfig   `yaml:"reporting"`
	}
)

// NOTE: must match yaml field name above, value has its own {placeholders}
// and template expansion must leave it alone.
const SelectorWithPseudoFieldName = "selector_with_pseudo"

var requiredOptions = []func(*gencfg.ProcessingOptions){
	gencfg.WithDoNotExpandField(SelectorWithPseudoFieldName),
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields we know about are allowed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if !process {
		return cfg, nil
	}
	if err := gencfg.Sanitize(cfg); err != nil {
		return nil, err
	}
	if err := gencfg.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfiguration expands embedded configuration template to get defaults,
// puts values from the file at path (if any) on top of them and validates
// the result.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if cfg, err = unmarshalConfig(data, cfg, true); err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns expanded default configuration.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

// Dump returns active configuration as yaml.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
