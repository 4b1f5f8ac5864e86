package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// parseFile reads a YAML or JSON configuration file. JSON is accepted since
// it is valid YAML. Durations are written as Go duration strings ("30s").
func parseFile(path string) (*StructuredConfig, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("error loading config file %q: %w", path, err)
	}

	cfg := &StructuredConfig{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("error decoding config file %q: %w", path, err)
	}

	return cfg, nil
}
