package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const scaffoldHeader = `# ccnaquiz settings. Relative paths are resolved from the directory that
# contains .ccnaquiz/. CCNAQUIZ_* environment variables and command line
# flags override these values.
`

// Render returns the YAML text written by Scaffold.
func Render(cfg Config) ([]byte, error) {
	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("render config: %w", err)
	}
	return append([]byte(scaffoldHeader), body...), nil
}

// Scaffold writes a new config file, refusing to overwrite an existing one.
func Scaffold(configPath string, cfg Config) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return err
	}
	payload, err := Render(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, payload, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
