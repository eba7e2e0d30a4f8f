package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads, parses, normalizes, and validates a config file. Relative paths
// in the file are resolved against the project root.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	ResolvePaths(&cfg, RootFromConfigPath(path))
	return cfg, nil
}

// ResolveOptions controls how Resolve finds its inputs.
type ResolveOptions struct {
	// ConfigPath is an explicit config file. When empty the file is searched
	// upward from StartDir and its absence is not an error.
	ConfigPath string
	StartDir   string
	// Environ defaults to os.LookupEnv.
	Environ LookupFunc
}

// Resolved is a fully layered config plus where it came from.
type Resolved struct {
	Config Config
	// Path is the config file used, or "" when defaults were used.
	Path string
	// Root is the project root used for .env and relative paths.
	Root string
}

// Resolve layers defaults, the config file, .env, and the process
// environment, in that order of precedence.
func Resolve(opts ResolveOptions) (Resolved, error) {
	path := opts.ConfigPath
	if path == "" {
		found, err := FindConfigPath(opts.StartDir)
		switch {
		case err == nil:
			path = found
		case errors.Is(err, ErrConfigNotFound):
		default:
			return Resolved{}, err
		}
	}

	out := Resolved{Config: Default()}
	if path != "" {
		cfg, err := Load(path)
		if err != nil {
			return Resolved{}, err
		}
		out.Config = cfg
		out.Path = path
		out.Root = RootFromConfigPath(path)
	} else {
		root := opts.StartDir
		if root == "" {
			wd, err := os.Getwd()
			if err != nil {
				return Resolved{}, fmt.Errorf("get working directory: %w", err)
			}
			root = wd
		}
		out.Root = filepath.Clean(root)
	}

	dotenv, err := ReadDotEnv(out.Root)
	if err != nil {
		return Resolved{}, err
	}
	if err := ApplyEnv(&out.Config, Lookup(opts.Environ, dotenv)); err != nil {
		return Resolved{}, err
	}
	Normalize(&out.Config)
	if err := Validate(&out.Config); err != nil {
		return Resolved{}, err
	}
	return out, nil
}
