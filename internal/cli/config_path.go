package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Rem7474/CCNA1/internal/config"
)

// environ is a test seam for environment lookups.
var environ config.LookupFunc

// resolveConfig layers the config file, .env, and environment. An explicit
// path must exist; otherwise the file is searched from the working directory.
func resolveConfig(configPath string) (config.Resolved, error) {
	opts := config.ResolveOptions{Environ: environ}
	if strings.TrimSpace(configPath) != "" {
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return config.Resolved{}, fmt.Errorf("resolve config path: %w", err)
		}
		opts.ConfigPath = abs
	}
	return config.Resolve(opts)
}
