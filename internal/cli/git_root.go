package cli

import (
	"os"
	"path/filepath"
)

// discoverGitRoot walks up from start looking for a .git entry. It returns ""
// outside a repository.
func discoverGitRoot(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
