package gcode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteProgram persists a generated program under dir using name with any
// extension stripped (machine controllers expect extensionless program
// files). The directory is created when absent. The returned path is the
// file actually written. An error here never invalidates the program text;
// the caller can retry the write with the same string.
func WriteProgram(dir, name, program string) (string, error) {
	base := name
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	if base == "" {
		return "", fmt.Errorf("empty program name")
	}
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, base)
	if err := os.WriteFile(path, []byte(program), 0o644); err != nil {
		return "", fmt.Errorf("writing program: %w", err)
	}
	return path, nil
}
