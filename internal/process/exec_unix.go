//go:build unix

package process

import (
	"fmt"
	"syscall"
)

// Exec replaces the process image with path. argv[0] is passed as given.
func Exec(path string, argv []string, env []string) error {
	if err := syscall.Exec(path, argv, env); err != nil {
		return fmt.Errorf("failed to exec %s: %w", path, err)
	}
	return nil
}
