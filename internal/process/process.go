// Package process hands the current process over to another program.
package process

import (
	"fmt"
	"os/exec"
)

// Execer runs a program in place of the caller. Exec returns only when the
// hand-off could not happen.
type Execer interface {
	Exec(path string, argv []string, env []string) error
}

// System is the Execer backed by the operating system.
type System struct{}

// Exec implements Execer.
func (System) Exec(path string, argv []string, env []string) error {
	return Exec(path, argv, env)
}

// LookPath resolves name against PATH the way a shell would.
func LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("failed to find %s: %w", name, err)
	}
	return path, nil
}
