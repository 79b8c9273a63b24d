//go:build !unix

package process

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Exec runs path as a child with the caller's stdio and exits with its
// status. There is no in-place replacement here, so the caller never
// continues past a successful start either way.
func Exec(path string, argv []string, env []string) error {
	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Env:    env,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", path, err)
	}

	err := cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.ExitCode())
	}
	if err != nil {
		os.Exit(1)
	}
	os.Exit(0)
	return nil
}
