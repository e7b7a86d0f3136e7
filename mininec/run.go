package mininec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

// DefaultSolver is the solver binary looked up on PATH when no explicit
// path is configured.
const DefaultSolver = "pymininec"

// Invoker runs one solver invocation and returns its stdout. The narrow
// interface keeps everything above this package testable without the
// external binary.
type Invoker interface {
	Invoke(ctx context.Context, args []string) (string, error)
}

// Exec invokes the real solver as a synchronous subprocess.
type Exec struct {
	Path string
}

// Invoke runs the solver with args. A non-zero exit status is fatal for the
// simulation call; stderr is folded into the returned error. Partial output
// from a failed run is never trusted.
func (e Exec) Invoke(ctx context.Context, args []string) (string, error) {
	path := e.Path
	if path == "" {
		path = DefaultSolver
	}
	log.Debugf("mininec: %s %s", path, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("mininec: %s failed: %w: %s", path, err, msg)
		}
		return "", fmt.Errorf("mininec: %s failed: %w", path, err)
	}
	return stdout.String(), nil
}
