package report

import (
	"os/exec"
	"runtime"

	log "github.com/sirupsen/logrus"
)

// OpenViewer hands a rendered file to the platform image viewer. Failures
// are logged, not returned: a headless box without a viewer should not
// abort an experiment run.
func OpenViewer(file string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", file)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", file)
	default:
		cmd = exec.Command("xdg-open", file)
	}
	if err := cmd.Start(); err != nil {
		log.WithError(err).WithField("file", file).Warn("could not open viewer")
	}
}
