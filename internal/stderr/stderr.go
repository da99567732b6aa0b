//go:build !windows

package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"
)

var (
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	started    bool
)

// Start redirects fd 2 into a pipe whose lines are sent to Messages.
// Call it before the speaker is initialized. On error the program keeps
// the original stderr.
func Start() error {
	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	origStderr, err = syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(origStderr)
		origStderr = -1
		r.Close()
		w.Close()
		return err
	}

	pipeRead = r
	pipeWrite = w
	started = true

	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				publish(line)
			}
		}
	}()

	return nil
}

// WriteOriginal writes to the terminal's stderr even while capture runs.
func WriteOriginal(msg string) {
	if origStderr >= 0 {
		_, _ = syscall.Write(origStderr, []byte(msg))
		return
	}
	_, _ = os.Stderr.WriteString(msg)
}

// Stop restores the original stderr.
func Stop() {
	if !started {
		return
	}

	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)
	origStderr = -1

	pipeWrite.Close()
	pipeRead.Close()
	started = false
}
