// pattern: Imperative Shell
package instance

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const (
	lockFileName = "splitpane.lock"
	logFileName  = "splitpane.log"
)

// LogFile is the log destination chosen for this process.
type LogFile struct {
	Path string
	fl   *flock.Flock
}

// Owner reports whether this process holds the shared log file.
func (l *LogFile) Owner() bool {
	return l.fl != nil
}

// Release drops the log file lock. Safe to call on a nil LogFile.
func (l *LogFile) Release() {
	if l == nil || l.fl == nil {
		return
	}
	_ = l.fl.Unlock()
	l.fl = nil
}

// AcquireLog picks the log file for this process. The first instance locks
// dataDir and owns splitpane.log; rotation is not safe across processes, so
// any concurrent instance logs to a file suffixed with its pid.
func AcquireLog(dataDir string) (*LogFile, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	fl := flock.New(filepath.Join(dataDir, lockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		name := fmt.Sprintf("splitpane-%d.log", os.Getpid())
		return &LogFile{Path: filepath.Join(dataDir, name)}, nil
	}
	return &LogFile{Path: filepath.Join(dataDir, logFileName), fl: fl}, nil
}
