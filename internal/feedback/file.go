package feedback

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// TimestampLayout matches the microsecond timestamps already present in old logs.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// FileLog appends operator feedback to a plain-text file, one entry per line.
type FileLog struct {
	path string
	mu   sync.Mutex
}

func NewFileLog(path string) (*FileLog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to ensure feedback dir: %w", err)
		}
	}
	return &FileLog{path: path}, nil
}

// Append writes "[timestamp] text". Blank feedback is ignored and reported
// as not written.
func (l *FileLog) Append(text string, at time.Time) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("open append: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "[%s] %s\n", at.Format(TimestampLayout), text); err != nil {
		return false, fmt.Errorf("write feedback: %w", err)
	}
	return true, nil
}
