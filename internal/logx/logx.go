package logx

import (
	"io"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Writer is a line filter + de-dup stage in front of the real log sink.
//   - allow (optional): only lines matching it pass
//   - deny  (optional): matching lines are dropped
//   - window: identical lines seen again within the window are dropped
//
// Upstream scrapes and debrid polling tend to repeat the same failure
// line many times per minute; the window keeps the log readable.
type Writer struct {
	dst         io.Writer
	allow, deny *regexp.Regexp
	window      time.Duration

	mu       sync.Mutex
	lastSeen map[string]time.Time
}

const pruneAbove = 4096 // lastSeen entries before stale keys are swept

func New(dst io.Writer, window time.Duration, allowPattern, denyPattern string) *Writer {
	w := &Writer{dst: dst, window: window, lastSeen: make(map[string]time.Time)}
	if p := strings.TrimSpace(allowPattern); p != "" {
		if re, err := regexp.Compile(p); err == nil {
			w.allow = re
		} // fail-soft: a bad pattern disables the filter, never the log
	}
	if p := strings.TrimSpace(denyPattern); p != "" {
		if re, err := regexp.Compile(p); err == nil {
			w.deny = re
		}
	}
	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	line := string(p)

	if w.deny != nil && w.deny.MatchString(line) {
		return len(p), nil
	}
	if w.allow != nil && !w.allow.MatchString(line) {
		return len(p), nil
	}

	if w.window <= 0 {
		return w.dst.Write(p)
	}

	key := strings.TrimRight(line, "\r\n")
	now := time.Now()

	w.mu.Lock()
	if last, ok := w.lastSeen[key]; ok && now.Sub(last) < w.window {
		w.mu.Unlock()
		return len(p), nil
	}
	w.lastSeen[key] = now
	if len(w.lastSeen) > pruneAbove {
		for k, t := range w.lastSeen {
			if now.Sub(t) >= w.window {
				delete(w.lastSeen, k)
			}
		}
	}
	w.mu.Unlock()

	return w.dst.Write(p)
}
