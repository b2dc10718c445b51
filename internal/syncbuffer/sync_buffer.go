// Package syncbuffer is a goroutine safe buffer for capturing o11y output in tests.
package syncbuffer

import (
	"bytes"
	"strings"
	"sync"
)

type SyncBuffer struct {
	mu  sync.RWMutex
	buf bytes.Buffer
}

func (b *SyncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *SyncBuffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.buf.String()
}

func (b *SyncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.buf.Reset()
}

// LinesContaining returns every written line that contains needle.
func (b *SyncBuffer) LinesContaining(needle string) []string {
	var lines []string
	for _, l := range strings.Split(b.String(), "\n") {
		if strings.Contains(l, needle) {
			lines = append(lines, l)
		}
	}
	return lines
}
