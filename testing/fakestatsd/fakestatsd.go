// Package fakestatsd is a UDP statsd server that records what it receives, for
// asserting on the metrics a real statsd client sends.
package fakestatsd

import (
	"bytes"
	"errors"
	"net"
	"strings"
	"sync"
	"testing"

	"gotest.tools/v3/assert"
)

type FakeStatsd struct {
	conn *net.UDPConn

	mu      sync.RWMutex
	metrics []Metric
}

// New starts a server on a random local port. It is closed when the test ends.
func New(t testing.TB) *FakeStatsd {
	t.Helper()

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	assert.Assert(t, err)

	s := &FakeStatsd{conn: conn}
	go s.listen()
	t.Cleanup(func() {
		_ = s.conn.Close()
	})

	return s
}

func (s *FakeStatsd) Addr() string {
	return s.conn.LocalAddr().String()
}

// Metric is one statsd line: name:value|type|@rate|#tags. Value keeps everything
// between the name and the tags.
type Metric struct {
	Name  string
	Value string
	Tags  []string
}

func (s *FakeStatsd) Metrics() []Metric {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metrics := make([]Metric, len(s.metrics))
	copy(metrics, s.metrics)
	return metrics
}

// Named returns the received metrics called name.
func (s *FakeStatsd) Named(name string) []Metric {
	var named []Metric
	for _, m := range s.Metrics() {
		if m.Name == name {
			named = append(named, m)
		}
	}
	return named
}

func (s *FakeStatsd) listen() {
	buf := make([]byte, 65535)
	for {
		n, err := s.conn.Read(buf)
		if errors.Is(err, net.ErrClosed) {
			return
		}
		for _, line := range bytes.Split(buf[:n], []byte("\n")) {
			line = bytes.TrimSpace(line)
			if len(line) == 0 {
				continue
			}
			s.record(parse(string(line)))
		}
	}
}

func (s *FakeStatsd) record(m Metric) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = append(s.metrics, m)
}

func parse(raw string) Metric {
	name, rest, _ := strings.Cut(raw, ":")
	value, tags, found := strings.Cut(rest, "|#")
	m := Metric{Name: name, Value: value}
	if found {
		m.Tags = strings.Split(tags, ",")
	}
	return m
}
