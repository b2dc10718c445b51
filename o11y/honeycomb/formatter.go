package honeycomb

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/honeycombio/libhoney-go/transmission"
)

// TextSender is a transmission.Sender writing one line per event for people reading stderr:
//
//	09:30:12 1e113 0.075ms db: test_collection.insert db.entity=test_collection result=success
type TextSender struct {
	w      io.Writer
	colour bool

	mu        sync.Mutex
	responses chan transmission.Response
}

func (t *TextSender) Start() error {
	t.responses = make(chan transmission.Response, 100)
	return nil
}

func (t *TextSender) Stop() error  { return nil }
func (t *TextSender) Flush() error { return nil }

func (t *TextSender) Add(ev *transmission.Event) {
	line := textLine(ev, t.colour)

	t.mu.Lock()
	_, _ = io.WriteString(t.w, line)
	t.mu.Unlock()

	t.SendResponse(transmission.Response{Metadata: ev.Metadata})
}

func (t *TextSender) TxResponses() chan transmission.Response {
	return t.responses
}

func (t *TextSender) SendResponse(r transmission.Response) bool {
	select {
	case t.responses <- r:
		return false
	default:
		return true
	}
}

// hiddenFields are in the line prefix already, or are globals repeated on every event.
var hiddenFields = map[string]bool{
	"name":        true,
	"duration_ms": true,
	"service":     true,
	"version":     true,
	"mode":        true,
}

func textLine(ev *transmission.Event, colour bool) string {
	paint := func(s string) string {
		if colour {
			return applyColour(s)
		}
		return s
	}

	name, _ := ev.Data["name"].(string)
	ms, _ := ev.Data["duration_ms"].(float64)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %.3fms %s",
		ev.Timestamp.Format("15:04:05"), paint(shortTraceID(ev.Data)), ms, paint(name))

	keys := make([]string, 0, len(ev.Data))
	for k := range ev.Data {
		if hiddenFields[k] || strings.HasPrefix(k, "trace.") || strings.HasPrefix(k, "meta.") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		label := k
		if colour && k == "error" {
			label = errorHighlight(k)
		}
		fmt.Fprintf(&sb, " %s=%v", label, ev.Data[k])
	}
	sb.WriteByte('\n')
	return sb.String()
}

// shortTraceID is enough of the trace id to follow one request through interleaved lines.
func shortTraceID(fields map[string]interface{}) string {
	id, _ := fields["trace.trace_id"].(string)
	if len(id) < 5 {
		return "-----"
	}
	return id[len(id)-5:]
}
