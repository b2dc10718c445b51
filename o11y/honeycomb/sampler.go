package honeycomb

import (
	"hash/crc32"
	"math"

	"github.com/honeycombio/dynsampler-go"
)

// TraceSampler thins out noisy traces, such as passing readiness checks, at a rate looked
// up by a key built from the span fields.
type TraceSampler struct {
	KeyFunc func(map[string]interface{}) string
	Sampler dynsampler.Sampler
}

// Hook is a beeline SamplerHook. The keep decision hashes the trace id, so every span
// of a trace is kept or dropped together.
func (s *TraceSampler) Hook(fields map[string]interface{}) (keep bool, rate int) {
	rate = s.Sampler.GetSampleRate(s.KeyFunc(fields))
	if rate <= 1 {
		return true, 1
	}

	traceID, _ := fields["trace.trace_id"].(string)
	if crc32.ChecksumIEEE([]byte(traceID)) < math.MaxUint32/uint32(rate) { //nolint:gosec
		return true, rate
	}
	return false, 0
}
