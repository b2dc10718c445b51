// Package secret keeps credentials, such as the password inside DATABASE_URL, out of
// logs, traces and JSON.
package secret

// String renders as REDACTED through fmt and encoding. Raw is the only way back to
// the real value.
type String string

const redacted = "REDACTED"

func (s String) Raw() string {
	return string(s)
}

func (String) String() string   { return redacted }
func (String) GoString() string { return redacted }

// MarshalText covers encoding/json, including span fields serialised by libhoney.
func (String) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}
