// Package testrand produces random names for isolating test resources.
package testrand

import (
	"crypto/rand"
	"encoding/hex"
)

// Hex returns n random lower case hex characters.
func Hex(n int) string {
	b := make([]byte, (n+1)/2)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)[:n]
}
