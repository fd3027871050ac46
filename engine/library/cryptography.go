package library

import (
	"crypto/sha256"
	"fmt"
)

// Sha256Sum returns the hex encoded digest of a string or byte slice.
func Sha256Sum(data interface{}) Sha256 {
	var b []byte
	switch d := data.(type) {
	case string:
		b = []byte(d)
	case []byte:
		b = d
	default:
		LogCLI(fmt.Sprintf("attempted to hash %T", data), 1)
	}
	return fmt.Sprintf("%x", sha256.Sum256(b))
}
