package id

import (
	"crypto/rand"
	"encoding/hex"
)

const rawLen = 16

// Generator creates opaque identifiers for journal entries and
// exporter requests.
type Generator interface {
	New() string
}

type RandomHex struct{}

func (RandomHex) New() string {
	buf := make([]byte, rawLen)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
