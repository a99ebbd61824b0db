// Package rng derives the pseudorandom source owned by each session.
//
// Sessions never share RNG state. With a server seed configured, a session's
// source is HMAC(seed, sessionID), so any session can be replayed from its id.
package rng

import (
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
)

// SeedFor returns the two PCG seed words for a session.
// It takes the first 16 bytes of HMAC-SHA256(seed, sessionID).
func SeedFor(seed, sessionID string) (uint64, uint64) {
	h := hmac.New(sha256.New, []byte(seed))
	h.Write([]byte(sessionID))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8]), binary.BigEndian.Uint64(sum[8:16])
}

// ForSession returns a fresh source for sessionID. An empty seed yields a
// source seeded from crypto/rand.
func ForSession(seed, sessionID string) *rand.Rand {
	if seed == "" {
		var b [16]byte
		_, _ = crand.Read(b[:])
		return rand.New(rand.NewPCG(binary.BigEndian.Uint64(b[:8]), binary.BigEndian.Uint64(b[8:])))
	}
	hi, lo := SeedFor(seed, sessionID)
	return rand.New(rand.NewPCG(hi, lo))
}
