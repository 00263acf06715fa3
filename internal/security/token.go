package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// SessionToken is an opaque session identifier. It is a distinct type so raw
// tokens do not mix with ordinary strings; use Redacted for log output.
type SessionToken string

func (t SessionToken) String() string { return string(t) }

// Redacted keeps a short prefix for log correlation and masks the rest.
func (t SessionToken) Redacted() string {
	if len(t) <= 4 {
		return "****"
	}
	return string(t[:4]) + "****"
}

// TokenBytes is the number of random bytes drawn per session token. The
// encoded form has constant length for a fixed byte count.
const TokenBytes = 8

// TokenSource mints session tokens from a process-wide cryptographically
// secure source. It is constructed once at startup and shared by reference;
// crypto/rand.Reader is safe for concurrent draws without external locking.
type TokenSource struct {
	rng io.Reader
}

// NewTokenSource wires the process-wide secure source and pre-warms it with
// a throwaway fill so the first login does not pay initialization latency.
func NewTokenSource() (*TokenSource, error) {
	s := &TokenSource{rng: rand.Reader}
	var warm [TokenBytes]byte
	if _, err := io.ReadFull(s.rng, warm[:]); err != nil {
		return nil, fmt.Errorf("warm up secure rng: %w", err)
	}
	return s, nil
}

// Mint draws TokenBytes random bytes and encodes them as standard base64.
// An error here means the secure source itself failed, a fatal environment
// condition that is not retried.
func (s *TokenSource) Mint() (SessionToken, error) {
	buf := make([]byte, TokenBytes)
	if _, err := io.ReadFull(s.rng, buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return SessionToken(base64.StdEncoding.EncodeToString(buf)), nil
}
