package results

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"
)

const sessionIDSuffixBytes = 6

// NewSessionID returns a sortable id such as 20240102T030405Z-a1b2c3d4e5f6.
func NewSessionID() (string, error) {
	return NewSessionIDWithRand(time.Now().UTC(), rand.Reader)
}

// NewSessionIDWithRand builds a session id from a time and random source.
func NewSessionIDWithRand(now time.Time, r io.Reader) (string, error) {
	if r == nil {
		return "", fmt.Errorf("random reader is nil")
	}
	buf := make([]byte, sessionIDSuffixBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return FormatSessionID(now, hex.EncodeToString(buf)), nil
}

// FormatSessionID joins a UTC timestamp and a suffix.
func FormatSessionID(now time.Time, suffix string) string {
	return now.UTC().Format("20060102T150405Z") + "-" + suffix
}
