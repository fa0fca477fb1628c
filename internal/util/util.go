package util

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"time"

	"github.com/pkg/errors"
)

// ChecksumReader computes the SHA256 checksum of everything read through it.
type ChecksumReader struct {
	r    io.Reader
	hash hash.Hash
}

// NewChecksumReader wraps r.
func NewChecksumReader(r io.Reader) *ChecksumReader {
	h := sha256.New()

	return &ChecksumReader{r: io.TeeReader(r, h), hash: h}
}

func (c *ChecksumReader) Read(p []byte) (int, error) {
	return c.r.Read(p)
}

// Sum returns the hex checksum of the bytes read so far.
func (c *ChecksumReader) Sum() string {
	return hex.EncodeToString(c.hash.Sum(nil))
}

const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// ReferenceNumber builds a human readable identifier such as BK-20260314-7KQ2MX.
func ReferenceNumber(prefix string, at time.Time) (string, error) {
	const suffixLen = 6

	buf := make([]byte, suffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes")
	}
	for i, b := range buf {
		buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}

	return prefix + "-" + at.UTC().Format("20060102") + "-" + string(buf), nil
}

// FormatBytes formats bytes into human readable format.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), units[exp])
}

// FormatDuration formats duration into human readable format (e.g., "1h30m", "5m10s", "45s").
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		m := int(duration.Minutes())
		s := int(duration.Seconds()) % 60

		return fmt.Sprintf("%dm%ds", m, s)
	}

	h := int(duration.Hours())
	m := int(duration.Minutes()) % 60

	return fmt.Sprintf("%dh%dm", h, m)
}
