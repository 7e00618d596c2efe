// Package stats counts what a conversion wrote: formatting events, style
// commands and output bytes.
package stats

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/zeebo/xxh3"
)

// Stats tracks the output of a conversion
type Stats struct {
	Documents    uint64        `json:"documents"`
	Objects      uint64        `json:"objects"`
	Arrays       uint64        `json:"arrays"`
	Keys         uint64        `json:"keys"`
	Strings      uint64        `json:"strings"`
	Numbers      uint64        `json:"numbers"`
	Bools        uint64        `json:"bools"`
	Nulls        uint64        `json:"nulls"`
	StyleSets    uint64        `json:"style_sets"`
	StyleResets  uint64        `json:"style_resets"`
	BytesWritten uint64        `json:"bytes_written"`
	StartTime    time.Time     `json:"start_time"`
	Duration     time.Duration `json:"duration"`

	digest *xxh3.Hasher
}

// New returns Stats with the clock started.
func New() *Stats {
	return &Stats{StartTime: time.Now(), digest: xxh3.New()}
}

func (s *Stats) IncrementDocuments() {
	atomic.AddUint64(&s.Documents, 1)
}

func (s *Stats) GetDocuments() uint64 {
	return atomic.LoadUint64(&s.Documents)
}

// Checksum returns the xxh3 digest of the document bytes written so far.
// Style escape sequences are not part of it.
func (s *Stats) Checksum() uint64 {
	if s.digest == nil {
		return 0
	}
	return s.digest.Sum64()
}

func (s *Stats) addBytes(p []byte) {
	atomic.AddUint64(&s.BytesWritten, uint64(len(p)))
	if s.digest == nil {
		s.digest = xxh3.New()
	}
	_, _ = s.digest.Write(p)
}

// Finish records the elapsed time since StartTime.
func (s *Stats) Finish() {
	s.Duration = time.Since(s.StartTime)
}

// Values returns the number of scalar values seen.
func (s *Stats) Values() uint64 {
	return atomic.LoadUint64(&s.Strings) + atomic.LoadUint64(&s.Numbers) +
		atomic.LoadUint64(&s.Bools) + atomic.LoadUint64(&s.Nulls)
}

// FormatBytes converts a byte count to a human-readable string
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
