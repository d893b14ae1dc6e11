package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/dsaini64/regulations/core"
)

// Key prefixes for different data types
const (
	regulationPrefix     = "regrec"
	regulationIDSeq      = "regrecseq"
	changeRecordPrefix   = "regchg"
	changeRecordDateIdx  = "regchgd"
	changeRecordIDSeq    = "regchgseq"
	lastRefreshKey       = "regmeta:lastrefresh"
)

// makeRegulationKey generates a key for a regulation by ID.
func makeRegulationKey(id core.ID) []byte {
	prefix := regulationPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, []byte(prefix))
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeChangeRecordKey generates a key for a change record by ID.
func makeChangeRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", changeRecordPrefix, id))
}

// indexMicros converts a detection time to the unsigned micros stored in
// the date index. Times at or before the epoch (notably the zero
// time.Time, whose UnixMicro is negative) clamp to 0 so they sort below
// every real entry instead of wrapping around to the top of the keyspace.
func indexMicros(t time.Time) uint64 {
	micros := t.UnixMicro()
	if micros < 0 {
		return 0
	}
	return uint64(micros)
}

// makeChangeDateKey generates a composite key for the detection-time index.
// Format: prefix:timestamp:id
func makeChangeDateKey(detectedAt time.Time, id core.ID) []byte {
	prefix := changeRecordDateIdx + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], indexMicros(detectedAt))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialChangeDateKey generates a partial key for range queries on
// detection time. Format: prefix:timestamp
func makePartialChangeDateKey(detectedAt time.Time) []byte {
	prefix := changeRecordDateIdx + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], indexMicros(detectedAt))
	return buf
}
