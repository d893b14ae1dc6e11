package core

//go:generate go run ../cmd/musgen

import (
	"strings"
	"time"
)

// ID is a unique identifier for persisted entities.
// Regulation and change IDs are assigned from database sequences at
// persistence time and are reassigned on every refresh.
type ID uint64

// RegulationStatus classifies the legal posture of a regulation.
type RegulationStatus int

const (
	// StatusUnknown means the status could not be determined.
	// It is also the zero value for records that have not been classified yet.
	StatusUnknown RegulationStatus = iota
	// StatusProhibited marks regulations that explicitly forbid activities.
	StatusProhibited
	// StatusRequiresCompliance marks regulations that establish requirements
	// to follow. The vast majority of Title 21 regulations fall here.
	StatusRequiresCompliance
	// StatusReserved marks sections reserved for future use.
	StatusReserved
	// StatusAdministrative marks organizational material such as chapter
	// headings and definitions sections.
	StatusAdministrative
)

// String returns the display form used in the database, API responses and
// LLM prompts.
func (s RegulationStatus) String() string {
	switch s {
	case StatusProhibited:
		return "Prohibited"
	case StatusRequiresCompliance:
		return "Requires Compliance"
	case StatusReserved:
		return "Reserved"
	case StatusAdministrative:
		return "Administrative"
	default:
		return "Unknown"
	}
}

// ParseStatus maps a display string back to a RegulationStatus. It is
// lenient about case and accepts partial forms ("prohibits", "compliance")
// so that LLM output can be normalized. Unrecognized input maps to
// StatusUnknown.
func ParseStatus(s string) RegulationStatus {
	switch lower := strings.ToLower(strings.TrimSpace(s)); {
	case strings.Contains(lower, "prohibit"):
		return StatusProhibited
	case strings.Contains(lower, "compliance"), strings.Contains(lower, "requirement"):
		return StatusRequiresCompliance
	case strings.Contains(lower, "reserved"):
		return StatusReserved
	case strings.Contains(lower, "admin"):
		return StatusAdministrative
	default:
		return StatusUnknown
	}
}

// Statuses lists all valid status values.
var Statuses = []RegulationStatus{
	StatusUnknown,
	StatusProhibited,
	StatusRequiresCompliance,
	StatusReserved,
	StatusAdministrative,
}

// Regulation is a single Title 21 listing entry as scraped from the eCFR
// structure pages. Chapter, subchapter, part and section range are free-form
// strings and may be empty depending on the nesting level of the entry.
type Regulation struct {
	Id           ID
	Title        string // always "Title 21"
	Chapter      string
	Subchapter   string
	Part         string
	SectionRange string
	Description  string
	URL          string
	Status       RegulationStatus
	StatusReason string
	LastUpdated  time.Time
}

// lookupKeyDescriptionLen bounds the description prefix used for matching
// records across refreshes.
const lookupKeyDescriptionLen = 100

// LookupKey returns the identity used to match this regulation against a
// record from a previous refresh. Numeric IDs are reassigned on every
// refresh, so matching uses part plus a description prefix instead.
// Two distinct regulations sharing part and prefix collide; the later one
// wins when building a snapshot map. This is a known limitation.
func (r *Regulation) LookupKey() string {
	return r.Part + "|" + Truncate(r.Description, lookupKeyDescriptionLen)
}

// ChangeType distinguishes the kinds of detected regulation changes.
type ChangeType int

const (
	// ChangeAdded marks a regulation whose lookup key was not present in the
	// previous snapshot.
	ChangeAdded ChangeType = iota + 1
	// ChangeUpdated marks a field-level difference on an existing regulation.
	ChangeUpdated
)

// String returns the wire form of the change type.
func (t ChangeType) String() string {
	switch t {
	case ChangeAdded:
		return "added"
	case ChangeUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// ChangeRecord captures one detected difference between refresh cycles.
// RegulationId is a weak reference: it names the ID assigned during the
// refresh that detected the change and may dangle after later refreshes.
// Notified defaults to false and is flipped by an external notification
// consumer, never by this system.
type ChangeRecord struct {
	Id           ID
	RegulationId ID
	ChangeType   ChangeType
	FieldName    string
	OldValue     string
	NewValue     string
	DetectedAt   time.Time
	Notified     bool
}

// IndexedRegulation is the reduced projection of a Regulation kept in the
// vector index metadata set. Description is truncated at indexing time and
// Status is the display string, ready to serve in search results.
type IndexedRegulation struct {
	Id           ID
	Title        string
	Chapter      string
	Subchapter   string
	Part         string
	SectionRange string
	Description  string
	Status       string
	URL          string
}

// IndexSnapshot is the on-disk form of a built vector index. Vectors[i] is
// the embedding for Entries[i]; Dim is the embedding dimension, fixed for
// the lifetime of one snapshot.
type IndexSnapshot struct {
	Dim     int
	Entries []IndexedRegulation
	Vectors [][]float32
}

// RefreshInfo summarizes one completed refresh cycle.
type RefreshInfo struct {
	JobID       string
	CompletedAt time.Time
	Total       int
	Changes     int
}

// MatchSource records which ranking signal produced a search hit.
type MatchSource string

const (
	SourceSemantic MatchSource = "semantic"
	SourceKeyword  MatchSource = "keyword"
	SourceBoth     MatchSource = "both"
)

// RankedResult is one entry of a merged search result list.
type RankedResult struct {
	Id           ID          `json:"id"`
	Chapter      string      `json:"chapter"`
	Subchapter   string      `json:"subchapter"`
	Part         string      `json:"part"`
	SectionRange string      `json:"section_range"`
	Description  string      `json:"description"`
	Status       string      `json:"status"`
	URL          string      `json:"url"`
	Score        float64     `json:"score"`
	Source       MatchSource `json:"source"`
}

// Truncate returns at most n runes of s. Truncation is rune-based so that
// multi-byte characters in regulation text are never split.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
