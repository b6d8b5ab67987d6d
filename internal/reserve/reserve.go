// Package reserve maintains the collision-free space of reserved message
// IDs. Entries are either single IDs or inclusive ranges, written as
// "<low>" or "<low> - <high>" in decimal or 0x-prefixed hex.
package reserve

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var errReversedRange = errors.New("range upper bound below lower bound")

// NotRange marks the High field of a single-value entry.
const NotRange = -1

// Entry is one reserved message ID or ID range.
type Entry struct {
	Low         int
	High        int // NotRange when the entry is a single ID
	Description string
}

// FormatError reports a message ID string that could not be parsed.
type FormatError struct {
	Input string
	Token string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("reserve: invalid message ID %q: bad token %q", e.Input, e.Token)
}

func (e *FormatError) Unwrap() error { return e.Err }

// rangeSep splits "low - high" with optional whitespace around the dash.
var rangeSep = regexp.MustCompile(`\s*-\s*`)

// ParseEntry parses a single message ID or an ID range. Numeric tokens may
// be decimal or 0x-prefixed hexadecimal.
func ParseEntry(text string) (Entry, error) {
	entry := Entry{High: NotRange}

	tokens := rangeSep.Split(strings.TrimSpace(text), 2)

	low, err := decodeID(tokens[0])
	if err != nil {
		return Entry{}, &FormatError{Input: text, Token: tokens[0], Err: err}
	}
	entry.Low = low

	if len(tokens) == 2 {
		high, err := decodeID(tokens[1])
		if err != nil {
			return Entry{}, &FormatError{Input: text, Token: tokens[1], Err: err}
		}
		if high < low {
			return Entry{}, &FormatError{Input: text, Token: tokens[1], Err: errReversedRange}
		}
		entry.High = high
	}

	return entry, nil
}

// decodeID accepts decimal or 0x-prefixed hex, like Integer.decode.
func decodeID(token string) (int, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(token), 0, 32)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// IsRange reports whether the entry covers more than a single ID slot.
func (e Entry) IsRange() bool { return e.High != NotRange }

// String renders the entry in the canonical stored form.
func (e Entry) String() string {
	if !e.IsRange() {
		return strconv.Itoa(e.Low)
	}
	return fmt.Sprintf("%d - %d", e.Low, e.High)
}

// Overlaps reports whether two entries claim any common ID. The test is
// symmetric: Overlaps(a, b) == Overlaps(b, a) for all entries.
func Overlaps(a, b Entry) bool {
	switch {
	// Both single values: overlap means equality.
	case !a.IsRange() && !b.IsRange():
		return a.Low == b.Low

	// Single value inside the other's range.
	case !a.IsRange():
		return a.Low >= b.Low && a.Low <= b.High

	case !b.IsRange():
		return b.Low >= a.Low && b.Low <= a.High

	// Two ranges: overlap when the intersection is non-empty.
	default:
		return max(a.Low, b.Low) <= min(a.High, b.High)
	}
}

// Set is an ordered collection of reserved ID entries.
type Set struct {
	entries []Entry
}

// NewSet returns a Set seeded with the given entries. The entries are
// stored as-is; callers loading from persisted rows should use LoadEntries.
func NewSet(entries []Entry) *Set {
	s := &Set{}
	s.entries = append(s.entries, entries...)
	return s
}

// Entries returns the stored entries in insertion order.
func (s *Set) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of stored entries (ranges count as one).
func (s *Set) Len() int { return len(s.entries) }

// Contains reports whether the candidate overlaps any stored entry.
func (s *Set) Contains(candidate Entry) bool {
	for _, e := range s.entries {
		if Overlaps(candidate, e) {
			return true
		}
	}
	return false
}

// AddAllNew appends each candidate that does not overlap an existing
// reservation and returns the number added. Overlapping candidates are
// already covered and are dropped without error.
func (s *Set) AddAllNew(candidates []Entry) int {
	added := 0
	for _, c := range candidates {
		if !s.Contains(c) {
			s.entries = append(s.entries, c)
			added++
		}
	}
	return added
}

// Expand materializes every entry into the flat list of individual
// reserved ID values, in entry order. A range [low, high] contributes
// high-low+1 values; a range with low == high contributes one.
func (s *Set) Expand() []int {
	var ids []int
	for _, e := range s.entries {
		ids = append(ids, e.Low)
		if e.IsRange() {
			for v := e.Low + 1; v <= e.High; v++ {
				ids = append(ids, v)
			}
		}
	}
	return ids
}

// LoadEntries parses persisted (msgID, description) rows. In lenient mode
// malformed rows are skipped and returned in bad for the caller to report;
// in strict mode the first malformed row fails the whole load.
func LoadEntries(rows [][2]string, strict bool) (entries []Entry, bad []string, err error) {
	for _, row := range rows {
		e, perr := ParseEntry(row[0])
		if perr != nil {
			if strict {
				return nil, nil, perr
			}
			bad = append(bad, row[0])
			continue
		}
		e.Description = row[1]
		entries = append(entries, e)
	}
	return entries, bad, nil
}
