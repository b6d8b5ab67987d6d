// Package schedule compiles validated message definitions into the
// fixed-stride schedule definition table consumed by a cyclic-executive
// scheduler, and derives the wake-up MID symbol and message-index tables.
package schedule

import (
	"fmt"
	"sort"

	"github.com/cfstools/schedtab/internal/catalog"
)

// Schedule entry field values. Active entries dispatch one message send;
// unused entries pad every row out to the fixed slot count.
const (
	Enabled      = "SCH_ENABLED"
	Unused       = "SCH_UNUSED"
	ActivitySend = "SCH_ACTIVITY_SEND_MSG"
	GroupNone    = "SCH_GROUP_NONE"
)

// Message is one schedule row definition: the ordered applications to
// dispatch in one pass through the table.
type Message struct {
	Name string
	Apps []catalog.Application
}

// Entry is one slot of a compiled schedule row.
type Entry struct {
	Enable       string
	Activity     string
	Count        string
	Offset       string
	MessageIndex string
	Group        string
}

// unusedEntry pads slots no application occupies.
var unusedEntry = Entry{
	Enable:       Unused,
	Activity:     "0",
	Count:        "0",
	Offset:       "0",
	MessageIndex: "0",
	Group:        GroupNone,
}

// Row is one compiled schedule row: exactly slotCount entries, plus the
// number of applications dropped because the message overflowed the slot
// count.
type Row struct {
	Name      string
	Entries   []Entry
	Truncated int
}

// Table is the compiled schedule definition table.
type Table struct {
	rows      []Row
	slotCount int
}

// RowRangeError reports a request for a schedule row that was never
// compiled. This is a programming error in the caller, not a data
// condition.
type RowRangeError struct {
	Index int
	Rows  int
}

func (e *RowRangeError) Error() string {
	return fmt.Sprintf("schedule: row %d out of range (table has %d rows)", e.Index, e.Rows)
}

// Compile builds the schedule definition table. Each message's
// applications are ordered by descending priority (stable, so ties keep
// their prior order), packed into the first slots of the row, and the row
// is padded with unused entries to exactly slotCount. Messages carrying
// more applications than slotCount are truncated after ordering, so the
// lowest-priority overflow is what gets dropped; Row.Truncated records
// the count.
//
// MessageIndex references resolve against the wake-up MID define table; a
// wake-up ID with no define resolves to the literal "0" rather than
// failing the compile.
func Compile(cat *catalog.Catalog, msgs []Message, slotCount int) (*Table, error) {
	if slotCount <= 0 {
		return nil, fmt.Errorf("schedule: slot count must be positive, got %d", slotCount)
	}

	symbols := make(map[int]string, cat.Len())
	for _, d := range Defines(cat) {
		symbols[d.ID] = d.Symbol
	}

	t := &Table{slotCount: slotCount}
	for _, msg := range msgs {
		apps := orderByPriority(msg.Apps)

		row := Row{Name: msg.Name, Entries: make([]Entry, slotCount)}
		if len(apps) > slotCount {
			row.Truncated = len(apps) - slotCount
			apps = apps[:slotCount]
		}

		for pos := range row.Entries {
			if pos >= len(apps) {
				row.Entries[pos] = unusedEntry
				continue
			}
			app := apps[pos]
			ref, ok := symbols[app.WakeUpID]
			if !ok {
				ref = "0"
			}
			row.Entries[pos] = Entry{
				Enable:       Enabled,
				Activity:     ActivitySend,
				Count:        "1",
				Offset:       "0",
				MessageIndex: ref,
				Group:        app.Group,
			}
		}

		t.rows = append(t.rows, row)
	}

	return t, nil
}

// orderByPriority returns the applications sorted by descending priority.
// The sort is stable: equal priorities keep their message order. The
// sort compares the two candidates to each other; the system this
// replaces compared an element against itself, which made priority
// ordering a no-op.
func orderByPriority(apps []catalog.Application) []catalog.Application {
	sorted := make([]catalog.Application, len(apps))
	copy(sorted, apps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return sorted
}

// Row returns the compiled row at the given index.
func (t *Table) Row(i int) (Row, error) {
	if i < 0 || i >= len(t.rows) {
		return Row{}, &RowRangeError{Index: i, Rows: len(t.rows)}
	}
	return t.rows[i], nil
}

// Rows returns all compiled rows in message order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Len returns the number of compiled rows.
func (t *Table) Len() int { return len(t.rows) }

// SlotCount returns the fixed width of every row.
func (t *Table) SlotCount() int { return t.slotCount }

// TruncatedTotal sums the applications dropped across all rows.
func (t *Table) TruncatedTotal() int {
	n := 0
	for _, r := range t.rows {
		n += r.Truncated
	}
	return n
}

// Strings renders an entry as its six table columns in emit order.
func (e Entry) Strings() [6]string {
	return [6]string{e.Enable, e.Activity, e.Count, e.Offset, e.MessageIndex, e.Group}
}

// ActiveCount returns how many of the row's entries dispatch a message.
func (r Row) ActiveCount() int {
	n := 0
	for _, e := range r.Entries {
		if e.Enable == Enabled {
			n++
		}
	}
	return n
}
