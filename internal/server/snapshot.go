package server

import (
	"sync"
	"time"

	"github.com/cfstools/schedtab/internal/params"
	"github.com/cfstools/schedtab/internal/schedule"
	"github.com/cfstools/schedtab/internal/store"
	"github.com/cfstools/schedtab/internal/validator"
	"gorm.io/gorm"
)

// AppView is one catalog application as served over the API.
type AppView struct {
	Name     string `json:"name"`
	WakeUpID int    `json:"wakeup_id"`
	Priority int    `json:"priority"`
	Group    string `json:"group"`
}

// ReservedView is one reserved message ID entry.
type ReservedView struct {
	MsgID       string `json:"msg_id"`
	Description string `json:"description,omitempty"`
}

// DefineView is one wake-up MID define.
type DefineView struct {
	Symbol string `json:"symbol"`
	ID     int    `json:"id"`
}

// EntryView is one schedule slot.
type EntryView struct {
	Enable       string `json:"enable"`
	Activity     string `json:"activity"`
	Count        string `json:"count"`
	Offset       string `json:"offset"`
	MessageIndex string `json:"message_index"`
	Group        string `json:"group"`
}

// RowView is one compiled schedule row.
type RowView struct {
	Name      string      `json:"name"`
	Truncated int         `json:"truncated,omitempty"`
	Entries   []EntryView `json:"entries"`
}

// Snapshot is one atomic compile pass over the project database. All API
// reads serve from the current snapshot; a refresh builds a new one and
// swaps it in whole.
type Snapshot struct {
	BuiltAt    time.Time      `json:"built_at"`
	Params     params.Params  `json:"params"`
	Reserved   []ReservedView `json:"reserved"`
	Apps       []AppView      `json:"apps"`
	Groups     []string       `json:"groups"`
	Defines    []DefineView   `json:"defines"`
	IndexTable []string       `json:"index_table"`
	Rows       []RowView      `json:"rows"`
	Warnings   []string       `json:"warnings,omitempty"`
}

// BuildSnapshot loads the catalog, parameters, reservations and message
// definitions, validates and compiles them, and packages the result.
// Recoverable conditions (parameter fallback, malformed rows, validator
// rejects, out-of-range wake-up IDs) land in Warnings rather than
// failing the build.
func BuildSnapshot(db *gorm.DB) (*Snapshot, error) {
	snap := &Snapshot{BuiltAt: time.Now()}

	p, err := store.LoadParams(db)
	if err != nil {
		snap.Warnings = append(snap.Warnings, err.Error())
	}
	snap.Params = p

	set, badRows, err := store.LoadReserved(db, false)
	if err != nil {
		return nil, err
	}
	for _, bad := range badRows {
		snap.Warnings = append(snap.Warnings, "reserved ID "+bad+" could not be parsed")
	}
	for _, e := range set.Entries() {
		snap.Reserved = append(snap.Reserved, ReservedView{MsgID: e.String(), Description: e.Description})
	}

	cat, warnings, err := store.LoadCatalog(db)
	if err != nil {
		return nil, err
	}
	snap.Warnings = append(snap.Warnings, warnings...)
	for _, app := range cat.Applications() {
		snap.Apps = append(snap.Apps, AppView{
			Name: app.Name, WakeUpID: app.WakeUpID, Priority: app.Priority, Group: app.Group,
		})
	}
	snap.Groups = cat.Groups()

	for _, d := range schedule.Defines(cat) {
		snap.Defines = append(snap.Defines, DefineView{Symbol: d.Symbol, ID: d.ID})
	}

	index, skipped := schedule.BuildIndexTable(cat, p.SlotCount)
	snap.IndexTable = index
	for _, app := range skipped {
		snap.Warnings = append(snap.Warnings,
			"application "+app.Name+" wake-up ID out of table range, omitted from message table")
	}

	defs, err := store.LoadDefinitions(db)
	if err != nil {
		return nil, err
	}
	res := validator.Validate(cat, defs, p)
	snap.Warnings = append(snap.Warnings, res.Warnings...)
	for _, rej := range res.Rejects {
		snap.Warnings = append(snap.Warnings, "message "+rej.Message+" rejected: "+rej.Reason)
	}

	table, err := schedule.Compile(cat, res.Valid, p.SlotCount)
	if err != nil {
		return nil, err
	}
	for _, row := range table.Rows() {
		rv := RowView{Name: row.Name, Truncated: row.Truncated}
		for _, e := range row.Entries {
			rv.Entries = append(rv.Entries, EntryView{
				Enable: e.Enable, Activity: e.Activity, Count: e.Count,
				Offset: e.Offset, MessageIndex: e.MessageIndex, Group: e.Group,
			})
		}
		snap.Rows = append(snap.Rows, rv)
	}

	return snap, nil
}

// holder is the swap point between the refresh path and request handlers.
type holder struct {
	mu   sync.RWMutex
	snap *Snapshot
}

func (h *holder) get() *Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snap
}

func (h *holder) set(s *Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snap = s
}
