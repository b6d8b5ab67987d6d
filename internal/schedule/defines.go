package schedule

import (
	"sort"

	"github.com/cfstools/schedtab/internal/catalog"
)

// UnusedMID is the sentinel symbol for a message-index slot no application
// claims.
const UnusedMID = "SCH_UNUSED_MID"

// Define is one wake-up message ID define statement: the symbol the
// generated code refers to and its numeric value.
type Define struct {
	Symbol string
	ID     int
}

// Defines builds the wake-up MID symbol table, sorted ascending by ID.
// The sort is stable, so equal IDs (which a validated catalog never has)
// keep catalog order.
func Defines(cat *catalog.Catalog) []Define {
	apps := cat.Applications()
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].WakeUpID < apps[j].WakeUpID
	})

	defines := make([]Define, len(apps))
	for i, app := range apps {
		defines[i] = Define{Symbol: app.Symbol(), ID: app.WakeUpID}
	}
	return defines
}

// BuildIndexTable builds the direct-addressed message-index table of the
// given capacity. Position i holds the symbol of the application whose
// wake-up ID is i, or UnusedMID. Applications whose wake-up ID falls
// outside [0, commandsPerTable) cannot be addressed and are returned in
// skipped so the caller can warn; they are not an error.
func BuildIndexTable(cat *catalog.Catalog, commandsPerTable int) (table []string, skipped []catalog.Application) {
	table = make([]string, commandsPerTable)
	for i := range table {
		table[i] = UnusedMID
	}

	for _, app := range cat.Applications() {
		if app.WakeUpID < 0 || app.WakeUpID >= commandsPerTable {
			skipped = append(skipped, app)
			continue
		}
		table[app.WakeUpID] = app.Symbol()
	}
	return table, skipped
}
